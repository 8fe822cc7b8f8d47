package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017/testdb")
	t.Setenv("MONGODB_DATABASE", "crm_test")
	t.Setenv("REDIS_HOST", "localhost")
	t.Setenv("RATE_LIMIT_USE_REDIS", "true")
	t.Setenv("PDF_FONT_SIZE", "14")
	t.Setenv("PDF_COMPRESS", "false")
	t.Setenv("MINIO_ENDPOINT", "localhost:9000")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "mongodb://localhost:27017/testdb", cfg.MongoDB.URI)
	require.Equal(t, "crm_test", cfg.MongoDB.Database)
	require.Equal(t, "documents", cfg.MongoDB.Collection)
	require.Equal(t, 10*time.Second, cfg.MongoDB.Timeout)
	require.Equal(t, "6379", cfg.Redis.Port)
	require.True(t, cfg.RateLimit.UseRedis)
	require.Equal(t, 14.0, cfg.PDF.FontSize)
	require.False(t, cfg.PDF.Compress)
	require.Equal(t, "crm-documents", cfg.MinIO.Bucket)
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("MONGODB_URI", "")
	t.Setenv("REDIS_HOST", "")
	t.Setenv("RATE_LIMIT_USE_REDIS", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "5010", cfg.Server.Port)
	require.Empty(t, cfg.MongoDB.URI)
	require.False(t, cfg.RateLimit.UseRedis, "redis limiter requires a redis host")
	require.True(t, cfg.RateLimit.Enabled)
	require.Equal(t, "A4", cfg.PDF.PageSize)
	require.True(t, cfg.PDF.Compress)
}
