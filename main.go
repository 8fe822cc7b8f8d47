package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/crmhub/crm/backend/go-services/handlers"
	"github.com/crmhub/crm/backend/go-services/internal/config"
	"github.com/crmhub/crm/backend/go-services/internal/database"
	"github.com/crmhub/crm/backend/go-services/internal/document/handler"
	"github.com/crmhub/crm/backend/go-services/internal/document/pdf"
	"github.com/crmhub/crm/backend/go-services/internal/document/pipeline"
	"github.com/crmhub/crm/backend/go-services/internal/document/service"
	"github.com/crmhub/crm/backend/go-services/internal/storage"
	"github.com/crmhub/crm/backend/go-services/pkg/logger"
	"github.com/crmhub/crm/backend/go-services/pkg/metrics"
	"github.com/crmhub/crm/backend/go-services/pkg/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

var startTime = time.Now()

func main() {
	// LOG_LEVEL: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: mongo=%v redis=%v minio=%v", cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.MinIO.Endpoint != "")

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	ctx := context.Background()
	checks := map[string]handlers.ReadinessCheck{}

	// Redis is only used by the shared rate limiter.
	var rdb *redis.Client
	if cfg.Redis.Host != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
		} else {
			logger.Infof("connected to Redis %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
		defer rdb.Close()
		checks["redis"] = func(ctx context.Context) bool { return rdb.Ping(ctx).Err() == nil }
	}

	var submit []gin.HandlerFunc
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && rdb != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			submit = append(submit, middleware.RedisRateLimitMiddleware(rdb, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			submit = append(submit, middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	// Persistence: Mongo when configured and reachable, memory otherwise.
	svc := service.NewMemoryService()
	if cfg.MongoDB.URI != "" {
		client, err := database.ConnectMongoWithRetry(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, 5, time.Second)
		if err != nil {
			logger.Warnf("%v; using memory-backed repository", err)
		} else {
			defer func() { _ = client.Disconnect(context.Background()) }()
			col := client.Database(cfg.MongoDB.Database).Collection(cfg.MongoDB.Collection)
			svc = service.NewMongoService(ctx, col)
			checks["mongo"] = func(ctx context.Context) bool { return database.Ping(ctx, client, time.Second) }
			logger.Infof("using MongoDB collection %s.%s", cfg.MongoDB.Database, cfg.MongoDB.Collection)
		}
	}

	renderer := pdf.NewFPDFRenderer(pdf.Options{
		PageSize:    cfg.PDF.PageSize,
		Orientation: cfg.PDF.Orientation,
		FontFamily:  cfg.PDF.FontFamily,
		FontSize:    cfg.PDF.FontSize,
		NoCompress:  !cfg.PDF.Compress,
	})
	var opts []pipeline.Option
	var hopts []handler.Option
	if mcfg := storage.FromConfig(cfg.MinIO); mcfg != nil {
		archive, err := storage.NewMinIOStorage(ctx, mcfg)
		if err != nil {
			logger.Warnf("document archiving disabled: %v", err)
		} else {
			opts = append(opts, pipeline.WithArchiver(archive))
			hopts = append(hopts, handler.WithArchive(archive))
			checks["minio"] = archive.Ready
			logger.Infof("archiving generated documents to bucket %s", mcfg.Bucket)
		}
	}

	h := handler.New(svc, pipeline.New(renderer, svc, opts...), hopts...)
	handler.RegisterDocumentRoutes(r, h, submit...)
	handlers.RegisterSwagger(r)
	handlers.RegisterSystemRoutes(r, startTime, checks)

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		logger.Infof("document service listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Infof("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("shutdown: %v", err)
	}
}
