package storage

import "github.com/crmhub/crm/backend/go-services/internal/config"

// MinIOConfig holds MinIO connection configuration
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

// FromConfig maps the application MinIO section; nil when archiving is not configured.
func FromConfig(c config.MinIOConfig) *MinIOConfig {
	if c.Endpoint == "" {
		return nil
	}
	bucket := c.Bucket
	if bucket == "" {
		bucket = "crm-documents"
	}
	return &MinIOConfig{
		Endpoint:  c.Endpoint,
		AccessKey: c.AccessKey,
		SecretKey: c.SecretKey,
		UseSSL:    c.UseSSL,
		Bucket:    bucket,
	}
}
