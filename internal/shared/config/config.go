package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"docstore-backend/internal/shared/telemetry"
)

const defaultMaxUploadBytes = 10 << 20 // 10MB

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	ObjectStoreType string
	LocalStoreDir   string
	AWSRegion       string
	S3Bucket        string
	S3Prefix        string
	S3Endpoint      string
	S3AccessKey     string
	S3SecretKey     string
	S3UseSSL        bool
	SSEKMSKeyID     string
	MaxUploadBytes  int64
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	cfg := Config{
		Port:            getEnv("PORT", "8080"),
		Env:             normalizeEnv(getEnv("ENV", "dev")),
		ObjectStoreType: normalizeStoreType(getEnv("OBJECT_STORE", "s3")),
		LocalStoreDir:   getEnv("LOCAL_STORE_DIR", "./data"),
		AWSRegion:       getEnv("AWS_REGION", "us-east-1"),
		S3Bucket:        getEnv("S3_BUCKET", os.Getenv("BUCKET_NAME")),
		S3Prefix:        getEnv("S3_PREFIX", ""),
		S3Endpoint:      getEnv("S3_ENDPOINT", ""),
		S3AccessKey:     getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:     getEnv("S3_SECRET_KEY", ""),
		S3UseSSL:        getBool("S3_USE_SSL", true),
		SSEKMSKeyID:     getEnv("SSE_KMS_KEY_ID", ""),
		MaxUploadBytes:  getInt64("MAX_UPLOAD_BYTES", defaultMaxUploadBytes),
	}

	if err := cfg.Validate(); err != nil {
		telemetry.Warn("config.invalid", map[string]any{"err": err.Error()})
	}
	return cfg
}

// Validate reports settings that make the configured store unusable.
func (c Config) Validate() error {
	switch c.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(c.S3Bucket) == "" {
			return errors.New("OBJECT_STORE=s3 requires S3_BUCKET")
		}
	case "minio":
		if strings.TrimSpace(c.S3Bucket) == "" || strings.TrimSpace(c.S3Endpoint) == "" {
			return errors.New("OBJECT_STORE=minio requires S3_BUCKET and S3_ENDPOINT")
		}
	}
	if c.MaxUploadBytes <= 0 {
		return errors.New("MAX_UPLOAD_BYTES must be positive")
	}
	return nil
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return v
}

func getInt64(key string, def int64) int64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return def
	}
	return v
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "minio":
		return "minio"
	case "local":
		return "local"
	case "memory":
		return "memory"
	default:
		return "s3"
	}
}
