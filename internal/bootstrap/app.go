package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"docstore-backend/internal/documents"
	"docstore-backend/internal/services/health"
	"docstore-backend/internal/shared/config"
	"docstore-backend/internal/shared/server"
	"docstore-backend/internal/shared/storage/object"
	localstore "docstore-backend/internal/shared/storage/object/local"
	memorystore "docstore-backend/internal/shared/storage/object/memory"
	miniostore "docstore-backend/internal/shared/storage/object/minio"
	s3store "docstore-backend/internal/shared/storage/object/s3"
	"docstore-backend/internal/shared/telemetry"
)

// App holds shared dependencies.
type App struct {
	Config  config.Config
	Store   object.Store
	Service *documents.Service
	Handler *documents.Handler
	Router  *gin.Engine
}

// Build wires the object store, the document flows and the dev router.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "s3"
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return BuildWithStore(cfg, store), nil
}

// BuildWithStore wires the app around an already constructed store.
func BuildWithStore(cfg config.Config, store object.Store) *App {
	svc := documents.NewService(store)
	handler := documents.NewHandler(svc, cfg.MaxUploadBytes)
	router := server.NewRouter(server.RouterDeps{
		Config: cfg,
		Health: health.NewService(store, cfg.ObjectStoreType, documents.KeyPrefix),
		Proxy:  handler.Handle,
	})
	return &App{
		Config:  cfg,
		Store:   store,
		Service: svc,
		Handler: handler,
		Router:  router,
	}
}

func buildStore(ctx context.Context, cfg config.Config) (object.Store, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("S3_BUCKET is required for OBJECT_STORE=s3")
		}
		store, err := s3store.New(ctx, s3store.Options{
			Region:    cfg.AWSRegion,
			Bucket:    cfg.S3Bucket,
			Prefix:    cfg.S3Prefix,
			KMSKeyID:  cfg.SSEKMSKeyID,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
		if err != nil {
			return nil, fmt.Errorf("s3 store: %w", err)
		}
		telemetry.Info("bootstrap.store", map[string]any{"type": "s3", "bucket": cfg.S3Bucket, "region": cfg.AWSRegion})
		return store, nil
	case "minio":
		store, err := miniostore.New(miniostore.Options{
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Region:    cfg.AWSRegion,
			Bucket:    cfg.S3Bucket,
			UseSSL:    cfg.S3UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("minio store: %w", err)
		}
		telemetry.Info("bootstrap.store", map[string]any{"type": "minio", "bucket": cfg.S3Bucket, "endpoint": cfg.S3Endpoint})
		return store, nil
	case "local":
		telemetry.Info("bootstrap.store", map[string]any{"type": "local", "dir": cfg.LocalStoreDir})
		return localstore.New(cfg.LocalStoreDir), nil
	case "memory":
		if !isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.store", map[string]any{"type": "memory", "env": cfg.Env, "note": "documents are lost on restart"})
		}
		return memorystore.New(), nil
	default:
		return nil, fmt.Errorf("unsupported OBJECT_STORE %q", cfg.ObjectStoreType)
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "", "dev", "local", "test":
		return true
	default:
		return false
	}
}
