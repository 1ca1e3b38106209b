package cmd

import (
	"context"
	"strings"

	"docstore-backend/internal/bootstrap"
	"docstore-backend/internal/shared/config"
)

func buildApp(ctx context.Context) (*bootstrap.App, error) {
	cfg := config.Load()
	if storeType != "" {
		cfg.ObjectStoreType = strings.ToLower(strings.TrimSpace(storeType))
	}
	return bootstrap.Build(ctx, cfg)
}
