package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"fin-analyzer/pkg/config"
	"fin-analyzer/pkg/postgres"

	"go.uber.org/zap"
)

// OpenArtifactStore builds the store selected by MODEL_STORE. The returned
// close function releases whatever connection the store holds.
func OpenArtifactStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (ArtifactStore, func(), error) {
	switch cfg.Model.Store {
	case config.ModelStoreFile:
		logger.Info("Using file artifact store", zap.String("dir", cfg.Model.Dir))
		return NewFileArtifactStore(cfg.Model.Dir, logger), func() {}, nil

	case config.ModelStoreSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.Model.SQLitePath), 0755); err != nil {
			return nil, nil, fmt.Errorf("failed to create sqlite directory: %w", err)
		}
		store, err := OpenSQLiteArtifactStore(ctx, cfg.Model.SQLitePath, logger)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Using sqlite artifact store", zap.String("path", cfg.Model.SQLitePath))
		return store, func() {
			if err := store.Close(); err != nil {
				logger.Warn("Failed to close sqlite artifact store", zap.Error(err))
			}
		}, nil

	case config.ModelStorePostgres:
		pool, err := postgres.NewPool(ctx, &cfg.Database, logger)
		if err != nil {
			return nil, nil, err
		}
		store, err := NewPostgresArtifactStore(ctx, pool, logger)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		return store, pool.Close, nil
	}
	return nil, nil, fmt.Errorf("unsupported model store %q", cfg.Model.Store)
}
