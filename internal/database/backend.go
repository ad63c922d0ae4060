package database

import (
	"context"
	"fmt"

	"buildledger/internal/config"
	"buildledger/internal/store"

	"go.uber.org/zap"
)

// OpenBackend builds the collection backend named by cfg.StoreBackend. The
// returned close func releases the SQL connection, if any.
func OpenBackend(ctx context.Context, cfg *config.Config, log *zap.Logger) (store.Backend, func() error, error) {
	switch cfg.StoreBackend {
	case config.BackendSQL:
		db, err := Connect(cfg.DatabaseURL, log)
		if err != nil {
			return nil, nil, err
		}
		backend := store.NewSQLBackend(db)
		if err := backend.Migrate(ctx); err != nil {
			_ = Close(db)
			return nil, nil, fmt.Errorf("migrate documents table: %w", err)
		}
		return backend, func() error { return Close(db) }, nil
	default:
		backend, err := store.NewFileBackend(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return backend, func() error { return nil }, nil
	}
}
