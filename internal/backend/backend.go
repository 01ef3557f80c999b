// Package backend opens the storage.Store selected by configuration.
package backend

import (
	"context"
	"errors"
	"fmt"

	"ltask/internal/backend/filestore"
	"ltask/internal/backend/googletasks"
	"ltask/internal/backend/sqlitestore"
	"ltask/internal/config"
	"ltask/internal/storage"
)

// Open returns the store named by cfg.Backend.
func Open(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	switch cfg.Backend {
	case config.BackendFile, "":
		return filestore.Open(cfg.StorePath())
	case config.BackendSQLite:
		return sqlitestore.Open(cfg.DatabasePath())
	case config.BackendGoogleTasks:
		return googletasks.New(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown backend: %s", cfg.Backend)
	}
}

// NeedsAuth reports whether the backend requires a Google login.
func NeedsAuth(cfg *config.Config) bool {
	return cfg.Backend == config.BackendGoogleTasks
}

// IsAuthError reports whether err comes from missing or rejected Google
// credentials.
func IsAuthError(err error) bool {
	return errors.Is(err, googletasks.ErrAuth)
}
