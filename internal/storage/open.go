package storage

import (
	"context"
	"embed"
	"fmt"
	"os"

	coreconfig "github.com/ketravel/travelbot/core/config"
	"github.com/ketravel/travelbot/core/logger"
	"github.com/jmoiron/sqlx"
	"log/slog"
)

// Migrations holds the embedded SQLite schema migrations.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the path of the migration files inside Migrations.
const MigrationsDir = "migrations"

// Open builds the persistence backends for the configured storage backend.
// The db handle is required for the sqlite backend and ignored otherwise.
func Open(cfg coreconfig.StorageConfig, db *sqlx.DB) (Backends, error) {
	switch cfg.Backend {
	case coreconfig.BackendFile:
		if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
			return Backends{}, fmt.Errorf("storage: create dir %s: %w", cfg.Dir, err)
		}
		logger.STORE.LogAttrs(context.Background(), slog.LevelInfo, "storage.open",
			slog.String("backend", "file"),
			slog.String("path", cfg.Dir),
		)
		return Backends{
			Requests:  NewFileRequestStore(cfg.Dir),
			Log:       NewFileSubmissionLog(cfg.Dir),
			Languages: NewFileLanguageStore(cfg.Dir),
		}, nil
	case coreconfig.BackendSQLite:
		if db == nil {
			return Backends{}, fmt.Errorf("storage: sqlite backend requires a database handle")
		}
		logger.STORE.LogAttrs(context.Background(), slog.LevelInfo, "storage.open",
			slog.String("backend", "sqlite"),
			slog.String("path", cfg.SQLitePath),
		)
		return Backends{
			Requests:  NewSQLRequestStore(db),
			Log:       NewSQLSubmissionLog(db),
			Languages: NewSQLLanguageStore(db),
		}, nil
	default:
		return Backends{}, fmt.Errorf("storage: unknown backend %q", cfg.Backend)
	}
}
