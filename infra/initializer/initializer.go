// Package initializer wires the application dependencies: logger, ledger
// store and history log. When a database URL is configured the GORM/Postgres
// store is used; otherwise the service runs on the in-memory store.
package initializer

import (
	"fmt"
	"log/slog"

	"github.com/fintechlab/accounts/infra/repository/gormstore"
	"github.com/fintechlab/accounts/infra/repository/memory"
	"github.com/fintechlab/accounts/pkg/config"
	"github.com/fintechlab/accounts/pkg/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Deps bundles everything the server needs beyond its config.
type Deps struct {
	Logger  *slog.Logger
	Store   repository.Store
	History repository.History
}

// Init builds the dependency graph for the given configuration.
func Init(cfg *config.App) (*Deps, error) {
	logger := setupLogger(cfg.Log)

	if cfg.DB.Url == "" {
		logger.Warn("no database configured, using in-memory ledger store")
		store := memory.New()
		return &Deps{Logger: logger, Store: store, History: store}, nil
	}

	db, err := gorm.Open(postgres.Open(cfg.DB.Url), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	store := gormstore.New(db)
	if err := store.Migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	logger.Info("connected to database")
	return &Deps{Logger: logger, Store: store, History: store}, nil
}
