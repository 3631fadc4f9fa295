package repositories

import (
	"context"
	"fmt"

	"phonebook/config"
	"phonebook/internal/models"
	"phonebook/internal/utils"
)

// Open connects the backend named by cfg.Backend and makes sure the
// contacts table exists.
func Open(ctx context.Context, cfg *config.Config) (models.ContactRepository, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		utils.LogWarning("Using the in-memory backend, contacts will not survive a restart")
		return NewMemoryContactRepository(), nil

	case config.BackendMySQL, config.BackendSQLite:
		db, err := config.ConnectDatabase(ctx, cfg.Backend, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", models.ErrStorageUnavailable, err)
		}
		repo, err := NewSQLContactRepository(db, cfg.Backend)
		if err != nil {
			db.Close()
			return nil, err
		}
		if err := repo.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, err
		}
		utils.LogInfo("Connected to %s backend", cfg.Backend)
		return repo, nil

	case config.BackendPostgres:
		db, err := config.ConnectGorm(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", models.ErrStorageUnavailable, err)
		}
		repo := NewGormContactRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			repo.Close()
			return nil, err
		}
		utils.LogInfo("Connected to postgres backend")
		return repo, nil

	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}
