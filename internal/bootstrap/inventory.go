package bootstrap

import (
	"context"
	"database/sql"
	"time"

	"github.com/cockroachdb/errors"

	"toolrental/internal/config"
	"toolrental/internal/domain"
	"toolrental/internal/logger"
	"toolrental/internal/repository"
	"toolrental/internal/repository/cache"
	"toolrental/internal/repository/memory"
	"toolrental/internal/repository/postgres"
)

// Inventory is the configured tool inventory with its read cache
type Inventory struct {
	Tools *cache.ToolRepository
	db    *sql.DB
}

// OpenInventory connects the configured inventory backend, seeds it with the
// configured tools and warms the cache.
func OpenInventory(ctx context.Context, cfg *config.Config) (*Inventory, error) {
	inv := &Inventory{}
	var backing repository.ToolRepository

	switch cfg.Inventory.Backend {
	case config.InventoryBackendPostgres:
		logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database)
		db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
		if err != nil {
			return nil, errors.Wrap(err, "open database")
		}
		inv.db = db

		store := postgres.NewStore(db)
		if err := store.Ping(ctx); err != nil {
			_ = db.Close()
			return nil, errors.Wrap(err, "ping database")
		}
		logger.Info("Database connection established")

		if err := postgres.Migrate(db); err != nil {
			_ = db.Close()
			return nil, err
		}
		backing = store.ToolRepository
	default:
		backing = memory.NewToolRepository()
	}

	added, err := SeedTools(ctx, backing, cfg.Inventory.Tools)
	if err != nil {
		_ = inv.Close()
		return nil, err
	}
	logger.Info("Inventory seeded", "backend", cfg.Inventory.Backend, "added", added)

	inv.Tools = cache.NewToolRepository(backing, time.Duration(cfg.Inventory.CacheTTLSeconds)*time.Second)
	if _, err := inv.Tools.Warm(ctx); err != nil {
		_ = inv.Close()
		return nil, err
	}
	return inv, nil
}

// Close releases the database connection, if any
func (inv *Inventory) Close() error {
	if inv.db == nil {
		return nil
	}
	return inv.db.Close()
}

// SeedTools adds the configured tools to repo. Tools already present are left
// untouched. It returns how many tools were added.
func SeedTools(ctx context.Context, repo repository.ToolRepository, tools []config.ToolConfig) (int, error) {
	added := 0
	for _, tc := range tools {
		category, err := domain.ParseToolCategory(tc.Type)
		if err != nil {
			return added, errors.Wrapf(err, "seed tool %s", tc.Code)
		}
		tool, err := domain.NewToolSpec(tc.Code, tc.Brand, category)
		if err != nil {
			return added, errors.Wrapf(err, "seed tool %s", tc.Code)
		}
		if err := repo.Create(ctx, &tool); err != nil {
			if errors.Is(err, domain.ErrDuplicateTool) {
				continue
			}
			return added, errors.Wrapf(err, "seed tool %s", tc.Code)
		}
		added++
	}
	return added, nil
}
