package factory

import (
	"context"
	"fmt"

	"github.com/ionwell/formulation-service/internal/config"
	"github.com/ionwell/formulation-service/internal/store"
	"github.com/ionwell/formulation-service/internal/store/postgres"
	"github.com/ionwell/formulation-service/internal/store/sqlite"
)

// NewStore selects the correct store adapter based on cfg.DBDriver.
func NewStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.DBDriver {
	case "postgres":
		if err := postgres.Bootstrap(ctx, cfg.PostgresDSN); err != nil {
			return nil, err
		}
		db, err := postgres.Open(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		return postgres.NewWithDB(db), nil
	case "sqlite":
		return sqlite.New(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER: %s", cfg.DBDriver)
	}
}
