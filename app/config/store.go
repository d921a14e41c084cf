package config

import (
	"context"
	"fmt"

	"github.com/sandroc0sta/TaskManagerApp/app/services"
)

// OpenStore returns the task backend selected by cfg.Driver.
func OpenStore(ctx context.Context, cfg Store) (services.TaskStore, error) {
	switch cfg.Driver {
	case DriverSQLite:
		store, err := services.NewSQLTaskService(cfg.Path)
		if err != nil {
			return nil, err
		}
		return store, nil
	case DriverNeo4j:
		driver, err := InitNeo4j(ctx, cfg.Neo4j)
		if err != nil {
			return nil, err
		}
		store, err := services.NewNeo4jTaskService(ctx, driver)
		if err != nil {
			_ = driver.Close(ctx)
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported store driver: %q", cfg.Driver)
	}
}
