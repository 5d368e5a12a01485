package main

import (
	"context"
	"fmt"

	"tasktracker/internal/config"
	"tasktracker/internal/database"
	"tasktracker/internal/logging"
)

// connect opens the configured database and ensures its indexes exist.
// The returned func closes the connection.
func connect(ctx context.Context) (*database.MongoDB, func(), error) {
	cfg := config.Load()
	logging.Init(cfg.Environment)

	mongodb, err := database.NewMongoDB(cfg.MongoURI)
	if err != nil {
		return nil, nil, fmt.Errorf("connect: %w", err)
	}
	if err := mongodb.Initialize(ctx); err != nil {
		_ = mongodb.Close(ctx)
		return nil, nil, fmt.Errorf("initialize database: %w", err)
	}

	return mongodb, func() { _ = mongodb.Close(context.Background()) }, nil
}
