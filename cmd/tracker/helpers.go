package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/sameeksha-sunilkumar/expense-tracker/internal/config"
	"github.com/sameeksha-sunilkumar/expense-tracker/internal/service"
	"github.com/sameeksha-sunilkumar/expense-tracker/internal/storage"
)

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (service.Storage, error) {
	// Get database path from config
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDBPath
	}

	// Expand tilde and environment variables
	dbPath = config.ExpandPath(dbPath)

	// Initialize storage
	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// monthOrCurrent returns the provided month token, or the current
// month when empty.
func monthOrCurrent(month string) string {
	if month != "" {
		return month
	}
	return time.Now().Format("2006-01")
}
