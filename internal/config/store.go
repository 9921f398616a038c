package config

import (
	"context"
	"fmt"

	"task-manager/internal/store"
	"task-manager/internal/store/mongo"
	"task-manager/internal/store/sqlite"
)

// CreateStore connects the backend selected by the configuration
func CreateStore(ctx context.Context, config *Config) (store.Store, error) {
	ctx, cancel := context.WithTimeout(ctx, config.Store.ConnectTimeout)
	defer cancel()

	switch config.Store.Backend {
	case BackendMongo:
		s, err := mongo.Connect(ctx, config.Store.MongoURI, config.Store.Collection)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to mongo: %w", err)
		}
		return s, nil
	case BackendSQLite:
		s, err := sqlite.New(ctx, config.Store.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		return s, nil
	default:
		return nil, &ConfigError{Field: "store.backend", Message: fmt.Sprintf("unknown backend %q", config.Store.Backend)}
	}
}

// CreateTestStore creates an in-memory store for testing
func CreateTestStore() (store.Store, error) {
	s, err := sqlite.New(context.Background(), sqlite.MemoryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize test database: %w", err)
	}
	return s, nil
}
