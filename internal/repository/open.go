// Package repository selects the domain.Store backend named in the configuration.
package repository

import (
	"context"
	"fmt"
	"log/slog"

	"eventcrm/config"
	"eventcrm/internal/domain"
	"eventcrm/internal/repository/dynamodb"
	"eventcrm/internal/repository/memory"
	"eventcrm/internal/repository/postgres"
)

// Collections lists every collection the repositories write to.
var Collections = []string{domain.CollectionUsers, domain.CollectionEvents, domain.CollectionEmailLogs}

// Provisioner creates the tables backing the given collections. It must be idempotent.
type Provisioner interface {
	EnsureCollections(ctx context.Context, collections ...string) error
}

// Backend is an opened store plus its lifecycle hooks.
type Backend struct {
	Store domain.Store
	// Provisioner is nil for backends that need no schema.
	Provisioner Provisioner
	Close       func() error
}

// Open connects to the backend selected by cfg.StoreBackend.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Backend, error) {
	switch cfg.StoreBackend {
	case config.StoreMemory, "":
		logger.Warn("using in-memory store, data is lost on restart")
		return &Backend{Store: memory.NewStore(), Close: func() error { return nil }}, nil
	case config.StorePostgres:
		db, err := postgres.Open(ctx, cfg.DBUrl)
		if err != nil {
			return nil, err
		}
		store := postgres.NewDocumentStore(db)
		return &Backend{Store: store, Provisioner: store, Close: db.Close}, nil
	case config.StoreDynamoDB:
		client := dynamodb.NewClient(dynamodb.Config{
			Region:          cfg.DynamoDB.Region,
			Endpoint:        cfg.DynamoDB.Endpoint,
			AccessKeyID:     cfg.DynamoDB.AccessKeyID,
			SecretAccessKey: cfg.DynamoDB.SecretAccessKey,
			TablePrefix:     cfg.DynamoDB.TablePrefix,
		})
		store := dynamodb.NewStore(client, cfg.DynamoDB.TablePrefix)
		return &Backend{Store: store, Provisioner: store, Close: func() error { return nil }}, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

// Provision creates the collections when the backend has a schema.
func (b *Backend) Provision(ctx context.Context) error {
	if b.Provisioner == nil {
		return nil
	}
	return b.Provisioner.EnsureCollections(ctx, Collections...)
}
