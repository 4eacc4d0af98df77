// Package repomanager builds the storage backend selected in configuration
// and vends the user and task repositories bound to it.
package repomanager

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/taskkeeper/internal/server/config"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/users"
)

const (
	BackendPostgres = "postgres"
	BackendMongo    = "mongo"
	BackendMemory   = "memory"
)

type RepositoryManager interface {
	Users() users.Repository
	Tasks() tasks.Repository
	Close(ctx context.Context) error
}

// New connects to the backend named by c.StorageBackend and prepares its
// schema. An empty backend means postgres.
func New(ctx context.Context, c *config.Config) (RepositoryManager, error) {
	switch c.StorageBackend {
	case "", BackendPostgres:
		m, err := NewPostgresRepositoryManager(ctx, c.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		return m, nil
	case BackendMongo:
		m, err := NewMongoRepositoryManager(ctx, c.MongoURI, c.MongoDatabase)
		if err != nil {
			return nil, err
		}
		return m, nil
	case BackendMemory:
		return NewInMemoryRepositoryManager(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", c.StorageBackend)
	}
}
