package repomanager

import (
	"context"

	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/users"
)

// InMemoryRepositoryManager keeps everything in process memory; data is lost
// on restart.
type InMemoryRepositoryManager struct {
	users *users.InMemoryRepository
	tasks *tasks.InMemoryRepository
}

func (m *InMemoryRepositoryManager) Users() users.Repository { return m.users }

func (m *InMemoryRepositoryManager) Tasks() tasks.Repository { return m.tasks }

func (m *InMemoryRepositoryManager) Close(context.Context) error { return nil }

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{
		users: users.NewInMemoryRepository(),
		tasks: tasks.NewInMemoryRepository(),
	}
}
