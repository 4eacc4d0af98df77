// Package tasks holds the task store. Every operation is filtered by owner so
// that one user can never see or touch another user's tasks.
package tasks

import (
	"context"

	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

// Repository persists tasks. Lookups that match no task owned by ownerID
// return common.ErrorNotFound, whether the id is unknown, malformed or
// belongs to someone else.
type Repository interface {
	// Create stores task; task.OwnerID must be set.
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	// List returns the owner's tasks, newest first. A non-empty query keeps
	// only tasks whose title contains it, ignoring case.
	List(ctx context.Context, ownerID, query string) ([]models.Task, error)
	Update(ctx context.Context, ownerID, id string, patch models.TaskPatch) (*models.Task, error)
	Delete(ctx context.Context, ownerID, id string) error
}

// Scoped is a Repository bound to a single owner.
type Scoped struct {
	repo    Repository
	ownerID string
}

// ForOwner binds repo to ownerID.
func ForOwner(repo Repository, ownerID string) *Scoped {
	return &Scoped{repo: repo, ownerID: ownerID}
}

// OwnerID returns the owner this view is bound to.
func (s *Scoped) OwnerID() string { return s.ownerID }

// Create stores task as owned by the bound owner, whatever OwnerID it carried.
func (s *Scoped) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	task.OwnerID = s.ownerID
	return s.repo.Create(ctx, task)
}

func (s *Scoped) List(ctx context.Context, query string) ([]models.Task, error) {
	return s.repo.List(ctx, s.ownerID, query)
}

func (s *Scoped) Update(ctx context.Context, id string, patch models.TaskPatch) (*models.Task, error) {
	return s.repo.Update(ctx, s.ownerID, id, patch)
}

func (s *Scoped) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, s.ownerID, id)
}

var (
	_ Repository = (*PostgresRepository)(nil)
	_ Repository = (*MongoRepository)(nil)
	_ Repository = (*InMemoryRepository)(nil)
)
