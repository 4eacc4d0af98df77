package services

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/tasks"
)

// TaskService manages the tasks of one owner at a time. Every call goes
// through tasks.ForOwner, so no operation can reach another user's data.
type TaskService struct {
	tasks tasks.Repository
}

func NewTaskService(repo tasks.Repository) *TaskService {
	return &TaskService{tasks: repo}
}

// Create adds an open task. The title is trimmed and must not be empty.
func (s *TaskService) Create(ctx context.Context, ownerID, title, description string) (*models.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, common.NewValidationError("Title is required")
	}

	return tasks.ForOwner(s.tasks, ownerID).Create(ctx, &models.Task{
		Title:       title,
		Description: description,
	})
}

// List returns the owner's tasks, newest first, optionally narrowed to
// titles containing query (case-insensitive, literal).
func (s *TaskService) List(ctx context.Context, ownerID, query string) ([]models.Task, error) {
	return tasks.ForOwner(s.tasks, ownerID).List(ctx, strings.TrimSpace(query))
}

// Update applies patch to one of the owner's tasks.
func (s *TaskService) Update(ctx context.Context, ownerID, id string, patch models.TaskPatch) (*models.Task, error) {
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, common.NewValidationError("Title cannot be empty")
		}
		patch.Title = &title
	}
	return tasks.ForOwner(s.tasks, ownerID).Update(ctx, id, patch)
}

func (s *TaskService) Delete(ctx context.Context, ownerID, id string) error {
	return tasks.ForOwner(s.tasks, ownerID).Delete(ctx, id)
}
