package services

import (
	"context"

	"github.com/dmitrijs2005/taskkeeper/internal/client/api"
	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
	"github.com/dmitrijs2005/taskkeeper/internal/client/session"
)

// TaskService defines the task operations of the CLI. All of them require a
// signed-in session.
type TaskService interface {
	List(ctx context.Context, query string) ([]models.Task, error)
	Add(ctx context.Context, title, description string) (*models.Task, error)
	SetCompleted(ctx context.Context, id string, completed bool) (*models.Task, error)
	Edit(ctx context.Context, id string, patch models.TaskPatch) (*models.Task, error)
	Delete(ctx context.Context, id string) error
	Export(ctx context.Context) (*models.Export, error)
}

type taskService struct {
	client  api.Client
	session *session.Session
}

func NewTaskService(client api.Client, s *session.Session) TaskService {
	return &taskService{client: client, session: s}
}

func (t *taskService) List(ctx context.Context, query string) ([]models.Task, error) {
	return withToken(ctx, t.session, func(token string) ([]models.Task, error) {
		return t.client.ListTasks(ctx, token, query)
	})
}

func (t *taskService) Add(ctx context.Context, title, description string) (*models.Task, error) {
	return withToken(ctx, t.session, func(token string) (*models.Task, error) {
		return t.client.CreateTask(ctx, token, title, description)
	})
}

func (t *taskService) SetCompleted(ctx context.Context, id string, completed bool) (*models.Task, error) {
	return t.Edit(ctx, id, models.TaskPatch{Completed: &completed})
}

func (t *taskService) Edit(ctx context.Context, id string, patch models.TaskPatch) (*models.Task, error) {
	return withToken(ctx, t.session, func(token string) (*models.Task, error) {
		return t.client.UpdateTask(ctx, token, id, patch)
	})
}

func (t *taskService) Delete(ctx context.Context, id string) error {
	_, err := withToken(ctx, t.session, func(token string) (struct{}, error) {
		return struct{}{}, t.client.DeleteTask(ctx, token, id)
	})
	return err
}

func (t *taskService) Export(ctx context.Context) (*models.Export, error) {
	return withToken(ctx, t.session, func(token string) (*models.Export, error) {
		return t.client.ExportTasks(ctx, token)
	})
}
