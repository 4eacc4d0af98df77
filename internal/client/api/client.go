// Package api is the HTTP client for the taskkeeper REST API.
package api

import (
	"context"

	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
)

// Client is the set of remote calls the CLI makes. Calls that need a session
// take the bearer token explicitly.
type Client interface {
	Ping(ctx context.Context) error
	Register(ctx context.Context, fullName, email string, password []byte) (*models.User, error)
	Login(ctx context.Context, email string, password []byte) (*LoginResult, error)
	Profile(ctx context.Context, token string) (*models.User, error)
	UpdateProfile(ctx context.Context, token string, fullName, email *string) (*models.User, error)
	CreateTask(ctx context.Context, token, title, description string) (*models.Task, error)
	ListTasks(ctx context.Context, token, query string) ([]models.Task, error)
	UpdateTask(ctx context.Context, token, id string, patch models.TaskPatch) (*models.Task, error)
	DeleteTask(ctx context.Context, token, id string) error
	ExportTasks(ctx context.Context, token string) (*models.Export, error)
}
