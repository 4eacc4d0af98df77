package services

import (
	"context"

	"github.com/dmitrijs2005/taskkeeper/internal/client/api"
	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
)

// fakeClient implements api.Client for unit tests. Every call records the
// token it was given; Err, when set, is returned by every call.
type fakeClient struct {
	Err error

	LoginRet  *api.LoginResult
	UserRet   *models.User
	TasksRet  []models.Task
	TaskRet   *models.Task
	ExportRet *models.Export

	Calls      []string
	LastToken  string
	LastQuery  string
	LastPatch  models.TaskPatch
	LastEmail  string
	LastFull   string
	LastPasswd string
}

var _ api.Client = (*fakeClient)(nil)

func (f *fakeClient) call(name, token string) error {
	f.Calls = append(f.Calls, name)
	f.LastToken = token
	return f.Err
}

func (f *fakeClient) Ping(context.Context) error { return f.call("Ping", "") }

func (f *fakeClient) Register(_ context.Context, fullName, email string, password []byte) (*models.User, error) {
	f.LastFull, f.LastEmail, f.LastPasswd = fullName, email, string(password)
	if err := f.call("Register", ""); err != nil {
		return nil, err
	}
	return f.UserRet, nil
}

func (f *fakeClient) Login(_ context.Context, email string, password []byte) (*api.LoginResult, error) {
	f.LastEmail, f.LastPasswd = email, string(password)
	if err := f.call("Login", ""); err != nil {
		return nil, err
	}
	return f.LoginRet, nil
}

func (f *fakeClient) Profile(_ context.Context, token string) (*models.User, error) {
	if err := f.call("Profile", token); err != nil {
		return nil, err
	}
	return f.UserRet, nil
}

func (f *fakeClient) UpdateProfile(_ context.Context, token string, _, _ *string) (*models.User, error) {
	if err := f.call("UpdateProfile", token); err != nil {
		return nil, err
	}
	return f.UserRet, nil
}

func (f *fakeClient) CreateTask(_ context.Context, token, _, _ string) (*models.Task, error) {
	if err := f.call("CreateTask", token); err != nil {
		return nil, err
	}
	return f.TaskRet, nil
}

func (f *fakeClient) ListTasks(_ context.Context, token, query string) ([]models.Task, error) {
	f.LastQuery = query
	if err := f.call("ListTasks", token); err != nil {
		return nil, err
	}
	return f.TasksRet, nil
}

func (f *fakeClient) UpdateTask(_ context.Context, token, _ string, patch models.TaskPatch) (*models.Task, error) {
	f.LastPatch = patch
	if err := f.call("UpdateTask", token); err != nil {
		return nil, err
	}
	return f.TaskRet, nil
}

func (f *fakeClient) DeleteTask(_ context.Context, token, _ string) error {
	return f.call("DeleteTask", token)
}

func (f *fakeClient) ExportTasks(_ context.Context, token string) (*models.Export, error) {
	if err := f.call("ExportTasks", token); err != nil {
		return nil, err
	}
	return f.ExportRet, nil
}
