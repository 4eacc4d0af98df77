package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	method string
	path   string
	query  string
	auth   string
	body   map[string]any
}

// newServer answers every request with status and body and records what it saw.
func newServer(t *testing.T, status int, body string) (*HTTPClient, *recorded) {
	t.Helper()

	rec := &recorded{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.query = r.URL.Query().Get("q")
		rec.auth = r.Header.Get("Authorization")
		rec.body = nil
		_ = json.NewDecoder(r.Body).Decode(&rec.body)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return NewHTTPClient(srv.URL+"/", time.Second), rec
}

func TestLogin(t *testing.T) {
	c, rec := newServer(t, http.StatusOK, `{"token":"tok","expiresAt":"2030-01-01T00:00:00Z","user":{"id":"u1","fullName":"Alice","email":"a@example.com"}}`)

	res, err := c.Login(context.Background(), "a@example.com", []byte("secret1"))
	require.NoError(t, err)

	assert.Equal(t, "tok", res.Token)
	assert.Equal(t, "u1", res.User.ID)
	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/api/auth/login", rec.path)
	assert.Empty(t, rec.auth)
	assert.Equal(t, map[string]any{"email": "a@example.com", "password": "secret1"}, rec.body)
}

func TestRegister(t *testing.T) {
	c, rec := newServer(t, http.StatusCreated, `{"message":"User registered successfully","user":{"id":"u1","fullName":"Alice","email":"a@example.com"}}`)

	u, err := c.Register(context.Background(), "Alice", "a@example.com", []byte("secret1"))
	require.NoError(t, err)

	assert.Equal(t, "Alice", u.FullName)
	assert.Equal(t, "/api/auth/register", rec.path)
	assert.Equal(t, "Alice", rec.body["fullName"])
}

func TestBearerAttached(t *testing.T) {
	c, rec := newServer(t, http.StatusOK, `[]`)

	tasks, err := c.ListTasks(context.Background(), "tok", "buy milk")
	require.NoError(t, err)

	assert.Empty(t, tasks)
	assert.Equal(t, "Bearer tok", rec.auth)
	assert.Equal(t, "/api/tasks", rec.path)
	assert.Equal(t, "buy milk", rec.query)
}

func TestUpdateTask_SendsOnlySetFields(t *testing.T) {
	c, rec := newServer(t, http.StatusOK, `{"id":"t1","title":"x","completed":true}`)

	done := true
	task, err := c.UpdateTask(context.Background(), "tok", "t1", models.TaskPatch{Completed: &done})
	require.NoError(t, err)

	assert.True(t, task.Completed)
	assert.Equal(t, http.MethodPut, rec.method)
	assert.Equal(t, "/api/tasks/t1", rec.path)
	assert.Equal(t, map[string]any{"completed": true}, rec.body)
}

func TestUpdateProfile(t *testing.T) {
	c, rec := newServer(t, http.StatusOK, `{"message":"Profile updated","user":{"id":"u1","fullName":"Bob","email":"a@example.com"}}`)

	name := "Bob"
	u, err := c.UpdateProfile(context.Background(), "tok", &name, nil)
	require.NoError(t, err)

	assert.Equal(t, "Bob", u.FullName)
	assert.Equal(t, map[string]any{"fullName": "Bob"}, rec.body)
}

func TestDeleteAndExport(t *testing.T) {
	c, rec := newServer(t, http.StatusOK, `{"message":"Task deleted"}`)
	require.NoError(t, c.DeleteTask(context.Background(), "tok", "t1"))
	assert.Equal(t, http.MethodDelete, rec.method)

	c, rec = newServer(t, http.StatusOK, `{"url":"https://x","key":"k","count":3}`)
	exp, err := c.ExportTasks(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, &models.Export{URL: "https://x", Key: "k", Count: 3}, exp)
	assert.Equal(t, "/api/tasks/export", rec.path)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusBadRequest, ErrValidation},
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusConflict, ErrConflict},
		{http.StatusInternalServerError, ErrServer},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			c, _ := newServer(t, tt.status, `{"message":"Task not found"}`)

			_, err := c.Profile(context.Background(), "tok")
			require.ErrorIs(t, err, tt.want)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, "Task not found", apiErr.Error())
		})
	}
}

func TestAPIError_NoMessage(t *testing.T) {
	err := &APIError{Status: http.StatusTeapot}
	assert.Equal(t, "unexpected status 418", err.Error())
	assert.Nil(t, err.Unwrap())
}

func TestUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewHTTPClient(url, time.Second)
	err := c.Ping(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestPing(t *testing.T) {
	c, rec := newServer(t, http.StatusOK, `{"status":"ok"}`)
	require.NoError(t, c.Ping(context.Background()))
	assert.Equal(t, "/health", rec.path)
}
