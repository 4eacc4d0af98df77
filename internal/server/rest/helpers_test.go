package rest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/server/auth"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/users"
	"github.com/dmitrijs2005/taskkeeper/internal/server/services"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

type testEnv struct {
	t      *testing.T
	srv    *HTTPServer
	tokens *auth.TokenManager
	tasks  *tasks.InMemoryRepository
	http   *httptest.Server
}

func newTestEnv(t *testing.T, opts ...Option) *testEnv {
	t.Helper()
	return newTestEnvWithTasks(t, tasks.NewInMemoryRepository(), opts...)
}

func newTestEnvWithTasks(t *testing.T, taskRepo *tasks.InMemoryRepository, opts ...Option) *testEnv {
	t.Helper()

	tm := auth.NewTokenManager([]byte(testSecret), time.Hour)

	srv := NewHTTPServer("127.0.0.1:0", logging.Nop{}, tm,
		services.NewUserService(users.NewInMemoryRepository(), tm, bcrypt.MinCost),
		services.NewTaskService(taskRepo),
		opts...,
	)

	hs := httptest.NewServer(srv.Handler())
	t.Cleanup(hs.Close)

	return &testEnv{t: t, srv: srv, tokens: tm, tasks: taskRepo, http: hs}
}

// do sends a JSON request and decodes the JSON response into out (if non-nil).
func (e *testEnv) do(method, path, token string, body any, out any) int {
	e.t.Helper()

	var rdr io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rdr = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(e.t, err)
		rdr = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, e.http.URL+path, rdr)
	require.NoError(e.t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.http.Client().Do(req)
	require.NoError(e.t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(e.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

// signup registers and logs in a user, returning the token and user id.
func (e *testEnv) signup(name, email, password string) (string, string) {
	e.t.Helper()

	status := e.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"fullName": name, "email": email, "password": password,
	}, nil)
	require.Equal(e.t, http.StatusCreated, status)

	var login loginResponse
	status = e.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": email, "password": password,
	}, &login)
	require.Equal(e.t, http.StatusOK, status)

	return login.Token, login.User.ID
}
