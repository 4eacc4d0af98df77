// Package rest exposes the taskkeeper services over HTTP/JSON.
package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/server/auth"
	"github.com/dmitrijs2005/taskkeeper/internal/server/services"
	"github.com/gorilla/mux"
)

// ShutdownTimeout bounds how long in-flight requests may run after the
// server has been asked to stop.
const ShutdownTimeout = 10 * time.Second

type HTTPServer struct {
	address        string
	logger         logging.Logger
	tokens         *auth.TokenManager
	users          *services.UserService
	tasks          *services.TaskService
	exports        *services.ExportService
	allowedOrigins []string
	debug          bool
}

// Option customises an HTTPServer.
type Option func(*HTTPServer)

// WithAllowedOrigins enables CORS for the given origins. "*" allows any.
func WithAllowedOrigins(origins []string) Option {
	return func(s *HTTPServer) { s.allowedOrigins = origins }
}

// WithDebug puts internal error details into 500 responses.
func WithDebug(debug bool) Option {
	return func(s *HTTPServer) { s.debug = debug }
}

// WithExport registers POST /api/tasks/export backed by es.
func WithExport(es *services.ExportService) Option {
	return func(s *HTTPServer) { s.exports = es }
}

func NewHTTPServer(a string, l logging.Logger, tm *auth.TokenManager, us *services.UserService, ts *services.TaskService, opts ...Option) *HTTPServer {
	s := &HTTPServer{
		address: a,
		logger:  l.With("module", "http_server"),
		tokens:  tm,
		users:   us,
		tasks:   ts,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Handler returns the complete HTTP handler: routes wrapped in recovery,
// request logging and CORS.
func (s *HTTPServer) Handler() http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusNotFound, "Route not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.HandleFunc("/health", s.health).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/auth/register", s.register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", s.login).Methods(http.MethodPost)

	protected := api.NewRoute().Subrouter()
	protected.Use(s.requireAuth)

	protected.HandleFunc("/user/profile", s.getProfile).Methods(http.MethodGet)
	protected.HandleFunc("/user/profile", s.updateProfile).Methods(http.MethodPut)

	if s.exports != nil {
		protected.HandleFunc("/tasks/export", s.exportTasks).Methods(http.MethodPost)
	}
	protected.HandleFunc("/tasks", s.createTask).Methods(http.MethodPost)
	protected.HandleFunc("/tasks", s.listTasks).Methods(http.MethodGet)
	protected.HandleFunc("/tasks/{id}", s.updateTask).Methods(http.MethodPut)
	protected.HandleFunc("/tasks/{id}", s.deleteTask).Methods(http.MethodDelete)

	return s.recoverPanics(s.logRequests(s.cors(r)))
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	<-stopped
	return nil
}

func (s *HTTPServer) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
