// Package server wires configuration, storage, services and the HTTP API
// together and runs them until the process is asked to stop.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/server/auth"
	"github.com/dmitrijs2005/taskkeeper/internal/server/config"
	"github.com/dmitrijs2005/taskkeeper/internal/server/objectstore"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/taskkeeper/internal/server/rest"
	"github.com/dmitrijs2005/taskkeeper/internal/server/services"
)

type App struct {
	config        *config.Config
	logger        logging.Logger
	repos         repomanager.RepositoryManager
	tokens        *auth.TokenManager
	userService   *services.UserService
	taskService   *services.TaskService
	exportService *services.ExportService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger, err := logging.New(c.LogBackend, os.Stdout, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	if c.UsesDefaultSecret() {
		logger.Warn(ctx, "JWT secret is the built-in development default, set JWT_SECRET in production")
	}

	rm, err := repomanager.New(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	tm := auth.NewTokenManager([]byte(c.SecretKey), c.TokenValidityDuration)

	app := &App{
		config:      c,
		logger:      logger,
		repos:       rm,
		tokens:      tm,
		userService: services.NewUserService(rm.Users(), tm, c.PasswordHashCost),
		taskService: services.NewTaskService(rm.Tasks()),
	}

	if c.ExportEnabled {
		store, err := objectstore.NewS3Store(ctx, objectstore.Options{
			Region:       c.S3Region,
			AccessKey:    c.S3RootUser,
			SecretKey:    c.S3RootPassword,
			Bucket:       c.S3Bucket,
			BaseEndpoint: c.S3BaseEndpoint,
		})
		if err != nil {
			_ = rm.Close(ctx)
			return nil, fmt.Errorf("object store init error: %w", err)
		}
		app.exportService = services.NewExportService(rm.Tasks(), store)
	}

	logger.Info(ctx, "App initialized", "storage", c.StorageBackend, "export", c.ExportEnabled)

	return app, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) newHTTPServer() *rest.HTTPServer {
	opts := []rest.Option{
		rest.WithAllowedOrigins(app.config.AllowedOrigins),
		rest.WithDebug(app.config.Debug),
	}
	if app.exportService != nil {
		opts = append(opts, rest.WithExport(app.exportService))
	}

	return rest.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger, app.tokens, app.userService, app.taskService, opts...)
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.newHTTPServer().Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// releases the storage backend.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.repos.Close(context.Background()); err != nil {
		app.logger.Error(ctx, "closing storage", "error", err)
	}

	app.logger.Info(ctx, "App stopped")
}
