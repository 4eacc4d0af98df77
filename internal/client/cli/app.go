package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/client/api"
	"github.com/dmitrijs2005/taskkeeper/internal/client/config"
	"github.com/dmitrijs2005/taskkeeper/internal/client/localdb"
	"github.com/dmitrijs2005/taskkeeper/internal/client/services"
	"github.com/dmitrijs2005/taskkeeper/internal/client/session"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config      *config.Config
	db          *sql.DB
	session     *session.Session
	authService services.AuthService
	taskService services.TaskService
	reader      *bufio.Reader
	out         io.Writer
	signedIn    bool
	download    *http.Client

	modeMu sync.Mutex
	mode   Mode
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	db, err := localdb.InitDatabase(ctx, c.SessionDBPath)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	sess := session.New(db)
	if err := sess.Restore(ctx); err != nil {
		log.Printf("could not restore session: %s", err.Error())
	}

	apiClient := api.NewHTTPClient(c.ServerURL, c.RequestTimeout)

	return &App{
		config:      c,
		db:          db,
		session:     sess,
		authService: services.NewAuthService(apiClient, sess),
		taskService: services.NewTaskService(apiClient, sess),
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
		download:    &http.Client{Timeout: c.RequestTimeout},
	}, nil
}

// Run prints a greeting, starts the connectivity watcher and blocks in the
// REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.db.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fmt.Fprintln(a.out, "Welcome to taskkeeper CLI (type 'help' for commands)")
	if u := a.session.User(); u != nil {
		fmt.Fprintf(a.out, "Welcome back, %s\n", u.FullName)
	}

	a.signedIn = a.session.IsAuthenticated()
	unsubscribe := a.session.Subscribe(a.onSessionChange)
	defer unsubscribe()

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

// onSessionChange announces sign-in and sign-out transitions.
func (a *App) onSessionChange(st session.State) {
	if st.Authenticated == a.signedIn {
		return
	}
	a.signedIn = st.Authenticated

	if st.Authenticated && st.User != nil {
		fmt.Fprintf(a.out, "Signed in as %s\n", st.User)
		return
	}
	fmt.Fprintln(a.out, "Signed out")
}

func (a *App) getStatus() string {
	var parts []string
	if u := a.session.User(); u != nil {
		parts = append(parts, u.Email)
	}
	if m := a.currentMode(); m != "" {
		parts = append(parts, string(m))
	}
	if len(parts) == 0 {
		return ""
	}
	return "(" + strings.Join(parts, " ") + ")"
}

func (a *App) currentMode() Mode {
	a.modeMu.Lock()
	defer a.modeMu.Unlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.modeMu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.modeMu.Unlock()

	if changed {
		log.Printf("Switched to %s mode\n", mode)
	}
}

// StartOnlineStatusWatcher probes the server every interval and records
// whether it is reachable until ctx is cancelled.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := a.authService.Ping(pingCtx)
			cancel()

			if err != nil {
				a.setMode(ModeOffline)
			} else {
				a.setMode(ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}
