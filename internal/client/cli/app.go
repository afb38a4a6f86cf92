package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/dmitrijs2005/prepa/internal/client/client"
	"github.com/dmitrijs2005/prepa/internal/client/config"
	"github.com/dmitrijs2005/prepa/internal/client/services"
	"github.com/dmitrijs2005/prepa/internal/client/session"
	"github.com/dmitrijs2005/prepa/internal/filex"
	"github.com/dmitrijs2005/prepa/internal/logging"
)

type App struct {
	config          *config.Config
	log             logging.Logger
	db              *sql.DB
	authService     services.AuthService
	alertService    services.AlertService
	employeeService services.EmployeeService
	reader          *bufio.Reader
	out             io.Writer

	// sessionLost is raised by the HTTP layer when the session could not be
	// recovered; the REPL answers it with a login prompt.
	sessionLost atomic.Bool
}

// NewApp wires logging, the session database, the API client and the
// services according to c. The persisted session, if any, is resumed.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.New(c.LogBackend, c.LogLevel, os.Stderr)
	if err != nil {
		return nil, err
	}

	if _, err := filex.EnsureParentDir(c.DatabasePath); err != nil {
		return nil, err
	}

	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
		return nil, err
	}

	store := session.NewStore(db)
	if err := store.Load(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	a := &App{
		config: c,
		log:    logger,
		db:     db,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}

	apiClient, err := client.NewHTTPClient(c.APIBaseURL, store,
		client.WithTimeout(c.RequestTimeout),
		client.WithRateLimit(c.RequestsPerSecond),
		client.WithLogger(logger),
		client.WithSessionHandler(a.onSessionEvent),
	)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	a.authService = services.NewAuthService(apiClient, store)
	a.alertService = services.NewAlertService(apiClient)
	a.employeeService = services.NewEmployeeService(apiClient)
	return a, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.close(ctx)
	a.Root(ctx)
}

func (a *App) close(ctx context.Context) {
	if err := a.authService.Close(ctx); err != nil {
		a.log.Warn(ctx, "error closing api client", "error", err)
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Warn(ctx, "error closing database", "error", err)
		}
	}
	if s, ok := a.log.(interface{ Sync() error }); ok {
		_ = s.Sync()
	}
}

func (a *App) onSessionEvent(ev client.SessionEvent) {
	a.sessionLost.Store(true)
	a.log.Info(context.Background(), "session lost", "redirect", ev.RedirectTo, "path", ev.RequestPath, "reason", ev.Reason)
}

// consumeSessionLoss reports and resets the session-lost flag.
func (a *App) consumeSessionLoss() bool {
	return a.sessionLost.Swap(false)
}

func (a *App) isLoggedIn() bool {
	return a.authService != nil && a.authService.IsLoggedIn()
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.output(), args...)
}

func (a *App) output() io.Writer {
	if a.out == nil {
		return io.Discard
	}
	return a.out
}

// resume loads the current user of a persisted session, as the browser
// client did on page load.
func (a *App) resume(ctx context.Context) {
	u, err := a.authService.CurrentUser(ctx)
	if err != nil {
		if !errors.Is(err, client.ErrUnauthorized) {
			a.println("Could not load your profile:", describeError(err))
		}
		return
	}
	if u != nil {
		a.println("Welcome back,", u.DisplayName()+"!")
	}
}
