package client

import (
	"context"

	"github.com/dmitrijs2005/prepa/internal/client/models"
)

// Client is the backend API used by the services layer.
type Client interface {
	Close() error

	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
	CurrentUser(ctx context.Context) (*models.User, error)
	UpdateCurrentUser(ctx context.Context, u models.User) (*models.User, error)
	ChangePassword(ctx context.Context, password string) error
	DeleteCurrentUser(ctx context.Context) error

	ListAlerts(ctx context.Context) ([]models.Alert, error)
	CreateAlert(ctx context.Context, in models.AlertInput) (*models.Alert, error)
	DeleteAlert(ctx context.Context, id int64) error

	ListEmployees(ctx context.Context) ([]models.Employee, error)
	AddEmployee(ctx context.Context, e models.Employee) (*models.Employee, error)
}

// TokenStore is the session state the transport reads on every request and
// mutates during a refresh cycle.
type TokenStore interface {
	AccessToken() (string, bool)
	RefreshToken() (string, bool)
	// UpdateTokens stores a refreshed pair. It fails without writing when
	// the session no longer holds prevRefresh.
	UpdateTokens(ctx context.Context, prevRefresh, access, refresh string) error
	Clear(ctx context.Context) error
}

// SessionEvent is emitted when the session was invalidated and the user has
// to sign in again.
type SessionEvent struct {
	// Reason is why the session could not be recovered.
	Reason error
	// RedirectTo is the login entry point.
	RedirectTo string
	// RequestPath is the API path of the request that failed.
	RequestPath string
}

// SessionHandler receives SessionEvents. It is called synchronously from the
// goroutine performing the failed request and must not block.
type SessionHandler func(SessionEvent)
