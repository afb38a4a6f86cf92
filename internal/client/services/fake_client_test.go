package services

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/prepa/internal/client/client"
	"github.com/dmitrijs2005/prepa/internal/client/models"
	"github.com/dmitrijs2005/prepa/internal/client/session"

	_ "modernc.org/sqlite"
)

// ---- helpers ----

func setupStore(t *testing.T) (*session.Store, *sql.DB) {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "svc.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE metadata (
  key   TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
`)
	require.NoError(t, err)
	return session.NewStore(db), db
}

// ---- fake client ----

// fakeClient implements client.Client for service unit tests.
type fakeClient struct {
	CloseErr error

	LoginRet *models.AuthResponse
	LoginErr error

	RegisterErr error

	CurrentUserRet *models.User
	CurrentUserErr error

	UpdateErr         error
	ChangePasswordErr error
	DeleteUserErr     error

	AlertsRet      []models.Alert
	AlertsErr      error
	CreateAlertErr error
	DeleteAlertErr error

	EmployeesRet   []models.Employee
	EmployeesErr   error
	AddEmployeeErr error

	// recorded arguments
	LastLogin          models.LoginRequest
	LastRegister       *models.RegisterRequest
	LastUpdate         models.User
	LastPassword       string
	CurrentUserCalls   int
	DeleteUserCalls    int
	LastAlertInput     *models.AlertInput
	LastDeletedAlertID int64
	LastEmployee       *models.Employee
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) Close() error { return f.CloseErr }

func (f *fakeClient) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	f.LastLogin = req
	if f.LoginErr != nil {
		return nil, f.LoginErr
	}
	return f.LoginRet, nil
}

func (f *fakeClient) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	f.LastRegister = &req
	if f.RegisterErr != nil {
		return nil, f.RegisterErr
	}
	return &models.User{FirstName: req.FirstName, LastName: req.LastName, Username: req.Username, Email: req.Email}, nil
}

func (f *fakeClient) CurrentUser(ctx context.Context) (*models.User, error) {
	f.CurrentUserCalls++
	return f.CurrentUserRet, f.CurrentUserErr
}

func (f *fakeClient) UpdateCurrentUser(ctx context.Context, u models.User) (*models.User, error) {
	f.LastUpdate = u
	if f.UpdateErr != nil {
		return nil, f.UpdateErr
	}
	return &u, nil
}

func (f *fakeClient) ChangePassword(ctx context.Context, password string) error {
	f.LastPassword = password
	return f.ChangePasswordErr
}

func (f *fakeClient) DeleteCurrentUser(ctx context.Context) error {
	f.DeleteUserCalls++
	return f.DeleteUserErr
}

func (f *fakeClient) ListAlerts(ctx context.Context) ([]models.Alert, error) {
	return f.AlertsRet, f.AlertsErr
}

func (f *fakeClient) CreateAlert(ctx context.Context, in models.AlertInput) (*models.Alert, error) {
	f.LastAlertInput = &in
	if f.CreateAlertErr != nil {
		return nil, f.CreateAlertErr
	}
	return &models.Alert{ID: 1, MissingEquipment: in.MissingEquipment, Status: in.Status, Level: in.Level}, nil
}

func (f *fakeClient) DeleteAlert(ctx context.Context, id int64) error {
	f.LastDeletedAlertID = id
	return f.DeleteAlertErr
}

func (f *fakeClient) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	return f.EmployeesRet, f.EmployeesErr
}

func (f *fakeClient) AddEmployee(ctx context.Context, e models.Employee) (*models.Employee, error) {
	f.LastEmployee = &e
	if f.AddEmployeeErr != nil {
		return nil, f.AddEmployeeErr
	}
	e.ID = 10
	return &e, nil
}
