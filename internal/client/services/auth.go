// Package services contains the application services of the prepa client.
// This file defines the authentication service: login, logout, signup and
// the signed-in user's profile, password and account.
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/prepa/internal/client/client"
	"github.com/dmitrijs2005/prepa/internal/client/models"
)

// SessionStore is the token store as seen by the services.
type SessionStore interface {
	Set(ctx context.Context, access, refresh, username string) error
	SetUsername(ctx context.Context, username string) error
	Clear(ctx context.Context) error
	AccessToken() (string, bool)
	Username() string
}

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: authenticate and persist the issued session.
//   - Logout: forget the session locally; the server is not contacted.
//   - Register: validate the form and create the account. It does not log in.
//   - CurrentUser: fetch the signed-in user, or nil without a session.
//   - UpdateProfile, ChangePassword, DeleteAccount: act on the signed-in user.
//
// All methods honor context cancellation.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*models.User, error)
	Logout(ctx context.Context) error
	Register(ctx context.Context, form RegisterForm) (*models.User, error)
	CurrentUser(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, u models.User) (*models.User, error)
	ChangePassword(ctx context.Context, password, confirm string) error
	DeleteAccount(ctx context.Context) error
	IsLoggedIn() bool
	Username() string
	Close(ctx context.Context) error
}

type authService struct {
	client client.Client
	store  SessionStore
}

// NewAuthService constructs an AuthService bound to the given API client and
// session store.
func NewAuthService(client client.Client, store SessionStore) AuthService {
	return &authService{client: client, store: store}
}

// Login exchanges credentials for a token pair and stores it together with
// the user's first name.
func (a *authService) Login(ctx context.Context, username, password string) (*models.User, error) {
	if err := validateCredentials(username, password); err != nil {
		return nil, err
	}

	resp, err := a.client.Login(ctx, models.LoginRequest{Username: username, Password: password})
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}

	if err := a.store.Set(ctx, resp.Access, resp.Refresh, resp.User.FirstName); err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}
	return &resp.User, nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.store.Clear(ctx)
}

func (a *authService) Register(ctx context.Context, form RegisterForm) (*models.User, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	u, err := a.client.Register(ctx, models.RegisterRequest{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Username:  form.Username,
		Email:     form.Email,
		Password:  form.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("register error: %w", err)
	}
	return u, nil
}

// CurrentUser returns nil, nil when no access token is stored.
func (a *authService) CurrentUser(ctx context.Context) (*models.User, error) {
	if !a.IsLoggedIn() {
		return nil, nil
	}
	u, err := a.client.CurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("current user error: %w", err)
	}
	return u, nil
}

// UpdateProfile saves the profile and refreshes the cached display name from
// the server's answer.
func (a *authService) UpdateProfile(ctx context.Context, u models.User) (*models.User, error) {
	if err := validateProfile(u); err != nil {
		return nil, err
	}

	saved, err := a.client.UpdateCurrentUser(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("profile saving error: %w", err)
	}
	if err := a.store.SetUsername(ctx, saved.FirstName); err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}
	return saved, nil
}

func (a *authService) ChangePassword(ctx context.Context, password, confirm string) error {
	if err := validatePasswordChange(password, confirm); err != nil {
		return err
	}
	if err := a.client.ChangePassword(ctx, password); err != nil {
		return fmt.Errorf("password change error: %w", err)
	}
	return nil
}

// DeleteAccount deletes the account on the server, then logs out.
func (a *authService) DeleteAccount(ctx context.Context) error {
	if err := a.client.DeleteCurrentUser(ctx); err != nil {
		return fmt.Errorf("account deletion error: %w", err)
	}
	return a.Logout(ctx)
}

func (a *authService) IsLoggedIn() bool {
	_, ok := a.store.AccessToken()
	return ok
}

// Username returns the cached display name of the session.
func (a *authService) Username() string {
	return a.store.Username()
}

// Close releases resources held by the underlying client.
func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
