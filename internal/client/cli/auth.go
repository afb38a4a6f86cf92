package cli

import (
	"context"

	"github.com/dmitrijs2005/prepa/internal/client/services"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// readSecret prompts for a hidden value and returns it as a string; the raw
// bytes are wiped.
func (a *App) readSecret(prompt string) (string, error) {
	pw, err := getPassword(a.output(), prompt)
	if err != nil {
		return "", err
	}
	defer clear(pw)
	return string(pw), nil
}

// Register prompts for the signup form and creates the account. It does not
// log in.
func (a *App) Register(ctx context.Context) error {
	var (
		form services.RegisterForm
		err  error
	)

	fields := []struct {
		prompt string
		dst    *string
	}{
		{"First name", &form.FirstName},
		{"Last name", &form.LastName},
		{"Username", &form.Username},
		{"E-mail", &form.Email},
	}
	for _, f := range fields {
		if *f.dst, err = getSimpleText(a.reader, f.prompt, a.output()); err != nil {
			return err
		}
	}

	if form.Password, err = a.readSecret("Password"); err != nil {
		return err
	}
	if form.ConfirmPassword, err = a.readSecret("Confirm password"); err != nil {
		return err
	}

	if _, err := a.authService.Register(ctx, form); err != nil {
		return err
	}

	a.println("Account created, you can now log in.")
	return nil
}

// Login prompts for credentials and opens a session.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Username", a.output())
	if err != nil {
		return err
	}

	password, err := a.readSecret("Password")
	if err != nil {
		return err
	}

	u, err := a.authService.Login(ctx, userName, password)
	if err != nil {
		a.log.Debug(ctx, "login unsuccessful", "username", userName, "error", err)
		return err
	}

	a.log.Info(ctx, "login successful", "username", userName)
	a.println("Welcome,", u.DisplayName()+"!")
	return nil
}

// Logout forgets the session locally.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	a.println("Logged out.")
	return nil
}
