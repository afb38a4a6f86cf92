package cli

import (
	"context"
	"strings"
)

func (a *App) WhoAmI(ctx context.Context) error {
	u, err := a.authService.CurrentUser(ctx)
	if err != nil {
		return err
	}
	if u == nil {
		a.println("Not logged in.")
		return nil
	}
	a.println("Username:  ", u.Username)
	a.println("First name:", u.FirstName)
	a.println("Last name: ", u.LastName)
	a.println("E-mail:    ", u.Email)
	return nil
}

// EditProfile shows the current profile field by field; an empty answer keeps
// the value.
func (a *App) EditProfile(ctx context.Context) error {
	current, err := a.authService.CurrentUser(ctx)
	if err != nil {
		return err
	}
	if current == nil {
		return nil
	}

	u := *current
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"First name", &u.FirstName},
		{"Last name", &u.LastName},
		{"Username", &u.Username},
		{"E-mail", &u.Email},
	}
	for _, f := range fields {
		if *f.dst, err = getWithDefault(a.reader, f.prompt, *f.dst, a.output()); err != nil {
			return err
		}
	}

	saved, err := a.authService.UpdateProfile(ctx, u)
	if err != nil {
		return err
	}
	a.println("Profile saved,", saved.DisplayName()+".")
	return nil
}

func (a *App) ChangePassword(ctx context.Context) error {
	password, err := a.readSecret("New password")
	if err != nil {
		return err
	}
	confirm, err := a.readSecret("Confirm password")
	if err != nil {
		return err
	}

	if err := a.authService.ChangePassword(ctx, password, confirm); err != nil {
		return err
	}
	a.println("Password changed.")
	return nil
}

// DeleteAccount asks for confirmation, deletes the account and logs out.
func (a *App) DeleteAccount(ctx context.Context) error {
	answer, err := getSimpleText(a.reader, "Delete your account permanently? Type 'yes' to confirm", a.output())
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "yes") {
		return errCancelled
	}

	if err := a.authService.DeleteAccount(ctx); err != nil {
		return err
	}
	a.println("Account deleted.")
	return nil
}
