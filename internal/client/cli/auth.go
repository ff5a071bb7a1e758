package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/followupdesk/internal/client/session"
	"github.com/dmitrijs2005/followupdesk/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword
var confirm = Confirm

// Login authenticates with email (prompted for when empty) and a password
// read from the terminal, then stores the session.
//
// The password is wiped before returning.
func (a *App) Login(ctx context.Context, email string) error {
	if email == "" {
		var err error
		email, err = getSimpleText(a.reader, "Enter email", a.out)
		if err != nil {
			return err
		}
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.authService.Login(ctx, email, string(password))
	if err != nil {
		return a.failed(ctx, "Login failed", err)
	}

	a.logger.Info(ctx, "login successful", "user_id", u.ID, "role", u.Role)
	a.printf("Logged in as %s (%s)\n", displayName(u.Name, u.Email), u.Role)
	return nil
}

// Logout drops the stored session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return a.failed(ctx, "Logout failed", err)
	}
	a.printf("Logged out\n")
	return nil
}

// WhoAmI prints the signed-in user and, for JWT access tokens, when the
// token expires.
func (a *App) WhoAmI(ctx context.Context) error {
	u, err := a.authService.CurrentUser(ctx)
	if errors.Is(err, session.ErrNoSession) {
		a.printf("Not logged in\n")
		return nil
	}
	if err != nil {
		return a.failed(ctx, "Failed to read session", err)
	}

	a.printf("User:  %s\n", displayName(u.Name, u.Email))
	a.printf("Email: %s\n", u.Email)
	a.printf("Role:  %s\n", u.Role)

	info, err := a.authService.TokenInfo(ctx)
	switch {
	case err == nil && !info.ExpiresAt.IsZero():
		state := "valid until"
		if info.Expired {
			state = "expired at"
		}
		a.printf("Token: %s %s\n", state, info.ExpiresAt.Local().Format(time.DateTime))
	case err != nil && !errors.Is(err, session.ErrOpaqueToken):
		a.logger.Debug(ctx, "token claims unavailable", "error", err)
	}
	return nil
}

// Health reports whether the server answers.
func (a *App) Health(ctx context.Context) error {
	if err := a.authService.Ping(ctx); err != nil {
		return a.failed(ctx, "Health check failed", err)
	}
	a.printf("Server %s is up\n", a.config.ServerURL)
	return nil
}

func displayName(name, email string) string {
	if name == "" {
		return email
	}
	return fmt.Sprintf("%s <%s>", name, email)
}
