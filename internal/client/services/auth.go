// Package services contains application services for the FollowUpDesk
// client. This file defines the authentication service: login against the
// server, logout, and questions about the current session.
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/followupdesk/internal/client/client"
	"github.com/dmitrijs2005/followupdesk/internal/client/models"
	"github.com/dmitrijs2005/followupdesk/internal/client/session"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: authenticate against the server and persist the session.
//   - Logout: drop the stored session.
//   - CurrentUser / IsAuthenticated / IsAdmin: inspect the stored session.
//   - TokenInfo: unverified claims of the stored access token.
//   - Ping: check server liveness.
//
// All methods must honor context cancellation/timeouts.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*models.User, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*models.User, error)
	IsAuthenticated(ctx context.Context) bool
	IsAdmin(ctx context.Context) bool
	TokenInfo(ctx context.Context) (*session.TokenInfo, error)
	Ping(ctx context.Context) error
}

type authService struct {
	client  client.Client
	session *session.Manager
}

// NewAuthService constructs an AuthService bound to the given API client and
// session manager.
func NewAuthService(client client.Client, session *session.Manager) AuthService {
	return &authService{client: client, session: session}
}

// Login exchanges credentials for tokens and stores them together with the
// returned user.
func (a *authService) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, &models.ValidationError{Field: "email", Message: "Email is required"}
	}
	if password == "" {
		return nil, &models.ValidationError{Field: "password", Message: "Password is required"}
	}

	resp, err := a.client.Login(ctx, models.LoginCredentials{Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}

	err = a.session.Save(ctx, session.Session{
		AccessToken:  resp.Tokens.AccessToken,
		RefreshToken: resp.Tokens.RefreshToken,
		User:         resp.User,
	})
	if err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}
	return &resp.User, nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.session.Clear(ctx)
}

func (a *authService) CurrentUser(ctx context.Context) (*models.User, error) {
	return a.session.CurrentUser(ctx)
}

func (a *authService) IsAuthenticated(ctx context.Context) bool {
	return a.session.IsAuthenticated(ctx)
}

func (a *authService) IsAdmin(ctx context.Context) bool {
	return a.session.IsAdmin(ctx)
}

func (a *authService) TokenInfo(ctx context.Context) (*session.TokenInfo, error) {
	return a.session.TokenInfo(ctx)
}

// Ping proxies a liveness check to the underlying client.
func (a *authService) Ping(ctx context.Context) error {
	return a.client.Health(ctx)
}
