package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/followupdesk/internal/client/models"
	"github.com/golang-jwt/jwt/v5"
)

// ErrOpaqueToken is returned by Manager.TokenInfo when the access token is
// not a JWT.
var ErrOpaqueToken = errors.New("access token is not a JWT")

// Manager is the session handle shared by the HTTP client and the services.
// It is safe for concurrent use as long as the Store is; concurrent writers
// follow last-write-wins.
type Manager struct {
	store Store
	now   func() time.Time
}

func NewManager(store Store) *Manager {
	return &Manager{store: store, now: time.Now}
}

// Save stores a new session after login.
func (m *Manager) Save(ctx context.Context, s Session) error {
	if s.AccessToken == "" {
		return fmt.Errorf("save session: empty access token")
	}
	if err := m.store.Save(ctx, s); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Load returns the current session or ErrNoSession.
func (m *Manager) Load(ctx context.Context) (*Session, error) {
	return m.store.Load(ctx)
}

// Clear destroys the session.
func (m *Manager) Clear(ctx context.Context) error {
	if err := m.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// AccessToken returns the stored access token, or "" when signed out.
func (m *Manager) AccessToken(ctx context.Context) (string, error) {
	s, err := m.loadOptional(ctx)
	if err != nil || s == nil {
		return "", err
	}
	return s.AccessToken, nil
}

// RefreshToken returns the stored refresh token, or "" when signed out.
func (m *Manager) RefreshToken(ctx context.Context) (string, error) {
	s, err := m.loadOptional(ctx)
	if err != nil || s == nil {
		return "", err
	}
	return s.RefreshToken, nil
}

// SetAccessToken replaces the access token after a refresh.
func (m *Manager) SetAccessToken(ctx context.Context, token string) error {
	if err := m.store.SetAccessToken(ctx, token); err != nil {
		return fmt.Errorf("update access token: %w", err)
	}
	return nil
}

// CurrentUser returns the signed-in user or ErrNoSession.
func (m *Manager) CurrentUser(ctx context.Context) (*models.User, error) {
	s, err := m.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	u := s.User
	return &u, nil
}

// IsAuthenticated reports whether an access token is stored.
func (m *Manager) IsAuthenticated(ctx context.Context) bool {
	token, err := m.AccessToken(ctx)
	return err == nil && token != ""
}

// IsAdmin reports whether the signed-in user has the ADMIN role.
func (m *Manager) IsAdmin(ctx context.Context) bool {
	u, err := m.CurrentUser(ctx)
	return err == nil && u.IsAdmin()
}

// TokenInfo describes the access token as seen by the client. The token is
// decoded without signature verification; the server remains the authority.
type TokenInfo struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	Expired   bool
}

// TokenInfo decodes the claims of the stored access token.
func (m *Manager) TokenInfo(ctx context.Context) (*TokenInfo, error) {
	s, err := m.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.AccessToken, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpaqueToken, err)
	}

	info := &TokenInfo{Subject: claims.Subject}
	if claims.IssuedAt != nil {
		info.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
		info.Expired = !m.now().Before(info.ExpiresAt)
	}
	return info, nil
}

func (m *Manager) loadOptional(ctx context.Context) (*Session, error) {
	s, err := m.store.Load(ctx)
	if errors.Is(err, ErrNoSession) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return s, nil
}
