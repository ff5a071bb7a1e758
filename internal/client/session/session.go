// Package session owns the client-side credentials of the signed-in user.
//
// A Session (access token, refresh token, user) is persisted through a Store.
// The Manager is the only component that reads or writes it; the HTTP client
// and the services receive the Manager explicitly instead of looking tokens
// up from ambient state.
package session

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/followupdesk/internal/client/models"
)

// ErrNoSession is returned when no user is signed in.
var ErrNoSession = errors.New("no session")

type Session struct {
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
	User         models.User `json:"user"`
}

// Store persists a single Session. Implementations must keep the three
// fields together: after Clear no field is observable, and Load never
// returns a token without its user.
type Store interface {
	// Save replaces the stored session.
	Save(ctx context.Context, s Session) error
	// Load returns the stored session or ErrNoSession.
	Load(ctx context.Context) (*Session, error)
	// Clear removes the session. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
	// SetAccessToken replaces the access token in place, or returns
	// ErrNoSession when there is nothing to update.
	SetAccessToken(ctx context.Context, token string) error
}
