package client

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/followupdesk/internal/client/models"
)

var (
	ErrUnavailable    = errors.New("server unavailable")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrNotFound       = errors.New("not found")
	ErrSessionExpired = errors.New("session expired")
)

// APIError is a non-2xx response from the API. Message is the server's
// "error" field and may be empty.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// Is maps well-known status codes onto the package sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrForbidden:
		return e.StatusCode == http.StatusForbidden
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	}
	return false
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// Message picks the text shown to a user for err: validation and server
// messages verbatim, a re-login hint for expired sessions, fallback otherwise.
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var (
		apiErr *APIError
		vErr   *models.ValidationError
	)
	switch {
	case errors.As(err, &vErr):
		return vErr.Message
	case errors.Is(err, ErrSessionExpired):
		return "Session expired, please log in again"
	case errors.As(err, &apiErr) && apiErr.Message != "":
		return apiErr.Message
	case errors.Is(err, ErrUnavailable):
		return fallback + ": server unavailable"
	}
	return fallback
}
