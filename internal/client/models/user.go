// Package models defines the FollowUpDesk API payloads (users, records,
// remarks) and the client-side validation applied before any network call.
package models

// Role is the authorization role carried by a user.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// User is the authenticated principal returned by the login endpoint.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

type LoginCredentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Tokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// AuthResponse is the payload of POST /auth/login.
type AuthResponse struct {
	User   User   `json:"user"`
	Tokens Tokens `json:"tokens"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// RefreshTokenResponse is the payload of POST /auth/refresh-token. Only the
// access token is rotated; the refresh token stays as it was.
type RefreshTokenResponse struct {
	AccessToken string `json:"accessToken"`
}
