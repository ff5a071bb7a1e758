// Package common contains constants and small helpers shared by the
// FollowUpDesk client packages.
package common

// Header names used on outbound API requests.
const (
	AuthorizationHeaderName = "Authorization"
	RequestIDHeaderName     = "X-Request-ID"
	ContentTypeHeaderName   = "Content-Type"
)

// BearerScheme prefixes the access token in the Authorization header.
const BearerScheme = "Bearer "

// APIPrefix is appended to the configured server URL; every route lives under it.
const APIPrefix = "/api"

// Endpoint paths, relative to the API prefix.
const (
	LoginPath        = "/auth/login"
	RefreshTokenPath = "/auth/refresh-token"
	HealthPath       = "/health"
	RecordsPath      = "/records"
)

// PublicEndpoints never carry an Authorization header. Matching is by
// substring against the request path.
var PublicEndpoints = []string{LoginPath, RefreshTokenPath, HealthPath}
