// Package client talks to the FollowUpDesk REST API.
//
// # Overview
//
// The package provides:
//  1. The API contract used by the services (see the Client interface):
//     login, health, records and remarks.
//  2. An HTTP implementation (see HTTPClient) that attaches the stored access
//     token to every non-public request and, on a 401, refreshes the token and
//     retries the request once. Concurrent 401s share a single refresh call.
//  3. Prometheus collectors for request and refresh outcomes (see Metrics).
//
// # Error Handling
//
// Non-2xx responses are returned as *APIError. Common conditions can be
// matched with errors.Is: ErrUnauthorized, ErrForbidden and ErrNotFound for
// API errors, ErrUnavailable for transport failures and ErrSessionExpired when
// a refresh failed and the session was cleared. Message picks the text to
// show to a user.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept
// context.Context and honor cancellation.
package client
