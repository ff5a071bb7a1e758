package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/followupdesk/internal/client/models"
	"github.com/dmitrijs2005/followupdesk/internal/common"
	"github.com/dmitrijs2005/followupdesk/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// SessionStore is the part of the session manager the HTTP client needs.
type SessionStore interface {
	AccessToken(ctx context.Context) (string, error)
	RefreshToken(ctx context.Context) (string, error)
	SetAccessToken(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// Request is an outbound API call. Path is relative to the API base URL.
// The client only ever touches the Authorization and X-Request-ID headers.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte

	// retried is the retry marker: set once a refresh-and-retry cycle has
	// been attempted for this request.
	retried bool
}

// NewJSONRequest builds a request whose body is v encoded as JSON.
func NewJSONRequest(method, path string, v any) (*Request, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	h := http.Header{}
	h.Set(common.ContentTypeHeaderName, "application/json")
	return &Request{Method: method, Path: path, Header: h, Body: body}, nil
}

// Response is a fully read API response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.logger = l }
}

func WithMetrics(m *Metrics) Option {
	return func(c *HTTPClient) { c.metrics = m }
}

// WithSessionExpiredHook registers the side effect run after an
// irrecoverable refresh failure has cleared the session, typically sending
// the user back to the login entry point.
func WithSessionExpiredHook(fn func(ctx context.Context)) Option {
	return func(c *HTTPClient) { c.onSessionExpired = fn }
}

// HTTPClient talks to the FollowUpDesk REST API. It attaches the stored
// access token to every non-public request and, on a 401, performs at most
// one refresh-and-retry per request. Concurrent 401s share one refresh call.
type HTTPClient struct {
	baseURL          string
	http             *http.Client
	session          SessionStore
	logger           logging.Logger
	metrics          *Metrics
	onSessionExpired func(ctx context.Context)
	refreshGroup     singleflight.Group
	newRequestID     func() string
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient builds a client for the server at serverURL; routes are
// resolved under serverURL + "/api".
func NewHTTPClient(serverURL string, session SessionStore, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid server url %q: scheme must be http or https", serverURL)
	}

	c := &HTTPClient{
		baseURL:          strings.TrimRight(serverURL, "/") + common.APIPrefix,
		http:             &http.Client{Timeout: 30 * time.Second},
		session:          session,
		logger:           logging.Nop(),
		onSessionExpired: func(context.Context) {},
		newRequestID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// IsPublicEndpoint reports whether path is on the allow-list of endpoints
// that never carry credentials.
func IsPublicEndpoint(path string) bool {
	for _, p := range common.PublicEndpoints {
		if strings.Contains(path, p) {
			return true
		}
	}
	return false
}

// Do sends req and returns the response for 2xx statuses. Other statuses
// come back as *APIError, transport failures wrap ErrUnavailable and a failed
// token refresh wraps ErrSessionExpired.
func (c *HTTPClient) Do(ctx context.Context, req *Request) (*Response, error) {
	if req.Header == nil {
		req.Header = http.Header{}
	}
	if req.Header.Get(common.RequestIDHeaderName) == "" {
		req.Header.Set(common.RequestIDHeaderName, c.newRequestID())
	}
	public := IsPublicEndpoint(req.Path)

	token := ""
	if !public {
		t, err := c.session.AccessToken(ctx)
		if err != nil {
			return nil, err
		}
		token = t
	}

	resp, err := c.send(ctx, req, token)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized && !req.retried && !public {
		req.retried = true
		resp, err = c.refreshAndRetry(ctx, req, token, resp)
		if err != nil {
			return nil, err
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errorFromResponse(resp)
	}
	return resp, nil
}

// refreshAndRetry runs the single refresh cycle of a request that got a 401
// while sent with usedToken.
func (c *HTTPClient) refreshAndRetry(ctx context.Context, req *Request, usedToken string, unauthorized *Response) (*Response, error) {
	log := c.logger.With("request_id", req.Header.Get(common.RequestIDHeaderName), "path", req.Path)

	refreshToken, err := c.session.RefreshToken(ctx)
	if err != nil {
		return nil, err
	}
	if refreshToken == "" {
		c.metrics.observeRefresh(RefreshSkipped)
		log.Debug(ctx, "unauthorized and no refresh token stored")
		return unauthorized, nil
	}

	// The shared refresh is detached from any one caller: a caller whose
	// context ends stops waiting, but the refresh itself runs to completion.
	refreshCtx := context.WithoutCancel(ctx)
	ch := c.refreshGroup.DoChan(refreshToken, func() (any, error) {
		// Another request may have rotated the token while this one was in
		// flight; the newer token is used without a second refresh.
		current, err := c.session.AccessToken(refreshCtx)
		if err != nil {
			return "", err
		}
		if current != "" && current != usedToken {
			c.metrics.observeRefresh(RefreshReused)
			log.Debug(refreshCtx, "retrying with access token refreshed concurrently")
			return current, nil
		}
		return c.refresh(refreshCtx, refreshToken)
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		log.Debug(ctx, "stopped waiting for token refresh", "error", ctx.Err())
		return nil, ctx.Err()
	}
	if res.Err != nil {
		return nil, res.Err
	}
	if res.Shared {
		log.Debug(ctx, "joined in-flight token refresh")
	}

	return c.send(ctx, req, res.Val.(string))
}

// refresh exchanges refreshToken for a new access token and persists it. On
// any failure the session is cleared and the session-expired hook runs. ctx
// must not be cancellable by a single caller.
func (c *HTTPClient) refresh(ctx context.Context, refreshToken string) (string, error) {
	token, err := c.requestNewAccessToken(ctx, refreshToken)
	if err == nil {
		err = c.session.SetAccessToken(ctx, token)
	}
	if err != nil {
		c.metrics.observeRefresh(RefreshFailed)
		c.logger.Warn(ctx, "token refresh failed, signing out", "error", err)
		if cerr := c.session.Clear(ctx); cerr != nil {
			c.logger.Error(ctx, "clearing session failed", "error", cerr)
		}
		c.onSessionExpired(ctx)
		return "", fmt.Errorf("%w: %w", ErrSessionExpired, err)
	}

	c.metrics.observeRefresh(RefreshSucceeded)
	c.logger.Info(ctx, "access token refreshed", "token", common.MaskToken(token))
	return token, nil
}

// requestNewAccessToken calls the refresh endpoint directly, bypassing Do
// so the call can never enter the retry cycle itself.
func (c *HTTPClient) requestNewAccessToken(ctx context.Context, refreshToken string) (string, error) {
	req, err := NewJSONRequest(http.MethodPost, common.RefreshTokenPath, models.RefreshTokenRequest{RefreshToken: refreshToken})
	if err != nil {
		return "", err
	}
	req.Header.Set(common.RequestIDHeaderName, c.newRequestID())

	resp, err := c.send(ctx, req, "")
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", errorFromResponse(resp)
	}

	data, err := decodeData[models.RefreshTokenResponse](resp)
	if err != nil {
		return "", err
	}
	if data.AccessToken == "" {
		return "", errors.New("refresh response carries no access token")
	}
	return data.AccessToken, nil
}

// send performs one HTTP round trip. token, when non-empty, replaces any
// Authorization header of req.
func (c *HTTPClient) send(ctx context.Context, req *Request, token string) (*Response, error) {
	target := c.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for k, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Add(k, v)
		}
	}
	if token != "" {
		httpReq.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+token)
	}

	start := time.Now()
	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		c.metrics.observeRequest(req.Method, 0, time.Since(start).Seconds())
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}
	c.metrics.observeRequest(req.Method, httpResp.StatusCode, time.Since(start).Seconds())

	c.logger.Debug(ctx, "api request",
		"method", req.Method,
		"path", req.Path,
		"status", httpResp.StatusCode,
		"request_id", req.Header.Get(common.RequestIDHeaderName),
		"duration", time.Since(start))

	return &Response{StatusCode: httpResp.StatusCode, Header: httpResp.Header, Body: respBody}, nil
}
