package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/dmitrijs2005/followupdesk/internal/client/client"
	"github.com/dmitrijs2005/followupdesk/internal/client/config"
	"github.com/dmitrijs2005/followupdesk/internal/client/export"
	"github.com/dmitrijs2005/followupdesk/internal/client/repositories/sessions"
	"github.com/dmitrijs2005/followupdesk/internal/client/services"
	"github.com/dmitrijs2005/followupdesk/internal/client/session"
	"github.com/dmitrijs2005/followupdesk/internal/client/storage"
	"github.com/dmitrijs2005/followupdesk/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
)

// SessionExpiredMessage is shown when a token refresh fails and the user has
// to sign in again.
const SessionExpiredMessage = "Session expired, please log in again"

type App struct {
	config        *config.Config
	logger        logging.Logger
	db            *sql.DB
	session       *session.Manager
	authService   services.AuthService
	recordService services.RecordService
	remarkService services.RemarkService
	registry      *prometheus.Registry
	newS3Sink     func(ctx context.Context) (export.Sink, error)
	reader        *bufio.Reader
	out           io.Writer

	lastRecords *recordsView
}

// NewApp wires storage, the API client and the services for one CLI run.
func NewApp(ctx context.Context, c *config.Config, in io.Reader, out, errOut io.Writer) (*App, error) {
	logger := logging.NewLogger(c.LogLevel, errOut)

	a := &App{
		config:   c,
		logger:   logger,
		registry: prometheus.NewRegistry(),
		reader:   bufio.NewReader(in),
		out:      out,
	}

	var store session.Store
	if c.Ephemeral {
		store = session.NewMemoryStore()
	} else {
		db, err := storage.InitDatabase(ctx, c.DatabasePath)
		if err != nil {
			logger.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
			return nil, err
		}
		a.db = db
		store = sessions.NewSQLiteRepository(db)
	}
	a.session = session.NewManager(store)

	apiClient, err := client.NewHTTPClient(c.ServerURL, a.session,
		client.WithHTTPClient(&http.Client{Timeout: c.RequestTimeout}),
		client.WithLogger(logger),
		client.WithMetrics(client.NewMetrics(a.registry)),
		client.WithSessionExpiredHook(a.sessionExpired),
	)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	a.authService = services.NewAuthService(apiClient, a.session)
	a.recordService = services.NewRecordService(apiClient, a.session)
	a.remarkService = services.NewRemarkService(apiClient, a.session)
	a.newS3Sink = func(ctx context.Context) (export.Sink, error) {
		s3 := c.S3
		if !s3.Enabled() {
			return nil, errors.New("s3 export is not configured")
		}
		return export.NewS3Sink(ctx, export.S3Options{
			Endpoint:  s3.Endpoint,
			Region:    s3.Region,
			Bucket:    s3.Bucket,
			Prefix:    s3.Prefix,
			AccessKey: s3.AccessKey,
			SecretKey: s3.SecretKey,
		})
	}
	return a, nil
}

// Close flushes metrics (when a metrics file is configured) and releases the
// database.
func (a *App) Close() error {
	var errs []error
	if a.config != nil && a.config.MetricsFile != "" && a.registry != nil {
		if err := prometheus.WriteToTextfile(a.config.MetricsFile, a.registry); err != nil {
			errs = append(errs, fmt.Errorf("write metrics: %w", err))
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
		a.db = nil
	}
	return errors.Join(errs...)
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	return a.authService.IsAuthenticated(ctx)
}

// status is the REPL prompt decoration: the signed-in user and role.
func (a *App) status(ctx context.Context) string {
	u, err := a.authService.CurrentUser(ctx)
	if err != nil || u == nil {
		return ""
	}
	name := u.Name
	if name == "" {
		name = u.Email
	}
	return fmt.Sprintf("(%s %s)", name, u.Role)
}

// sessionExpired is the terminal counterpart of sending the user back to the
// login page.
func (a *App) sessionExpired(ctx context.Context) {
	a.logger.Info(ctx, "session cleared after failed token refresh")
	fmt.Fprintln(a.out, SessionExpiredMessage)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// userError carries the message shown to the user for a failed action; the
// cause stays reachable through errors.Is and errors.As. An empty message
// means the user has already been told.
type userError struct {
	msg string
	err error
}

func (e *userError) Error() string { return e.msg }
func (e *userError) Unwrap() error { return e.err }

// failed logs err and turns it into the message shown for action.
func (a *App) failed(ctx context.Context, action string, err error) error {
	var ue *userError
	if errors.As(err, &ue) {
		return err
	}
	a.logger.Debug(ctx, action, "status", client.StatusCode(err), "error", err)

	msg := client.Message(err, action)
	switch {
	case errors.Is(err, client.ErrSessionExpired):
		// sessionExpired has already told the user.
		msg = ""
	case errors.Is(err, services.ErrAdminOnly):
		msg = "This action requires an administrator account"
	case errors.Is(err, services.ErrInitialRemark):
		msg = "The initial remark cannot be deleted"
	case errors.Is(err, services.ErrRemarkNotFound):
		msg = "Remark not found"
	case errors.Is(err, os.ErrNotExist):
		msg = action + ": file not found"
	}
	return &userError{msg: msg, err: err}
}
