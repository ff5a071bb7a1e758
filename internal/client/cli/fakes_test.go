package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/followupdesk/internal/client/config"
	"github.com/dmitrijs2005/followupdesk/internal/client/export"
	"github.com/dmitrijs2005/followupdesk/internal/client/models"
	"github.com/dmitrijs2005/followupdesk/internal/client/session"
	"github.com/dmitrijs2005/followupdesk/internal/logging"
)

type fakeAuth struct {
	loginEmail string
	loginPass  string
	loginUser  *models.User
	loginErr   error

	user    *models.User
	userErr error
	info    *session.TokenInfo
	infoErr error

	logoutCalled bool
	pingErr      error
}

func (f *fakeAuth) Login(_ context.Context, email, password string) (*models.User, error) {
	f.loginEmail, f.loginPass = email, password
	return f.loginUser, f.loginErr
}
func (f *fakeAuth) Logout(context.Context) error { f.logoutCalled = true; return nil }
func (f *fakeAuth) CurrentUser(context.Context) (*models.User, error) {
	return f.user, f.userErr
}
func (f *fakeAuth) IsAuthenticated(context.Context) bool { return f.user != nil }
func (f *fakeAuth) IsAdmin(context.Context) bool         { return f.user != nil && f.user.IsAdmin() }
func (f *fakeAuth) TokenInfo(context.Context) (*session.TokenInfo, error) {
	return f.info, f.infoErr
}
func (f *fakeAuth) Ping(context.Context) error { return f.pingErr }

type fakeRecords struct {
	page      *models.RecordsPage
	record    *models.Record
	upload    *models.UploadResult
	err       error
	lastSink  export.Sink
	filters   models.RecordFilters
	updated   models.UpdateRecordData
	uploaded  string
	downloads int
}

func (f *fakeRecords) List(_ context.Context, filters models.RecordFilters) (*models.RecordsPage, error) {
	f.filters = filters
	return f.page, f.err
}
func (f *fakeRecords) Get(context.Context, int64) (*models.Record, error) { return f.record, f.err }
func (f *fakeRecords) Update(_ context.Context, _ int64, data models.UpdateRecordData) (*models.Record, error) {
	f.updated = data
	return f.record, f.err
}
func (f *fakeRecords) Upload(_ context.Context, path string) (*models.UploadResult, error) {
	f.uploaded = path
	return f.upload, f.err
}
func (f *fakeRecords) Download(ctx context.Context, filters models.RecordFilters, sink export.Sink) (string, error) {
	f.filters, f.lastSink = filters, sink
	f.downloads++
	if f.err != nil {
		return "", f.err
	}
	return sink.Write(ctx, "records.xlsx", strings.NewReader("x"))
}

type fakeRemarks struct {
	page    *models.RemarksPage
	remark  *models.Remark
	err     error
	deleted []int64
	text    string
}

func (f *fakeRemarks) List(context.Context, int64, int, int) (*models.RemarksPage, error) {
	return f.page, f.err
}
func (f *fakeRemarks) Add(_ context.Context, _ int64, text string) (*models.Remark, error) {
	f.text = text
	return f.remark, f.err
}
func (f *fakeRemarks) Update(_ context.Context, _, _ int64, text string) (*models.Remark, error) {
	f.text = text
	return f.remark, f.err
}
func (f *fakeRemarks) Delete(_ context.Context, _, remarkID int64) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, remarkID)
	return nil
}

// newTestApp builds an App around fake services; input feeds prompts.
func newTestApp(t *testing.T, input string) (*App, *fakeAuth, *fakeRecords, *fakeRemarks, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DownloadDir = t.TempDir()

	fa, fr, fm := &fakeAuth{}, &fakeRecords{}, &fakeRemarks{}
	a := &App{
		config:        cfg,
		logger:        logging.Nop(),
		authService:   fa,
		recordService: fr,
		remarkService: fm,
		reader:        bufio.NewReader(strings.NewReader(input)),
		out:           &out,
	}
	a.newS3Sink = func(context.Context) (export.Sink, error) { return export.NewFileSink(t.TempDir()), nil }
	return a, fa, fr, fm, &out
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(_ io.Writer) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { getPassword = orig })
}
