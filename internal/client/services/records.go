package services

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/followupdesk/internal/client/client"
	"github.com/dmitrijs2005/followupdesk/internal/client/export"
	"github.com/dmitrijs2005/followupdesk/internal/client/models"
	"github.com/dmitrijs2005/followupdesk/internal/client/session"
)

type RecordService interface {
	List(ctx context.Context, filters models.RecordFilters) (*models.RecordsPage, error)
	Get(ctx context.Context, id int64) (*models.Record, error)
	Update(ctx context.Context, id int64, data models.UpdateRecordData) (*models.Record, error)
	Upload(ctx context.Context, path string) (*models.UploadResult, error)
	Download(ctx context.Context, filters models.RecordFilters, sink export.Sink) (string, error)
}

type recordService struct {
	client  client.Client
	session *session.Manager
	now     func() time.Time
}

func NewRecordService(client client.Client, session *session.Manager) RecordService {
	return &recordService{client: client, session: session, now: time.Now}
}

// List fetches one page of records. Missing paging falls back to the
// defaults.
func (s *recordService) List(ctx context.Context, filters models.RecordFilters) (*models.RecordsPage, error) {
	if err := filters.Validate(); err != nil {
		return nil, err
	}
	if filters.Page <= 0 {
		filters.Page = models.DefaultPage
	}
	if filters.Limit <= 0 {
		filters.Limit = models.DefaultLimit
	}
	return s.client.ListRecords(ctx, filters)
}

func (s *recordService) Get(ctx context.Context, id int64) (*models.Record, error) {
	return s.client.GetRecord(ctx, id)
}

func (s *recordService) Update(ctx context.Context, id int64, data models.UpdateRecordData) (*models.Record, error) {
	if !s.session.IsAdmin(ctx) {
		return nil, ErrAdminOnly
	}
	if err := data.Validate(); err != nil {
		return nil, err
	}
	return s.client.UpdateRecord(ctx, id, data)
}

// Upload validates the spreadsheet at path and sends it for import.
// Validation happens before the file is read.
func (s *recordService) Upload(ctx context.Context, path string) (*models.UploadResult, error) {
	if !s.session.IsAdmin(ctx) {
		return nil, ErrAdminOnly
	}

	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if fi.IsDir() {
		return nil, &models.ValidationError{Field: "file", Message: "Please select a file to upload"}
	}

	name := filepath.Base(path)
	contentType, err := models.ValidateUpload(name, fi.Size())
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return s.client.UploadRecords(ctx, name, contentType, content)
}

// Download exports the records matching filters and stores the spreadsheet
// through sink, returning its location.
func (s *recordService) Download(ctx context.Context, filters models.RecordFilters, sink export.Sink) (string, error) {
	if err := filters.Validate(); err != nil {
		return "", err
	}

	content, err := s.client.DownloadRecords(ctx, filters)
	if err != nil {
		return "", err
	}

	location, err := sink.Write(ctx, ExportFileName(s.now(), filters.HasActive()), bytes.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("export saving error: %w", err)
	}
	return location, nil
}

// ExportFileName is records_<YYYY-MM-DD>.xlsx, dated in UTC, with a
// _filtered suffix when filters narrowed the export.
func ExportFileName(day time.Time, filtered bool) string {
	name := "records_" + day.UTC().Format(models.DateLayout)
	if filtered {
		name += "_filtered"
	}
	return name + ".xlsx"
}
