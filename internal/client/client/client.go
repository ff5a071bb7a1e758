package client

import (
	"context"

	"github.com/dmitrijs2005/followupdesk/internal/client/models"
)

// Client is the FollowUpDesk API contract used by the services.
type Client interface {
	Login(ctx context.Context, creds models.LoginCredentials) (*models.AuthResponse, error)
	Health(ctx context.Context) error

	ListRecords(ctx context.Context, filters models.RecordFilters) (*models.RecordsPage, error)
	GetRecord(ctx context.Context, id int64) (*models.Record, error)
	UpdateRecord(ctx context.Context, id int64, data models.UpdateRecordData) (*models.Record, error)
	UploadRecords(ctx context.Context, fileName, contentType string, content []byte) (*models.UploadResult, error)
	DownloadRecords(ctx context.Context, filters models.RecordFilters) ([]byte, error)

	ListRemarks(ctx context.Context, recordID int64, page, limit int) (*models.RemarksPage, error)
	AddRemark(ctx context.Context, recordID int64, text string) (*models.Remark, error)
	UpdateRemark(ctx context.Context, recordID, remarkID int64, text string) (*models.Remark, error)
	DeleteRemark(ctx context.Context, recordID, remarkID int64) error
}
