package services

import (
	"context"

	"github.com/dmitrijs2005/followupdesk/internal/client/models"
)

// fakeClient implements client.Client for service unit tests. It records
// the arguments of each call and returns preset results.
type fakeClient struct {
	// outputs preset
	LoginRet *models.AuthResponse
	LoginErr error

	HealthErr error

	ListRecordsRet *models.RecordsPage
	ListRecordsErr error
	GetRecordRet   *models.Record
	UpdateRet      *models.Record
	UploadRet      *models.UploadResult
	DownloadRet    []byte
	DownloadErr    error

	RemarkPages []models.RemarksPage // ListRemarks result per page, 1-based
	ListRemErr  error
	RemarkRet   *models.Remark
	DeleteErr   error

	// inputs captured
	Calls []string

	LastLogin       models.LoginCredentials
	LastFilters     models.RecordFilters
	LastUpdateID    int64
	LastUpdate      models.UpdateRecordData
	LastUploadName  string
	LastUploadType  string
	LastUploadBytes []byte
	LastRecordID    int64
	LastRemarkID    int64
	LastRemarkText  string
	LastPage        int
	LastLimit       int
}

func (f *fakeClient) Login(_ context.Context, creds models.LoginCredentials) (*models.AuthResponse, error) {
	f.Calls = append(f.Calls, "Login")
	f.LastLogin = creds
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) Health(context.Context) error {
	f.Calls = append(f.Calls, "Health")
	return f.HealthErr
}

func (f *fakeClient) ListRecords(_ context.Context, filters models.RecordFilters) (*models.RecordsPage, error) {
	f.Calls = append(f.Calls, "ListRecords")
	f.LastFilters = filters
	return f.ListRecordsRet, f.ListRecordsErr
}

func (f *fakeClient) GetRecord(_ context.Context, id int64) (*models.Record, error) {
	f.Calls = append(f.Calls, "GetRecord")
	f.LastRecordID = id
	return f.GetRecordRet, nil
}

func (f *fakeClient) UpdateRecord(_ context.Context, id int64, data models.UpdateRecordData) (*models.Record, error) {
	f.Calls = append(f.Calls, "UpdateRecord")
	f.LastUpdateID = id
	f.LastUpdate = data
	return f.UpdateRet, nil
}

func (f *fakeClient) UploadRecords(_ context.Context, name, contentType string, content []byte) (*models.UploadResult, error) {
	f.Calls = append(f.Calls, "UploadRecords")
	f.LastUploadName = name
	f.LastUploadType = contentType
	f.LastUploadBytes = content
	return f.UploadRet, nil
}

func (f *fakeClient) DownloadRecords(_ context.Context, filters models.RecordFilters) ([]byte, error) {
	f.Calls = append(f.Calls, "DownloadRecords")
	f.LastFilters = filters
	return f.DownloadRet, f.DownloadErr
}

func (f *fakeClient) ListRemarks(_ context.Context, recordID int64, page, limit int) (*models.RemarksPage, error) {
	f.Calls = append(f.Calls, "ListRemarks")
	f.LastRecordID, f.LastPage, f.LastLimit = recordID, page, limit
	if f.ListRemErr != nil {
		return nil, f.ListRemErr
	}
	if page < 1 || page > len(f.RemarkPages) {
		return &models.RemarksPage{}, nil
	}
	p := f.RemarkPages[page-1]
	return &p, nil
}

func (f *fakeClient) AddRemark(_ context.Context, recordID int64, text string) (*models.Remark, error) {
	f.Calls = append(f.Calls, "AddRemark")
	f.LastRecordID, f.LastRemarkText = recordID, text
	return f.RemarkRet, nil
}

func (f *fakeClient) UpdateRemark(_ context.Context, recordID, remarkID int64, text string) (*models.Remark, error) {
	f.Calls = append(f.Calls, "UpdateRemark")
	f.LastRecordID, f.LastRemarkID, f.LastRemarkText = recordID, remarkID, text
	return f.RemarkRet, nil
}

func (f *fakeClient) DeleteRemark(_ context.Context, recordID, remarkID int64) error {
	f.Calls = append(f.Calls, "DeleteRemark")
	f.LastRecordID, f.LastRemarkID = recordID, remarkID
	return f.DeleteErr
}
