package services

import (
	"context"

	"github.com/dmitrijs2005/followupdesk/internal/client/client"
	"github.com/dmitrijs2005/followupdesk/internal/client/models"
	"github.com/dmitrijs2005/followupdesk/internal/client/session"
)

// lookupPageSize is the page size used when scanning remarks for one id.
const lookupPageSize = 100

type RemarkService interface {
	List(ctx context.Context, recordID int64, page, limit int) (*models.RemarksPage, error)
	Add(ctx context.Context, recordID int64, text string) (*models.Remark, error)
	Update(ctx context.Context, recordID, remarkID int64, text string) (*models.Remark, error)
	Delete(ctx context.Context, recordID, remarkID int64) error
}

type remarkService struct {
	client  client.Client
	session *session.Manager
}

func NewRemarkService(client client.Client, session *session.Manager) RemarkService {
	return &remarkService{client: client, session: session}
}

func (s *remarkService) List(ctx context.Context, recordID int64, page, limit int) (*models.RemarksPage, error) {
	if page <= 0 {
		page = models.DefaultPage
	}
	if limit <= 0 {
		limit = models.DefaultLimit
	}
	return s.client.ListRemarks(ctx, recordID, page, limit)
}

func (s *remarkService) Add(ctx context.Context, recordID int64, text string) (*models.Remark, error) {
	if !s.session.IsAdmin(ctx) {
		return nil, ErrAdminOnly
	}
	text, err := models.NormalizeRemark(text)
	if err != nil {
		return nil, err
	}
	return s.client.AddRemark(ctx, recordID, text)
}

func (s *remarkService) Update(ctx context.Context, recordID, remarkID int64, text string) (*models.Remark, error) {
	if !s.session.IsAdmin(ctx) {
		return nil, ErrAdminOnly
	}
	text, err := models.NormalizeRemark(text)
	if err != nil {
		return nil, err
	}
	return s.client.UpdateRemark(ctx, recordID, remarkID, text)
}

// Delete removes a remark. The initial remark of a record is refused with
// ErrInitialRemark before the delete call is made.
func (s *remarkService) Delete(ctx context.Context, recordID, remarkID int64) error {
	if !s.session.IsAdmin(ctx) {
		return ErrAdminOnly
	}

	remark, err := s.find(ctx, recordID, remarkID)
	if err != nil {
		return err
	}
	if remark.IsInitial {
		return ErrInitialRemark
	}
	return s.client.DeleteRemark(ctx, recordID, remarkID)
}

func (s *remarkService) find(ctx context.Context, recordID, remarkID int64) (*models.Remark, error) {
	for page := 1; ; page++ {
		res, err := s.client.ListRemarks(ctx, recordID, page, lookupPageSize)
		if err != nil {
			return nil, err
		}
		for i := range res.Remarks {
			if res.Remarks[i].ID == remarkID {
				return &res.Remarks[i], nil
			}
		}
		if !res.Pagination.HasNext() || len(res.Remarks) == 0 {
			return nil, ErrRemarkNotFound
		}
	}
}
