package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/followupdesk/internal/client/models"
)

func remarksPath(recordID int64) string {
	return recordPath(recordID) + "/remarks"
}

func remarkPath(recordID, remarkID int64) string {
	return remarksPath(recordID) + "/" + strconv.FormatInt(remarkID, 10)
}

func (c *HTTPClient) ListRemarks(ctx context.Context, recordID int64, page, limit int) (*models.RemarksPage, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	resp, err := c.Do(ctx, &Request{Method: http.MethodGet, Path: remarksPath(recordID), Query: q})
	if err != nil {
		return nil, err
	}
	data, err := decodeData[models.RemarksPage](resp)
	if err != nil {
		return nil, err
	}
	return &data, nil
}

func (c *HTTPClient) AddRemark(ctx context.Context, recordID int64, text string) (*models.Remark, error) {
	return c.writeRemark(ctx, http.MethodPost, remarksPath(recordID), text)
}

func (c *HTTPClient) UpdateRemark(ctx context.Context, recordID, remarkID int64, text string) (*models.Remark, error) {
	return c.writeRemark(ctx, http.MethodPatch, remarkPath(recordID, remarkID), text)
}

func (c *HTTPClient) DeleteRemark(ctx context.Context, recordID, remarkID int64) error {
	_, err := c.Do(ctx, &Request{Method: http.MethodDelete, Path: remarkPath(recordID, remarkID)})
	return err
}

func (c *HTTPClient) writeRemark(ctx context.Context, method, path, text string) (*models.Remark, error) {
	req, err := NewJSONRequest(method, path, models.RemarkInput{Remark: text})
	if err != nil {
		return nil, err
	}
	resp, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	data, err := decodeData[models.Remark](resp)
	if err != nil {
		return nil, err
	}
	return &data, nil
}
