package client

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"

	"github.com/dmitrijs2005/followupdesk/internal/client/models"
	"github.com/dmitrijs2005/followupdesk/internal/common"
)

func recordPath(id int64) string {
	return common.RecordsPath + "/" + strconv.FormatInt(id, 10)
}

func (c *HTTPClient) ListRecords(ctx context.Context, filters models.RecordFilters) (*models.RecordsPage, error) {
	resp, err := c.Do(ctx, &Request{Method: http.MethodGet, Path: common.RecordsPath, Query: filters.Values()})
	if err != nil {
		return nil, err
	}
	data, err := decodeData[models.RecordsPage](resp)
	if err != nil {
		return nil, err
	}
	return &data, nil
}

func (c *HTTPClient) GetRecord(ctx context.Context, id int64) (*models.Record, error) {
	resp, err := c.Do(ctx, &Request{Method: http.MethodGet, Path: recordPath(id)})
	if err != nil {
		return nil, err
	}
	data, err := decodeData[models.Record](resp)
	if err != nil {
		return nil, err
	}
	return &data, nil
}

func (c *HTTPClient) UpdateRecord(ctx context.Context, id int64, data models.UpdateRecordData) (*models.Record, error) {
	req, err := NewJSONRequest(http.MethodPatch, recordPath(id), data)
	if err != nil {
		return nil, err
	}
	resp, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	rec, err := decodeData[models.Record](resp)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// UploadRecords posts content as the multipart "file" field. The encoded
// body is kept in memory so a refresh retry can resend it unchanged.
func (c *HTTPClient) UploadRecords(ctx context.Context, fileName, contentType string, content []byte) (*models.UploadResult, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, fileName))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h.Set(common.ContentTypeHeaderName, contentType)

	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, fmt.Errorf("build upload: %w", err)
	}
	if _, err := part.Write(content); err != nil {
		return nil, fmt.Errorf("build upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("build upload: %w", err)
	}

	header := http.Header{}
	header.Set(common.ContentTypeHeaderName, mw.FormDataContentType())

	resp, err := c.Do(ctx, &Request{
		Method: http.MethodPost,
		Path:   common.RecordsPath + "/upload",
		Header: header,
		Body:   buf.Bytes(),
	})
	if err != nil {
		return nil, err
	}
	data, err := decodeData[models.UploadResult](resp)
	if err != nil {
		return nil, err
	}
	return &data, nil
}

// DownloadRecords returns the raw spreadsheet produced for filters. Every set
// field, paging included, goes into the query string.
func (c *HTTPClient) DownloadRecords(ctx context.Context, filters models.RecordFilters) ([]byte, error) {
	resp, err := c.Do(ctx, &Request{Method: http.MethodGet, Path: common.RecordsPath + "/download", Query: filters.Values()})
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}
