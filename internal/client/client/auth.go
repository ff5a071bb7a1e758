package client

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/followupdesk/internal/client/models"
	"github.com/dmitrijs2005/followupdesk/internal/common"
)

func (c *HTTPClient) Login(ctx context.Context, creds models.LoginCredentials) (*models.AuthResponse, error) {
	req, err := NewJSONRequest(http.MethodPost, common.LoginPath, creds)
	if err != nil {
		return nil, err
	}
	resp, err := c.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	data, err := decodeData[models.AuthResponse](resp)
	if err != nil {
		return nil, err
	}
	return &data, nil
}

// Health checks that the server answers on the public health endpoint.
func (c *HTTPClient) Health(ctx context.Context) error {
	_, err := c.Do(ctx, &Request{Method: http.MethodGet, Path: common.HealthPath})
	return err
}
