package client

import (
	"encoding/json"
	"fmt"
)

// Envelope is the wire wrapper of every API response: {"data": ...} on
// success, {"error": "..."} on failure.
type Envelope[T any] struct {
	Data  T      `json:"data"`
	Error string `json:"error,omitempty"`
}

// decodeData unwraps the data of a successful response.
func decodeData[T any](resp *Response) (T, error) {
	var env Envelope[T]
	if len(resp.Body) == 0 {
		return env.Data, nil
	}
	if err := json.Unmarshal(resp.Body, &env); err != nil {
		return env.Data, fmt.Errorf("decode response: %w", err)
	}
	return env.Data, nil
}

// errorFromResponse builds the APIError of a non-2xx response. Bodies that
// are not an error envelope leave Message empty.
func errorFromResponse(resp *Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	var env Envelope[json.RawMessage]
	if err := json.Unmarshal(resp.Body, &env); err == nil {
		apiErr.Message = env.Error
	}
	return apiErr
}
