package core

import (
	"net/http"

	"github.com/bytedance/sonic"
)

// Response is the successful outcome of a dispatched request. The body is
// passed through unmodified for a response formatter to consume.
type Response struct {
	// StatusCode is the HTTP status code returned by the exchange.
	StatusCode int `json:"status_code"`
	// Body contains the raw response body bytes.
	Body []byte `json:"body"`
	// Headers contains the response headers as key-value pairs.
	Headers map[string]string `json:"headers,omitempty"`
}

// IsSuccess returns true if the status code indicates success (2xx).
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= http.StatusOK && r.StatusCode < http.StatusMultipleChoices
}

// Unmarshal parses the response body into the provided value.
func (r *Response) Unmarshal(v any) error {
	return sonic.Unmarshal(r.Body, v)
}
