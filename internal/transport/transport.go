// Package transport wraps the underlying HTTP stack behind the two call
// shapes the dispatcher needs: a plain request against an assembled URL and
// a pre-signed request that must hit the wire exactly as produced.
package transport

import (
	"context"
	"io"
	"net/url"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog"
	"resty.dev/v3"

	"multex/pkg/core"
)

// Client is a thin resty wrapper. It never interprets status codes or
// response bodies; classification belongs to the caller.
type Client struct {
	client *resty.Client
	logger zerolog.Logger
	mu     sync.RWMutex
	closed bool
}

// New creates a transport client with the given per-request timeout.
func New(timeout time.Duration, logger zerolog.Logger) *Client {
	client := resty.New()
	client.SetTimeout(timeout)
	client.AddContentTypeEncoder("application/json", func(w io.Writer, v any) error {
		data, err := sonic.Marshal(v)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	})
	client.AddContentTypeDecoder("application/json", func(r io.Reader, v any) error {
		data, err := io.ReadAll(r)
		if err != nil {
			return err
		}
		return sonic.Unmarshal(data, v)
	})

	client.AddRequestMiddleware(func(_ *resty.Client, req *resty.Request) error {
		logger.Debug().
			Str("method", req.Method).
			Str("url", req.URL).
			Msg("http request")
		return nil
	})
	client.AddResponseMiddleware(func(_ *resty.Client, resp *resty.Response) error {
		logger.Debug().
			Str("method", resp.Request.Method).
			Str("url", resp.Request.URL).
			Int("status", resp.StatusCode()).
			Int("size", len(resp.Bytes())).
			Msg("http response")
		return nil
	})

	return &Client{client: client, logger: logger}
}

// Do executes an unauthenticated request against url with an optional query.
func (c *Client) Do(ctx context.Context, method, url string, query url.Values) (*core.Response, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return nil, core.ErrClientClosed
	}

	req := c.client.R().SetContext(ctx)
	if len(query) > 0 {
		req.SetQueryParamsFromValues(query)
	}
	resp, err := req.Execute(method, url)
	if err != nil {
		return nil, err
	}
	return toResponse(resp), nil
}

// DoSigned executes a signed request. The URL is used verbatim: several
// exchanges sign the full address, so it must not be reassembled here.
func (c *Client) DoSigned(ctx context.Context, signed *core.SignedRequest) (*core.Response, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return nil, core.ErrClientClosed
	}

	req := c.client.R().SetContext(ctx)
	if len(signed.Headers) > 0 {
		req.SetHeaders(signed.Headers)
	}
	switch {
	case len(signed.Form) > 0:
		req.SetFormDataFromValues(signed.Form)
	case signed.HasBody():
		req.SetBody(signed.Body)
	}

	resp, err := req.Execute(signed.Method, signed.URL)
	if err != nil {
		return nil, err
	}
	return toResponse(resp), nil
}

// Close releases the underlying connections. Further calls fail with
// core.ErrClientClosed.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.client.Close()
}

func toResponse(resp *resty.Response) *core.Response {
	headers := make(map[string]string, len(resp.Header()))
	for k := range resp.Header() {
		headers[k] = resp.Header().Get(k)
	}
	return &core.Response{
		StatusCode: resp.StatusCode(),
		Body:       resp.Bytes(),
		Headers:    headers,
	}
}
