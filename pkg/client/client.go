// Package client dispatches logical exchange requests: it version-gates
// private operations, signs them through the exchange's strategy, executes
// them and classifies every failure into the shared error taxonomy.
package client

import (
	"context"
	"errors"
	"net/url"
	"os"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog"

	"multex/internal/keyring"
	"multex/internal/ratelimit"
	"multex/internal/transport"
	"multex/pkg/core"
	"multex/pkg/signer"
)

// Client is a dispatcher bound to one exchange. It is safe for concurrent
// use; every call draws its nonce from a single monotonic generator.
type Client struct {
	cfg      *core.Config
	registry *signer.Registry
	signer   signer.Signer
	nonces   *core.NonceGenerator
	versions core.VersionTable
	ring     *keyring.Ring
	limiter  *ratelimit.Limiter
	http     *transport.Client
	logger   zerolog.Logger

	// errorKeys are the top-level JSON fields scanned for exchange-reported
	// errors in 2xx responses.
	errorKeys []string

	opLimits []opLimit

	credMu     sync.RWMutex
	incomplete bool
}

type opLimit struct {
	op       core.Operation
	requests int
	period   time.Duration
}

// New creates a client for cfg.Exchange. BaseURL and Version fall back to
// the signing strategy's defaults when left empty. A partial key/secret
// pair is tolerated with a warning; the client then serves public endpoints
// only.
func New(cfg *core.Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, core.NewConfigError("", "config must not be nil")
	}

	c := &Client{
		cfg:       cfg.Clone(),
		nonces:    core.NewNonceGenerator(),
		errorKeys: []string{"error"},
		registry:  signer.Builtin(),
		logger:    zerolog.New(os.Stderr).With().Timestamp().Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}

	s, err := c.registry.Get(c.cfg.Exchange)
	if err != nil {
		return nil, core.NewConfigError(c.cfg.Exchange, err.Error())
	}
	c.signer = s

	if c.cfg.BaseURL == "" {
		c.cfg.BaseURL = s.DefaultBaseURL()
	}
	if c.cfg.Version == "" {
		c.cfg.Version = s.DefaultVersion()
	}
	if err := c.cfg.Validate(); err != nil {
		return nil, err
	}

	if level, err := zerolog.ParseLevel(c.cfg.LogLevel); err == nil && c.cfg.LogLevel != "" {
		c.logger = c.logger.Level(level)
	}
	c.logger = c.logger.With().Str("exchange", c.cfg.Exchange).Logger()

	if c.cfg.Credentials.Partial() {
		c.incomplete = true
		c.logger.Warn().Msg("partial credentials: only public endpoints are usable")
	}

	if c.cfg.RateLimitRequests > 0 && c.cfg.RateLimitPeriod > 0 {
		c.limiter = ratelimit.New(c.cfg.RateLimitRequests, c.cfg.RateLimitPeriod)
		for _, ol := range c.opLimits {
			c.limiter.SetOperationLimit(ol.op, ol.requests, ol.period)
		}
	}
	c.http = transport.New(c.cfg.Timeout, c.logger)

	return c, nil
}

// Exchange returns the exchange identifier this client is bound to.
func (c *Client) Exchange() string {
	return c.cfg.Exchange
}

// IncompleteCredentials reports whether the client was built with exactly
// one of key and secret.
func (c *Client) IncompleteCredentials() bool {
	c.credMu.RLock()
	defer c.credMu.RUnlock()
	return c.incomplete
}

// SetCredentials replaces the client's credentials at runtime. Identity
// fields set to the empty string are rejected.
func (c *Client) SetCredentials(creds *core.Credentials) error {
	if err := creds.Validate(); err != nil {
		return err
	}

	c.credMu.Lock()
	defer c.credMu.Unlock()
	c.cfg.Credentials = creds.Clone()
	c.incomplete = creds.Partial()
	c.logger.Info().Str("key", keyring.Mask(creds.Key)).Msg("credentials updated")
	return nil
}

// Public dispatches an unauthenticated request.
func (c *Client) Public(ctx context.Context, op core.Operation, method, endpoint string, params url.Values) (*core.Response, error) {
	req := core.NewRequest(op, method, endpoint).SetParams(params)
	return c.Execute(ctx, req)
}

// Private dispatches an authenticated request.
func (c *Client) Private(ctx context.Context, op core.Operation, method, endpoint string, params url.Values) (*core.Response, error) {
	req := core.NewRequest(op, method, endpoint).SetParams(params).SetAuth(true)
	return c.Execute(ctx, req)
}

// Execute runs a prepared request through the dispatch pipeline: rate
// limit, version gate, signing, transport, classification. The request is
// never mutated.
func (c *Client) Execute(ctx context.Context, req *core.Request) (*core.Response, error) {
	if req == nil {
		return nil, core.NewConfigError(c.cfg.Exchange, "request must not be nil")
	}

	if c.limiter != nil {
		if err := c.limiter.WaitOperation(ctx, req.Operation); err != nil {
			return nil, core.NewTransportError(c.cfg.Exchange, err)
		}
	}

	c.logger.Debug().
		Stringer("operation", req.Operation).
		Str("method", req.Method).
		Str("endpoint", req.Endpoint).
		Bool("auth", req.Auth).
		Msg("dispatch")

	var resp *core.Response
	var err error
	if req.Auth {
		resp, err = c.private(ctx, req)
	} else {
		resp, err = c.http.Do(ctx, req.Method, c.cfg.URL(req.Endpoint), req.Params)
	}
	return c.classify(req, resp, err)
}

// private runs the authenticated leg: version gate, credential check,
// nonce, signature, transport. The gate runs before any credential access
// so an unsupported call never burns a nonce.
func (c *Client) private(ctx context.Context, req *core.Request) (*core.Response, error) {
	if err := c.versions.Check(c.cfg.Exchange, req.Operation, c.cfg.Version); err != nil {
		return nil, err
	}

	creds := c.currentCredentials()
	if !creds.Complete() {
		return nil, core.NewCredentialsError(c.cfg.Exchange,
			"private call "+req.Operation.String()+" requires complete credentials", nil)
	}

	nonce := c.nonces.Next()
	signed, err := c.signer.Sign(req, c.cfg, creds, nonce)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.DoSigned(ctx, signed)
	if c.ring != nil {
		if err != nil {
			c.ring.OnError()
		} else {
			c.ring.MarkUsed()
		}
	}
	return resp, err
}

// currentCredentials resolves the active credential set: the key ring when
// one is attached, the config otherwise.
func (c *Client) currentCredentials() *core.Credentials {
	if c.ring != nil {
		if creds := c.ring.Current(); creds != nil {
			return creds
		}
	}
	c.credMu.RLock()
	defer c.credMu.RUnlock()
	if c.cfg.Credentials == nil {
		return &core.Credentials{}
	}
	return c.cfg.Credentials.Clone()
}

// classify folds the transport outcome into the error taxonomy. Exactly one
// error is produced per failed call.
func (c *Client) classify(req *core.Request, resp *core.Response, err error) (*core.Response, error) {
	if err != nil {
		var ce *core.Error
		if errors.As(err, &ce) {
			return nil, err
		}
		if errors.Is(err, core.ErrClientClosed) {
			return nil, err
		}
		c.logger.Error().Err(err).Stringer("operation", req.Operation).Msg("transport failure")
		return nil, core.NewTransportError(c.cfg.Exchange, err)
	}

	if !resp.IsSuccess() {
		c.logger.Warn().
			Int("status", resp.StatusCode).
			Stringer("operation", req.Operation).
			Msg("http error response")
		return nil, core.NewHTTPStatusError(c.cfg.Exchange, resp.StatusCode, resp.Body)
	}

	if payload, found := c.applicationError(resp.Body); found {
		c.logger.Warn().
			Stringer("operation", req.Operation).
			Interface("payload", payload).
			Msg("exchange reported error")
		return nil, core.NewApplicationError(c.cfg.Exchange, payload, resp.Body)
	}

	return resp, nil
}

// applicationError scans a 2xx JSON body for a populated error field. An
// absent key, empty string, empty array, null, false or zero is not an
// error; Kraken for one returns "error":[] on every success.
func (c *Client) applicationError(body []byte) (any, bool) {
	var doc map[string]any
	if err := sonic.Unmarshal(body, &doc); err != nil {
		return nil, false
	}
	for _, key := range c.errorKeys {
		v, ok := doc[key]
		if !ok {
			continue
		}
		switch t := v.(type) {
		case nil:
			continue
		case string:
			if t != "" {
				return t, true
			}
		case []any:
			if len(t) > 0 {
				return t, true
			}
		case map[string]any:
			if len(t) > 0 {
				return t, true
			}
		case bool:
			if t {
				return t, true
			}
		case float64:
			if t != 0 {
				return t, true
			}
		default:
			return t, true
		}
	}
	return nil, false
}

// Close releases the client's network resources. Subsequent calls fail
// with core.ErrClientClosed.
func (c *Client) Close() error {
	return c.http.Close()
}
