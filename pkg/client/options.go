package client

import (
	"time"

	"github.com/rs/zerolog"

	"multex/internal/keyring"
	"multex/pkg/core"
	"multex/pkg/signer"
)

// Option customizes a Client at construction time.
type Option func(*Client)

// WithLogger replaces the default stderr logger. The configured log level
// still applies on top.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRegistry replaces the built-in strategy registry, for custom or test
// signing strategies.
func WithRegistry(r *signer.Registry) Option {
	return func(c *Client) {
		c.registry = r
	}
}

// WithVersionTable installs a version gate. Without one every operation is
// allowed.
func WithVersionTable(t core.VersionTable) Option {
	return func(c *Client) {
		c.versions = t
	}
}

// WithKeyRing attaches a credential ring. When set it takes precedence over
// the config credentials for private calls.
func WithKeyRing(r *keyring.Ring) Option {
	return func(c *Client) {
		c.ring = r
	}
}

// WithOperationLimit adds a dedicated rate limit for one operation on top
// of the global one. Ignored when rate limiting is disabled in the config.
func WithOperationLimit(op core.Operation, requests int, period time.Duration) Option {
	return func(c *Client) {
		c.opLimits = append(c.opLimits, opLimit{op: op, requests: requests, period: period})
	}
}

// WithErrorKeys replaces the JSON fields scanned for exchange-reported
// errors in successful responses. The default is just "error".
func WithErrorKeys(keys ...string) Option {
	return func(c *Client) {
		c.errorKeys = keys
	}
}
