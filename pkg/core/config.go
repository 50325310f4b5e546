package core

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Credentials holds API authentication material for an exchange.
//
// Key and Secret follow a both-or-neither contract: a pair with exactly one
// of them set is still usable for public endpoints, so it is reported as a
// warning rather than rejected. The identity extras use pointers because
// "unset" and "explicitly empty" mean different things: nil is fine, a
// pointer to the empty string is a configuration error.
type Credentials struct {
	// Key is the public API key identifier.
	Key string `json:"key,omitempty" yaml:"key"`
	// Secret is the private key used for signing requests. Some exchanges
	// issue it base64-encoded; the signing strategy decides whether to
	// decode it before use.
	Secret string `json:"secret,omitempty" yaml:"secret"`
	// UserID is an account identifier required by some exchanges (Bitstamp).
	UserID *string `json:"user_id,omitempty" yaml:"user_id"`
	// Passphrase is an additional credential required by some exchanges (Coinbase).
	Passphrase *string `json:"passphrase,omitempty" yaml:"passphrase"`
	// ClientID is a client identifier required by some exchanges (QuadrigaCX).
	ClientID *string `json:"client_id,omitempty" yaml:"client_id"`
}

// Complete reports whether both key and secret are present, which is the
// minimum for any private call.
func (c *Credentials) Complete() bool {
	return c != nil && c.Key != "" && c.Secret != ""
}

// Partial reports whether exactly one of key and secret is present.
func (c *Credentials) Partial() bool {
	if c == nil {
		return false
	}
	return (c.Key != "") != (c.Secret != "")
}

// Validate rejects identity fields that were explicitly set to the empty
// string. Leaving a field nil is always valid.
func (c *Credentials) Validate() error {
	if c == nil {
		return nil
	}
	for _, f := range []struct {
		name  string
		value *string
	}{
		{"user_id", c.UserID},
		{"passphrase", c.Passphrase},
		{"client_id", c.ClientID},
	} {
		if f.value != nil && *f.value == "" {
			return NewConfigError("", "identity field "+f.name+" cannot be the empty string; leave it unset instead")
		}
	}
	return nil
}

// Clone returns a deep copy of the credentials.
func (c *Credentials) Clone() *Credentials {
	if c == nil {
		return nil
	}
	out := &Credentials{Key: c.Key, Secret: c.Secret}
	if c.UserID != nil {
		v := *c.UserID
		out.UserID = &v
	}
	if c.Passphrase != nil {
		v := *c.Passphrase
		out.Passphrase = &v
	}
	if c.ClientID != nil {
		v := *c.ClientID
		out.ClientID = &v
	}
	return out
}

// Config contains the connection parameters one client instance owns:
// address, API version, credentials and timeout, plus rate limiting knobs.
type Config struct {
	// Exchange is the identifier of the target exchange ("kraken", "bitstamp", ...).
	Exchange string `json:"exchange" validate:"required"`
	// BaseURL is the API base address. Left empty, the client fills it from
	// the signing strategy's default.
	BaseURL string `json:"base_url" validate:"omitempty,url"`
	// Version is the API version path segment ("v1", "0"). May legitimately
	// be empty for exchanges without versioned paths.
	Version string `json:"version"`

	Credentials *Credentials `json:"credentials,omitempty"`

	// Timeout bounds every HTTP exchange made by the client.
	Timeout time.Duration `json:"timeout" validate:"min=1ms"`

	RateLimitRequests int           `json:"rate_limit_requests" validate:"min=0"`
	RateLimitPeriod   time.Duration `json:"rate_limit_period" validate:"min=0"`

	LogLevel string `json:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

// DefaultConfig returns a Config with sensible defaults for the given
// exchange: 10s timeout and rate limiting disabled.
func DefaultConfig(exchange string) *Config {
	return &Config{
		Exchange: exchange,
		Timeout:  10 * time.Second,
		LogLevel: "info",
	}
}

var validate = validator.New()

// Validate checks the structural constraints and the credential identity
// rules. A partial key/secret pair is deliberately not an error here.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return NewConfigError(c.Exchange, err.Error())
	}
	if err := c.Credentials.Validate(); err != nil {
		if e, ok := err.(*Error); ok {
			e.Exchange = c.Exchange
		}
		return err
	}
	return nil
}

// URI joins the version segment and endpoint into a request path:
// "/<version>/<endpoint>" when a version is configured, "/<endpoint>" otherwise.
func (c *Config) URI(endpoint string) string {
	endpoint = strings.TrimPrefix(endpoint, "/")
	if c.Version != "" {
		return "/" + c.Version + "/" + endpoint
	}
	return "/" + endpoint
}

// URL joins the base address with URI(endpoint).
func (c *Config) URL(endpoint string) string {
	return strings.TrimSuffix(c.BaseURL, "/") + c.URI(endpoint)
}

// Clone returns a copy of the config with its own credentials value.
func (c *Config) Clone() *Config {
	out := *c
	out.Credentials = c.Credentials.Clone()
	return &out
}

// WithCredentials sets the API credentials and returns the config for chaining.
func (c *Config) WithCredentials(creds *Credentials) *Config {
	c.Credentials = creds
	return c
}

// WithVersion sets the API version and returns the config for chaining.
func (c *Config) WithVersion(version string) *Config {
	c.Version = version
	return c
}

// WithTimeout sets the request timeout and returns the config for chaining.
func (c *Config) WithTimeout(timeout time.Duration) *Config {
	c.Timeout = timeout
	return c
}

// WithRateLimit sets the rate limiting parameters and returns the config for chaining.
func (c *Config) WithRateLimit(requests int, period time.Duration) *Config {
	c.RateLimitRequests = requests
	c.RateLimitPeriod = period
	return c
}
