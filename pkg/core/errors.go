package core

import (
	"errors"
	"fmt"
)

// Kind categorizes a client error for programmatic handling.
type Kind int

const (
	// KindUnknown indicates an unclassified error.
	KindUnknown Kind = iota
	// KindConfig indicates invalid configuration detected before any network activity.
	KindConfig
	// KindCredentials indicates missing or unusable credentials for a private call.
	KindCredentials
	// KindUnsupported indicates a version-gate rejection: the operation does
	// not exist under the configured API version.
	KindUnsupported
	// KindTransport indicates a network-level failure: connection refused,
	// DNS failure, timeout or cancellation.
	KindTransport
	// KindHTTPStatus indicates a non-2xx HTTP response.
	KindHTTPStatus
	// KindApplication indicates a 2xx response whose body carries an
	// exchange-reported error.
	KindApplication
)

// String returns the string representation of the error kind.
func (k Kind) String() string {
	return [...]string{
		"UNKNOWN",
		"CONFIG",
		"CREDENTIALS",
		"UNSUPPORTED",
		"TRANSPORT",
		"HTTP_STATUS",
		"APPLICATION",
	}[k]
}

// Sentinel errors for common conditions.
var (
	// ErrIncompleteCredentials is returned when a private call is attempted
	// without a complete key/secret pair.
	ErrIncompleteCredentials = errors.New("incomplete credentials: key and secret are both required")
	// ErrClientClosed is returned when attempting to use a closed client.
	ErrClientClosed = errors.New("client is closed")
)

// Error is the structured error returned by the dispatcher and its
// collaborators. Exactly one is constructed per failed call and it is never
// mutated afterwards.
type Error struct {
	// Kind categorizes the error.
	Kind Kind `json:"kind"`
	// Exchange identifies which exchange the client was configured for.
	Exchange string `json:"exchange"`
	// StatusCode is the HTTP status code, when Kind is KindHTTPStatus.
	StatusCode int `json:"status_code,omitempty"`
	// Body is the raw response body, when one was received.
	Body []byte `json:"-"`
	// Payload is the exchange's own error payload, verbatim, when Kind is
	// KindApplication.
	Payload any `json:"payload,omitempty"`
	// Message is the human-readable description.
	Message string `json:"message"`
	// Err is the underlying error, if any.
	Err error `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("[%s] %s (%d): %s", e.Exchange, e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Exchange, e.Kind, e.Message)
}

// Unwrap returns the underlying error for errors.Is / errors.As chains.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewConfigError creates a configuration error.
func NewConfigError(exchange, message string) *Error {
	return &Error{Kind: KindConfig, Exchange: exchange, Message: message}
}

// NewCredentialsError creates a credentials error wrapping ErrIncompleteCredentials
// unless a more specific cause is given.
func NewCredentialsError(exchange, message string, cause error) *Error {
	if cause == nil {
		cause = ErrIncompleteCredentials
	}
	return &Error{Kind: KindCredentials, Exchange: exchange, Message: message, Err: cause}
}

// NewUnsupportedError creates a version-gate rejection naming the configured
// and supported versions.
func NewUnsupportedError(exchange string, op Operation, configured string, supported []string) *Error {
	return &Error{
		Kind:     KindUnsupported,
		Exchange: exchange,
		Message: fmt.Sprintf("operation %s not available on API version %q (supported: %v)",
			op, configured, supported),
	}
}

// NewTransportError creates a transport error wrapping the network failure.
func NewTransportError(exchange string, cause error) *Error {
	return &Error{
		Kind:     KindTransport,
		Exchange: exchange,
		Message:  cause.Error(),
		Err:      cause,
	}
}

// NewHTTPStatusError creates an HTTP status error carrying the code and raw body.
func NewHTTPStatusError(exchange string, status int, body []byte) *Error {
	return &Error{
		Kind:       KindHTTPStatus,
		Exchange:   exchange,
		StatusCode: status,
		Body:       body,
		Message:    fmt.Sprintf("unexpected HTTP status %d", status),
	}
}

// NewApplicationError creates an application error carrying the exchange's
// error payload verbatim alongside the raw body.
func NewApplicationError(exchange string, payload any, body []byte) *Error {
	return &Error{
		Kind:     KindApplication,
		Exchange: exchange,
		Payload:  payload,
		Body:     body,
		Message:  fmt.Sprintf("exchange reported error: %v", payload),
	}
}

func isKind(err error, k Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == k
	}
	return false
}

// IsConfig returns true if the error is a configuration error.
func IsConfig(err error) bool { return isKind(err, KindConfig) }

// IsCredentials returns true if the error is a credentials error.
func IsCredentials(err error) bool { return isKind(err, KindCredentials) }

// IsUnsupported returns true if the error is a version-gate rejection.
func IsUnsupported(err error) bool { return isKind(err, KindUnsupported) }

// IsTransport returns true if the error is a network-level failure.
// Transport errors are never retried by the client; retry policy belongs to
// the caller.
func IsTransport(err error) bool { return isKind(err, KindTransport) }

// IsHTTPStatus returns true if the error is a non-2xx HTTP response.
func IsHTTPStatus(err error) bool { return isKind(err, KindHTTPStatus) }

// IsApplication returns true if the error is an exchange-reported error
// inside a successful HTTP response.
func IsApplication(err error) bool { return isKind(err, KindApplication) }
