package core

import (
	"maps"
	"net/url"
)

// Request is the caller's intent before authentication is applied: an
// endpoint, an HTTP verb and parameters, plus the operation identifier the
// version gate keys on. Once handed to the client it is treated as
// read-only; signing strategies copy the parameters and never mutate them.
type Request struct {
	// Operation is the logical action, used by the version gate.
	Operation Operation `json:"operation"`
	// Method is the HTTP verb (GET, POST, PUT, DELETE, PATCH).
	Method string `json:"method"`
	// Endpoint is the path relative to the versioned base address,
	// without a leading slash ("private/Balance", "ticker/").
	Endpoint string `json:"endpoint"`
	// Params are the query or body parameters. url.Values encodes them in
	// sorted key order, which keeps signing deterministic.
	Params url.Values `json:"params,omitempty"`
	// Auth marks the request as requiring authentication.
	Auth bool `json:"auth"`
}

// NewRequest creates a request for the given operation, verb and endpoint.
func NewRequest(op Operation, method, endpoint string) *Request {
	return &Request{
		Operation: op,
		Method:    method,
		Endpoint:  endpoint,
		Params:    make(url.Values),
	}
}

// SetParam sets a single parameter and returns the request for chaining.
func (r *Request) SetParam(key, value string) *Request {
	if r.Params == nil {
		r.Params = make(url.Values)
	}
	r.Params.Set(key, value)
	return r
}

// SetParams merges the given values into the parameters.
func (r *Request) SetParams(params url.Values) *Request {
	if r.Params == nil {
		r.Params = make(url.Values)
	}
	maps.Copy(r.Params, params)
	return r
}

// SetAuth marks the request as requiring authentication.
func (r *Request) SetAuth(auth bool) *Request {
	r.Auth = auth
	return r
}

// CloneParams returns a copy of the parameters that a signing strategy may
// extend without mutating the original request.
func (r *Request) CloneParams() url.Values {
	out := make(url.Values, len(r.Params))
	for k, vs := range r.Params {
		out[k] = append([]string(nil), vs...)
	}
	return out
}
