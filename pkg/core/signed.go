package core

import "net/url"

// SignedRequest is the wire-ready request descriptor a signing strategy
// produces. It is consumed exactly once by the transport.
//
// URL is the exact string to send. Several exchanges (Bittrex, HitBTC,
// Vaultoro) include the full request address in the signature input, so the
// transport must not re-encode or reorder it.
type SignedRequest struct {
	URL     string            `json:"url"`
	Method  string            `json:"method"`
	Headers map[string]string `json:"headers,omitempty"`
	// Body is a raw (typically JSON) request body. Mutually exclusive with Form.
	Body []byte `json:"body,omitempty"`
	// Form is a form-encoded request body. Mutually exclusive with Body.
	Form url.Values `json:"form,omitempty"`
}

// HasBody reports whether the request carries any body payload.
func (s *SignedRequest) HasBody() bool {
	return len(s.Body) > 0 || len(s.Form) > 0
}
