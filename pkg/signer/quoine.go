package signer

import (
	"github.com/golang-jwt/jwt/v5"

	"multex/pkg/core"
)

const quoineURL = "https://api.quoine.com"

// Quoine is the odd one out: authentication is a JWT. The token claims carry
// the request path (query string included), the nonce and the key, signed
// HS256 with the raw secret and presented in the X-Quoine-Auth header.
type Quoine struct{}

// NewQuoine creates the Quoine signing strategy.
func NewQuoine() *Quoine {
	return &Quoine{}
}

func (Quoine) Exchange() string       { return "quoine" }
func (Quoine) DefaultBaseURL() string { return quoineURL }
func (Quoine) DefaultVersion() string { return "" }

func (s Quoine) Sign(req *core.Request, cfg *core.Config, creds *core.Credentials, nonce string) (*core.SignedRequest, error) {
	if err := requireKeypair(s.Exchange(), creds); err != nil {
		return nil, err
	}

	path := cfg.URI(req.Endpoint)
	address := cfg.URL(req.Endpoint)
	if len(req.Params) > 0 {
		query := req.Params.Encode()
		path += "?" + query
		address += "?" + query
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"path":     path,
		"nonce":    nonce,
		"token_id": creds.Key,
	})
	signed, err := token.SignedString([]byte(creds.Secret))
	if err != nil {
		return nil, core.NewCredentialsError(s.Exchange(), "sign auth token", err)
	}

	return &core.SignedRequest{
		URL:    address,
		Method: req.Method,
		Headers: map[string]string{
			"X-Quoine-API-Version": "2",
			"X-Quoine-Auth":        signed,
			"Content-Type":         "application/json",
		},
	}, nil
}
