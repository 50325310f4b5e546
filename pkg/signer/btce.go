package signer

import (
	"crypto/sha512"
	"strings"

	"multex/pkg/core"
)

const (
	btceURL     = "https://btc-e.com/api"
	btceVersion = "3"
)

// BTCE routes every private call through the /tapi endpoint: the target
// method travels as a form field rather than a path segment, and the
// HMAC-SHA512 hex digest of the encoded form goes in the Sign header.
type BTCE struct{}

// NewBTCE creates the BTC-E signing strategy.
func NewBTCE() *BTCE {
	return &BTCE{}
}

func (BTCE) Exchange() string       { return "btce" }
func (BTCE) DefaultBaseURL() string { return btceURL }
func (BTCE) DefaultVersion() string { return btceVersion }

func (s BTCE) Sign(req *core.Request, cfg *core.Config, creds *core.Credentials, nonce string) (*core.SignedRequest, error) {
	if err := requireKeypair(s.Exchange(), creds); err != nil {
		return nil, err
	}

	// "trade/buy" hits /tapi with method=buy; a bare endpoint is the method.
	method := req.Endpoint
	if i := strings.Index(method, "/"); i >= 0 {
		method = method[i+1:]
	}

	form := req.CloneParams()
	form.Set("nonce", nonce)
	form.Set("method", method)
	signature := hmacHex(sha512.New, []byte(creds.Secret), []byte(form.Encode()))

	address := cfg.URL(req.Endpoint)
	if i := strings.Index(address, "/tapi"); i >= 0 {
		address = address[:i]
	}
	address += "/tapi"

	return &core.SignedRequest{
		URL:    address,
		Method: req.Method,
		Headers: map[string]string{
			"Key":  creds.Key,
			"Sign": signature,
		},
		Form: form,
	}, nil
}
