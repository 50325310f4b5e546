package signer

import (
	"crypto/sha512"

	"multex/pkg/core"
)

const poloniexURL = "https://poloniex.com"

// Poloniex signs the url-encoded form (parameters plus nonce) with
// HMAC-SHA512 hex and sends key and signature in the Key and Sign headers.
// Private calls are always POSTed to the trading endpoint.
type Poloniex struct{}

// NewPoloniex creates the Poloniex signing strategy.
func NewPoloniex() *Poloniex {
	return &Poloniex{}
}

func (Poloniex) Exchange() string       { return "poloniex" }
func (Poloniex) DefaultBaseURL() string { return poloniexURL }
func (Poloniex) DefaultVersion() string { return "" }

func (s Poloniex) Sign(req *core.Request, cfg *core.Config, creds *core.Credentials, nonce string) (*core.SignedRequest, error) {
	if err := requireKeypair(s.Exchange(), creds); err != nil {
		return nil, err
	}

	form := req.CloneParams()
	form.Set("nonce", nonce)
	signature := hmacHex(sha512.New, []byte(creds.Secret), []byte(form.Encode()))

	return &core.SignedRequest{
		URL:    cfg.URL(req.Endpoint),
		Method: "POST",
		Headers: map[string]string{
			"Key":  creds.Key,
			"Sign": signature,
		},
		Form: form,
	}, nil
}
