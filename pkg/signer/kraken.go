package signer

import (
	"crypto/sha256"
	"crypto/sha512"

	"multex/pkg/core"
)

const (
	krakenURL     = "https://api.kraken.com"
	krakenVersion = "0"
)

// Kraken signs with HMAC-SHA512 over the URI path concatenated with
// SHA256(nonce + encoded form). The secret is base64-decoded before use and
// the digest travels base64-encoded in the API-Sign header. The nonce rides
// both in the signature input and in the form body, so the two must come
// from the same generator call.
type Kraken struct{}

// NewKraken creates the Kraken signing strategy.
func NewKraken() *Kraken {
	return &Kraken{}
}

func (Kraken) Exchange() string       { return "kraken" }
func (Kraken) DefaultBaseURL() string { return krakenURL }
func (Kraken) DefaultVersion() string { return krakenVersion }

func (s Kraken) Sign(req *core.Request, cfg *core.Config, creds *core.Credentials, nonce string) (*core.SignedRequest, error) {
	if err := requireKeypair(s.Exchange(), creds); err != nil {
		return nil, err
	}
	secret, err := decodeSecret(s.Exchange(), creds.Secret)
	if err != nil {
		return nil, err
	}

	form := req.CloneParams()
	form.Set("nonce", nonce)
	postdata := form.Encode()

	inner := sha256.Sum256([]byte(nonce + postdata))
	message := append([]byte(cfg.URI(req.Endpoint)), inner[:]...)
	signature := hmacBase64(sha512.New, secret, message)

	return &core.SignedRequest{
		URL:    cfg.URL(req.Endpoint),
		Method: req.Method,
		Headers: map[string]string{
			"API-Key":  creds.Key,
			"API-Sign": signature,
		},
		Form: form,
	}, nil
}
