package signer

import (
	"crypto/sha512"

	"multex/pkg/core"
)

const (
	bterURL     = "http://data.bter.com/api"
	bterVersion = "1"
)

// Bter signs the url-encoded form (parameters plus nonce) with HMAC-SHA512
// hex, delivering the API key in the Key header and the digest in Sign.
// Same message shape as Poloniex; only the header layout differs.
type Bter struct{}

// NewBter creates the Bter signing strategy.
func NewBter() *Bter {
	return &Bter{}
}

func (Bter) Exchange() string       { return "bter" }
func (Bter) DefaultBaseURL() string { return bterURL }
func (Bter) DefaultVersion() string { return bterVersion }

func (s Bter) Sign(req *core.Request, cfg *core.Config, creds *core.Credentials, nonce string) (*core.SignedRequest, error) {
	if err := requireKeypair(s.Exchange(), creds); err != nil {
		return nil, err
	}

	form := req.CloneParams()
	form.Set("nonce", nonce)
	signature := hmacHex(sha512.New, []byte(creds.Secret), []byte(form.Encode()))

	return &core.SignedRequest{
		URL:    cfg.URL(req.Endpoint),
		Method: req.Method,
		Headers: map[string]string{
			"Key":  creds.Key,
			"Sign": signature,
		},
		Form: form,
	}, nil
}
