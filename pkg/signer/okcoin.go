package signer

import (
	"crypto/sha256"

	"multex/pkg/core"
)

const (
	okcoinURL     = "https://www.okcoin.com/api"
	okcoinVersion = "v1"
)

// OKCoin signs nonce + full request address with HMAC-SHA256 hex and sends
// key, nonce and signature in ACCESS-* headers.
type OKCoin struct{}

// NewOKCoin creates the OKCoin signing strategy.
func NewOKCoin() *OKCoin {
	return &OKCoin{}
}

func (OKCoin) Exchange() string       { return "okcoin" }
func (OKCoin) DefaultBaseURL() string { return okcoinURL }
func (OKCoin) DefaultVersion() string { return okcoinVersion }

func (s OKCoin) Sign(req *core.Request, cfg *core.Config, creds *core.Credentials, nonce string) (*core.SignedRequest, error) {
	if err := requireKeypair(s.Exchange(), creds); err != nil {
		return nil, err
	}

	address := cfg.URL(req.Endpoint)
	signature := hmacHex(sha256.New, []byte(creds.Secret), []byte(nonce+address))

	signed := &core.SignedRequest{
		URL:    address,
		Method: req.Method,
		Headers: map[string]string{
			"ACCESS-KEY":       creds.Key,
			"ACCESS-NONCE":     nonce,
			"ACCESS-SIGNATURE": signature,
		},
	}
	if req.Method == "POST" {
		signed.Form = req.CloneParams()
	}
	return signed, nil
}
