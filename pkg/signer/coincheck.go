package signer

import (
	"crypto/sha256"

	"multex/pkg/core"
)

const (
	coincheckURL     = "https://coincheck.com"
	coincheckVersion = "api"
)

// Coincheck signs nonce + URI + JSON body with HMAC-SHA256 hex and delivers
// the key, nonce and signature in ACCESS-* headers.
type Coincheck struct{}

// NewCoincheck creates the Coincheck signing strategy.
func NewCoincheck() *Coincheck {
	return &Coincheck{}
}

func (Coincheck) Exchange() string       { return "coincheck" }
func (Coincheck) DefaultBaseURL() string { return coincheckURL }
func (Coincheck) DefaultVersion() string { return coincheckVersion }

func (s Coincheck) Sign(req *core.Request, cfg *core.Config, creds *core.Credentials, nonce string) (*core.SignedRequest, error) {
	if err := requireKeypair(s.Exchange(), creds); err != nil {
		return nil, err
	}

	var body []byte
	var err error
	if req.Method != "GET" {
		body, err = marshalJSON(paramsMap(req.Params))
		if err != nil {
			return nil, core.NewCredentialsError(s.Exchange(), "marshal signature payload", err)
		}
	}

	message := nonce + cfg.URI(req.Endpoint) + string(body)
	signature := hmacHex(sha256.New, []byte(creds.Secret), []byte(message))

	return &core.SignedRequest{
		URL:    cfg.URL(req.Endpoint),
		Method: req.Method,
		Headers: map[string]string{
			"ACCESS-KEY":       creds.Key,
			"ACCESS-NONCE":     nonce,
			"ACCESS-SIGNATURE": signature,
			"Content-Type":     "application/json",
		},
		Body: body,
	}, nil
}
