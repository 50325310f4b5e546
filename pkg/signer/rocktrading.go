package signer

import (
	"crypto/sha512"

	"multex/pkg/core"
)

const (
	rocktradingURL     = "https://api.therocktrading.com"
	rocktradingVersion = "v1"
)

// RockTrading signs nonce + full request address with HMAC-SHA384 hex and
// sends key, nonce and signature in X-TRT-* headers. Parameters travel as a
// JSON body.
type RockTrading struct{}

// NewRockTrading creates the Rock Trading signing strategy.
func NewRockTrading() *RockTrading {
	return &RockTrading{}
}

func (RockTrading) Exchange() string       { return "rocktrading" }
func (RockTrading) DefaultBaseURL() string { return rocktradingURL }
func (RockTrading) DefaultVersion() string { return rocktradingVersion }

func (s RockTrading) Sign(req *core.Request, cfg *core.Config, creds *core.Credentials, nonce string) (*core.SignedRequest, error) {
	if err := requireKeypair(s.Exchange(), creds); err != nil {
		return nil, err
	}

	address := cfg.URL(req.Endpoint)
	signature := hmacHex(sha512.New384, []byte(creds.Secret), []byte(nonce+address))

	var body []byte
	var err error
	if req.Method != "GET" && len(req.Params) > 0 {
		body, err = marshalJSON(paramsMap(req.Params))
		if err != nil {
			return nil, core.NewCredentialsError(s.Exchange(), "marshal signature payload", err)
		}
	}

	return &core.SignedRequest{
		URL:    address,
		Method: req.Method,
		Headers: map[string]string{
			"X-TRT-APIKEY":    creds.Key,
			"X-TRT-Nonce":     nonce,
			"X-TRT-SIGNATURE": signature,
			"Content-Type":    "application/json",
		},
		Body: body,
	}, nil
}
