package signer

import (
	"crypto/sha512"
	"encoding/base64"

	"multex/pkg/core"
)

const (
	geminiURL     = "https://api.gemini.com"
	geminiVersion = "v1"
)

// Gemini follows the same header-payload convention as Bitfinex v1: a
// base64-encoded JSON payload carrying the parameters, request path and
// nonce, HMAC-SHA384 hex signed with the raw secret.
type Gemini struct{}

// NewGemini creates the Gemini signing strategy.
func NewGemini() *Gemini {
	return &Gemini{}
}

func (Gemini) Exchange() string       { return "gemini" }
func (Gemini) DefaultBaseURL() string { return geminiURL }
func (Gemini) DefaultVersion() string { return geminiVersion }

func (s Gemini) Sign(req *core.Request, cfg *core.Config, creds *core.Credentials, nonce string) (*core.SignedRequest, error) {
	if err := requireKeypair(s.Exchange(), creds); err != nil {
		return nil, err
	}

	payload := paramsMap(req.Params)
	payload["request"] = cfg.URI(req.Endpoint)
	payload["nonce"] = nonce

	js, err := marshalJSON(payload)
	if err != nil {
		return nil, core.NewCredentialsError(s.Exchange(), "marshal signature payload", err)
	}
	data := base64.StdEncoding.EncodeToString(js)
	signature := hmacHex(sha512.New384, []byte(creds.Secret), []byte(data))

	return &core.SignedRequest{
		URL:    cfg.URL(req.Endpoint),
		Method: req.Method,
		Headers: map[string]string{
			"X-GEMINI-APIKEY":    creds.Key,
			"X-GEMINI-PAYLOAD":   data,
			"X-GEMINI-SIGNATURE": signature,
		},
	}, nil
}
