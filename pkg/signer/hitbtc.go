package signer

import (
	"crypto/sha512"

	"multex/pkg/core"
)

const (
	hitbtcURL     = "https://api.hitbtc.com/api"
	hitbtcVersion = "1"
)

// HitBTC signs the path-plus-query string (including the apikey and nonce
// query parameters) with HMAC-SHA512 hex. The signed string must be reused
// verbatim as the request target, so the strategy returns the assembled
// address rather than rebuilding it at transport time.
type HitBTC struct{}

// NewHitBTC creates the HitBTC signing strategy.
func NewHitBTC() *HitBTC {
	return &HitBTC{}
}

func (HitBTC) Exchange() string       { return "hitbtc" }
func (HitBTC) DefaultBaseURL() string { return hitbtcURL }
func (HitBTC) DefaultVersion() string { return hitbtcVersion }

func (s HitBTC) Sign(req *core.Request, cfg *core.Config, creds *core.Credentials, nonce string) (*core.SignedRequest, error) {
	if err := requireKeypair(s.Exchange(), creds); err != nil {
		return nil, err
	}

	query := req.CloneParams()
	query.Set("apikey", creds.Key)
	query.Set("nonce", nonce)
	uri := cfg.URI(req.Endpoint) + "?" + query.Encode()
	signature := hmacHex(sha512.New, []byte(creds.Secret), []byte(uri))

	return &core.SignedRequest{
		URL:     cfg.URL(req.Endpoint) + "?" + query.Encode(),
		Method:  req.Method,
		Headers: map[string]string{"Api-Signature": signature},
	}, nil
}
