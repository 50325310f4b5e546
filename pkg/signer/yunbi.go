package signer

import (
	"crypto/sha256"

	"multex/pkg/core"
)

const (
	yunbiURL     = "https://yunbi.com/api"
	yunbiVersion = "v2"
)

// Yunbi signs "METHOD|uri|encoded-query" with HMAC-SHA256 hex and appends
// the digest to the query string as a signature parameter. Nothing travels
// in headers; the query string carries the whole authentication.
type Yunbi struct{}

// NewYunbi creates the Yunbi signing strategy.
func NewYunbi() *Yunbi {
	return &Yunbi{}
}

func (Yunbi) Exchange() string       { return "yunbi" }
func (Yunbi) DefaultBaseURL() string { return yunbiURL }
func (Yunbi) DefaultVersion() string { return yunbiVersion }

func (s Yunbi) Sign(req *core.Request, cfg *core.Config, creds *core.Credentials, nonce string) (*core.SignedRequest, error) {
	if err := requireKeypair(s.Exchange(), creds); err != nil {
		return nil, err
	}

	query := req.CloneParams()
	query.Set("tonce", nonce)
	query.Set("access_key", creds.Key)
	encoded := query.Encode()

	message := req.Method + "|" + cfg.URI(req.Endpoint) + "|" + encoded
	signature := hmacHex(sha256.New, []byte(creds.Secret), []byte(message))

	return &core.SignedRequest{
		URL:    cfg.URL(req.Endpoint) + "?" + encoded + "&signature=" + signature,
		Method: req.Method,
	}, nil
}
