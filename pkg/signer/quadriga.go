package signer

import (
	"crypto/sha256"

	"multex/pkg/core"
)

const (
	quadrigaURL     = "https://api.quadrigacx.com"
	quadrigaVersion = "v2"
)

// Quadriga signs nonce + client id + API key with HMAC-SHA256 hex, exactly
// the Bitstamp message shape but keyed to a client_id identity field and
// delivered in headers instead of the form body.
type Quadriga struct{}

// NewQuadriga creates the QuadrigaCX signing strategy.
func NewQuadriga() *Quadriga {
	return &Quadriga{}
}

func (Quadriga) Exchange() string       { return "quadriga" }
func (Quadriga) DefaultBaseURL() string { return quadrigaURL }
func (Quadriga) DefaultVersion() string { return quadrigaVersion }

func (s Quadriga) Sign(req *core.Request, cfg *core.Config, creds *core.Credentials, nonce string) (*core.SignedRequest, error) {
	if err := requireKeypair(s.Exchange(), creds); err != nil {
		return nil, err
	}
	clientID, err := identity(s.Exchange(), "client_id", creds.ClientID)
	if err != nil {
		return nil, err
	}

	message := nonce + clientID + creds.Key
	signature := hmacHex(sha256.New, []byte(creds.Secret), []byte(message))

	return &core.SignedRequest{
		URL:    cfg.URL(req.Endpoint),
		Method: req.Method,
		Headers: map[string]string{
			"key":       creds.Key,
			"signature": signature,
			"nonce":     nonce,
		},
		Form: req.CloneParams(),
	}, nil
}
