package signer

import (
	"crypto/sha256"
	"strings"

	"multex/pkg/core"
)

const bitstampURL = "https://www.bitstamp.net/api"

// Bitstamp signs nonce + customer id + API key with HMAC-SHA256 and sends
// the uppercase hex digest in the form body alongside key and nonce. It is
// the one scheme here that never looks at the endpoint or parameters when
// building the signature input.
type Bitstamp struct{}

// NewBitstamp creates the Bitstamp signing strategy.
func NewBitstamp() *Bitstamp {
	return &Bitstamp{}
}

func (Bitstamp) Exchange() string       { return "bitstamp" }
func (Bitstamp) DefaultBaseURL() string { return bitstampURL }

// DefaultVersion returns the empty string: Bitstamp paths carry no version segment.
func (Bitstamp) DefaultVersion() string { return "" }

func (s Bitstamp) Sign(req *core.Request, cfg *core.Config, creds *core.Credentials, nonce string) (*core.SignedRequest, error) {
	if err := requireKeypair(s.Exchange(), creds); err != nil {
		return nil, err
	}
	userID, err := identity(s.Exchange(), "user_id", creds.UserID)
	if err != nil {
		return nil, err
	}

	message := nonce + userID + creds.Key
	signature := strings.ToUpper(hmacHex(sha256.New, []byte(creds.Secret), []byte(message)))

	form := req.CloneParams()
	form.Set("key", creds.Key)
	form.Set("nonce", nonce)
	form.Set("signature", signature)

	return &core.SignedRequest{
		URL:    cfg.URL(req.Endpoint),
		Method: req.Method,
		Form:   form,
	}, nil
}
