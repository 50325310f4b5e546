package signer

import (
	"crypto/sha512"

	"multex/pkg/core"
)

const (
	bittrexURL     = "https://bittrex.com/api"
	bittrexVersion = "v1.1"
)

// Bittrex includes the complete request address in the HMAC-SHA512
// signature, so the address used for signing and the address used on the
// wire must be identical down to parameter order. The strategy therefore
// builds the query string by hand and returns that exact string as the
// transport URL.
type Bittrex struct{}

// NewBittrex creates the Bittrex signing strategy.
func NewBittrex() *Bittrex {
	return &Bittrex{}
}

func (Bittrex) Exchange() string       { return "bittrex" }
func (Bittrex) DefaultBaseURL() string { return bittrexURL }
func (Bittrex) DefaultVersion() string { return bittrexVersion }

func (s Bittrex) Sign(req *core.Request, cfg *core.Config, creds *core.Credentials, nonce string) (*core.SignedRequest, error) {
	if err := requireKeypair(s.Exchange(), creds); err != nil {
		return nil, err
	}

	address := cfg.URL(req.Endpoint) +
		"?apikey=" + creds.Key +
		"&nonce=" + nonce +
		"&" + req.Params.Encode()

	signature := hmacHex(sha512.New, []byte(creds.Secret), []byte(address))

	return &core.SignedRequest{
		URL:     address,
		Method:  req.Method,
		Headers: map[string]string{"apisign": signature},
	}, nil
}
