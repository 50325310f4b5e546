package signer

import (
	"crypto/sha256"

	"multex/pkg/core"
)

const coinbaseURL = "https://api.gdax.com"

// Coinbase signs timestamp + method + path + body with HMAC-SHA256 under the
// base64-decoded secret and places the base64 digest in CB-ACCESS-SIGN. The
// caller-supplied nonce doubles as the CB-ACCESS-TIMESTAMP value so the
// signature input and the header can never disagree. A passphrase identity
// field is mandatory.
type Coinbase struct{}

// NewCoinbase creates the Coinbase signing strategy.
func NewCoinbase() *Coinbase {
	return &Coinbase{}
}

func (Coinbase) Exchange() string       { return "coinbase" }
func (Coinbase) DefaultBaseURL() string { return coinbaseURL }
func (Coinbase) DefaultVersion() string { return "" }

func (s Coinbase) Sign(req *core.Request, cfg *core.Config, creds *core.Credentials, nonce string) (*core.SignedRequest, error) {
	if err := requireKeypair(s.Exchange(), creds); err != nil {
		return nil, err
	}
	passphrase, err := identity(s.Exchange(), "passphrase", creds.Passphrase)
	if err != nil {
		return nil, err
	}
	secret, err := decodeSecret(s.Exchange(), creds.Secret)
	if err != nil {
		return nil, err
	}

	path := cfg.URI(req.Endpoint)
	address := cfg.URL(req.Endpoint)

	var body []byte
	switch req.Method {
	case "GET", "DELETE":
		if len(req.Params) > 0 {
			query := req.Params.Encode()
			path += "?" + query
			address += "?" + query
		}
	default:
		body, err = marshalJSON(paramsMap(req.Params))
		if err != nil {
			return nil, core.NewCredentialsError(s.Exchange(), "marshal signature payload", err)
		}
	}

	message := nonce + req.Method + path + string(body)
	signature := hmacBase64(sha256.New, secret, []byte(message))

	return &core.SignedRequest{
		URL:    address,
		Method: req.Method,
		Headers: map[string]string{
			"CB-ACCESS-KEY":        creds.Key,
			"CB-ACCESS-SIGN":       signature,
			"CB-ACCESS-TIMESTAMP":  nonce,
			"CB-ACCESS-PASSPHRASE": passphrase,
			"Content-Type":         "application/json",
		},
		Body: body,
	}, nil
}
