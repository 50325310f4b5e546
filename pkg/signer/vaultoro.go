package signer

import (
	"crypto/sha256"

	"multex/pkg/core"
)

const vaultoroURL = "https://api.vaultoro.com"

// Vaultoro appends apikey and nonce to the query string, signs the complete
// address with HMAC-SHA256 hex and sends only the digest in the X-Signature
// header. The signed address is the wire address.
type Vaultoro struct{}

// NewVaultoro creates the Vaultoro signing strategy.
func NewVaultoro() *Vaultoro {
	return &Vaultoro{}
}

func (Vaultoro) Exchange() string       { return "vaultoro" }
func (Vaultoro) DefaultBaseURL() string { return vaultoroURL }
func (Vaultoro) DefaultVersion() string { return "" }

func (s Vaultoro) Sign(req *core.Request, cfg *core.Config, creds *core.Credentials, nonce string) (*core.SignedRequest, error) {
	if err := requireKeypair(s.Exchange(), creds); err != nil {
		return nil, err
	}

	query := req.CloneParams()
	query.Set("apikey", creds.Key)
	query.Set("nonce", nonce)
	address := cfg.URL(req.Endpoint) + "?" + query.Encode()
	signature := hmacHex(sha256.New, []byte(creds.Secret), []byte(address))

	return &core.SignedRequest{
		URL:     address,
		Method:  req.Method,
		Headers: map[string]string{"X-Signature": signature},
	}, nil
}
