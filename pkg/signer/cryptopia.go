package signer

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/base64"
	"net/url"
	"strings"

	"multex/pkg/core"
)

const cryptopiaURL = "https://www.cryptopia.co.nz/api"

// Cryptopia uses an AMX-style authorization header: the signature input is
// key + "POST" + lowercased url-encoded address + nonce + base64(MD5(body)),
// HMAC-SHA256 signed under the base64-decoded secret. Every private call is
// a POST with a JSON body.
type Cryptopia struct{}

// NewCryptopia creates the Cryptopia signing strategy.
func NewCryptopia() *Cryptopia {
	return &Cryptopia{}
}

func (Cryptopia) Exchange() string       { return "cryptopia" }
func (Cryptopia) DefaultBaseURL() string { return cryptopiaURL }
func (Cryptopia) DefaultVersion() string { return "" }

func (s Cryptopia) Sign(req *core.Request, cfg *core.Config, creds *core.Credentials, nonce string) (*core.SignedRequest, error) {
	if err := requireKeypair(s.Exchange(), creds); err != nil {
		return nil, err
	}
	secret, err := decodeSecret(s.Exchange(), creds.Secret)
	if err != nil {
		return nil, err
	}

	body, err := marshalJSON(paramsMap(req.Params))
	if err != nil {
		return nil, core.NewCredentialsError(s.Exchange(), "marshal signature payload", err)
	}
	bodySum := md5.Sum(body)
	bodyDigest := base64.StdEncoding.EncodeToString(bodySum[:])

	address := cfg.URL(req.Endpoint)
	message := creds.Key + "POST" + strings.ToLower(url.QueryEscape(address)) + nonce + bodyDigest
	signature := hmacBase64(sha256.New, secret, []byte(message))

	return &core.SignedRequest{
		URL:    address,
		Method: "POST",
		Headers: map[string]string{
			"Authorization": "amx" + creds.Key + ":" + signature + ":" + nonce,
			"Content-Type":  "application/json",
		},
		Body: body,
	}, nil
}
