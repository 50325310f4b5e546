package signer

import (
	"crypto/hmac"
	"encoding/base64"
	"encoding/hex"
	"hash"
	"net/url"

	"github.com/bytedance/sonic"

	"multex/pkg/core"
)

// requireKeypair fails with a credentials error when the key/secret pair is
// incomplete. Signing must never silently proceed without credentials.
func requireKeypair(exchange string, creds *core.Credentials) error {
	if !creds.Complete() {
		return core.NewCredentialsError(exchange, "signing requires both key and secret", nil)
	}
	return nil
}

// identity extracts a required identity field, failing with a credentials
// error when it is unset.
func identity(exchange, name string, value *string) (string, error) {
	if value == nil || *value == "" {
		return "", core.NewCredentialsError(exchange, "signing requires the "+name+" identity field", nil)
	}
	return *value, nil
}

// decodeSecret base64-decodes a secret stored encoded at rest (Kraken,
// Coinbase, Cryptopia). A malformed secret is a credentials error: the
// exchange would reject the resulting signature as an authentication
// failure, so fail locally instead.
func decodeSecret(exchange, secret string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(secret)
	if err != nil {
		return nil, core.NewCredentialsError(exchange, "secret is not valid base64", err)
	}
	return raw, nil
}

func hmacSum(newHash func() hash.Hash, key, message []byte) []byte {
	mac := hmac.New(newHash, key)
	mac.Write(message)
	return mac.Sum(nil)
}

// hmacHex returns the hex-encoded HMAC digest of message under key.
func hmacHex(newHash func() hash.Hash, key, message []byte) string {
	return hex.EncodeToString(hmacSum(newHash, key, message))
}

// hmacBase64 returns the base64-encoded HMAC digest of message under key.
func hmacBase64(newHash func() hash.Hash, key, message []byte) string {
	return base64.StdEncoding.EncodeToString(hmacSum(newHash, key, message))
}

// paramsMap flattens url.Values to a single-valued map for JSON payloads.
func paramsMap(params url.Values) map[string]string {
	out := make(map[string]string, len(params))
	for k := range params {
		out[k] = params.Get(k)
	}
	return out
}

// marshalJSON serializes signing payloads with sorted map keys so repeated
// invocations produce byte-identical signature input.
func marshalJSON(v any) ([]byte, error) {
	return sonic.ConfigStd.Marshal(v)
}
