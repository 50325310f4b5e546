package signer

import (
	"crypto/sha512"
	"encoding/base64"

	"multex/pkg/core"
)

const (
	bitfinexURL     = "https://api.bitfinex.com"
	bitfinexVersion = "v1"
)

// BitfinexVersions tags the operations that only exist under one of the two
// Bitfinex API generations. Candle data is v2-only; the classic trading and
// account surface is v1-only. Everything else is version-neutral.
var BitfinexVersions = core.VersionTable{
	"v1": {
		core.OpGetBalance,
		core.OpPlaceOrder,
		core.OpCancelOrder,
		core.OpGetOrder,
		core.OpGetOpenOrders,
		core.OpGetOrderHistory,
		core.OpWithdraw,
		core.OpDeposit,
	},
	"v2": {
		core.OpGetCandles,
	},
}

// Bitfinex signs requests the v1 way: the JSON payload (parameters plus
// request path plus nonce) is base64-encoded, HMAC-SHA384 signed with the
// raw secret, and everything travels in headers. The payload header *is*
// the request body as far as the exchange is concerned.
type Bitfinex struct{}

// NewBitfinex creates the Bitfinex signing strategy.
func NewBitfinex() *Bitfinex {
	return &Bitfinex{}
}

func (Bitfinex) Exchange() string       { return "bitfinex" }
func (Bitfinex) DefaultBaseURL() string { return bitfinexURL }
func (Bitfinex) DefaultVersion() string { return bitfinexVersion }

func (s Bitfinex) Sign(req *core.Request, cfg *core.Config, creds *core.Credentials, nonce string) (*core.SignedRequest, error) {
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
			"X-BFX-APIKEY":    creds.Key,
			"X-BFX-SIGNATURE": signature,
			"X-BFX-PAYLOAD":   data,
		},
	}, nil
}
