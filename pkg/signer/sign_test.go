package signer

import (
	"crypto/sha256"
	"crypto/sha512"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"multex/pkg/core"
)

const testNonce = "1609459200000000"

func strptr(s string) *string { return &s }

// fullCreds carries every identity field so all strategies can sign. The
// secret decodes to "panda" for the strategies that base64-decode it and is
// used verbatim everywhere else.
func fullCreds() *core.Credentials {
	return &core.Credentials{
		Key:        "shadow",
		Secret:     "cGFuZGE=",
		UserID:     strptr("1234"),
		Passphrase: strptr("pass123"),
		ClientID:   strptr("1234"),
	}
}

func testConfig(s Signer) *core.Config {
	cfg := core.DefaultConfig(s.Exchange())
	cfg.BaseURL = s.DefaultBaseURL()
	cfg.Version = s.DefaultVersion()
	return cfg
}

func TestBitstampSignature(t *testing.T) {
	s := NewBitstamp()
	creds := &core.Credentials{Key: "shadow", Secret: "panda", UserID: strptr("1234")}
	req := core.NewRequest(core.OpGetBalance, "POST", "balance")

	signed, err := s.Sign(req, testConfig(s), creds, testNonce)
	require.NoError(t, err)

	assert.Equal(t, "https://www.bitstamp.net/api/balance", signed.URL)
	assert.Equal(t, "shadow", signed.Form.Get("key"))
	assert.Equal(t, testNonce, signed.Form.Get("nonce"))
	assert.Equal(t,
		"AD49D371D798BBD44038364A32EF919D72ED063B2C25ABFAE01FED5FD9DAD0E6",
		signed.Form.Get("signature"))
	assert.Empty(t, signed.Headers)
}

func TestKrakenSignature(t *testing.T) {
	s := NewKraken()
	creds := &core.Credentials{Key: "shadow", Secret: "cGFuZGE="}
	req := core.NewRequest(core.OpGetBalance, "POST", "private/Balance").
		SetParam("pair", "XXBTZUSD")

	signed, err := s.Sign(req, testConfig(s), creds, testNonce)
	require.NoError(t, err)

	assert.Equal(t, "https://api.kraken.com/0/private/Balance", signed.URL)
	assert.Equal(t, "shadow", signed.Headers["API-Key"])
	assert.Equal(t,
		"Ti8XYf9bniQ0eq/OADz2QNXIPUu/AcraFPQswFMxKP5y4MQcbCSndrQw6NyiWLk4N9/MKTJHFIG0Lgt7mE8qEA==",
		signed.Headers["API-Sign"])
	assert.Equal(t, testNonce, signed.Form.Get("nonce"))
	assert.Equal(t, "XXBTZUSD", signed.Form.Get("pair"))
}

func TestBitfinexSignature(t *testing.T) {
	s := NewBitfinex()
	creds := &core.Credentials{Key: "shadow", Secret: "panda"}
	req := core.NewRequest(core.OpGetBalance, "POST", "balances").
		SetParam("symbol", "btcusd")

	signed, err := s.Sign(req, testConfig(s), creds, testNonce)
	require.NoError(t, err)

	assert.Equal(t, "https://api.bitfinex.com/v1/balances", signed.URL)
	assert.Equal(t, "shadow", signed.Headers["X-BFX-APIKEY"])
	assert.Equal(t,
		"eyJub25jZSI6IjE2MDk0NTkyMDAwMDAwMDAiLCJyZXF1ZXN0IjoiL3YxL2JhbGFuY2VzIiwic3ltYm9sIjoiYnRjdXNkIn0=",
		signed.Headers["X-BFX-PAYLOAD"])
	assert.Equal(t,
		"26738d5c6abe26c69691550dff13172ad26658662e7e1d6bf2ef0113f1f952d9dac355d93dc8b26696979f9897995be3",
		signed.Headers["X-BFX-SIGNATURE"])
	assert.False(t, signed.HasBody())
}

func TestCoinbaseSignature(t *testing.T) {
	s := NewCoinbase()
	creds := &core.Credentials{Key: "shadow", Secret: "cGFuZGE=", Passphrase: strptr("pass123")}
	req := core.NewRequest(core.OpGetBalance, "GET", "accounts")

	signed, err := s.Sign(req, testConfig(s), creds, testNonce)
	require.NoError(t, err)

	assert.Equal(t, "https://api.gdax.com/accounts", signed.URL)
	assert.Equal(t, "gS27+I886TEdMahgd2B8/6Ux+jBN0yj7xJ2bYX+M8bo=", signed.Headers["CB-ACCESS-SIGN"])
	assert.Equal(t, testNonce, signed.Headers["CB-ACCESS-TIMESTAMP"])
	assert.Equal(t, "pass123", signed.Headers["CB-ACCESS-PASSPHRASE"])
}

func TestPoloniexSignature(t *testing.T) {
	s := NewPoloniex()
	creds := &core.Credentials{Key: "shadow", Secret: "panda"}
	req := core.NewRequest(core.OpGetBalance, "POST", "tradingApi").
		SetParam("command", "returnBalances")

	signed, err := s.Sign(req, testConfig(s), creds, testNonce)
	require.NoError(t, err)

	assert.Equal(t, "POST", signed.Method)
	assert.Equal(t,
		"393b8673a9ed852b56cbf2116f4db40969a8297000f4d6076dc70478a9b8d6d780a703a86f555e920e115f81ba0160b8309a794b246d91b5d0ee68a806c38e39",
		signed.Headers["Sign"])
}

func TestBterSignature(t *testing.T) {
	s := NewBter()
	creds := &core.Credentials{Key: "shadow", Secret: "panda"}
	req := core.NewRequest(core.OpGetBalance, "POST", "private/getfunds").
		SetParam("pair", "btc_usd")

	signed, err := s.Sign(req, testConfig(s), creds, testNonce)
	require.NoError(t, err)

	assert.Equal(t, "http://data.bter.com/api/1/private/getfunds", signed.URL)
	assert.Equal(t, "shadow", signed.Headers["Key"])
	assert.Equal(t,
		"708209b64055d660dec14a238267ffd7dc021cf484d2c21c0628b1e9fd023305"+
			"441482e5c542fff778b976d1213e5e7a3aace04dc4157db649e5ea4e5b64c4e6",
		signed.Headers["Sign"])
	assert.Equal(t, testNonce, signed.Form.Get("nonce"))
}

func TestYunbiSignatureInQuery(t *testing.T) {
	s := NewYunbi()
	creds := &core.Credentials{Key: "shadow", Secret: "panda"}
	req := core.NewRequest(core.OpGetBalance, "GET", "members/me")

	signed, err := s.Sign(req, testConfig(s), creds, testNonce)
	require.NoError(t, err)

	assert.Empty(t, signed.Headers)
	assert.Equal(t,
		"https://yunbi.com/api/v2/members/me?access_key=shadow&tonce="+testNonce+
			"&signature=a10b7a81b8fa521af4e535ee04b2b2d8208efbf421893e4e39a4d3832b196f14",
		signed.URL)
}

func TestSignRequiresKeypair(t *testing.T) {
	for _, name := range Builtin().Names() {
		t.Run(name, func(t *testing.T) {
			s, err := Builtin().Get(name)
			require.NoError(t, err)

			req := core.NewRequest(core.OpGetBalance, "POST", "balance")
			_, err = s.Sign(req, testConfig(s), &core.Credentials{}, testNonce)
			require.Error(t, err)
			assert.True(t, core.IsCredentials(err))

			_, err = s.Sign(req, testConfig(s), &core.Credentials{Key: "shadow"}, testNonce)
			require.Error(t, err)
			assert.True(t, core.IsCredentials(err))
		})
	}
}

func TestSignDeterministic(t *testing.T) {
	for _, name := range Builtin().Names() {
		t.Run(name, func(t *testing.T) {
			s, err := Builtin().Get(name)
			require.NoError(t, err)

			req := core.NewRequest(core.OpPlaceOrder, "POST", "order/new").
				SetParam("pair", "btcusd").
				SetParam("amount", "0.5")

			first, err := s.Sign(req, testConfig(s), fullCreds(), testNonce)
			require.NoError(t, err)
			second, err := s.Sign(req, testConfig(s), fullCreds(), testNonce)
			require.NoError(t, err)

			assert.Equal(t, first, second)
		})
	}
}

func TestSignDoesNotMutateRequest(t *testing.T) {
	for _, name := range Builtin().Names() {
		t.Run(name, func(t *testing.T) {
			s, err := Builtin().Get(name)
			require.NoError(t, err)

			req := core.NewRequest(core.OpPlaceOrder, "POST", "order/new").
				SetParam("pair", "btcusd")

			_, err = s.Sign(req, testConfig(s), fullCreds(), testNonce)
			require.NoError(t, err)

			assert.Equal(t, "pair=btcusd", req.Params.Encode())
			assert.Equal(t, "order/new", req.Endpoint)
		})
	}
}

// The exchanges that sign the full address must return the exact bytes they
// signed, or parameter reordering at transport time would invalidate the
// signature.
func TestAddressSignersReturnSignedAddress(t *testing.T) {
	req := core.NewRequest(core.OpGetOpenOrders, "GET", "market/getopenorders").
		SetParam("market", "BTC-LTC")

	t.Run("bittrex", func(t *testing.T) {
		s := NewBittrex()
		signed, err := s.Sign(req, testConfig(s), fullCreds(), testNonce)
		require.NoError(t, err)
		assert.Equal(t, hmacHex(sha512.New, []byte("cGFuZGE="), []byte(signed.URL)),
			signed.Headers["apisign"])
	})

	t.Run("vaultoro", func(t *testing.T) {
		s := NewVaultoro()
		signed, err := s.Sign(req, testConfig(s), fullCreds(), testNonce)
		require.NoError(t, err)
		assert.Equal(t, hmacHex(sha256.New, []byte("cGFuZGE="), []byte(signed.URL)),
			signed.Headers["X-Signature"])
	})

	t.Run("hitbtc", func(t *testing.T) {
		s := NewHitBTC()
		signed, err := s.Sign(req, testConfig(s), fullCreds(), testNonce)
		require.NoError(t, err)

		uri := strings.TrimPrefix(signed.URL, s.DefaultBaseURL())
		assert.Equal(t, hmacHex(sha512.New, []byte("cGFuZGE="), []byte(uri)),
			signed.Headers["Api-Signature"])
	})
}

func TestIdentityFieldRequired(t *testing.T) {
	cases := []struct {
		signer Signer
		field  string
	}{
		{NewBitstamp(), "user_id"},
		{NewCoinbase(), "passphrase"},
		{NewQuadriga(), "client_id"},
	}
	for _, tc := range cases {
		t.Run(tc.signer.Exchange(), func(t *testing.T) {
			req := core.NewRequest(core.OpGetBalance, "POST", "balance")
			creds := &core.Credentials{Key: "shadow", Secret: "cGFuZGE="}

			_, err := tc.signer.Sign(req, testConfig(tc.signer), creds, testNonce)
			require.Error(t, err)
			assert.True(t, core.IsCredentials(err))
			assert.Contains(t, err.Error(), tc.field)
		})
	}
}

func TestMalformedBase64Secret(t *testing.T) {
	for _, s := range []Signer{NewKraken(), NewCoinbase(), NewCryptopia()} {
		t.Run(s.Exchange(), func(t *testing.T) {
			req := core.NewRequest(core.OpGetBalance, "POST", "balance")
			creds := fullCreds()
			creds.Secret = "not-base64!!!"

			_, err := s.Sign(req, testConfig(s), creds, testNonce)
			require.Error(t, err)
			assert.True(t, core.IsCredentials(err))
		})
	}
}

func TestBTCEMethodRouting(t *testing.T) {
	s := NewBTCE()
	req := core.NewRequest(core.OpPlaceOrder, "POST", "tapi/Trade").
		SetParam("pair", "btc_usd")

	signed, err := s.Sign(req, testConfig(s), fullCreds(), testNonce)
	require.NoError(t, err)

	assert.Equal(t, "https://btc-e.com/api/3/tapi", signed.URL)
	assert.Equal(t, "Trade", signed.Form.Get("method"))
	assert.Equal(t, testNonce, signed.Form.Get("nonce"))
	assert.NotEmpty(t, signed.Headers["Sign"])
}

func TestQuoineJWTStructure(t *testing.T) {
	s := NewQuoine()
	req := core.NewRequest(core.OpGetOpenOrders, "GET", "orders").
		SetParam("status", "live")

	signed, err := s.Sign(req, testConfig(s), fullCreds(), testNonce)
	require.NoError(t, err)

	assert.Equal(t, "https://api.quoine.com/orders?status=live", signed.URL)
	assert.Equal(t, "2", signed.Headers["X-Quoine-API-Version"])

	token := signed.Headers["X-Quoine-Auth"]
	assert.Equal(t, 3, len(strings.Split(token, ".")))
}
