package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig("kraken")

	assert.Equal(t, "kraken", config.Exchange)
	assert.Equal(t, 10*time.Second, config.Timeout)
	assert.Equal(t, "info", config.LogLevel)
	assert.Empty(t, config.BaseURL)
	assert.Empty(t, config.Version)
	assert.Nil(t, config.Credentials)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name:    "valid_default",
			config:  DefaultConfig("kraken"),
			wantErr: false,
		},
		{
			name: "missing_exchange",
			config: &Config{
				Timeout: 10 * time.Second,
			},
			wantErr: true,
		},
		{
			name: "invalid_timeout",
			config: &Config{
				Exchange: "kraken",
				Timeout:  -1 * time.Second,
			},
			wantErr: true,
		},
		{
			name: "invalid_base_url",
			config: &Config{
				Exchange: "kraken",
				BaseURL:  "not a url",
				Timeout:  10 * time.Second,
			},
			wantErr: true,
		},
		{
			name: "empty_identity_field",
			config: DefaultConfig("bitstamp").WithCredentials(&Credentials{
				Key:    "shadow",
				Secret: "panda",
				UserID: strptr(""),
			}),
			wantErr: true,
		},
		{
			name: "unset_identity_field",
			config: DefaultConfig("bitstamp").WithCredentials(&Credentials{
				Key:    "shadow",
				Secret: "panda",
			}),
			wantErr: false,
		},
		{
			name: "partial_credentials_not_an_error",
			config: DefaultConfig("kraken").WithCredentials(&Credentials{
				Key: "shadow",
			}),
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsConfig(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCredentials_Complete(t *testing.T) {
	assert.False(t, (*Credentials)(nil).Complete())
	assert.False(t, (&Credentials{Key: "shadow"}).Complete())
	assert.False(t, (&Credentials{Secret: "panda"}).Complete())
	assert.True(t, (&Credentials{Key: "shadow", Secret: "panda"}).Complete())
}

func TestCredentials_Partial(t *testing.T) {
	assert.False(t, (*Credentials)(nil).Partial())
	assert.False(t, (&Credentials{}).Partial())
	assert.True(t, (&Credentials{Key: "shadow"}).Partial())
	assert.True(t, (&Credentials{Secret: "panda"}).Partial())
	assert.False(t, (&Credentials{Key: "shadow", Secret: "panda"}).Partial())
}

func TestCredentials_Clone(t *testing.T) {
	creds := &Credentials{
		Key:        "shadow",
		Secret:     "panda",
		Passphrase: strptr("hunter2"),
	}

	clone := creds.Clone()
	require.NotNil(t, clone)
	assert.Equal(t, creds, clone)

	*clone.Passphrase = "changed"
	assert.Equal(t, "hunter2", *creds.Passphrase)
}

func TestConfig_URI(t *testing.T) {
	tests := []struct {
		name     string
		version  string
		endpoint string
		want     string
	}{
		{"with_version", "v2", "market", "/v2/market"},
		{"numeric_version", "0", "private/Balance", "/0/private/Balance"},
		{"empty_version", "", "ticker", "/ticker"},
		{"leading_slash_trimmed", "v1", "/balances", "/v1/balances"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Exchange: "testex", Version: tt.version}
			assert.Equal(t, tt.want, cfg.URI(tt.endpoint))
		})
	}
}

func TestConfig_URL(t *testing.T) {
	cfg := &Config{
		Exchange: "testex",
		BaseURL:  "http://some.api.com",
		Version:  "v2",
	}
	assert.Equal(t, "http://some.api.com/v2/market", cfg.URL("market"))

	cfg.BaseURL = "http://some.api.com/"
	assert.Equal(t, "http://some.api.com/v2/market", cfg.URL("market"))
}

func TestConfig_Clone(t *testing.T) {
	cfg := DefaultConfig("kraken").WithCredentials(&Credentials{Key: "shadow", Secret: "panda"})

	clone := cfg.Clone()
	clone.Credentials.Secret = "changed"

	assert.Equal(t, "panda", cfg.Credentials.Secret)
}
