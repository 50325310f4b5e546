package creds

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"multex/pkg/core"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "creds.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, `
key: shadow
secret: cGFuZGE=
passphrase: pass123
`)

	creds, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "shadow", creds.Key)
	assert.Equal(t, "cGFuZGE=", creds.Secret)
	require.NotNil(t, creds.Passphrase)
	assert.Equal(t, "pass123", *creds.Passphrase)
	assert.Nil(t, creds.UserID)
	assert.True(t, creds.Complete())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.True(t, core.IsConfig(err))
}

func TestLoadRejectsEmptyIdentity(t *testing.T) {
	path := writeFile(t, `
key: shadow
secret: panda
user_id: ""
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, core.IsConfig(err))
	assert.Contains(t, err.Error(), "user_id")
}

func TestLoadAll(t *testing.T) {
	path := writeFile(t, `
kraken:
  key: shadow
  secret: cGFuZGE=
bitstamp:
  key: other
  secret: pair
  user_id: "1234"
`)

	all, err := LoadAll(path)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "shadow", all["kraken"].Key)
	require.NotNil(t, all["bitstamp"].UserID)
	assert.Equal(t, "1234", *all["bitstamp"].UserID)
}

func TestLoadAllStampsExchangeOnError(t *testing.T) {
	path := writeFile(t, `
bitstamp:
  key: other
  secret: pair
  user_id: ""
`)

	_, err := LoadAll(path)
	require.Error(t, err)
	assert.True(t, core.IsConfig(err))
	assert.Contains(t, err.Error(), "bitstamp")
}

func TestFromEnv(t *testing.T) {
	t.Setenv("TESTEX_KEY", "shadow")
	t.Setenv("TESTEX_SECRET", "panda")
	t.Setenv("TESTEX_USER_ID", "1234")

	creds, err := FromEnv("TESTEX")
	require.NoError(t, err)
	assert.Equal(t, "shadow", creds.Key)
	assert.Equal(t, "panda", creds.Secret)
	require.NotNil(t, creds.UserID)
	assert.Equal(t, "1234", *creds.UserID)
	assert.Nil(t, creds.Passphrase)
}

func TestFromEnvUnsetIsPartial(t *testing.T) {
	t.Setenv("HALFEX_KEY", "shadow")

	creds, err := FromEnv("HALFEX")
	require.NoError(t, err)
	assert.True(t, creds.Partial())
	assert.False(t, creds.Complete())
}

func TestFromEnvRejectsSetButEmpty(t *testing.T) {
	t.Setenv("BADEX_KEY", "shadow")
	t.Setenv("BADEX_SECRET", "")

	_, err := FromEnv("BADEX")
	require.Error(t, err)
	assert.True(t, core.IsConfig(err))
	assert.Contains(t, err.Error(), "BADEX_SECRET")

	t.Setenv("BADEX_SECRET", "panda")
	t.Setenv("BADEX_PASSPHRASE", "")
	_, err = FromEnv("BADEX")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BADEX_PASSPHRASE")
}
