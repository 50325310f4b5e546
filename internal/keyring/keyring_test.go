package keyring

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"multex/pkg/core"
)

func ringEntries() []*Entry {
	return []*Entry{
		{ID: "a", Credentials: core.Credentials{Key: "key-aaaa-0001", Secret: "s1"}},
		{ID: "b", Credentials: core.Credentials{Key: "key-bbbb-0002", Secret: "s2"}},
		{ID: "c", Credentials: core.Credentials{Key: "key-cccc-0003", Secret: "s3"}},
	}
}

func TestEmptyRing(t *testing.T) {
	r := New(nil, RotateRoundRobin)
	assert.Nil(t, r.Current())
	assert.Equal(t, 0, r.Len())

	// No-ops, must not panic.
	r.MarkUsed()
	r.OnError()
	r.Rotate()
}

func TestRoundRobinAdvancesOnUse(t *testing.T) {
	r := New(ringEntries(), RotateRoundRobin)

	first := r.Current()
	require.NotNil(t, first)
	assert.Equal(t, "s1", first.Secret)

	r.MarkUsed()
	assert.Equal(t, "s2", r.Current().Secret)
	r.MarkUsed()
	assert.Equal(t, "s3", r.Current().Secret)
	r.MarkUsed()
	assert.Equal(t, "s1", r.Current().Secret)
}

func TestOnErrorStrategyOnlyRotatesOnFailure(t *testing.T) {
	r := New(ringEntries(), RotateOnError)

	r.MarkUsed()
	assert.Equal(t, "s1", r.Current().Secret)

	r.OnError()
	assert.Equal(t, "s2", r.Current().Secret)
}

func TestDisableSkipsEntry(t *testing.T) {
	r := New(ringEntries(), RotateRoundRobin)
	r.Disable("a")

	assert.Equal(t, "s2", r.Current().Secret)

	r.Enable("a")
	assert.Equal(t, "s1", r.Current().Secret)
}

func TestAllDisabledYieldsNil(t *testing.T) {
	r := New(ringEntries(), RotateRoundRobin)
	for _, id := range []string{"a", "b", "c"} {
		r.Disable(id)
	}
	assert.Nil(t, r.Current())
}

func TestCurrentReturnsCopy(t *testing.T) {
	r := New(ringEntries(), RotateOnError)

	creds := r.Current()
	creds.Secret = "tampered"

	assert.Equal(t, "s1", r.Current().Secret)
}

func TestConcurrentRotation(t *testing.T) {
	r := New(ringEntries(), RotateRoundRobin)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				if c := r.Current(); c != nil {
					_ = c.Key
				}
				r.MarkUsed()
				r.OnError()
			}
		}()
	}
	wg.Wait()

	assert.NotNil(t, r.Current())
}

func TestMask(t *testing.T) {
	assert.Equal(t, "****", Mask("short"))
	assert.Equal(t, "key-****0001", Mask("key-aaaa-0001"))
}
