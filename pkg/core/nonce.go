package core

import (
	"strconv"
	"sync"
	"time"
)

// NonceGenerator produces the strictly increasing numeric tokens embedded in
// signed requests. Exchanges reject replayed or non-monotonic nonces, so the
// guarantee must hold under concurrent callers.
//
// State is scoped to one client instance; monotonicity is only meaningful
// per credential pair.
type NonceGenerator struct {
	mu   sync.Mutex
	last int64
}

// NewNonceGenerator creates a generator whose first value derives from the
// current wall clock.
func NewNonceGenerator() *NonceGenerator {
	return &NonceGenerator{}
}

// Next returns a nonce strictly greater than every previously returned value
// from this generator. Values are microseconds since the Unix epoch; when
// the clock does not advance between calls (or steps backwards), the last
// value plus one is used instead. Next never fails.
func (g *NonceGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now().UnixMicro()
	if now <= g.last {
		now = g.last + 1
	}
	g.last = now
	return strconv.FormatInt(now, 10)
}
