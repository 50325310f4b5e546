// Package keyring rotates between multiple credential sets for one
// exchange, so heavy private workloads can spread across API keys.
package keyring

import (
	"fmt"
	"sync"
	"time"

	"multex/pkg/core"
)

// Strategy controls when the ring advances to the next credential set.
type Strategy int

const (
	// RotateRoundRobin advances after every use.
	RotateRoundRobin Strategy = iota
	// RotateOnError advances only when a request fails.
	RotateOnError
)

// Entry is one credential set with its usage bookkeeping.
type Entry struct {
	ID          string
	Credentials core.Credentials
	Disabled    bool
	LastUsed    time.Time
	ErrorCount  int
}

// Ring is a thread-safe rotation over credential entries.
type Ring struct {
	mu       sync.RWMutex
	entries  []*Entry
	current  int
	strategy Strategy
}

// New copies the given entries into a ring. Entries may be nil or empty; an
// empty ring always yields nil credentials.
func New(entries []*Entry, strategy Strategy) *Ring {
	copied := make([]*Entry, len(entries))
	for i, e := range entries {
		clone := *e
		clone.Credentials = *e.Credentials.Clone()
		copied[i] = &clone
	}
	return &Ring{entries: copied, strategy: strategy}
}

// Current returns a copy of the active credentials, skipping disabled
// entries. Nil when the ring is empty or fully disabled.
func (r *Ring) Current() *core.Credentials {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.entries {
		idx := (r.current + i) % len(r.entries)
		if !r.entries[idx].Disabled {
			return r.entries[idx].Credentials.Clone()
		}
	}
	return nil
}

// MarkUsed records a successful use of the active entry and, under
// round-robin, advances the ring.
func (r *Ring) MarkUsed() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.entries) == 0 {
		return
	}
	r.entries[r.current].LastUsed = time.Now()
	if r.strategy == RotateRoundRobin {
		r.advance()
	}
}

// OnError counts a failure against the active entry and, under the on-error
// strategy, advances the ring.
func (r *Ring) OnError() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.entries) == 0 {
		return
	}
	r.entries[r.current].ErrorCount++
	if r.strategy == RotateOnError {
		r.advance()
	}
}

// Rotate advances to the next enabled entry.
func (r *Ring) Rotate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.advance()
}

func (r *Ring) advance() {
	if len(r.entries) == 0 {
		return
	}
	start := r.current
	for {
		r.current = (r.current + 1) % len(r.entries)
		if !r.entries[r.current].Disabled || r.current == start {
			return
		}
	}
}

// Disable takes an entry out of rotation by ID.
func (r *Ring) Disable(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.entries {
		if e.ID == id {
			e.Disabled = true
			return
		}
	}
}

// Enable returns an entry to rotation and resets its error count.
func (r *Ring) Enable(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.entries {
		if e.ID == id {
			e.Disabled = false
			e.ErrorCount = 0
			return
		}
	}
}

// Len reports the number of entries, disabled ones included.
func (r *Ring) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

func (e *Entry) String() string {
	return fmt.Sprintf("Entry{ID:%s, Key:%s}", e.ID, Mask(e.Credentials.Key))
}

// Mask shortens a key for log output, keeping only the edges.
func Mask(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "****" + key[len(key)-4:]
}
