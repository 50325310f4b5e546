// Package signer contains the per-exchange signing strategies that turn a
// logical request into a fully authenticated wire request, plus a registry
// for selecting one at client construction time.
//
// Every strategy is a pure function of (request, config, credentials,
// nonce): no hidden clock reads, no mutation of its inputs. The four axes
// that vary per exchange are the signature message construction, the digest
// algorithm and its encoding, where the signature material is placed on the
// wire, and whether the shared secret is base64-decoded before use.
package signer

import (
	"fmt"
	"sort"
	"sync"

	"multex/pkg/core"
)

// Signer converts a logical request into an authenticated SignedRequest for
// one specific exchange.
type Signer interface {
	// Exchange returns the exchange identifier ("kraken", "bitstamp", ...).
	Exchange() string

	// DefaultBaseURL returns the production API address used when the
	// client config leaves BaseURL empty.
	DefaultBaseURL() string

	// DefaultVersion returns the API version used when the client config
	// leaves Version empty. May itself be empty for unversioned APIs.
	DefaultVersion() string

	// Sign produces the wire-ready request. It must fail with a
	// credentials error when key or secret are absent, and must never
	// mutate req.
	Sign(req *core.Request, cfg *core.Config, creds *core.Credentials, nonce string) (*core.SignedRequest, error)
}

// Registry is a thread-safe mapping from exchange identifier to its signing
// strategy.
type Registry struct {
	mu      sync.RWMutex
	signers map[string]Signer
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{signers: make(map[string]Signer)}
}

// Builtin returns a registry preloaded with every strategy in this package.
func Builtin() *Registry {
	r := NewRegistry()
	for _, s := range []Signer{
		NewBitfinex(),
		NewBitstamp(),
		NewBittrex(),
		NewBTCE(),
		NewBter(),
		NewCoinbase(),
		NewCoincheck(),
		NewCryptopia(),
		NewGemini(),
		NewHitBTC(),
		NewKraken(),
		NewOKCoin(),
		NewPoloniex(),
		NewQuadriga(),
		NewQuoine(),
		NewRockTrading(),
		NewVaultoro(),
		NewYunbi(),
	} {
		r.Register(s)
	}
	return r
}

// Register adds a strategy under its exchange identifier, replacing any
// existing entry.
func (r *Registry) Register(s Signer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.signers[s.Exchange()] = s
}

// Get retrieves the strategy for an exchange.
func (r *Registry) Get(exchange string) (Signer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.signers[exchange]
	if !ok {
		return nil, fmt.Errorf("no signing strategy registered for %q", exchange)
	}
	return s, nil
}

// Exists checks whether a strategy is registered for the exchange.
func (r *Registry) Exists(exchange string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.signers[exchange]
	return ok
}

// Unregister removes the strategy for an exchange.
func (r *Registry) Unregister(exchange string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.signers, exchange)
}

// Names returns the sorted list of registered exchange identifiers.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.signers))
	for name := range r.signers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
