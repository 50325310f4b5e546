// Package ratelimit throttles outbound exchange calls with a global token
// bucket plus optional per-operation buckets, so a burst of order
// placements cannot starve ticker polling.
package ratelimit

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"multex/pkg/core"
)

// Limiter applies the exchange-wide limit first and a per-operation limit
// second when one has been configured.
type Limiter struct {
	global     *rate.Limiter
	operations sync.Map
	requests   int
	period     time.Duration
	metrics    *metrics
}

type metrics struct {
	total   atomic.Int64
	allowed atomic.Int64
	denied  atomic.Int64
}

// New creates a limiter permitting requests per period across all
// operations.
func New(requests int, period time.Duration) *Limiter {
	rps := float64(requests) / period.Seconds()
	return &Limiter{
		global:   rate.NewLimiter(rate.Limit(rps), requests),
		requests: requests,
		period:   period,
		metrics:  &metrics{},
	}
}

// Wait blocks until the global limiter admits a request or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	l.metrics.total.Add(1)
	if err := l.global.Wait(ctx); err != nil {
		l.metrics.denied.Add(1)
		return err
	}
	l.metrics.allowed.Add(1)
	return nil
}

// WaitOperation blocks on the global limiter and then on the operation's own
// limiter, when one exists. Operations without a configured limit only pay
// the global cost.
func (l *Limiter) WaitOperation(ctx context.Context, op core.Operation) error {
	if err := l.Wait(ctx); err != nil {
		return err
	}
	v, ok := l.operations.Load(op)
	if !ok {
		return nil
	}
	if err := v.(*rate.Limiter).Wait(ctx); err != nil {
		l.metrics.denied.Add(1)
		return err
	}
	return nil
}

// Allow reports whether the global limiter admits a request right now.
func (l *Limiter) Allow() bool {
	l.metrics.total.Add(1)
	if l.global.Allow() {
		l.metrics.allowed.Add(1)
		return true
	}
	l.metrics.denied.Add(1)
	return false
}

// SetLimit replaces the global limit.
func (l *Limiter) SetLimit(requests int, period time.Duration) {
	l.requests = requests
	l.period = period
	l.global.SetLimit(rate.Limit(float64(requests) / period.Seconds()))
}

// SetOperationLimit configures a dedicated limit for one operation,
// creating its bucket on first use.
func (l *Limiter) SetOperationLimit(op core.Operation, requests int, period time.Duration) {
	rps := float64(requests) / period.Seconds()
	if v, ok := l.operations.Load(op); ok {
		v.(*rate.Limiter).SetLimit(rate.Limit(rps))
		return
	}
	l.operations.Store(op, rate.NewLimiter(rate.Limit(rps), requests))
}

// Snapshot is a point-in-time capture of limiter statistics.
type Snapshot struct {
	Total   int64
	Allowed int64
	Denied  int64
}

// Metrics returns the current counters.
func (l *Limiter) Metrics() Snapshot {
	return Snapshot{
		Total:   l.metrics.total.Load(),
		Allowed: l.metrics.allowed.Load(),
		Denied:  l.metrics.denied.Load(),
	}
}
