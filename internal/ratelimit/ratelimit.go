// Package ratelimit enforces a minimum interval between the start times of
// two successful generations for the same client.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// DefaultInterval is the cooldown between successful generations.
const DefaultInterval = 5 * time.Second

// ErrLimited is matched by every *LimitedError.
var ErrLimited = errors.New("rate limited")

// LimitedError reports a request that arrived inside the cooldown window.
type LimitedError struct {
	Remaining time.Duration
}

func (e *LimitedError) Error() string {
	return fmt.Sprintf("rate limited: retry in %s", e.Remaining.Round(time.Millisecond))
}

func (e *LimitedError) Is(target error) bool { return target == ErrLimited }

// Store persists the start time of the last successful generation per key.
type Store interface {
	Last(ctx context.Context, key string) (time.Time, bool, error)
	Record(ctx context.Context, key string, at time.Time) error
}

// Gate checks requests against the last recorded success. Rejected and failed
// attempts never move the timestamp. Two requests checked concurrently may
// both pass; there is no in-flight reservation.
type Gate struct {
	store    Store
	interval time.Duration
	now      func() time.Time
}

// Option configures a Gate.
type Option func(*Gate)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(g *Gate) { g.now = now }
}

// WithInterval overrides DefaultInterval.
func WithInterval(d time.Duration) Option {
	return func(g *Gate) {
		if d >= 0 {
			g.interval = d
		}
	}
}

// NewGate returns a Gate backed by store, or by a MemoryStore when store is nil.
func NewGate(store Store, opts ...Option) *Gate {
	if store == nil {
		store = NewMemoryStore()
	}
	g := &Gate{store: store, interval: DefaultInterval, now: time.Now}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Interval returns the configured cooldown.
func (g *Gate) Interval() time.Duration { return g.interval }

// Ticket is an admitted request. Commit it once the generation succeeds.
type Ticket struct {
	gate  *Gate
	key   string
	start time.Time
}

// Start is the time the request was admitted.
func (t Ticket) Start() time.Time { return t.start }

// Commit records the ticket's start time as the last success.
func (t Ticket) Commit(ctx context.Context) error {
	if err := t.gate.store.Record(ctx, t.key, t.start); err != nil {
		return fmt.Errorf("failed to record generation time: %w", err)
	}
	return nil
}

// Admit returns a ticket when at least the interval has elapsed since the
// last success for key, and a *LimitedError otherwise.
func (g *Gate) Admit(ctx context.Context, key string) (Ticket, error) {
	now := g.now()
	last, ok, err := g.store.Last(ctx, key)
	if err != nil {
		return Ticket{}, fmt.Errorf("failed to read last generation time: %w", err)
	}
	if ok {
		if elapsed := now.Sub(last); elapsed < g.interval {
			return Ticket{}, &LimitedError{Remaining: g.interval - elapsed}
		}
	}
	return Ticket{gate: g, key: key, start: now}, nil
}
