// Package ratelimit implements a sliding-window request limiter backed by
// the shared key-value store. The limiter fails open: availability of the
// submission path outranks strict enforcement, so a store failure admits
// the request and is surfaced in the decision instead of an error.
package ratelimit

import (
	"context"
	"encoding/json"
	"time"

	"satspots.org/internal/kv"
	"satspots.org/internal/obs"
)

const (
	// DefaultWindow and DefaultMax define the public intake policy.
	DefaultWindow = time.Hour
	DefaultMax    = 10

	keyPrefix = "ratelimit:"
)

// Decision distinguishes a definitive admit/deny from an indeterminate
// outcome where the store could not be consulted and the limiter defaults
// to admitting.
type Decision int

const (
	Allow Decision = iota
	Deny
	Indeterminate
)

// Result carries the decision and, for denials, how long the client must
// wait until the oldest retained timestamp leaves the window.
type Result struct {
	Decision   Decision
	RetryAfter time.Duration
}

// Admitted reports whether the request may proceed.
func (r Result) Admitted() bool { return r.Decision != Deny }

// window is the KV-resident record shape: {"timestamps":[epoch-ms,...]}.
type window struct {
	Timestamps []int64 `json:"timestamps"`
}

// Limiter counts requests per client address within a trailing window.
type Limiter struct {
	store  kv.Store
	window time.Duration
	max    int
	now    func() time.Time
}

// New creates a limiter with the default intake policy.
func New(store kv.Store) *Limiter {
	return NewWithPolicy(store, DefaultWindow, DefaultMax)
}

// NewWithPolicy creates a limiter with an explicit window and maximum.
func NewWithPolicy(store kv.Store, windowSize time.Duration, max int) *Limiter {
	return &Limiter{store: store, window: windowSize, max: max, now: time.Now}
}

// SetClock overrides the limiter clock; test use only.
func (l *Limiter) SetClock(now func() time.Time) { l.now = now }

// Check loads the timestamp sequence for addr, discards entries outside the
// window and decides admission. The read-modify-write is deliberately not
// atomic: concurrent requests from one address may overshoot the maximum by
// a small bounded margin.
func (l *Limiter) Check(ctx context.Context, addr string) Result {
	key := keyPrefix + addr
	now := l.now()

	var rec window
	raw, err := l.store.Get(ctx, key)
	switch err {
	case nil:
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			// Corrupt record: reset the window rather than lock the client out.
			rec = window{}
		}
	case kv.ErrNotFound:
	default:
		obs.LogWarn("rate limit store unavailable, admitting", map[string]any{"err": err.Error()})
		obs.CountRateLimitFailOpen()
		return Result{Decision: Indeterminate}
	}

	cutoff := now.Add(-l.window).UnixMilli()
	recent := rec.Timestamps[:0]
	for _, ts := range rec.Timestamps {
		if ts > cutoff {
			recent = append(recent, ts)
		}
	}

	if len(recent) >= l.max {
		oldest := time.UnixMilli(recent[0])
		return Result{
			Decision:   Deny,
			RetryAfter: oldest.Add(l.window).Sub(now),
		}
	}

	recent = append(recent, now.UnixMilli())
	// Cap stored growth at twice the limit.
	if len(recent) > 2*l.max {
		recent = recent[len(recent)-2*l.max:]
	}
	data, err := json.Marshal(window{Timestamps: recent})
	if err == nil {
		err = l.store.Put(ctx, key, string(data), l.window)
	}
	if err != nil {
		obs.LogWarn("rate limit window not persisted, admitting", map[string]any{"err": err.Error()})
		obs.CountRateLimitFailOpen()
		return Result{Decision: Indeterminate}
	}
	return Result{Decision: Allow}
}
