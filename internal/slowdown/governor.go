// Gridiron - College Football Statistics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridiron

// Package slowdown delays, rather than rejects, callers who hit an
// expensive endpoint too often within a short window.
//
// A Governor holds a registry of per-(rule, caller) entries. Each entry
// counts hits in a fixed window and owns a timer that removes it when the
// window ends. Once the hit count passes a rule's DelayAfter threshold,
// every further request in the window waits Delay times the excess, up to
// MaxDelay, before it reaches the handler.
//
// State is process-local and lost on restart. Governors share nothing.
package slowdown

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/tomtom215/gridiron/internal/auth"
	"github.com/tomtom215/gridiron/internal/logging"
	"github.com/tomtom215/gridiron/internal/metrics"
)

const (
	HeaderRetryAfter = "Retry-After"
	HeaderDelay      = "X-RateSlowdown-Delay"
)

// KeyFunc derives the caller half of the registry key. Returning false
// exempts the request.
type KeyFunc func(r *http.Request) (string, bool)

// CallerKey keys on the resolved caller id and exempts anonymous requests.
func CallerKey(r *http.Request) (string, bool) {
	c := auth.CallerFromContext(r.Context())
	if !c.HasIdentity() {
		return "", false
	}
	return strconv.FormatInt(c.ID, 10), true
}

type entry struct {
	hits    int
	resetAt time.Time
	timer   clockwork.Timer
}

// Decision is the outcome of admitting one matching request.
type Decision struct {
	Rule    *Rule
	Key     string
	Hits    int
	Delay   time.Duration
	ResetAt time.Time

	// RetryAfter is the number of whole seconds until the window resets,
	// rounded up. It is independent of Delay.
	RetryAfter int
}

// Option configures a Governor.
type Option func(*Governor)

// WithClock replaces the wall clock.
func WithClock(c clockwork.Clock) Option {
	return func(g *Governor) {
		g.clock = c
	}
}

// WithKeyFunc replaces CallerKey.
func WithKeyFunc(fn KeyFunc) Option {
	return func(g *Governor) {
		g.keyFn = fn
	}
}

// Governor applies a fixed rule list. The first matching rule wins.
type Governor struct {
	rules []Rule
	keyFn KeyFunc
	clock clockwork.Clock

	mu      sync.Mutex
	entries map[string]*entry
}

// New returns a Governor with its own empty registry.
func New(rules []Rule, opts ...Option) *Governor {
	g := &Governor{
		rules:   append([]Rule(nil), rules...),
		keyFn:   CallerKey,
		clock:   clockwork.NewRealClock(),
		entries: make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Match returns the first rule for path and method, or nil.
func (g *Governor) Match(path, method string) *Rule {
	for i := range g.rules {
		if g.rules[i].matches(path, method) {
			return &g.rules[i]
		}
	}
	return nil
}

// Admit counts r against its rule. ok is false when no rule matches or the
// key function exempts the request; no state is touched in that case.
func (g *Governor) Admit(r *http.Request) (d Decision, ok bool) {
	rule := g.Match(r.URL.Path, r.Method)
	if rule == nil {
		return Decision{}, false
	}
	callerKey, ok := g.keyFn(r)
	if !ok {
		return Decision{}, false
	}
	key := rule.Path + ":" + callerKey

	now := g.clock.Now()

	g.mu.Lock()
	e, exists := g.entries[key]
	if !exists || !now.Before(e.resetAt) {
		if exists {
			e.timer.Stop()
		} else {
			metrics.SlowdownEntries.Inc()
		}
		e = g.newEntry(key, now, rule.Window)
		g.entries[key] = e
	}
	e.hits++
	hits, resetAt := e.hits, e.resetAt
	g.mu.Unlock()

	return Decision{
		Rule:       rule,
		Key:        key,
		Hits:       hits,
		Delay:      rule.delayFor(hits),
		ResetAt:    resetAt,
		RetryAfter: int(math.Ceil(resetAt.Sub(now).Seconds())),
	}, true
}

// newEntry must be called with g.mu held.
func (g *Governor) newEntry(key string, now time.Time, window time.Duration) *entry {
	e := &entry{resetAt: now.Add(window)}
	e.timer = g.clock.AfterFunc(window, func() {
		g.expire(key, e)
	})
	return e
}

// expire removes key only while it still maps to e. A timer that fired
// after its entry was replaced leaves the replacement alone.
func (g *Governor) expire(key string, e *entry) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.entries[key] == e {
		delete(g.entries, key)
		metrics.SlowdownEntries.Dec()
	}
}

// Len is the number of live entries.
func (g *Governor) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.entries)
}

// Middleware admits each request and holds delayed ones back before
// calling next. A request whose context ends during the wait never
// reaches next.
func (g *Governor) Middleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, ok := g.Admit(r)
		if !ok || d.Delay <= 0 {
			next(w, r)
			return
		}

		w.Header().Set(HeaderRetryAfter, strconv.Itoa(d.RetryAfter))
		w.Header().Set(HeaderDelay, strconv.FormatInt(d.Delay.Milliseconds(), 10))
		metrics.RecordSlowdown(d.Rule.Path, d.Delay)

		timer := g.clock.NewTimer(d.Delay)
		select {
		case <-timer.Chan():
		case <-r.Context().Done():
			timer.Stop()
			logging.Ctx(r.Context()).Debug().
				Str("rule", d.Rule.Path).
				Dur("delay", d.Delay).
				Msg("Client left during slowdown delay")
			return
		}
		next(w, r)
	}
}
