// Gridiron - College Football Statistics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridiron

package slowdown

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/tomtom215/gridiron/internal/auth"
	"github.com/tomtom215/gridiron/internal/config"
)

const statsPath = "/stats/player/season"

func requestAs(method, path string, callerID int64) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	if callerID > 0 {
		req = req.WithContext(auth.WithCaller(req.Context(), &auth.Caller{ID: callerID, Tier: 1}))
	}
	return req
}

func TestGovernor_SeventeenRequests(t *testing.T) {
	clock := clockwork.NewFakeClock()
	g := New(DefaultRules(), WithClock(clock))

	for i := 1; i <= 17; i++ {
		d, ok := g.Admit(requestAs(http.MethodGet, statsPath, 1))
		if !ok {
			t.Fatalf("request %d: rule did not match", i)
		}
		if d.Hits != i {
			t.Errorf("request %d: hits = %d", i, d.Hits)
		}

		var want time.Duration
		switch i {
		case 16:
			want = 250 * time.Millisecond
		case 17:
			want = 500 * time.Millisecond
		}
		if d.Delay != want {
			t.Errorf("request %d: delay = %v, want %v", i, d.Delay, want)
		}
	}
}

func TestGovernor_DelayClampedAtMax(t *testing.T) {
	clock := clockwork.NewFakeClock()
	g := New(DefaultRules(), WithClock(clock))

	var last Decision
	for i := 0; i < 40; i++ {
		last, _ = g.Admit(requestAs(http.MethodGet, statsPath, 1))
	}
	if last.Delay != 2*time.Second {
		t.Errorf("delay after 40 hits = %v, want 2s cap", last.Delay)
	}
}

func TestGovernor_ThresholdIsStrict(t *testing.T) {
	g := New([]Rule{{Path: "/x", Window: time.Minute, DelayAfter: 2, Delay: 100 * time.Millisecond}},
		WithClock(clockwork.NewFakeClock()))

	wants := []time.Duration{0, 0, 100 * time.Millisecond, 200 * time.Millisecond, 300 * time.Millisecond}
	for i, want := range wants {
		d, _ := g.Admit(requestAs(http.MethodPost, "/x", 9))
		if d.Delay != want {
			t.Errorf("hit %d: delay = %v, want %v", i+1, d.Delay, want)
		}
	}
}

func TestGovernor_WindowRollover(t *testing.T) {
	clock := clockwork.NewFakeClock()
	g := New(DefaultRules(), WithClock(clock))

	for i := 0; i < 20; i++ {
		g.Admit(requestAs(http.MethodGet, statsPath, 1))
	}

	clock.Advance(10 * time.Second)

	d, ok := g.Admit(requestAs(http.MethodGet, statsPath, 1))
	if !ok {
		t.Fatal("rule did not match")
	}
	if d.Hits != 1 {
		t.Errorf("hits after rollover = %d, want 1", d.Hits)
	}
	if d.Delay != 0 {
		t.Errorf("delay after rollover = %v, want 0", d.Delay)
	}
	if !d.ResetAt.Equal(clock.Now().Add(10 * time.Second)) {
		t.Errorf("ResetAt = %v, want now+10s", d.ResetAt)
	}
}

func TestGovernor_PerCallerIsolation(t *testing.T) {
	g := New(DefaultRules(), WithClock(clockwork.NewFakeClock()))

	for i := 0; i < 16; i++ {
		g.Admit(requestAs(http.MethodGet, statsPath, 1))
	}

	d2, _ := g.Admit(requestAs(http.MethodGet, statsPath, 2))
	if d2.Hits != 1 || d2.Delay != 0 {
		t.Errorf("caller 2 = hits %d delay %v, want 1 and 0", d2.Hits, d2.Delay)
	}
	d1, _ := g.Admit(requestAs(http.MethodGet, statsPath, 1))
	if d1.Hits != 17 || d1.Delay != 500*time.Millisecond {
		t.Errorf("caller 1 = hits %d delay %v, want 17 and 500ms", d1.Hits, d1.Delay)
	}
	if d1.Key != statsPath+":1" || d2.Key != statsPath+":2" {
		t.Errorf("keys = %q, %q", d1.Key, d2.Key)
	}
}

func TestGovernor_RulesHaveIndependentWindows(t *testing.T) {
	rules := []Rule{
		{Path: "/a", Window: time.Minute, DelayAfter: 1, Delay: time.Second},
		{Path: "/b", Window: time.Minute, DelayAfter: 1, Delay: time.Second},
	}
	g := New(rules, WithClock(clockwork.NewFakeClock()))

	g.Admit(requestAs(http.MethodGet, "/a", 1))
	g.Admit(requestAs(http.MethodGet, "/a", 1))
	d, _ := g.Admit(requestAs(http.MethodGet, "/b", 1))
	if d.Hits != 1 {
		t.Errorf("hits on /b = %d, want 1", d.Hits)
	}
	if g.Len() != 2 {
		t.Errorf("Len() = %d, want 2", g.Len())
	}
}

func TestGovernor_NoMatchTouchesNothing(t *testing.T) {
	g := New(DefaultRules(), WithClock(clockwork.NewFakeClock()))

	tests := []struct {
		name string
		req  *http.Request
	}{
		{"other path", requestAs(http.MethodGet, "/games", 1)},
		{"wrong method", requestAs(http.MethodPost, statsPath, 1)},
		{"anonymous", requestAs(http.MethodGet, statsPath, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := g.Admit(tt.req); ok {
				t.Error("Admit() matched")
			}
		})
	}
	if g.Len() != 0 {
		t.Errorf("Len() = %d, want 0", g.Len())
	}
}

func TestGovernor_AnonymousCallerNotKeyed(t *testing.T) {
	g := New(DefaultRules(), WithClock(clockwork.NewFakeClock()))
	req := httptest.NewRequest(http.MethodGet, statsPath, nil)
	req = req.WithContext(auth.WithCaller(req.Context(), auth.AnonymousCaller()))

	if _, ok := g.Admit(req); ok {
		t.Error("anonymous caller was rate limited")
	}
}

func TestGovernor_TrailingSlashIgnored(t *testing.T) {
	g := New(DefaultRules(), WithClock(clockwork.NewFakeClock()))

	g.Admit(requestAs(http.MethodGet, statsPath, 1))
	d, ok := g.Admit(requestAs(http.MethodGet, statsPath+"/", 1))
	if !ok || d.Hits != 2 {
		t.Errorf("trailing slash: ok = %v hits = %d, want shared entry", ok, d.Hits)
	}
}

func TestGovernor_CustomKeyFunc(t *testing.T) {
	byIP := func(r *http.Request) (string, bool) { return r.RemoteAddr, true }
	g := New(DefaultRules(), WithClock(clockwork.NewFakeClock()), WithKeyFunc(byIP))

	d, ok := g.Admit(requestAs(http.MethodGet, statsPath, 0))
	if !ok {
		t.Fatal("custom key func should admit anonymous requests")
	}
	if d.Key != statsPath+":192.0.2.1:1234" {
		t.Errorf("key = %q", d.Key)
	}
}

func TestGovernor_RetryAfterRoundsUp(t *testing.T) {
	clock := clockwork.NewFakeClock()
	g := New(DefaultRules(), WithClock(clock))

	d, _ := g.Admit(requestAs(http.MethodGet, statsPath, 1))
	if d.RetryAfter != 10 {
		t.Errorf("RetryAfter = %d, want 10", d.RetryAfter)
	}

	clock.Advance(8700 * time.Millisecond)
	d, _ = g.Admit(requestAs(http.MethodGet, statsPath, 1))
	if d.RetryAfter != 2 {
		t.Errorf("RetryAfter at 1.3s left = %d, want 2", d.RetryAfter)
	}
}

func TestGovernor_ExpiryRemovesEntry(t *testing.T) {
	clock := clockwork.NewFakeClock()
	g := New(DefaultRules(), WithClock(clock))

	g.Admit(requestAs(http.MethodGet, statsPath, 1))
	if g.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", g.Len())
	}

	clock.Advance(10 * time.Second)
	waitForLen(t, g, 0)
}

func TestGovernor_StaleExpiryKeepsReplacement(t *testing.T) {
	clock := clockwork.NewFakeClock()
	g := New(DefaultRules(), WithClock(clock))
	key := statsPath + ":1"

	g.Admit(requestAs(http.MethodGet, statsPath, 1))
	g.mu.Lock()
	stale := g.entries[key]
	g.mu.Unlock()

	// Roll the window without letting the old timer run first.
	g.mu.Lock()
	stale.resetAt = clock.Now()
	g.mu.Unlock()
	d, _ := g.Admit(requestAs(http.MethodGet, statsPath, 1))
	if d.Hits != 1 {
		t.Fatalf("hits = %d, want a fresh entry", d.Hits)
	}

	g.expire(key, stale)

	if g.Len() != 1 {
		t.Errorf("stale expiry removed the replacement entry")
	}
}

func TestGovernor_ConcurrentAdmit(t *testing.T) {
	g := New(DefaultRules(), WithClock(clockwork.NewFakeClock()))

	const n = 100
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g.Admit(requestAs(http.MethodGet, statsPath, 1))
		}()
	}
	wg.Wait()

	d, _ := g.Admit(requestAs(http.MethodGet, statsPath, 1))
	if d.Hits != n+1 {
		t.Errorf("hits = %d, want %d", d.Hits, n+1)
	}
}

func TestGovernors_ShareNothing(t *testing.T) {
	a := New(DefaultRules(), WithClock(clockwork.NewFakeClock()))
	b := New(DefaultRules(), WithClock(clockwork.NewFakeClock()))

	for i := 0; i < 5; i++ {
		a.Admit(requestAs(http.MethodGet, statsPath, 1))
	}
	d, _ := b.Admit(requestAs(http.MethodGet, statsPath, 1))
	if d.Hits != 1 {
		t.Errorf("second governor hits = %d, want 1", d.Hits)
	}
}

func TestRulesFromConfig(t *testing.T) {
	rules := RulesFromConfig([]config.SlowdownRule{{
		Path: statsPath, Methods: []string{"GET"}, WindowMs: 10000, DelayAfter: 15, DelayMs: 250, MaxDelayMs: 2000,
	}})
	want := DefaultRules()[0]
	got := rules[0]
	if got.Path != want.Path || got.Window != want.Window || got.DelayAfter != want.DelayAfter ||
		got.Delay != want.Delay || got.MaxDelay != want.MaxDelay || len(got.Methods) != 1 {
		t.Errorf("RulesFromConfig() = %+v, want %+v", got, want)
	}
}

func waitForLen(t *testing.T, g *Governor, want int) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	for g.Len() != want {
		select {
		case <-ctx.Done():
			t.Fatalf("Len() = %d, want %d", g.Len(), want)
		case <-time.After(5 * time.Millisecond):
		}
	}
}
