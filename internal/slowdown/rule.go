// Gridiron - College Football Statistics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridiron

package slowdown

import (
	"strings"
	"time"

	"github.com/tomtom215/gridiron/internal/config"
)

// Rule is one progressive-delay policy.
type Rule struct {
	// Path is matched exactly, ignoring a trailing slash.
	Path string

	// Methods restricts the rule; empty means any method.
	Methods []string

	Window     time.Duration
	DelayAfter int
	Delay      time.Duration

	// MaxDelay caps the computed delay. Zero means uncapped.
	MaxDelay time.Duration
}

// DefaultRules is the policy for the player season stats endpoint.
func DefaultRules() []Rule {
	return []Rule{{
		Path:       "/stats/player/season",
		Methods:    []string{"GET"},
		Window:     10 * time.Second,
		DelayAfter: 15,
		Delay:      250 * time.Millisecond,
		MaxDelay:   2 * time.Second,
	}}
}

// RulesFromConfig converts configured rules, keeping their order.
func RulesFromConfig(cfg []config.SlowdownRule) []Rule {
	rules := make([]Rule, 0, len(cfg))
	for _, c := range cfg {
		rules = append(rules, Rule{
			Path:       c.Path,
			Methods:    c.Methods,
			Window:     time.Duration(c.WindowMs) * time.Millisecond,
			DelayAfter: c.DelayAfter,
			Delay:      time.Duration(c.DelayMs) * time.Millisecond,
			MaxDelay:   time.Duration(c.MaxDelayMs) * time.Millisecond,
		})
	}
	return rules
}

func (r *Rule) matches(path, method string) bool {
	if trimSlash(r.Path) != trimSlash(path) {
		return false
	}
	if len(r.Methods) == 0 {
		return true
	}
	for _, m := range r.Methods {
		if strings.EqualFold(m, method) {
			return true
		}
	}
	return false
}

// delayFor returns the delay owed for the given hit count.
func (r *Rule) delayFor(hits int) time.Duration {
	excess := hits - r.DelayAfter
	if excess <= 0 {
		return 0
	}
	d := time.Duration(excess) * r.Delay
	if r.MaxDelay > 0 && d > r.MaxDelay {
		d = r.MaxDelay
	}
	return d
}

func trimSlash(p string) string {
	if len(p) > 1 {
		return strings.TrimSuffix(p, "/")
	}
	return p
}
