// Gridiron - College Football Statistics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridiron

package logging

import (
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Sampler gates a noisy log site. The first N events always pass, after
// that at most one per interval. Suppressed events are counted and the
// count is attached to the next event that passes.
type Sampler struct {
	sometimes  rate.Sometimes
	suppressed atomic.Int64
}

// NewSampler returns a Sampler that lets the first `first` events through
// and then one per interval.
func NewSampler(first int, interval time.Duration) *Sampler {
	return &Sampler{sometimes: rate.Sometimes{First: first, Interval: interval}}
}

// Do runs fn with an event from build when the sampler admits it.
func (s *Sampler) Do(build func() *zerolog.Event, fn func(*zerolog.Event)) {
	admitted := false
	s.sometimes.Do(func() { admitted = true })
	if !admitted {
		s.suppressed.Add(1)
		return
	}

	event := build()
	if n := s.suppressed.Swap(0); n > 0 {
		event = event.Int64("suppressed", n)
	}
	fn(event)
}
