// Gridiron - College Football Statistics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridiron

package cache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"
)

// Store is a byte cache with per-entry TTL.
type Store interface {
	// Get returns the value and true on a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error

	// Backend names the implementation for metrics labels.
	Backend() string
	Close() error
}

// entry is a cached item with expiration
type entry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryStore is a thread-safe in-process Store. Expired entries are
// dropped on read; Serve sweeps the rest and runs under the supervisor.
type MemoryStore struct {
	mu       sync.RWMutex
	entries  map[string]entry
	stats    Stats
	interval time.Duration
}

// Stats tracks cache performance
type Stats struct {
	Hits        int64
	Misses      int64
	Evictions   int64
	TotalKeys   int64
	LastCleanup time.Time
}

// NewMemoryStore returns a store whose Serve sweeps every
// cleanupInterval.
func NewMemoryStore(cleanupInterval time.Duration) *MemoryStore {
	if cleanupInterval <= 0 {
		cleanupInterval = 5 * time.Minute
	}
	return &MemoryStore{
		entries:  make(map[string]entry),
		stats:    Stats{LastCleanup: time.Now()},
		interval: cleanupInterval,
	}
}

// Get returns a live entry. An expired entry is removed and counts as a
// miss.
func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	e, exists := m.entries[key]
	m.mu.RUnlock()

	if !exists {
		m.record(func(s *Stats) { s.Misses++ })
		return nil, false, nil
	}

	if time.Now().After(e.expiresAt) {
		m.mu.Lock()
		if cur, ok := m.entries[key]; ok && cur.expiresAt.Equal(e.expiresAt) {
			delete(m.entries, key)
		}
		m.mu.Unlock()
		m.record(func(s *Stats) {
			s.Misses++
			s.Evictions++
		})
		return nil, false, nil
	}

	m.record(func(s *Stats) { s.Hits++ })
	return e.data, true, nil
}

// Set stores value until now+ttl, replacing any existing entry.
func (m *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	m.entries[key] = entry{data: value, expiresAt: time.Now().Add(ttl)}
	n := int64(len(m.entries))
	m.mu.Unlock()

	m.record(func(s *Stats) { s.TotalKeys = n })
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	n := int64(len(m.entries))
	m.mu.Unlock()

	m.record(func(s *Stats) {
		s.Evictions++
		s.TotalKeys = n
	})
	return nil
}

func (m *MemoryStore) Backend() string {
	return "memory"
}

// Close drops every entry.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	m.entries = make(map[string]entry)
	m.stats.TotalKeys = 0
	m.mu.Unlock()
	return nil
}

// GetStats returns a snapshot.
func (m *MemoryStore) GetStats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stats
}

// HitRate returns hits as a percentage of lookups.
func (m *MemoryStore) HitRate() float64 {
	stats := m.GetStats()
	total := stats.Hits + stats.Misses
	if total == 0 {
		return 0.0
	}
	return float64(stats.Hits) / float64(total) * 100.0
}

func (m *MemoryStore) record(fn func(*Stats)) {
	m.mu.Lock()
	fn(&m.stats)
	m.mu.Unlock()
}

// Serve sweeps expired entries until ctx ends. It implements
// suture.Service.
func (m *MemoryStore) Serve(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			m.cleanup()
		}
	}
}

func (m *MemoryStore) String() string {
	return "response-cache-sweeper"
}

// cleanup removes all expired entries
func (m *MemoryStore) cleanup() {
	now := time.Now()
	m.mu.Lock()
	defer m.mu.Unlock()

	var evictions int64
	for key, e := range m.entries {
		if now.After(e.expiresAt) {
			delete(m.entries, key)
			evictions++
		}
	}

	m.stats.Evictions += evictions
	m.stats.TotalKeys = int64(len(m.entries))
	m.stats.LastCleanup = now
}

// GenerateKey creates a cache key from a namespace and parameters.
func GenerateKey(namespace string, params interface{}) string {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprintf("%s:%v", namespace, params)
	}

	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%x", namespace, hash[:16])
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*RedisStore)(nil)
)
