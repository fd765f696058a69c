// Gridiron - College Football Statistics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridiron

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	s, err := NewRedisStore(context.Background(), RedisOptions{Addr: mr.Addr()})
	if err != nil {
		t.Fatalf("NewRedisStore() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s, mr
}

func TestRedisStore_SetGet(t *testing.T) {
	s, mr := newTestRedisStore(t)
	ctx := context.Background()

	if err := s.Set(ctx, "teams:abc", []byte(`[{"id":1}]`), time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, ok, err := s.Get(ctx, "teams:abc")
	if err != nil || !ok {
		t.Fatalf("Get() = %v, %v", ok, err)
	}
	if string(got) != `[{"id":1}]` {
		t.Errorf("Get() = %s", got)
	}

	if !mr.Exists(redisKeyPrefix + "teams:abc") {
		t.Error("key not stored under the gridiron prefix")
	}
	if ttl := mr.TTL(redisKeyPrefix + "teams:abc"); ttl != time.Minute {
		t.Errorf("TTL = %v, want 1m", ttl)
	}
}

func TestRedisStore_Miss(t *testing.T) {
	s, _ := newTestRedisStore(t)

	_, ok, err := s.Get(context.Background(), "nothing")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok {
		t.Error("Get() reported a hit for a missing key")
	}
}

func TestRedisStore_Expiry(t *testing.T) {
	s, mr := newTestRedisStore(t)
	ctx := context.Background()

	_ = s.Set(ctx, "k", []byte("v"), time.Second)
	mr.FastForward(2 * time.Second)

	if _, ok, _ := s.Get(ctx, "k"); ok {
		t.Error("entry survived its TTL")
	}
}

func TestRedisStore_Delete(t *testing.T) {
	s, _ := newTestRedisStore(t)
	ctx := context.Background()

	_ = s.Set(ctx, "k", []byte("v"), time.Minute)
	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok, _ := s.Get(ctx, "k"); ok {
		t.Error("entry survived Delete")
	}
}

func TestRedisStore_ServerDown(t *testing.T) {
	s, mr := newTestRedisStore(t)
	mr.Close()

	if _, _, err := s.Get(context.Background(), "k"); err == nil {
		t.Error("Get() against a stopped server should fail")
	}
	if err := s.Ping(context.Background()); err == nil {
		t.Error("Ping() against a stopped server should fail")
	}
}

func TestNewRedisStore_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	if _, err := NewRedisStore(context.Background(), RedisOptions{Addr: addr}); err == nil {
		t.Error("NewRedisStore() should fail when the server is down")
	}
}
