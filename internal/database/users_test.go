// Gridiron - College Football Statistics API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gridiron

package database

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/tomtom215/gridiron/internal/models"
)

func createTestUser(t *testing.T, db *DB, u *models.User) {
	t.Helper()
	if err := db.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
}

func TestFindByToken(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	createTestUser(t, db, &models.User{
		ID: 7, Username: "patron", TokenHash: "digest-7", PatreonTier: 3, RemainingCalls: 500, IsAdmin: true,
	})

	tests := []struct {
		name    string
		hash    string
		wantNil bool
		wantID  int64
	}{
		{"known token", "digest-7", false, 7},
		{"unknown token", "digest-8", true, 0},
		{"empty token", "", true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := db.FindByToken(ctx, tt.hash)
			if err != nil {
				t.Fatalf("FindByToken() error = %v", err)
			}
			if tt.wantNil {
				if u != nil {
					t.Errorf("FindByToken() = %+v, want nil", u)
				}
				return
			}
			if u == nil {
				t.Fatal("FindByToken() = nil, want user")
			}
			if u.ID != tt.wantID || u.PatreonTier != 3 || u.RemainingCalls != 500 || !u.IsAdmin {
				t.Errorf("FindByToken() = %+v", u)
			}
		})
	}
}

func TestCreateUser_DuplicateToken(t *testing.T) {
	db := setupTestDB(t)
	createTestUser(t, db, &models.User{ID: 1, Username: "a", TokenHash: "same"})

	err := db.CreateUser(context.Background(), &models.User{ID: 2, Username: "b", TokenHash: "same"})
	if err == nil {
		t.Fatal("CreateUser() with duplicate token digest should fail")
	}
}

func TestDecrementAndGetRemaining(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	createTestUser(t, db, &models.User{ID: 1, Username: "u", TokenHash: "h", PatreonTier: 1, RemainingCalls: 500})

	got, err := db.DecrementAndGetRemaining(ctx, 1)
	if err != nil {
		t.Fatalf("DecrementAndGetRemaining() error = %v", err)
	}
	if got != 499 {
		t.Errorf("remaining = %d, want 499", got)
	}

	u, err := db.GetUser(ctx, 1)
	if err != nil {
		t.Fatalf("GetUser() error = %v", err)
	}
	if u.RemainingCalls != 499 {
		t.Errorf("stored remaining = %d, want 499", u.RemainingCalls)
	}
}

func TestDecrementAndGetRemaining_CanGoNegative(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	createTestUser(t, db, &models.User{ID: 1, Username: "u", TokenHash: "h", RemainingCalls: 0})

	got, err := db.DecrementAndGetRemaining(ctx, 1)
	if err != nil {
		t.Fatalf("DecrementAndGetRemaining() error = %v", err)
	}
	if got != -1 {
		t.Errorf("remaining = %d, want -1", got)
	}
}

func TestDecrementAndGetRemaining_UnknownUser(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.DecrementAndGetRemaining(context.Background(), 404)
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("error = %v, want ErrUserNotFound", err)
	}
}

func TestDecrementAndGetRemaining_Concurrent(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	createTestUser(t, db, &models.User{ID: 1, Username: "u", TokenHash: "h", RemainingCalls: 100})

	const workers = 20
	var wg sync.WaitGroup
	seen := make(chan int, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := db.DecrementAndGetRemaining(ctx, 1)
			if err != nil {
				t.Errorf("DecrementAndGetRemaining() error = %v", err)
				return
			}
			seen <- n
		}()
	}
	wg.Wait()
	close(seen)

	values := make(map[int]bool)
	for n := range seen {
		if values[n] {
			t.Errorf("remaining value %d returned twice", n)
		}
		values[n] = true
	}

	u, err := db.GetUser(ctx, 1)
	if err != nil {
		t.Fatalf("GetUser() error = %v", err)
	}
	if u.RemainingCalls != 100-workers {
		t.Errorf("remaining = %d, want %d", u.RemainingCalls, 100-workers)
	}
}

func TestSetRemainingCalls(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	createTestUser(t, db, &models.User{ID: 1, Username: "u", TokenHash: "h", RemainingCalls: 3})

	if err := db.SetRemainingCalls(ctx, 1, 42); err != nil {
		t.Fatalf("SetRemainingCalls() error = %v", err)
	}
	u, _ := db.GetUser(ctx, 1)
	if u.RemainingCalls != 42 {
		t.Errorf("remaining = %d, want 42", u.RemainingCalls)
	}

	if err := db.SetRemainingCalls(ctx, 2, 1); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("SetRemainingCalls(unknown) error = %v, want ErrUserNotFound", err)
	}
}

func TestGetUser_NotFound(t *testing.T) {
	db := setupTestDB(t)
	if _, err := db.GetUser(context.Background(), 9); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("GetUser() error = %v, want ErrUserNotFound", err)
	}
}

func TestResetMonthlyCalls(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	createTestUser(t, db, &models.User{ID: 1, Username: "free", TokenHash: "a", PatreonTier: 0, RemainingCalls: 0})
	createTestUser(t, db, &models.User{ID: 2, Username: "t1", TokenHash: "b", PatreonTier: 1, RemainingCalls: 3})
	createTestUser(t, db, &models.User{ID: 3, Username: "t3", TokenHash: "c", PatreonTier: 3, RemainingCalls: 10})

	if err := db.ResetMonthlyCalls(ctx, map[int]int{1: 1000, 3: 75000}); err != nil {
		t.Fatalf("ResetMonthlyCalls() error = %v", err)
	}

	want := map[int64]int{1: 0, 2: 1000, 3: 75000}
	for id, calls := range want {
		u, err := db.GetUser(ctx, id)
		if err != nil {
			t.Fatalf("GetUser(%d) error = %v", id, err)
		}
		if u.RemainingCalls != calls {
			t.Errorf("user %d remaining = %d, want %d", id, u.RemainingCalls, calls)
		}
	}
}
