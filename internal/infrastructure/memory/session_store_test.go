package memory

import (
	"context"
	"sync"
	"testing"
	"time"
)

// fakeClock is a settable time source shared with the store under test.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestSessionStore_CreateAndGet(t *testing.T) {
	clock := newFakeClock()
	store := NewSessionStore(clock.Now)
	ctx := context.Background()

	session, err := store.Create(ctx, "acct-1", time.Hour)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if session.ID == "" {
		t.Fatalf("expected a session ID")
	}
	if !session.ExpiresAt.After(session.CreatedAt) {
		t.Fatalf("expected expiry after creation: %v vs %v", session.ExpiresAt, session.CreatedAt)
	}

	got, err := store.Get(ctx, session.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.AccountID != "acct-1" {
		t.Fatalf("unexpected account: %s", got.AccountID)
	}
}

func TestSessionStore_UniqueIDs(t *testing.T) {
	store := NewSessionStore(nil)
	ctx := context.Background()

	first, err := store.Create(ctx, "acct-1", time.Hour)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	second, err := store.Create(ctx, "acct-1", time.Hour)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if first.ID == second.ID {
		t.Fatalf("two sessions share an ID")
	}
}

func TestSessionStore_GetExpired(t *testing.T) {
	clock := newFakeClock()
	store := NewSessionStore(clock.Now)
	ctx := context.Background()

	session, err := store.Create(ctx, "acct-1", time.Hour)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	// Still live one second before expiry.
	clock.Advance(time.Hour - time.Second)
	if _, err := store.Get(ctx, session.ID); err != nil {
		t.Fatalf("expected live session, got %v", err)
	}

	// At expiry the session is logically absent even though unpurged.
	clock.Advance(time.Second)
	if _, err := store.Get(ctx, session.ID); err == nil {
		t.Fatalf("expected expired session to be absent")
	}
}

func TestSessionStore_DestroyIdempotent(t *testing.T) {
	store := NewSessionStore(nil)
	ctx := context.Background()

	session, err := store.Create(ctx, "acct-1", time.Hour)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if err := store.Destroy(ctx, session.ID); err != nil {
		t.Fatalf("Destroy returned error: %v", err)
	}
	if _, err := store.Get(ctx, session.ID); err == nil {
		t.Fatalf("expected destroyed session to be absent")
	}

	// Destroying again, or destroying a session that never existed, is fine.
	if err := store.Destroy(ctx, session.ID); err != nil {
		t.Fatalf("second Destroy returned error: %v", err)
	}
	if err := store.Destroy(ctx, "never-existed"); err != nil {
		t.Fatalf("Destroy of unknown ID returned error: %v", err)
	}
}

func TestSessionStore_Sweep(t *testing.T) {
	clock := newFakeClock()
	store := NewSessionStore(clock.Now)
	ctx := context.Background()

	if _, err := store.Create(ctx, "acct-1", time.Minute); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	keeper, err := store.Create(ctx, "acct-2", time.Hour)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	clock.Advance(10 * time.Minute)
	if err := store.Sweep(ctx, clock.Now()); err != nil {
		t.Fatalf("Sweep returned error: %v", err)
	}

	if store.Len() != 1 {
		t.Fatalf("expected 1 surviving session, got %d", store.Len())
	}
	if _, err := store.Get(ctx, keeper.ID); err != nil {
		t.Fatalf("live session swept: %v", err)
	}
}

func TestSessionStore_ConcurrentAccess(t *testing.T) {
	store := NewSessionStore(nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			session, err := store.Create(ctx, "acct", time.Hour)
			if err != nil {
				t.Errorf("Create returned error: %v", err)
				return
			}
			if _, err := store.Get(ctx, session.ID); err != nil {
				t.Errorf("Get returned error: %v", err)
			}
			if err := store.Destroy(ctx, session.ID); err != nil {
				t.Errorf("Destroy returned error: %v", err)
			}
			if _, err := store.Get(ctx, session.ID); err == nil {
				t.Errorf("session observed after destroy")
			}
		}()
	}
	wg.Wait()
}
