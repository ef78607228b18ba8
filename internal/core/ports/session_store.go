package ports

import (
	"context"
	"time"

	"github.com/astralgate/auth-system/internal/core/domain"
)

// SessionStore holds active sessions keyed by session ID. Reads and writes
// to a given ID are linearizable; distinct IDs need no coordination.
type SessionStore interface {
	// Create generates a random session ID, records expiry as now+ttl, and
	// persists the session.
	Create(ctx context.Context, accountID string, ttl time.Duration) (*domain.Session, error)
	// Get returns the session, or domain.ErrSessionNotFound when absent or
	// expired. An expired-but-unpurged entry behaves exactly like an absent one.
	Get(ctx context.Context, sessionID string) (*domain.Session, error)
	// Destroy removes the session. Destroying an absent session is not an error.
	Destroy(ctx context.Context, sessionID string) error
	// Sweep removes all sessions expired at the given time. Only needed to
	// bound memory; correctness never depends on it.
	Sweep(ctx context.Context, now time.Time) error
}
