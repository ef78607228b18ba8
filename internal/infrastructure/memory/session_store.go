// Package memory provides an in-process session store, used when no Redis
// backend is configured and throughout the test suite.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/astralgate/auth-system/internal/core/domain"
	"github.com/astralgate/auth-system/internal/crypto"
)

// SessionStore implements ports.SessionStore on a mutex-guarded map. The
// mutex makes operations on a given session ID linearizable. Expiry is
// enforced lazily on Get; Sweep purges what lazy expiry hasn't touched.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
	now      func() time.Time
}

// NewSessionStore creates a store reading time from now. Pass nil to use
// the wall clock.
func NewSessionStore(now func() time.Time) *SessionStore {
	if now == nil {
		now = time.Now
	}
	return &SessionStore{
		sessions: make(map[string]domain.Session),
		now:      now,
	}
}

func (s *SessionStore) Create(_ context.Context, accountID string, ttl time.Duration) (*domain.Session, error) {
	id, err := crypto.NewToken()
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	session := domain.Session{
		ID:        id,
		AccountID: accountID,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	s.mu.Lock()
	s.sessions[id] = session
	s.mu.Unlock()

	return &session, nil
}

func (s *SessionStore) Get(_ context.Context, sessionID string) (*domain.Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[sessionID]
	s.mu.RUnlock()

	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if session.Expired(s.now()) {
		// Expired-but-unpurged entries behave exactly like absent ones.
		s.mu.Lock()
		delete(s.sessions, sessionID)
		s.mu.Unlock()
		return nil, domain.ErrSessionNotFound
	}
	return &session, nil
}

func (s *SessionStore) Destroy(_ context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	return nil
}

func (s *SessionStore) Sweep(_ context.Context, now time.Time) error {
	s.mu.Lock()
	for id, session := range s.sessions {
		if session.Expired(now) {
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()
	return nil
}

// Len reports the number of stored sessions, expired entries included.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
