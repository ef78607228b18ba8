package domain

import (
	"errors"
	"time"
)

// Session grants the bearer of its ID authenticated status until ExpiresAt.
// It references an account, it does not own it.
type Session struct {
	ID        string    `json:"id"`
	AccountID string    `json:"account_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

var ErrSessionNotFound = errors.New("session not found")

// Expired reports whether the session is past its expiry at the given time.
// An expired session is treated identically to an absent one.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
