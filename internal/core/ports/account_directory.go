package ports

import (
	"context"

	"github.com/astralgate/auth-system/internal/core/domain"
)

// AccountDirectory is the persistence boundary for accounts. Lookups return
// domain.ErrAccountNotFound when no account matches; username matching is
// case-sensitive and exact.
type AccountDirectory interface {
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	// Insert persists a new account and returns it with its generated ID.
	// Returns domain.ErrDuplicateUsername when the username is already taken;
	// the store must enforce this atomically (unique constraint).
	Insert(ctx context.Context, account *domain.Account) (*domain.Account, error)
}
