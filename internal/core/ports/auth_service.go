package ports

import (
	"context"

	"github.com/astralgate/auth-system/internal/core/domain"
)

// RegisterInput carries everything a registration attempt supplies.
// ChallengeSatisfied reports the outcome of the out-of-band challenge check;
// the service trusts the boolean and performs no verification of its own.
type RegisterInput struct {
	Username           string
	Password           string
	ConfirmPassword    string
	FirstName          string
	LastName           string
	Email              string
	Phone              string
	AuthCode           string
	ChallengeSatisfied bool
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.Account, *domain.Session, error)
	Login(ctx context.Context, username, password string, challengeSatisfied bool) (*domain.Account, *domain.Session, error)
	Logout(ctx context.Context, sessionID string) error
	CurrentUser(ctx context.Context, sessionID string) (*domain.Account, error)
}
