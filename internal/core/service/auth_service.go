package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/astralgate/auth-system/internal/core/domain"
	"github.com/astralgate/auth-system/internal/core/ports"
)

const defaultSessionTTL = 7 * 24 * time.Hour

// dummyDigest is a well-formed digest that matches no password. Login runs a
// verification against it when the username is unknown so both rejection
// paths cost the same and reveal nothing about which usernames exist.
const dummyDigest = "0000000000000000000000000000000000000000000000000000000000000000.00000000000000000000000000000000"

// AuthService orchestrates registration, login, logout and session lookup.
type AuthService struct {
	directory  ports.AccountDirectory
	sessions   ports.SessionStore
	hasher     ports.PasswordHasher
	sessionTTL time.Duration
}

func NewAuthService(directory ports.AccountDirectory, sessions ports.SessionStore, hasher ports.PasswordHasher, sessionTTL time.Duration) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = defaultSessionTTL
	}
	return &AuthService{
		directory:  directory,
		sessions:   sessions,
		hasher:     hasher,
		sessionTTL: sessionTTL,
	}
}

// Register creates an account and issues its first session.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.Account, *domain.Session, error) {
	if err := validateRegistration(in); err != nil {
		return nil, nil, err
	}
	if !in.ChallengeSatisfied {
		return nil, nil, domain.ErrChallengeFailed
	}

	// The directory's unique constraint is what actually guards against a
	// concurrent registration of the same name; this lookup only exists to
	// fail early without paying for a hash.
	if _, err := s.directory.FindByUsername(ctx, in.Username); err == nil {
		return nil, nil, domain.ErrDuplicateUsername
	} else if !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, nil, fmt.Errorf("lookup username: %w", err)
	}

	digest, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, nil, err
	}

	account := &domain.Account{
		Username:       in.Username,
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Email:          in.Email,
		Phone:          in.Phone,
		PasswordDigest: digest,
		AuthCode:       in.AuthCode,
		CreatedAt:      time.Now().UTC(),
	}

	created, err := s.directory.Insert(ctx, account)
	if err != nil {
		return nil, nil, err
	}

	session, err := s.sessions.Create(ctx, created.ID, s.sessionTTL)
	if err != nil {
		return nil, nil, fmt.Errorf("issue session: %w", err)
	}
	return created, session, nil
}

// Login verifies credentials and issues a session. Unknown usernames and
// wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string, challengeSatisfied bool) (*domain.Account, *domain.Session, error) {
	if !challengeSatisfied {
		return nil, nil, domain.ErrChallengeFailed
	}

	account, err := s.directory.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			// Burn a derivation against the dummy digest anyway so the
			// missing-account path takes as long as a wrong password.
			s.hasher.Verify(password, dummyDigest)
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("lookup username: %w", err)
	}

	if !s.hasher.Verify(password, account.PasswordDigest) {
		return nil, nil, domain.ErrInvalidCredentials
	}

	session, err := s.sessions.Create(ctx, account.ID, s.sessionTTL)
	if err != nil {
		return nil, nil, fmt.Errorf("issue session: %w", err)
	}
	return account, session, nil
}

// Logout destroys the session. Unknown session IDs succeed: logout is
// idempotent.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Destroy(ctx, sessionID)
}

// CurrentUser resolves a live session to its account.
func (s *AuthService) CurrentUser(ctx context.Context, sessionID string) (*domain.Account, error) {
	if sessionID == "" {
		return nil, domain.ErrUnauthenticated
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, fmt.Errorf("session lookup: %w", err)
	}

	account, err := s.directory.FindByID(ctx, session.AccountID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			// Account deleted out from under a live session.
			return nil, domain.ErrUnauthenticated
		}
		return nil, fmt.Errorf("lookup account: %w", err)
	}
	return account, nil
}

func validateRegistration(in ports.RegisterInput) error {
	switch {
	case strings.TrimSpace(in.Username) == "":
		return fmt.Errorf("%w: username is required", domain.ErrValidation)
	case in.Password == "":
		return fmt.Errorf("%w: password is required", domain.ErrValidation)
	case strings.TrimSpace(in.FirstName) == "":
		return fmt.Errorf("%w: first name is required", domain.ErrValidation)
	case strings.TrimSpace(in.LastName) == "":
		return fmt.Errorf("%w: last name is required", domain.ErrValidation)
	case in.Email == "" && in.Phone == "":
		return fmt.Errorf("%w: an email or phone number is required", domain.ErrValidation)
	case in.Password != in.ConfirmPassword:
		return fmt.Errorf("%w: passwords do not match", domain.ErrValidation)
	}
	return nil
}
