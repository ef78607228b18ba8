package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/astralgate/auth-system/internal/core/domain"
	"github.com/astralgate/auth-system/internal/core/ports"
	"github.com/astralgate/auth-system/internal/infrastructure/memory"
)

type stubDirectory struct {
	accounts map[string]*domain.Account
	nextID   int
}

func newStubDirectory() *stubDirectory {
	return &stubDirectory{accounts: make(map[string]*domain.Account)}
}

func cloneAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (d *stubDirectory) FindByUsername(_ context.Context, username string) (*domain.Account, error) {
	for _, a := range d.accounts {
		if a.Username == username {
			return cloneAccount(a), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (d *stubDirectory) FindByID(_ context.Context, id string) (*domain.Account, error) {
	if a, ok := d.accounts[id]; ok {
		return cloneAccount(a), nil
	}
	return nil, domain.ErrAccountNotFound
}

func (d *stubDirectory) Insert(_ context.Context, account *domain.Account) (*domain.Account, error) {
	for _, a := range d.accounts {
		if a.Username == account.Username {
			return nil, domain.ErrDuplicateUsername
		}
	}
	d.nextID++
	created := cloneAccount(account)
	created.ID = "acct-" + strconv.Itoa(d.nextID)
	d.accounts[created.ID] = cloneAccount(created)
	return created, nil
}

// fakeHasher keeps service tests fast; the real derivation is covered by the
// crypto package's own tests.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) {
	return "digest:" + password, nil
}

func (fakeHasher) Verify(password, digest string) bool {
	return digest == "digest:"+password
}

func newTestService() (*AuthService, *stubDirectory, *memory.SessionStore) {
	directory := newStubDirectory()
	sessions := memory.NewSessionStore(nil)
	svc := NewAuthService(directory, sessions, fakeHasher{}, time.Hour)
	return svc, directory, sessions
}

func validRegistration() ports.RegisterInput {
	return ports.RegisterInput{
		Username:           "alice",
		Password:           "Secret123!",
		ConfirmPassword:    "Secret123!",
		FirstName:          "A",
		LastName:           "B",
		Email:              "a@b.com",
		ChallengeSatisfied: true,
	}
}

func TestAuthService_Register_Success(t *testing.T) {
	svc, _, _ := newTestService()

	account, session, err := svc.Register(context.Background(), validRegistration())
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if account.ID == "" {
		t.Fatalf("expected generated account ID")
	}
	if account.PasswordDigest == "Secret123!" {
		t.Fatalf("expected password to be hashed")
	}
	if session == nil || session.AccountID != account.ID {
		t.Fatalf("expected a session for the new account, got %+v", session)
	}

	// The fresh session already authenticates.
	current, err := svc.CurrentUser(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("CurrentUser returned error: %v", err)
	}
	if current.Username != "alice" {
		t.Fatalf("unexpected account: %+v", current)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc, _, _ := newTestService()

	cases := map[string]func(*ports.RegisterInput){
		"missing username":   func(in *ports.RegisterInput) { in.Username = "" },
		"missing password":   func(in *ports.RegisterInput) { in.Password = "" },
		"missing first name": func(in *ports.RegisterInput) { in.FirstName = "" },
		"missing last name":  func(in *ports.RegisterInput) { in.LastName = "" },
		"no contact method":  func(in *ports.RegisterInput) { in.Email = ""; in.Phone = "" },
		"password mismatch":  func(in *ports.RegisterInput) { in.ConfirmPassword = "different" },
	}

	for name, mutate := range cases {
		in := validRegistration()
		mutate(&in)
		if _, _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("%s: expected ErrValidation, got %v", name, err)
		}
	}
}

func TestAuthService_Register_PhoneOnlyContact(t *testing.T) {
	svc, _, _ := newTestService()

	in := validRegistration()
	in.Email = ""
	in.Phone = "+15550100"
	if _, _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("phone-only registration failed: %v", err)
	}
}

func TestAuthService_Register_ChallengeFailed(t *testing.T) {
	svc, directory, _ := newTestService()

	in := validRegistration()
	in.ChallengeSatisfied = false
	if _, _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrChallengeFailed) {
		t.Fatalf("expected ErrChallengeFailed, got %v", err)
	}
	if len(directory.accounts) != 0 {
		t.Fatalf("no account should be created on a failed challenge")
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc, directory, _ := newTestService()

	if _, _, err := svc.Register(context.Background(), validRegistration()); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}

	in := validRegistration()
	in.Email = "other@b.com"
	if _, _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}
	if len(directory.accounts) != 1 {
		t.Fatalf("expected exactly one account, got %d", len(directory.accounts))
	}
}

func TestAuthService_Register_AuthCodeStoredVerbatim(t *testing.T) {
	svc, _, _ := newTestService()

	in := validRegistration()
	in.AuthCode = "opaque-code-42"
	account, _, err := svc.Register(context.Background(), in)
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if account.AuthCode != "opaque-code-42" {
		t.Fatalf("auth code not stored verbatim: %q", account.AuthCode)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, _, _ := newTestService()

	_, registerSession, err := svc.Register(context.Background(), validRegistration())
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	account, loginSession, err := svc.Login(context.Background(), "alice", "Secret123!", true)
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if account.Username != "alice" {
		t.Fatalf("unexpected account: %+v", account)
	}
	if loginSession.ID == registerSession.ID {
		t.Fatalf("login must issue a session distinct from registration's")
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, _, _ := newTestService()

	if _, _, err := svc.Register(context.Background(), validRegistration()); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), "alice", "wrong", true); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownUsername(t *testing.T) {
	svc, _, _ := newTestService()

	if _, _, err := svc.Register(context.Background(), validRegistration()); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	// Username enumeration resistance: unknown usernames and wrong passwords
	// yield the identical error value.
	_, _, unknownErr := svc.Login(context.Background(), "ghost", "Secret123!", true)
	_, _, wrongErr := svc.Login(context.Background(), "alice", "wrong", true)
	if !errors.Is(unknownErr, domain.ErrInvalidCredentials) || !errors.Is(wrongErr, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials twice, got %v and %v", unknownErr, wrongErr)
	}
	if unknownErr.Error() != wrongErr.Error() {
		t.Fatalf("rejection messages differ: %q vs %q", unknownErr, wrongErr)
	}
}

func TestAuthService_Login_ChallengeFailed(t *testing.T) {
	svc, _, _ := newTestService()

	if _, _, err := svc.Register(context.Background(), validRegistration()); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), "alice", "Secret123!", false); !errors.Is(err, domain.ErrChallengeFailed) {
		t.Fatalf("expected ErrChallengeFailed, got %v", err)
	}
}

func TestAuthService_Logout(t *testing.T) {
	svc, _, _ := newTestService()

	_, session, err := svc.Register(context.Background(), validRegistration())
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	if err := svc.Logout(context.Background(), session.ID); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if _, err := svc.CurrentUser(context.Background(), session.ID); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated after logout, got %v", err)
	}

	// Logout is idempotent, including for tokens that never existed.
	if err := svc.Logout(context.Background(), session.ID); err != nil {
		t.Fatalf("repeated Logout returned error: %v", err)
	}
	if err := svc.Logout(context.Background(), "never-issued"); err != nil {
		t.Fatalf("Logout of unknown session returned error: %v", err)
	}
}

func TestAuthService_CurrentUser_NoSession(t *testing.T) {
	svc, _, _ := newTestService()

	if _, err := svc.CurrentUser(context.Background(), ""); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for empty token, got %v", err)
	}
	if _, err := svc.CurrentUser(context.Background(), "unknown"); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for unknown token, got %v", err)
	}
}

func TestValidateRegistration_MessageNamesField(t *testing.T) {
	in := validRegistration()
	in.Email = ""
	in.Phone = ""
	err := validateRegistration(in)
	if err == nil || !strings.Contains(err.Error(), "email or phone") {
		t.Fatalf("expected contact-method message, got %v", err)
	}
}
