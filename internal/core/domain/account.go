package domain

import (
	"errors"
	"time"
)

// Account models a registered user of the system. The password digest is
// never serialized to API responses.
type Account struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	PasswordDigest string    `json:"-"`
	AuthCode       string    `json:"auth_code,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

var ErrValidation = errors.New("invalid input")
var ErrAccountNotFound = errors.New("account not found")
var ErrChallengeFailed = errors.New("challenge not satisfied")
var ErrDuplicateUsername = errors.New("username already taken")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUnauthenticated = errors.New("not authenticated")
var ErrHashingFailure = errors.New("password hashing failed")

// HasContact reports whether at least one contact method is present.
// Registration requires this to hold.
func (a *Account) HasContact() bool {
	return a.Email != "" || a.Phone != ""
}
