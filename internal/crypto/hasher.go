// Package crypto implements the credential hasher on top of scrypt.
package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/scrypt"

	"github.com/astralgate/auth-system/internal/core/domain"
)

// scrypt cost parameters. N is the CPU/memory cost factor; together these
// make each derivation deliberately expensive to slow offline brute force.
const (
	scryptN       = 32768
	scryptR       = 8
	scryptP       = 1
	saltLength    = 16
	derivedKeyLen = 32
)

// Hasher produces digests of the form <derived-key-hex>.<salt-hex>.
type Hasher struct{}

func NewHasher() *Hasher {
	return &Hasher{}
}

// Hash derives a digest from the password using a fresh random salt.
// Any non-empty plaintext is hashable; failure means the underlying
// primitive failed and is surfaced as domain.ErrHashingFailure.
func (h *Hasher) Hash(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("%w: generate salt: %v", domain.ErrHashingFailure, err)
	}

	key, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, derivedKeyLen)
	if err != nil {
		return "", fmt.Errorf("%w: derive key: %v", domain.ErrHashingFailure, err)
	}

	return hex.EncodeToString(key) + "." + hex.EncodeToString(salt), nil
}

// Verify re-derives the key from password and the digest's salt and compares
// in constant time. Malformed digests verify as false, never as an error.
func (h *Hasher) Verify(password, digest string) bool {
	expected, salt, ok := splitDigest(digest)
	if !ok {
		return false
	}

	key, err := scrypt.Key([]byte(password), salt, scryptN, scryptR, scryptP, len(expected))
	if err != nil {
		return false
	}

	return subtle.ConstantTimeCompare(key, expected) == 1
}

func splitDigest(digest string) (key, salt []byte, ok bool) {
	head, tail, found := strings.Cut(digest, ".")
	if !found || head == "" || tail == "" {
		return nil, nil, false
	}

	key, err := hex.DecodeString(head)
	if err != nil {
		return nil, nil, false
	}
	salt, err = hex.DecodeString(tail)
	if err != nil {
		return nil, nil, false
	}
	return key, salt, true
}
