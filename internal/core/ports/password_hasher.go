package ports

// PasswordHasher derives and verifies salted password digests.
type PasswordHasher interface {
	// Hash derives a digest from the plaintext using a fresh random salt.
	Hash(password string) (string, error)
	// Verify reports whether the plaintext matches the digest. A malformed
	// digest is a verification failure (false), not an error.
	Verify(password, digest string) bool
}
