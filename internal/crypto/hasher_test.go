package crypto

import (
	"strings"
	"testing"
)

func TestHasher_HashAndVerify(t *testing.T) {
	h := NewHasher()

	digest, err := h.Hash("Secret123!")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if digest == "Secret123!" || digest == "" {
		t.Fatalf("expected digest, got %q", digest)
	}

	if !h.Verify("Secret123!", digest) {
		t.Fatalf("expected correct password to verify")
	}
	if h.Verify("Secret123", digest) {
		t.Fatalf("expected wrong password to fail verification")
	}
}

func TestHasher_DigestFormat(t *testing.T) {
	h := NewHasher()

	digest, err := h.Hash("pw")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}

	key, salt, found := strings.Cut(digest, ".")
	if !found {
		t.Fatalf("digest %q missing separator", digest)
	}
	if len(key) != derivedKeyLen*2 {
		t.Fatalf("expected %d hex chars of key, got %d", derivedKeyLen*2, len(key))
	}
	if len(salt) != saltLength*2 {
		t.Fatalf("expected %d hex chars of salt, got %d", saltLength*2, len(salt))
	}
}

func TestHasher_UniqueSalts(t *testing.T) {
	h := NewHasher()

	first, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	second, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}

	if first == second {
		t.Fatalf("hashing the same plaintext twice produced identical digests")
	}
	// Both digests must still verify against the original plaintext.
	if !h.Verify("same-password", first) || !h.Verify("same-password", second) {
		t.Fatalf("digest no longer verifies its own plaintext")
	}
}

func TestHasher_MalformedDigest(t *testing.T) {
	h := NewHasher()

	// Malformed digests are a verification failure, never a fault.
	for _, digest := range []string{
		"",
		"no-separator",
		".",
		"abc.",
		".def",
		"nothex.00ff",
		"00ff.nothex",
	} {
		if h.Verify("anything", digest) {
			t.Fatalf("malformed digest %q verified", digest)
		}
	}
}
