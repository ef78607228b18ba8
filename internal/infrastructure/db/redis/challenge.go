package redis

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/astralgate/auth-system/internal/crypto"
)

const (
	defaultChallengeTTL = 5 * time.Minute
	challengeCodeLen    = 6
	challengeAlphabet   = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// ChallengeVerifier issues single-use human-verification codes backed by
// Redis. Key format: challenge:<id>
type ChallengeVerifier struct {
	client *redis.Client
	ttl    time.Duration
}

func NewChallengeVerifier(client *redis.Client, ttl time.Duration) *ChallengeVerifier {
	if ttl <= 0 {
		ttl = defaultChallengeTTL
	}
	return &ChallengeVerifier{client: client, ttl: ttl}
}

// Issue stores a fresh challenge and returns its ID together with the code
// the caller must echo back. The entry expires after the configured TTL.
func (v *ChallengeVerifier) Issue(ctx context.Context) (string, string, error) {
	id, err := crypto.NewToken()
	if err != nil {
		return "", "", err
	}

	code, err := randomCode(challengeCodeLen)
	if err != nil {
		return "", "", fmt.Errorf("generate challenge code: %w", err)
	}

	if err := v.client.Set(ctx, v.key(id), code, v.ttl).Err(); err != nil {
		return "", "", fmt.Errorf("store challenge: %w", err)
	}
	return id, code, nil
}

// Redeem consumes the challenge and reports whether the answer matched.
// GetDel makes redemption single-use: a second redeem of the same ID finds
// nothing and reports false.
func (v *ChallengeVerifier) Redeem(ctx context.Context, id, answer string) (bool, error) {
	expected, err := v.client.GetDel(ctx, v.key(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("redeem challenge: %w", err)
	}
	return expected != "" && expected == answer, nil
}

func (v *ChallengeVerifier) key(id string) string {
	return "challenge:" + id
}

func randomCode(n int) (string, error) {
	buf := make([]byte, n)
	max := big.NewInt(int64(len(challengeAlphabet)))
	for i := range buf {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = challengeAlphabet[idx.Int64()]
	}
	return string(buf), nil
}
