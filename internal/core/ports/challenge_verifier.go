package ports

import "context"

// ChallengeVerifier issues and redeems human-verification challenges.
// Redemption happens at the HTTP boundary; the auth service only ever sees
// the resulting boolean.
type ChallengeVerifier interface {
	// Issue creates a single-use challenge and returns its ID and code.
	Issue(ctx context.Context) (id, code string, err error)
	// Redeem consumes the challenge and reports whether the answer matched.
	// A challenge can be redeemed at most once; unknown or expired IDs
	// redeem as false.
	Redeem(ctx context.Context, id, answer string) (bool, error)
}
