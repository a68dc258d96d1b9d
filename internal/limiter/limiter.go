// Package limiter throttles repeated failed login attempts per (cpf, ip).
package limiter

import (
	"context"
	"crypto/sha256"
	"time"
)

// Limiter tracks failed authentication attempts. Allow is consulted before
// credentials are checked; Failure records a miss and reports whether the
// lock threshold was reached; Success clears the counter.
type Limiter interface {
	Allow(ctx context.Context, identifier string, ipHash []byte) (bool, time.Duration, error)
	Failure(ctx context.Context, identifier string, ipHash []byte) (blocked bool, retryAfter time.Duration, err error)
	Success(ctx context.Context, identifier string, ipHash []byte) error
}

// HashIP hashes a client address so raw IPs are never stored.
func HashIP(ip string) []byte {
	sum := sha256.Sum256([]byte(ip))
	return sum[:]
}
