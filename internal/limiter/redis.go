package limiter

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter counts failures in Redis with a TTL acting as the lock window.
type RedisLimiter struct {
	client      *redis.Client
	maxAttempts int
	lockWindow  time.Duration
}

// NewRedisLimiter constructs a limiter.
func NewRedisLimiter(client *redis.Client, maxAttempts int, lockWindow time.Duration) *RedisLimiter {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	if lockWindow <= 0 {
		lockWindow = 5 * time.Minute
	}
	return &RedisLimiter{client: client, maxAttempts: maxAttempts, lockWindow: lockWindow}
}

func (l *RedisLimiter) key(identifier string, ipHash []byte) string {
	return fmt.Sprintf("login:fail:%s:%s", identifier, hex.EncodeToString(ipHash))
}

// Allow reports whether a login attempt may proceed for this (cpf, ip).
func (l *RedisLimiter) Allow(ctx context.Context, identifier string, ipHash []byte) (bool, time.Duration, error) {
	key := l.key(identifier, ipHash)

	count, err := l.client.Get(ctx, key).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return true, 0, nil
		}
		return false, 0, err
	}
	if count < l.maxAttempts {
		return true, 0, nil
	}

	ttl, err := l.client.TTL(ctx, key).Result()
	if err != nil {
		return false, 0, err
	}
	return false, ttl, nil
}

// Failure records a failed attempt and reports whether the lock threshold
// was reached.
func (l *RedisLimiter) Failure(ctx context.Context, identifier string, ipHash []byte) (bool, time.Duration, error) {
	key := l.key(identifier, ipHash)

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return false, 0, err
	}
	if count == 1 {
		if err := l.client.Expire(ctx, key, l.lockWindow).Err(); err != nil {
			return false, 0, err
		}
	}
	if count >= int64(l.maxAttempts) {
		ttl, err := l.client.TTL(ctx, key).Result()
		if err != nil {
			return true, l.lockWindow, nil
		}
		return true, ttl, nil
	}
	return false, 0, nil
}

// Success clears the failure counter after a successful login.
func (l *RedisLimiter) Success(ctx context.Context, identifier string, ipHash []byte) error {
	return l.client.Del(ctx, l.key(identifier, ipHash)).Err()
}
