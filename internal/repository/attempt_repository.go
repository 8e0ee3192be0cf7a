package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const loginAttemptPrefix = "login:attempts:"

// AttemptRepository counts failed login attempts per email in Redis.
type AttemptRepository struct {
	client *redis.Client
}

// NewAttemptRepository constructs an attempt repository. A nil client disables counting.
func NewAttemptRepository(client *redis.Client) *AttemptRepository {
	return &AttemptRepository{client: client}
}

func attemptKey(email string) string {
	return loginAttemptPrefix + strings.ToLower(strings.TrimSpace(email))
}

// Count returns the failures recorded in the current window.
func (r *AttemptRepository) Count(ctx context.Context, email string) (int64, error) {
	if r.client == nil {
		return 0, nil
	}
	count, err := r.client.Get(ctx, attemptKey(email)).Int64()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		return 0, fmt.Errorf("redis get attempts: %w", err)
	}
	return count, nil
}

// Increment records a failure and restarts the window.
func (r *AttemptRepository) Increment(ctx context.Context, email string, window time.Duration) (int64, error) {
	if r.client == nil {
		return 0, nil
	}
	key := attemptKey(email)
	pipe := r.client.Pipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("redis incr attempts: %w", err)
	}
	return incr.Val(), nil
}

// Reset clears the counter after a successful login.
func (r *AttemptRepository) Reset(ctx context.Context, email string) error {
	if r.client == nil {
		return nil
	}
	if err := r.client.Del(ctx, attemptKey(email)).Err(); err != nil {
		return fmt.Errorf("redis delete attempts: %w", err)
	}
	return nil
}
