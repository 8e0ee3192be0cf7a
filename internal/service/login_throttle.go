package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/noah-isme/escola-aulas-api/pkg/errors"
)

type attemptStore interface {
	Count(ctx context.Context, email string) (int64, error)
	Increment(ctx context.Context, email string, window time.Duration) (int64, error)
	Reset(ctx context.Context, email string) error
}

// LoginThrottle blocks an email after too many failed logins within a window.
// Store failures are logged and never block a login.
type LoginThrottle struct {
	store       attemptStore
	maxAttempts int64
	window      time.Duration
	logger      *zap.Logger
}

// NewLoginThrottle constructs a throttle backed by store.
func NewLoginThrottle(store attemptStore, maxAttempts int, window time.Duration, logger *zap.Logger) *LoginThrottle {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &LoginThrottle{store: store, maxAttempts: int64(maxAttempts), window: window, logger: logger}
}

// Allow returns ErrTooManyRequests once the failure budget is spent.
func (t *LoginThrottle) Allow(ctx context.Context, email string) error {
	count, err := t.store.Count(ctx, email)
	if err != nil {
		t.logger.Warn("login throttle lookup failed", zap.Error(err))
		return nil
	}
	if count >= t.maxAttempts {
		return appErrors.ErrTooManyRequests
	}
	return nil
}

// RecordFailure counts one failed attempt.
func (t *LoginThrottle) RecordFailure(ctx context.Context, email string) {
	count, err := t.store.Increment(ctx, email, t.window)
	if err != nil {
		t.logger.Warn("login throttle increment failed", zap.Error(err))
		return
	}
	if count == t.maxAttempts {
		t.logger.Warn("login attempts exhausted", zap.String("email", email), zap.Duration("window", t.window))
	}
}

// Reset clears the failures after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, email string) {
	if err := t.store.Reset(ctx, email); err != nil {
		t.logger.Warn("login throttle reset failed", zap.Error(err))
	}
}
