package services

import (
	"context"
	"time"

	"wordaday-backend/application/ports"
	"wordaday-backend/domain/words"
	"wordaday-backend/pkg/utils"

	"go.uber.org/zap"
)

// DailyGenerationLimit caps AI generations per user per UTC day.
const DailyGenerationLimit = 20

// UsageDecision is the outcome of a rate limit check.
type UsageDecision struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

// UsageLimiter enforces the per-user daily AI generation cap against the
// usage table. Lookups fail open: a limiter outage must not block words.
type UsageLimiter struct {
	usage  ports.UsageRepository
	limit  int
	logger *zap.Logger
}

// NewUsageLimiter creates a limiter. A non-positive limit falls back to
// the default daily cap.
func NewUsageLimiter(usage ports.UsageRepository, limit int, logger *zap.Logger) *UsageLimiter {
	if limit <= 0 {
		limit = DailyGenerationLimit
	}
	return &UsageLimiter{usage: usage, limit: limit, logger: logger}
}

// Check reports whether the user may generate another AI word today.
func (l *UsageLimiter) Check(ctx context.Context, userID string) UsageDecision {
	today := words.Today()
	resetAt := utils.NextMidnightUTC(time.Now())

	count, err := l.usage.Count(ctx, userID, today)
	if err != nil {
		l.logger.Warn("Usage lookup failed, allowing generation",
			zap.String("userID", userID),
			zap.Error(err),
		)
		return UsageDecision{Allowed: true, Remaining: l.limit, ResetAt: resetAt}
	}

	remaining := l.limit - count
	if remaining < 0 {
		remaining = 0
	}
	return UsageDecision{
		Allowed:   count < l.limit,
		Remaining: remaining,
		ResetAt:   resetAt,
	}
}

// Record tracks one generated word. Failures are logged, never surfaced:
// usage tracking is advisory.
func (l *UsageLimiter) Record(ctx context.Context, userID, provider string) {
	if err := l.usage.Increment(ctx, userID, words.Today(), provider); err != nil {
		l.logger.Warn("Usage tracking update failed",
			zap.String("userID", userID),
			zap.String("provider", provider),
			zap.Error(err),
		)
	}
}

// Limit returns the configured daily cap.
func (l *UsageLimiter) Limit() int {
	return l.limit
}
