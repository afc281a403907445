// Package ports defines the interfaces the application layer depends on.
// Infrastructure provides the implementations; tests provide fakes.
package ports

import (
	"context"

	"wordaday-backend/domain/notifications"
	"wordaday-backend/domain/users"
	"wordaday-backend/domain/words"
)

// WordRecordRepository persists daily word records keyed by (userID, date).
type WordRecordRepository interface {
	// Get returns the record for (userID, date), or (nil, nil) when absent.
	Get(ctx context.Context, userID, date string) (*words.WordRecord, error)

	// Put stores a record unconditionally, overwriting any existing one for
	// the same key. Used for skip-regeneration.
	Put(ctx context.Context, record *words.WordRecord) error

	// PutIfAbsentOrSkipped stores a record only when no record exists for
	// the key or the existing one is skipped. A concurrent writer winning
	// the race yields a conflict error; callers re-read and return the
	// stored record.
	PutIfAbsentOrSkipped(ctx context.Context, record *words.WordRecord) error

	// QueryRange returns records for userID with dates in [start, end],
	// oldest first.
	QueryRange(ctx context.Context, userID, start, end string) ([]words.WordRecord, error)

	// QueryRecent returns up to limit records for userID, newest first,
	// optionally bounded to [start, end] when start is non-empty.
	QueryRecent(ctx context.Context, userID, start, end string, limit int) ([]words.WordRecord, error)

	// UpdatePractice sets the practice status and rating on an existing
	// record.
	UpdatePractice(ctx context.Context, userID, date string, status words.PracticeStatus, rating int) error
}

// WordBankRepository reads and seeds the pre-authored word catalog.
type WordBankRepository interface {
	// ScanByDifficulty returns up to limit entries whose difficulty lies in
	// [low, high].
	ScanByDifficulty(ctx context.Context, low, high, limit int) ([]words.BankEntry, error)

	// Put stores a bank entry. Used only by the enrichment pipeline.
	Put(ctx context.Context, entry *words.BankEntry) error
}

// ProfileRepository persists user profiles.
type ProfileRepository interface {
	// Get returns the profile for userID, or (nil, nil) when absent.
	Get(ctx context.Context, userID string) (*users.Profile, error)

	// Put stores a profile.
	Put(ctx context.Context, profile *users.Profile) error

	// ListAll returns every profile. Used by the daily batch and the
	// notification dispatcher.
	ListAll(ctx context.Context) ([]users.Profile, error)
}

// FeedbackRepository persists user feedback rows.
type FeedbackRepository interface {
	Put(ctx context.Context, feedback *words.Feedback) error
}

// UsageRepository tracks per-user per-day AI generation counts.
type UsageRepository interface {
	// Count returns how many words were generated for userID on date.
	Count(ctx context.Context, userID, date string) (int, error)

	// Increment records one more generated word and the provider that
	// produced it.
	Increment(ctx context.Context, userID, date, provider string) error
}

// NotificationLogRepository persists delivery attempt logs.
type NotificationLogRepository interface {
	Put(ctx context.Context, log *notifications.Log) error
}
