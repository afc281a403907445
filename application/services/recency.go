package services

import (
	"context"
	"strings"
	"time"

	"wordaday-backend/application/ports"
	"wordaday-backend/domain/words"

	"go.uber.org/zap"
)

// DefaultRecencyWindowDays is the trailing window used to avoid repeats.
const DefaultRecencyWindowDays = 30

// Exclusions is the set of words a user has recently received.
type Exclusions struct {
	// WordIDs holds bank entry identifiers, for filtering bank candidates.
	WordIDs map[string]struct{}

	// WordTexts holds the word strings, newest first, for the AI prompt's
	// do-not-reuse list.
	WordTexts []string
}

// Empty returns an exclusion set that excludes nothing.
func EmptyExclusions() Exclusions {
	return Exclusions{WordIDs: map[string]struct{}{}}
}

// ContainsID reports whether a bank entry identifier is excluded.
func (e Exclusions) ContainsID(wordID string) bool {
	_, ok := e.WordIDs[wordID]
	return ok
}

// ContainsText reports whether a word text is excluded, case-insensitively.
func (e Exclusions) ContainsText(word string) bool {
	for _, w := range e.WordTexts {
		if strings.EqualFold(w, word) {
			return true
		}
	}
	return false
}

// RecencyTracker derives exclusion sets from a user's stored word history.
type RecencyTracker struct {
	records ports.WordRecordRepository
	logger  *zap.Logger
}

// NewRecencyTracker creates a recency tracker.
func NewRecencyTracker(records ports.WordRecordRepository, logger *zap.Logger) *RecencyTracker {
	return &RecencyTracker{records: records, logger: logger}
}

// RecentWords returns the words received in [today - windowDays, today].
// The lookup fails open: an infrastructure error yields an empty exclusion
// set so a hiccup never blocks generation.
func (t *RecencyTracker) RecentWords(ctx context.Context, userID string, windowDays int) Exclusions {
	now := time.Now().UTC()
	end := now.Format(words.DateLayout)
	start := now.AddDate(0, 0, -windowDays).Format(words.DateLayout)

	records, err := t.records.QueryRange(ctx, userID, start, end)
	if err != nil {
		t.logger.Warn("Recent words lookup failed, proceeding without exclusions",
			zap.String("userID", userID),
			zap.Error(err),
		)
		return EmptyExclusions()
	}

	exclusions := EmptyExclusions()
	// QueryRange is oldest first; walk backwards so texts come out newest
	// first for the prompt.
	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		if r.WordID != "" {
			exclusions.WordIDs[r.WordID] = struct{}{}
		}
		if r.Word != "" {
			exclusions.WordTexts = append(exclusions.WordTexts, r.Word)
		}
	}
	return exclusions
}
