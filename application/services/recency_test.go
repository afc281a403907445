package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"wordaday-backend/domain/words"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRecentWordsBuildsExclusions(t *testing.T) {
	repo := newFakeRecordRepo()
	now := time.Now().UTC()
	for i, word := range []string{"oldest", "middle", "newest"} {
		date := now.AddDate(0, 0, -(10 - i)).Format(words.DateLayout)
		require.NoError(t, repo.Put(context.Background(),
			storedRecord("u1", date, word, words.StatusPracticed)))
	}
	// Outside the window; must not appear.
	stale := now.AddDate(0, 0, -45).Format(words.DateLayout)
	require.NoError(t, repo.Put(context.Background(),
		storedRecord("u1", stale, "forgotten", words.StatusPracticed)))

	tracker := NewRecencyTracker(repo, zap.NewNop())
	exclusions := tracker.RecentWords(context.Background(), "u1", 30)

	assert.Equal(t, []string{"newest", "middle", "oldest"}, exclusions.WordTexts,
		"texts come out newest first for the prompt")
	assert.True(t, exclusions.ContainsID("w-newest"))
	assert.False(t, exclusions.ContainsText("forgotten"))
}

func TestRecentWordsFailsOpen(t *testing.T) {
	repo := newFakeRecordRepo()
	repo.queryErr = errors.New("dynamo down")

	tracker := NewRecencyTracker(repo, zap.NewNop())
	exclusions := tracker.RecentWords(context.Background(), "u1", 30)

	assert.Empty(t, exclusions.WordTexts)
	assert.False(t, exclusions.ContainsID("anything"))
}
