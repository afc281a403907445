package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"wordaday-backend/domain/words"
	apperrors "wordaday-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func seedHistory(t *testing.T, repo *fakeRecordRepo) {
	t.Helper()
	now := time.Now().UTC()
	entries := []struct {
		word   string
		status words.PracticeStatus
	}{
		{"luminous", words.StatusPracticed},
		{"gregarious", words.StatusSkipped},
		{"halcyon", words.StatusPending},
		{"ephemeral", words.StatusPracticed},
	}
	for i, e := range entries {
		date := now.AddDate(0, 0, -i).Format(words.DateLayout)
		require.NoError(t, repo.Put(context.Background(),
			storedRecord("u1", date, e.word, e.status)))
	}
}

func TestHistoryQueryStats(t *testing.T) {
	repo := newFakeRecordRepo()
	seedHistory(t, repo)
	svc := NewHistoryService(repo, zap.NewNop())

	page, err := svc.Query(context.Background(), "u1", HistoryQuery{})
	require.NoError(t, err)

	assert.Equal(t, 4, page.Count)
	assert.Equal(t, 4, page.Stats.TotalWords)
	assert.Equal(t, 2, page.Stats.PracticedWords)
	assert.Equal(t, 1, page.Stats.SkippedWords)
	assert.Equal(t, 1, page.Stats.PendingWords)
	assert.Equal(t, "luminous", page.Words[0].Word, "newest first")
}

func TestHistoryQuerySearch(t *testing.T) {
	repo := newFakeRecordRepo()
	seedHistory(t, repo)
	svc := NewHistoryService(repo, zap.NewNop())

	t.Run("matches word", func(t *testing.T) {
		page, err := svc.Query(context.Background(), "u1", HistoryQuery{Search: "HALCYON"})
		require.NoError(t, err)
		require.Equal(t, 1, page.Count)
		assert.Equal(t, "halcyon", page.Words[0].Word)
	})

	t.Run("matches definition", func(t *testing.T) {
		page, err := svc.Query(context.Background(), "u1", HistoryQuery{Search: "meaning of ephemeral"})
		require.NoError(t, err)
		require.Equal(t, 1, page.Count)
		assert.Equal(t, "ephemeral", page.Words[0].Word)
	})

	t.Run("no match", func(t *testing.T) {
		page, err := svc.Query(context.Background(), "u1", HistoryQuery{Search: "zzz"})
		require.NoError(t, err)
		assert.Zero(t, page.Count)
		assert.Zero(t, page.Stats.TotalWords)
	})
}

func TestHistoryQueryDefaultLimit(t *testing.T) {
	repo := newFakeRecordRepo()
	now := time.Now().UTC()
	for i := 0; i < 40; i++ {
		date := now.AddDate(0, 0, -i).Format(words.DateLayout)
		require.NoError(t, repo.Put(context.Background(),
			storedRecord("u1", date, fmt.Sprintf("word%02d", i), words.StatusPending)))
	}
	svc := NewHistoryService(repo, zap.NewNop())

	page, err := svc.Query(context.Background(), "u1", HistoryQuery{})
	require.NoError(t, err)
	assert.Equal(t, defaultHistoryLimit, page.Count)
}

func TestHistoryQueryDateRange(t *testing.T) {
	repo := newFakeRecordRepo()
	require.NoError(t, repo.Put(context.Background(),
		storedRecord("u1", "2026-08-10", "inside", words.StatusPending)))
	require.NoError(t, repo.Put(context.Background(),
		storedRecord("u1", "2026-07-01", "outside", words.StatusPending)))
	svc := NewHistoryService(repo, zap.NewNop())

	page, err := svc.Query(context.Background(), "u1", HistoryQuery{
		StartDate: "2026-08-01",
		EndDate:   "2026-08-20",
	})
	require.NoError(t, err)
	require.Equal(t, 1, page.Count)
	assert.Equal(t, "inside", page.Words[0].Word)
}

func TestHistoryQueryFailure(t *testing.T) {
	repo := newFakeRecordRepo()
	repo.queryErr = errors.New("dynamo down")
	svc := NewHistoryService(repo, zap.NewNop())

	_, err := svc.Query(context.Background(), "u1", HistoryQuery{})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeDatabase))
}
