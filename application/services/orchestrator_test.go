package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"wordaday-backend/domain/users"
	"wordaday-backend/domain/words"
	apperrors "wordaday-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

const fixedToday = "2026-08-31"

type orchestratorFixture struct {
	records   *fakeRecordRepo
	profiles  *fakeProfileRepo
	bank      *fakeBankRepo
	usage     *fakeUsageRepo
	bus       *fakeBus
	metrics   *fakeMetrics
	sentences *fakeSentences
	orch      *Orchestrator
}

func newOrchestratorFixture(useAI bool, providers ...*fakeProvider) *orchestratorFixture {
	logger := zap.NewNop()

	f := &orchestratorFixture{
		records:   newFakeRecordRepo(),
		profiles:  newFakeProfileRepo(),
		bank:      &fakeBankRepo{},
		usage:     newFakeUsageRepo(),
		bus:       &fakeBus{},
		metrics:   newFakeMetrics(),
		sentences: &fakeSentences{sentences: []string{"g1", "g2", "g3"}},
	}

	selector := NewWordSelector(f.bank, logger)
	selector.pick = func(int) int { return 0 }

	generator := NewAIWordGenerator(providerChain(providers), &fakeImages{}, f.metrics, logger)
	limiter := NewUsageLimiter(f.usage, 2, logger)
	recency := NewRecencyTracker(f.records, logger)

	f.orch = NewOrchestrator(
		f.records, f.profiles, recency, selector, generator,
		f.sentences, limiter, f.bus, f.metrics, useAI, logger,
	)
	f.orch.now = func() time.Time { return fixedNow }
	return f
}

func bankEntry(id, word string, difficulty int) words.BankEntry {
	return words.BankEntry{
		WordID:     id,
		Word:       word,
		Definition: "meaning of " + word,
		Difficulty: difficulty,
		Examples:   []string{"e1", "e2", "e3"},
	}
}

func profileWithAge(userID string, age words.AgeGroup) *users.Profile {
	p := users.DefaultProfile(userID)
	p.AgeGroup = age
	return p
}

func storedRecord(userID, date, word string, status words.PracticeStatus) *words.WordRecord {
	return &words.WordRecord{
		UserID:     userID,
		Date:       date,
		WordID:     "w-" + word,
		Word:       word,
		Definition: "meaning of " + word,
		Difficulty: 3,
		Sentences:  []string{"a", "b", "c"},
		Status:     status,
	}
}

func TestGetTodaysWordReturnsStoredRecord(t *testing.T) {
	provider := &fakeProvider{name: "groq", configured: true, word: generatedWord("ephemeral")}
	f := newOrchestratorFixture(true, provider)
	require.NoError(t, f.records.Put(context.Background(),
		storedRecord("u1", fixedToday, "luminous", words.StatusPending)))

	result, err := f.orch.GetTodaysWord(context.Background(), "u1", "")
	require.NoError(t, err)

	assert.Equal(t, "luminous", result.Record.Word)
	assert.False(t, result.Generated)
	assert.False(t, result.Regenerated)
	assert.Zero(t, provider.calls, "stored record must not trigger generation")
	assert.Empty(t, f.bus.published)
}

func TestGetTodaysWordGeneratesViaProvider(t *testing.T) {
	provider := &fakeProvider{name: "groq", configured: true, word: generatedWord("ephemeral")}
	f := newOrchestratorFixture(true, provider)

	result, err := f.orch.GetTodaysWord(context.Background(), "u1", "")
	require.NoError(t, err)

	assert.True(t, result.Generated)
	assert.Equal(t, "ephemeral", result.Record.Word)
	assert.Equal(t, words.MethodAI, result.Record.Method)
	assert.Equal(t, "groq", result.Record.Provider)
	assert.Equal(t, words.StatusPending, result.Record.Status)
	assert.NotEmpty(t, result.Record.WordID)

	persisted, err := f.records.Get(context.Background(), "u1", fixedToday)
	require.NoError(t, err)
	require.NotNil(t, persisted)
	assert.Equal(t, "ephemeral", persisted.Word)

	assert.Equal(t, []string{"groq"}, f.usage.providers)
	require.Len(t, f.bus.published, 1)
	assert.Equal(t, "word.generated", f.bus.published[0].GetEventType())
	assert.Equal(t, float64(1), f.metrics.counts["WordGenerated"])
}

func TestGetTodaysWordProviderFailureFallsBackToBank(t *testing.T) {
	provider := &fakeProvider{name: "groq", configured: true, err: errors.New("rate limited")}
	f := newOrchestratorFixture(true, provider)
	f.bank.entries = []words.BankEntry{bankEntry("b1", "gregarious", 4)}

	result, err := f.orch.GetTodaysWord(context.Background(), "u1", "")
	require.NoError(t, err)

	assert.Equal(t, "gregarious", result.Record.Word)
	assert.Equal(t, words.MethodWordBank, result.Record.Method)
	assert.Empty(t, result.Record.Provider)
	assert.Empty(t, f.usage.providers, "bank words never count against the AI quota")
}

func TestGetTodaysWordQuotaExhaustedUsesBank(t *testing.T) {
	provider := &fakeProvider{name: "groq", configured: true, word: generatedWord("ephemeral")}
	f := newOrchestratorFixture(true, provider)
	f.bank.entries = []words.BankEntry{bankEntry("b1", "gregarious", 4)}
	f.usage.counts[recordKey("u1", words.Today())] = 2

	result, err := f.orch.GetTodaysWord(context.Background(), "u1", "")
	require.NoError(t, err)

	assert.Equal(t, words.MethodWordBank, result.Record.Method)
	assert.Zero(t, provider.calls, "exhausted quota must short-circuit the provider chain")
}

func TestGetTodaysWordEmptyBankUsesFallbackEntry(t *testing.T) {
	f := newOrchestratorFixture(false)

	result, err := f.orch.GetTodaysWord(context.Background(), "u1", "")
	require.NoError(t, err)

	assert.Equal(t, "serendipity", result.Record.Word)
	assert.Equal(t, words.MethodWordBank, result.Record.Method)
	require.NoError(t, result.Record.Validate())
}

func TestGetTodaysWordSkippedTodayRegenerates(t *testing.T) {
	f := newOrchestratorFixture(false)
	f.bank.entries = []words.BankEntry{bankEntry("b1", "gregarious", 4)}
	require.NoError(t, f.records.Put(context.Background(),
		storedRecord("u1", fixedToday, "tedious", words.StatusSkipped)))

	result, err := f.orch.GetTodaysWord(context.Background(), "u1", "")
	require.NoError(t, err)

	assert.True(t, result.Regenerated)
	assert.False(t, result.Generated)
	assert.Equal(t, "gregarious", result.Record.Word)

	persisted, err := f.records.Get(context.Background(), "u1", fixedToday)
	require.NoError(t, err)
	assert.Equal(t, "gregarious", persisted.Word, "skipped record must be overwritten in place")
	assert.Equal(t, words.StatusPending, persisted.Status)
}

func TestGetTodaysWordPastDates(t *testing.T) {
	t.Run("absent past date is not found", func(t *testing.T) {
		f := newOrchestratorFixture(false)
		f.bank.entries = []words.BankEntry{bankEntry("b1", "gregarious", 4)}

		_, err := f.orch.GetTodaysWord(context.Background(), "u1", "2026-08-01")
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))

		persisted, getErr := f.records.Get(context.Background(), "u1", "2026-08-01")
		require.NoError(t, getErr)
		assert.Nil(t, persisted, "past dates are never backfilled")
	})

	t.Run("skipped past record is returned as-is", func(t *testing.T) {
		f := newOrchestratorFixture(false)
		require.NoError(t, f.records.Put(context.Background(),
			storedRecord("u1", "2026-08-01", "tedious", words.StatusSkipped)))

		result, err := f.orch.GetTodaysWord(context.Background(), "u1", "2026-08-01")
		require.NoError(t, err)
		assert.Equal(t, "tedious", result.Record.Word)
		assert.False(t, result.Regenerated)
	})
}

func TestGetTodaysWordRejectsMalformedDate(t *testing.T) {
	f := newOrchestratorFixture(false)

	_, err := f.orch.GetTodaysWord(context.Background(), "u1", "31/08/2026")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}

func TestGetTodaysWordConflictReturnsWinner(t *testing.T) {
	f := newOrchestratorFixture(false)
	f.bank.entries = []words.BankEntry{bankEntry("b1", "gregarious", 4)}
	f.records.conflictWinner = storedRecord("u1", fixedToday, "halcyon", words.StatusPending)

	result, err := f.orch.GetTodaysWord(context.Background(), "u1", "")
	require.NoError(t, err)

	assert.Equal(t, "halcyon", result.Record.Word, "losing the race returns the concurrent winner")
	assert.Empty(t, f.bus.published, "the loser publishes no event")
}

func TestGetTodaysWordUsesProfileDifficultyBand(t *testing.T) {
	f := newOrchestratorFixture(false)
	f.profiles.profiles["u1"] = profileWithAge("u1", words.AgeChild)
	f.bank.entries = []words.BankEntry{
		bankEntry("b1", "abstruse", 5),
		bankEntry("b2", "cat", 1),
	}

	result, err := f.orch.GetTodaysWord(context.Background(), "u1", "")
	require.NoError(t, err)
	assert.Equal(t, "cat", result.Record.Word, "child band is difficulty 1..2")
}

func TestGetTodaysWordRecordGetFailure(t *testing.T) {
	f := newOrchestratorFixture(false)
	f.records.getErr = errors.New("dynamo down")

	_, err := f.orch.GetTodaysWord(context.Background(), "u1", "")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeDatabase))
}
