package services

import (
	"context"
	"fmt"
	"time"

	"wordaday-backend/application/ports"
	"wordaday-backend/domain/events"
	"wordaday-backend/domain/users"
	"wordaday-backend/domain/words"
	apperrors "wordaday-backend/pkg/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TodaysWord is the orchestrator's answer to a word request.
type TodaysWord struct {
	Record      *words.WordRecord
	Generated   bool
	Regenerated bool
}

// Orchestrator drives the per-(user, date) word lifecycle: it classifies
// the request, runs AI-first generation with bank fallback, persists the
// result, and publishes lifecycle events.
type Orchestrator struct {
	records   ports.WordRecordRepository
	profiles  ports.ProfileRepository
	recency   *RecencyTracker
	selector  *WordSelector
	generator *AIWordGenerator
	sentences ports.SentenceGenerator
	usage     *UsageLimiter
	bus       ports.EventBus
	metrics   ports.MetricsEmitter
	logger    *zap.Logger

	useAI      bool
	windowDays int
	now        func() time.Time
}

// NewOrchestrator wires the generation workflow.
func NewOrchestrator(
	records ports.WordRecordRepository,
	profiles ports.ProfileRepository,
	recency *RecencyTracker,
	selector *WordSelector,
	generator *AIWordGenerator,
	sentences ports.SentenceGenerator,
	usage *UsageLimiter,
	bus ports.EventBus,
	metrics ports.MetricsEmitter,
	useAI bool,
	logger *zap.Logger,
) *Orchestrator {
	return &Orchestrator{
		records:    records,
		profiles:   profiles,
		recency:    recency,
		selector:   selector,
		generator:  generator,
		sentences:  sentences,
		usage:      usage,
		bus:        bus,
		metrics:    metrics,
		logger:     logger,
		useAI:      useAI,
		windowDays: DefaultRecencyWindowDays,
		now:        time.Now,
	}
}

// GetTodaysWord returns the word for (userID, date), generating one when the
// state machine calls for it. date defaults to the current UTC date when
// empty. Past dates are immutable: an existing record is returned as-is and
// a missing one is a not-found condition, never a backfill.
func (o *Orchestrator) GetTodaysWord(ctx context.Context, userID, date string) (*TodaysWord, error) {
	today := o.today()
	if date == "" {
		date = today
	}
	if _, err := time.Parse(words.DateLayout, date); err != nil {
		return nil, apperrors.NewValidationError(fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", date))
	}

	existing, err := o.records.Get(ctx, userID, date)
	if err != nil {
		return nil, apperrors.NewDatabaseError("get word record", err)
	}

	state := words.ClassifyRequest(existing, date == today)
	o.logger.Debug("Classified word request",
		zap.String("userID", userID),
		zap.String("date", date),
		zap.Stringer("state", state),
	)

	switch state {
	case words.StateStored:
		return &TodaysWord{Record: existing}, nil

	case words.StatePastAbsent:
		return nil, apperrors.NewNotFoundError("word for date " + date)

	case words.StateNoRecord, words.StateSkippedToday:
		record, err := o.generate(ctx, userID, date, state)
		if err != nil {
			return nil, err
		}
		return &TodaysWord{
			Record:      record,
			Generated:   state == words.StateNoRecord,
			Regenerated: state == words.StateSkippedToday,
		}, nil
	}

	return nil, apperrors.NewInternalError("unreachable generation state")
}

// GenerateForUser runs the daily generation path for one user. Used by the
// scheduled batch; an already-stored word for today is returned unchanged.
func (o *Orchestrator) GenerateForUser(ctx context.Context, userID string) (*TodaysWord, error) {
	return o.GetTodaysWord(ctx, userID, "")
}

// generate produces and persists a new record for (userID, date). AI
// failure falls back to the bank; bank failure falls back to the fixed
// entry. Only the persistence write can surface an error.
func (o *Orchestrator) generate(ctx context.Context, userID, date string, state words.GenerationState) (*words.WordRecord, error) {
	profile := o.loadProfile(ctx, userID)
	exclusions := o.recency.RecentWords(ctx, userID, o.windowDays)

	record := o.produceRecord(ctx, profile, exclusions)
	record.UserID = userID
	record.Date = date
	record.CreatedAt = o.now().UTC()
	record.Normalize()

	if err := record.Validate(); err != nil {
		return nil, apperrors.NewInternalError("generated word failed validation").WithCause(err)
	}

	if state == words.StateSkippedToday {
		// Overwrite the skipped record in place, same key.
		if err := o.records.Put(ctx, record); err != nil {
			return nil, apperrors.NewDatabaseError("store regenerated word", err)
		}
	} else {
		err := o.records.PutIfAbsentOrSkipped(ctx, record)
		if apperrors.IsConflict(err) {
			// A concurrent request won the race; its record is the word of
			// the day. Duplicate generation is wasted work, not an error.
			stored, getErr := o.records.Get(ctx, userID, date)
			if getErr == nil && stored != nil {
				o.logger.Info("Lost generation race, returning stored record",
					zap.String("userID", userID),
					zap.String("date", date),
				)
				return stored, nil
			}
			return nil, apperrors.NewDatabaseError("store word record", err)
		}
		if err != nil {
			return nil, apperrors.NewDatabaseError("store word record", err)
		}
	}

	o.metrics.Count(ctx, "WordGenerated", 1, map[string]string{"Method": string(record.Method)})
	o.publishGenerated(ctx, record, state == words.StateSkippedToday)
	return record, nil
}

// produceRecord tries AI first (when enabled and under quota), then the
// bank. It always returns a record.
func (o *Orchestrator) produceRecord(ctx context.Context, profile *users.Profile, exclusions Exclusions) *words.WordRecord {
	if o.useAI {
		if decision := o.usage.Check(ctx, profile.UserID); !decision.Allowed {
			o.logger.Info("AI generation quota exhausted, using word bank",
				zap.String("userID", profile.UserID),
			)
		} else if result, err := o.generator.Generate(ctx, profile, exclusions); err != nil {
			o.logger.Warn("AI generation failed, falling back to word bank",
				zap.String("userID", profile.UserID),
				zap.Error(err),
			)
		} else {
			o.usage.Record(ctx, profile.UserID, result.Provider)
			return o.recordFromGenerated(result, profile)
		}
	}

	entry := o.selector.Select(ctx, profile, exclusions)
	return o.recordFromBankEntry(ctx, entry, profile)
}

// loadProfile reads the user's profile, defaulting to adult/general when
// absent or on error. A profile problem must never block generation.
func (o *Orchestrator) loadProfile(ctx context.Context, userID string) *users.Profile {
	profile, err := o.profiles.Get(ctx, userID)
	if err != nil {
		o.logger.Warn("Profile lookup failed, using default profile",
			zap.String("userID", userID),
			zap.Error(err),
		)
		return users.DefaultProfile(userID)
	}
	if profile == nil {
		return users.DefaultProfile(userID)
	}
	return profile
}

func (o *Orchestrator) recordFromGenerated(result *GenerationResult, profile *users.Profile) *words.WordRecord {
	w := result.Word
	syllables := w.Syllables
	if syllables == "" {
		syllables = words.SplitIntoSyllables(w.Word)
	}
	return &words.WordRecord{
		WordID:        uuid.New().String(),
		Word:          w.Word,
		Definition:    w.Definition,
		PartOfSpeech:  w.PartOfSpeech,
		Pronunciation: w.Pronunciation,
		Syllables:     syllables,
		Difficulty:    w.Difficulty,
		Sentences:     w.Sentences,
		Synonyms:      w.Synonyms,
		Antonyms:      w.Antonyms,
		ImageURL:      result.ImageURL,
		UserContext:   profile.Context,
		Status:        words.StatusPending,
		Method:        words.MethodAI,
		Provider:      result.Provider,
	}
}

func (o *Orchestrator) recordFromBankEntry(ctx context.Context, entry words.BankEntry, profile *users.Profile) *words.WordRecord {
	syllables := entry.Syllables
	if syllables == "" {
		syllables = words.SplitIntoSyllables(entry.Word)
	}
	return &words.WordRecord{
		WordID:        entry.WordID,
		Word:          entry.Word,
		Definition:    entry.Definition,
		PartOfSpeech:  entry.PartOfSpeech,
		Pronunciation: entry.Pronunciation,
		Syllables:     syllables,
		Difficulty:    entry.Difficulty,
		Sentences:     o.enrichSentences(ctx, entry, profile),
		Synonyms:      entry.Synonyms,
		Antonyms:      entry.Antonyms,
		ImageURL:      entry.ImageURL,
		AudioURL:      entry.AudioURL,
		UserContext:   profile.Context,
		Status:        words.StatusPending,
		Method:        words.MethodWordBank,
	}
}

// enrichSentences guarantees three example sentences: curated examples
// first, then a best-effort generated set, then templates.
func (o *Orchestrator) enrichSentences(ctx context.Context, entry words.BankEntry, profile *users.Profile) []string {
	if len(entry.Examples) >= words.MaxSentences {
		return entry.Examples[:words.MaxSentences]
	}

	if o.sentences != nil {
		generated, err := o.sentences.GenerateSentences(ctx, entry, profile)
		if err == nil && len(generated) >= words.MaxSentences {
			return generated[:words.MaxSentences]
		}
		if err != nil {
			o.logger.Warn("Sentence generation failed, using templates",
				zap.String("word", entry.Word),
				zap.Error(err),
			)
		}
	}

	return templateSentences(entry.Word)
}

// templateSentences is the last-resort filler referencing the word itself.
func templateSentences(word string) []string {
	return []string{
		fmt.Sprintf("The word %q is commonly used in everyday conversation.", word),
		fmt.Sprintf("Understanding %s can help improve your vocabulary.", word),
		fmt.Sprintf("Try to use %s in your daily communication.", word),
	}
}

func (o *Orchestrator) publishGenerated(ctx context.Context, record *words.WordRecord, regenerated bool) {
	event := events.NewWordGenerated(
		record.UserID,
		record.Date,
		record.Word,
		string(record.Method),
		record.Provider,
		regenerated,
	)
	if err := o.bus.Publish(ctx, event); err != nil {
		o.logger.Warn("Failed to publish word.generated event",
			zap.String("userID", record.UserID),
			zap.Error(err),
		)
	}
}

func (o *Orchestrator) today() string {
	return o.now().UTC().Format(words.DateLayout)
}
