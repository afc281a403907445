package services

import (
	"context"
	"time"

	"wordaday-backend/application/ports"
	"wordaday-backend/domain/events"
	"wordaday-backend/domain/users"
	"wordaday-backend/domain/words"
	apperrors "wordaday-backend/pkg/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FeedbackInput is the caller-supplied feedback payload.
type FeedbackInput struct {
	WordID            string
	Date              string
	Rating            int
	Practiced         bool
	Encountered       bool
	Difficulty        string
	AdditionalContext string
	Comments          string
}

// FeedbackProcessor stores feedback and derives learning-pattern and
// practice-status updates from it.
type FeedbackProcessor struct {
	feedback ports.FeedbackRepository
	profiles ports.ProfileRepository
	records  ports.WordRecordRepository
	bus      ports.EventBus
	logger   *zap.Logger
}

// NewFeedbackProcessor creates a feedback processor.
func NewFeedbackProcessor(
	feedback ports.FeedbackRepository,
	profiles ports.ProfileRepository,
	records ports.WordRecordRepository,
	bus ports.EventBus,
	logger *zap.Logger,
) *FeedbackProcessor {
	return &FeedbackProcessor{
		feedback: feedback,
		profiles: profiles,
		records:  records,
		bus:      bus,
		logger:   logger,
	}
}

// Process validates and stores the feedback row, then applies the derived
// updates. The feedback row is the source of truth; pattern and status
// updates are best-effort and never fail the call once the row is stored.
func (p *FeedbackProcessor) Process(ctx context.Context, userID string, input FeedbackInput) (*words.Feedback, error) {
	if input.Difficulty == "" {
		input.Difficulty = words.DifficultyAppropriate
	}

	fb := &words.Feedback{
		FeedbackID:        uuid.New().String(),
		UserID:            userID,
		WordID:            input.WordID,
		Date:              input.Date,
		Rating:            input.Rating,
		Practiced:         input.Practiced,
		Encountered:       input.Encountered,
		Difficulty:        input.Difficulty,
		AdditionalContext: input.AdditionalContext,
		Comments:          input.Comments,
		Timestamp:         time.Now().UTC(),
	}
	if err := fb.Validate(); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := p.feedback.Put(ctx, fb); err != nil {
		return nil, apperrors.NewDatabaseError("store feedback", err)
	}

	p.updateLearningPatterns(ctx, userID, fb)
	p.updatePracticeStatus(ctx, fb)
	p.publishReceived(ctx, fb)

	return fb, nil
}

// updateLearningPatterns folds the feedback into the profile's aggregates.
func (p *FeedbackProcessor) updateLearningPatterns(ctx context.Context, userID string, fb *words.Feedback) {
	profile, err := p.profiles.Get(ctx, userID)
	if err != nil {
		p.logger.Warn("Profile lookup failed, skipping pattern update",
			zap.String("userID", userID),
			zap.Error(err),
		)
		return
	}
	if profile == nil {
		profile = users.DefaultProfile(userID)
	}

	patterns := &profile.LearningPatterns
	patterns.TotalWords++
	if fb.Practiced {
		patterns.PracticedWords++
	}
	if fb.Rating > 0 {
		total := patterns.AverageRating*float64(patterns.TotalWords-1) + float64(fb.Rating)
		patterns.AverageRating = total / float64(patterns.TotalWords)
	}
	switch fb.Difficulty {
	case words.DifficultyTooEasy:
		patterns.IncreaseDifficulty()
	case words.DifficultyTooDifficult:
		patterns.DecreaseDifficulty()
	}
	patterns.LastFeedbackDate = time.Now().UTC().Format(time.RFC3339)
	profile.UpdatedAt = time.Now().UTC()

	if err := p.profiles.Put(ctx, profile); err != nil {
		p.logger.Warn("Learning pattern update failed",
			zap.String("userID", userID),
			zap.Error(err),
		)
	}
}

// updatePracticeStatus marks the daily word practiced or skipped.
func (p *FeedbackProcessor) updatePracticeStatus(ctx context.Context, fb *words.Feedback) {
	status := words.StatusSkipped
	if fb.Practiced {
		status = words.StatusPracticed
	}
	if err := p.records.UpdatePractice(ctx, fb.UserID, fb.Date, status, fb.Rating); err != nil {
		p.logger.Warn("Practice status update failed",
			zap.String("userID", fb.UserID),
			zap.String("date", fb.Date),
			zap.Error(err),
		)
	}
}

func (p *FeedbackProcessor) publishReceived(ctx context.Context, fb *words.Feedback) {
	event := events.NewFeedbackReceived(fb.UserID, fb.WordID, fb.Date, fb.Rating, fb.Practiced, fb.Difficulty)
	if err := p.bus.Publish(ctx, event); err != nil {
		p.logger.Warn("Failed to publish feedback.received event",
			zap.String("userID", fb.UserID),
			zap.Error(err),
		)
	}
}
