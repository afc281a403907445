package words

import (
	"fmt"
	"time"
)

// Perceived difficulty values a user can report.
const (
	DifficultyTooEasy      = "too_easy"
	DifficultyAppropriate  = "appropriate"
	DifficultyTooDifficult = "too_difficult"
)

// Feedback is a user's reaction to a daily word. Feedback rows are the
// source of truth; learning-pattern and practice-status updates derived
// from them are best-effort.
type Feedback struct {
	FeedbackID        string    `json:"feedbackId"`
	UserID            string    `json:"userId"`
	WordID            string    `json:"wordId"`
	Date              string    `json:"date"`
	Rating            int       `json:"rating"`
	Practiced         bool      `json:"practiced"`
	Encountered       bool      `json:"encountered"`
	Difficulty        string    `json:"difficulty"`
	AdditionalContext string    `json:"additionalContext"`
	Comments          string    `json:"comments"`
	Timestamp         time.Time `json:"timestamp"`
}

// Validate checks the fields the processor requires.
func (f *Feedback) Validate() error {
	if f.UserID == "" {
		return fmt.Errorf("feedback: userId is required")
	}
	if f.WordID == "" {
		return fmt.Errorf("feedback: wordId is required")
	}
	if _, err := time.Parse(DateLayout, f.Date); err != nil {
		return fmt.Errorf("feedback: invalid date %q: %w", f.Date, err)
	}
	if f.Rating < 0 || f.Rating > 5 {
		return fmt.Errorf("feedback: rating %d outside [0,5]", f.Rating)
	}
	switch f.Difficulty {
	case "", DifficultyTooEasy, DifficultyAppropriate, DifficultyTooDifficult:
	default:
		return fmt.Errorf("feedback: invalid difficulty %q", f.Difficulty)
	}
	return nil
}
