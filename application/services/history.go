package services

import (
	"context"
	"strings"

	"wordaday-backend/application/ports"
	"wordaday-backend/domain/words"
	apperrors "wordaday-backend/pkg/errors"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// defaultHistoryLimit is used when the caller supplies no limit.
const defaultHistoryLimit = 30

// HistoryQuery filters a history request.
type HistoryQuery struct {
	StartDate string
	EndDate   string
	Search    string
	Limit     int
}

// HistoryStats summarizes practice outcomes over the returned page.
type HistoryStats struct {
	TotalWords     int `json:"totalWords"`
	PracticedWords int `json:"practicedWords"`
	SkippedWords   int `json:"skippedWords"`
	PendingWords   int `json:"pendingWords"`
}

// HistoryPage is one page of a user's word history, newest first.
type HistoryPage struct {
	Words []words.WordRecord `json:"words"`
	Stats HistoryStats       `json:"stats"`
	Count int                `json:"count"`
}

// HistoryService serves a user's past words.
type HistoryService struct {
	records ports.WordRecordRepository
	logger  *zap.Logger
}

// NewHistoryService creates a history service.
func NewHistoryService(records ports.WordRecordRepository, logger *zap.Logger) *HistoryService {
	return &HistoryService{records: records, logger: logger}
}

// Query returns the user's words newest first, optionally bounded by date
// range and filtered by a search term over word and definition.
func (s *HistoryService) Query(ctx context.Context, userID string, q HistoryQuery) (*HistoryPage, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	end := q.EndDate
	if end == "" {
		end = words.Today()
	}

	items, err := s.records.QueryRecent(ctx, userID, q.StartDate, end, limit)
	if err != nil {
		return nil, apperrors.NewDatabaseError("query word history", err)
	}

	if q.Search != "" {
		needle := strings.ToLower(q.Search)
		items = lo.Filter(items, func(r words.WordRecord, _ int) bool {
			return strings.Contains(strings.ToLower(r.Word), needle) ||
				strings.Contains(strings.ToLower(r.Definition), needle)
		})
	}

	stats := HistoryStats{
		TotalWords: len(items),
		PracticedWords: lo.CountBy(items, func(r words.WordRecord) bool {
			return r.Status == words.StatusPracticed
		}),
		SkippedWords: lo.CountBy(items, func(r words.WordRecord) bool {
			return r.Status == words.StatusSkipped
		}),
		PendingWords: lo.CountBy(items, func(r words.WordRecord) bool {
			return r.Status == words.StatusPending
		}),
	}

	return &HistoryPage{Words: items, Stats: stats, Count: len(items)}, nil
}
