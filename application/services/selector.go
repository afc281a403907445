package services

import (
	"context"
	"math/rand"

	"wordaday-backend/application/ports"
	"wordaday-backend/domain/users"
	"wordaday-backend/domain/words"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// bankScanLimit caps how many candidates one selection considers.
const bankScanLimit = 100

// WordSelector picks a word from the bank under difficulty constraints.
// Selection is a pure read; it never writes.
type WordSelector struct {
	bank   ports.WordBankRepository
	logger *zap.Logger
	// pick is swappable for deterministic tests; selection itself is
	// intentionally random.
	pick func(n int) int
}

// NewWordSelector creates a bank-based selector.
func NewWordSelector(bank ports.WordBankRepository, logger *zap.Logger) *WordSelector {
	return &WordSelector{
		bank:   bank,
		logger: logger,
		pick:   rand.Intn,
	}
}

// Select returns one bank entry matching the profile's difficulty band,
// excluding recently used entries. When the bank yields no usable candidate
// (empty scan, everything excluded, or the scan itself fails) the fixed
// fallback entry is returned so the caller always receives something.
func (s *WordSelector) Select(ctx context.Context, profile *users.Profile, exclusions Exclusions) words.BankEntry {
	band := words.DifficultyRangeFor(profile.AgeGroup)

	candidates, err := s.bank.ScanByDifficulty(ctx, band.Low, band.High, bankScanLimit)
	if err != nil {
		s.logger.Warn("Word bank scan failed, using fallback entry",
			zap.String("userID", profile.UserID),
			zap.Int("difficultyLow", band.Low),
			zap.Int("difficultyHigh", band.High),
			zap.Error(err),
		)
		return words.FallbackEntry()
	}

	candidates = lo.Filter(candidates, func(entry words.BankEntry, _ int) bool {
		return !exclusions.ContainsID(entry.WordID) && !exclusions.ContainsText(entry.Word)
	})

	if len(candidates) == 0 {
		s.logger.Info("No bank candidates after exclusion, using fallback entry",
			zap.String("userID", profile.UserID),
			zap.String("ageGroup", string(profile.AgeGroup)),
		)
		return words.FallbackEntry()
	}

	return candidates[s.pick(len(candidates))]
}
