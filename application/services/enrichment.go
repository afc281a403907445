package services

import (
	"context"
	"strings"

	"wordaday-backend/application/ports"
	"wordaday-backend/domain/words"
	apperrors "wordaday-backend/pkg/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EnrichmentResult reports which assets were attached to a bank entry.
type EnrichmentResult struct {
	Entry    *words.BankEntry `json:"entry"`
	HasAudio bool             `json:"hasAudio"`
	HasImage bool             `json:"hasImage"`
}

// Enricher builds complete word bank entries from raw words: dictionary
// data, pronunciation audio, and an illustrative image. Dictionary failure
// aborts the word; media failures do not.
type Enricher struct {
	bank       ports.WordBankRepository
	dictionary ports.DictionaryProvider
	audio      ports.AudioProvider
	images     ports.ImageProvider
	media      ports.MediaStore
	logger     *zap.Logger
}

// NewEnricher creates the content enrichment pipeline.
func NewEnricher(
	bank ports.WordBankRepository,
	dictionary ports.DictionaryProvider,
	audio ports.AudioProvider,
	images ports.ImageProvider,
	media ports.MediaStore,
	logger *zap.Logger,
) *Enricher {
	return &Enricher{
		bank:       bank,
		dictionary: dictionary,
		audio:      audio,
		images:     images,
		media:      media,
		logger:     logger,
	}
}

// EnrichWord looks up, decorates, and stores one bank entry.
func (e *Enricher) EnrichWord(ctx context.Context, word string) (*EnrichmentResult, error) {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" {
		return nil, apperrors.NewValidationError("word is required")
	}

	dict, err := e.dictionary.Lookup(ctx, word)
	if err != nil {
		return nil, apperrors.NewExternalError("dictionary lookup for "+word, err)
	}
	if dict == nil || dict.Definition == "" {
		return nil, apperrors.NewNotFoundError("dictionary entry for " + word)
	}

	difficulty := EstimateDifficulty(word)
	entry := &words.BankEntry{
		WordID:        uuid.New().String(),
		Word:          word,
		Definition:    dict.Definition,
		PartOfSpeech:  dict.PartOfSpeech,
		Pronunciation: dict.Pronunciation,
		Syllables:     words.SplitIntoSyllables(word),
		Difficulty:    difficulty,
		Examples:      dict.Examples,
		Synonyms:      dict.Synonyms,
		Antonyms:      dict.Antonyms,
		AgeGroups:     words.AgeGroupsForDifficulty(difficulty),
	}

	result := &EnrichmentResult{Entry: entry}
	entry.AudioURL = e.attachAudio(ctx, word)
	entry.ImageURL = e.attachImage(ctx, word)
	result.HasAudio = entry.AudioURL != ""
	result.HasImage = entry.ImageURL != ""

	if err := e.bank.Put(ctx, entry); err != nil {
		return nil, apperrors.NewDatabaseError("store bank entry", err)
	}

	e.logger.Info("Enriched word bank entry",
		zap.String("word", word),
		zap.Int("difficulty", difficulty),
		zap.Bool("hasAudio", result.HasAudio),
		zap.Bool("hasImage", result.HasImage),
	)
	return result, nil
}

// EnrichBatch processes a list of words, isolating per-word failures.
func (e *Enricher) EnrichBatch(ctx context.Context, wordList []string) (succeeded, failed int) {
	for _, w := range wordList {
		if _, err := e.EnrichWord(ctx, w); err != nil {
			e.logger.Warn("Word enrichment failed",
				zap.String("word", w),
				zap.Error(err),
			)
			failed++
			continue
		}
		succeeded++
	}
	return succeeded, failed
}

// attachAudio fetches and stores pronunciation audio, returning its URL or
// "" when unavailable.
func (e *Enricher) attachAudio(ctx context.Context, word string) string {
	if e.audio == nil || e.media == nil {
		return ""
	}
	data, err := e.audio.FetchPronunciation(ctx, word)
	if err != nil || len(data) == 0 {
		if err != nil {
			e.logger.Debug("No pronunciation audio", zap.String("word", word), zap.Error(err))
		}
		return ""
	}
	url, err := e.media.StoreAudio(ctx, word, data)
	if err != nil {
		e.logger.Warn("Failed to store audio", zap.String("word", word), zap.Error(err))
		return ""
	}
	return url
}

// attachImage searches, downloads, and stores an image, returning its URL
// or "" when unavailable.
func (e *Enricher) attachImage(ctx context.Context, word string) string {
	if e.images == nil || e.media == nil {
		return ""
	}
	source, err := e.images.SearchImage(ctx, word)
	if err != nil || source == "" {
		if err != nil {
			e.logger.Debug("No image found", zap.String("word", word), zap.Error(err))
		}
		return ""
	}
	data, err := e.images.DownloadImage(ctx, source)
	if err != nil {
		e.logger.Warn("Failed to download image", zap.String("word", word), zap.Error(err))
		return ""
	}
	url, err := e.media.StoreImage(ctx, word, data)
	if err != nil {
		e.logger.Warn("Failed to store image", zap.String("word", word), zap.Error(err))
		return ""
	}
	return url
}

// EstimateDifficulty rates a word 1..5 from its length and syllable count.
func EstimateDifficulty(word string) int {
	syllables := strings.Count(words.SplitIntoSyllables(word), "-") + 1
	score := 1
	switch {
	case len(word) > 10:
		score += 2
	case len(word) > 7:
		score++
	}
	switch {
	case syllables > 3:
		score += 2
	case syllables > 2:
		score++
	}
	if score > words.MaxDifficulty {
		score = words.MaxDifficulty
	}
	return score
}
