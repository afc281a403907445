package services

import (
	"context"
	"errors"
	"strings"

	"wordaday-backend/application/ports"
	"wordaday-backend/domain/users"

	"go.uber.org/zap"
)

// maxExcludedWords caps how many recent words the prompt lists.
const maxExcludedWords = 30

// ErrNoProviderAvailable signals that every configured language-model
// provider failed or none was configured. Callers fall back to the bank.
var ErrNoProviderAvailable = errors.New("no language-model provider available")

// GenerationResult is a successful AI generation before persistence.
type GenerationResult struct {
	Word     ports.GeneratedWord
	Provider string
	ImageURL string
}

// AIWordGenerator produces a word by iterating an ordered provider chain
// and augmenting the result with a best-effort image lookup.
type AIWordGenerator struct {
	providers []ports.WordProvider
	images    ports.ImageProvider
	metrics   ports.MetricsEmitter
	logger    *zap.Logger
}

// NewAIWordGenerator creates a generator over the given provider chain.
// Order matters: providers are tried sequentially, first valid result wins.
func NewAIWordGenerator(
	providers []ports.WordProvider,
	images ports.ImageProvider,
	metrics ports.MetricsEmitter,
	logger *zap.Logger,
) *AIWordGenerator {
	return &AIWordGenerator{
		providers: providers,
		images:    images,
		metrics:   metrics,
		logger:    logger,
	}
}

// Generate builds a prompt from the profile and exclusion list and asks each
// configured provider in turn. Provider errors are logged and skipped; only
// exhausting the whole chain is an error. The image lookup afterwards never
// fails generation.
func (g *AIWordGenerator) Generate(ctx context.Context, profile *users.Profile, exclusions Exclusions) (*GenerationResult, error) {
	prompt := buildPrompt(profile, exclusions)

	for _, provider := range g.providers {
		if !provider.Configured() {
			g.logger.Debug("Provider not configured, skipping",
				zap.String("provider", provider.Name()),
			)
			continue
		}

		generated, err := provider.GenerateWord(ctx, prompt)
		if err != nil {
			g.logger.Warn("Provider failed, trying next",
				zap.String("provider", provider.Name()),
				zap.Error(err),
			)
			g.metrics.Count(ctx, "ProviderFailure", 1, map[string]string{"Provider": provider.Name()})
			continue
		}

		if err := validateGenerated(generated); err != nil {
			g.logger.Warn("Provider returned incomplete word, trying next",
				zap.String("provider", provider.Name()),
				zap.Error(err),
			)
			g.metrics.Count(ctx, "ProviderFailure", 1, map[string]string{"Provider": provider.Name()})
			continue
		}

		result := &GenerationResult{
			Word:     *generated,
			Provider: provider.Name(),
			ImageURL: g.lookupImage(ctx, generated.Word),
		}
		return result, nil
	}

	return nil, ErrNoProviderAvailable
}

// lookupImage fetches a representative image URL; any failure yields "".
func (g *AIWordGenerator) lookupImage(ctx context.Context, word string) string {
	if g.images == nil {
		return ""
	}
	url, err := g.images.SearchImage(ctx, word)
	if err != nil {
		g.logger.Warn("Image lookup failed",
			zap.String("word", word),
			zap.Error(err),
		)
		return ""
	}
	return url
}

// buildPrompt assembles the provider-neutral prompt input, truncating the
// exclusion list to the most recent maxExcludedWords.
func buildPrompt(profile *users.Profile, exclusions Exclusions) ports.WordPrompt {
	exclude := exclusions.WordTexts
	if len(exclude) > maxExcludedWords {
		exclude = exclude[:maxExcludedWords]
	}
	return ports.WordPrompt{
		AgeGroup:     string(profile.AgeGroup),
		Context:      profile.Context,
		ExamPrep:     profile.ExamPrep,
		ExcludeWords: exclude,
	}
}

// validateGenerated enforces the soft JSON contract: word, definition and
// at least one sentence must be present. Shape fixes (sentence truncation,
// difficulty clamping) happen later in WordRecord.Normalize.
func validateGenerated(w *ports.GeneratedWord) error {
	if w == nil {
		return errors.New("empty response")
	}
	if strings.TrimSpace(w.Word) == "" {
		return errors.New("missing word")
	}
	if strings.TrimSpace(w.Definition) == "" {
		return errors.New("missing definition")
	}
	if len(w.Sentences) == 0 {
		return errors.New("missing sentences")
	}
	return nil
}
