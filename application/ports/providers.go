package ports

import (
	"context"

	"wordaday-backend/domain/events"
	"wordaday-backend/domain/users"
	"wordaday-backend/domain/words"
)

// WordPrompt is the provider-neutral input for structured word generation.
type WordPrompt struct {
	AgeGroup     string
	Context      string
	ExamPrep     string
	ExcludeWords []string
	Custom       string
}

// GeneratedWord is the structured payload a language-model provider returns.
type GeneratedWord struct {
	Word          string   `json:"word"`
	Definition    string   `json:"definition"`
	PartOfSpeech  string   `json:"partOfSpeech"`
	Pronunciation string   `json:"pronunciation"`
	Syllables     string   `json:"syllables"`
	Difficulty    int      `json:"difficulty"`
	Sentences     []string `json:"sentences"`
	Synonyms      []string `json:"synonyms"`
	Antonyms      []string `json:"antonyms"`
	UsageContext  string   `json:"usageContext,omitempty"`
	Etymology     string   `json:"etymology,omitempty"`
}

// WordProvider is a language-model service able to generate a structured
// word record. Providers are tried in priority order; one without a
// credential reports Configured() == false and is skipped.
type WordProvider interface {
	Name() string
	Configured() bool
	GenerateWord(ctx context.Context, prompt WordPrompt) (*GeneratedWord, error)
}

// SentenceGenerator produces example sentences for a bank entry that lacks
// them. Best effort: callers fall back to templates on error.
type SentenceGenerator interface {
	GenerateSentences(ctx context.Context, entry words.BankEntry, profile *users.Profile) ([]string, error)
}

// ImageProvider searches for a representative image for a word.
type ImageProvider interface {
	// SearchImage returns zero or one image URL; "" means no match.
	SearchImage(ctx context.Context, query string) (string, error)

	// DownloadImage fetches image bytes. Used by the enrichment pipeline.
	DownloadImage(ctx context.Context, url string) ([]byte, error)
}

// AudioProvider fetches pronunciation audio for a word. Empty result means
// none available.
type AudioProvider interface {
	FetchPronunciation(ctx context.Context, word string) ([]byte, error)
}

// DictionaryEntry is the normalized result of a dictionary lookup.
type DictionaryEntry struct {
	Definition    string
	PartOfSpeech  string
	Pronunciation string
	Synonyms      []string
	Antonyms      []string
	Examples      []string
}

// DictionaryProvider looks up a word in an external dictionary.
type DictionaryProvider interface {
	Lookup(ctx context.Context, word string) (*DictionaryEntry, error)
}

// MediaStore persists media objects and returns their public URLs.
type MediaStore interface {
	StoreAudio(ctx context.Context, word string, data []byte) (string, error)
	StoreImage(ctx context.Context, word string, data []byte) (string, error)
}

// EventBus publishes domain events.
type EventBus interface {
	Publish(ctx context.Context, event events.DomainEvent) error
	PublishBatch(ctx context.Context, events []events.DomainEvent) error
}

// MetricsEmitter records operational counters.
type MetricsEmitter interface {
	// Count emits a counter increment with the given dimensions.
	Count(ctx context.Context, name string, value float64, dimensions map[string]string)
}

// PushSender delivers a push notification to a device token.
type PushSender interface {
	SendPush(ctx context.Context, token, title, body string, data map[string]string) error
}

// EmailSender delivers an HTML email.
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, htmlBody string) error
}

// SMSSender delivers a text message to a phone number.
type SMSSender interface {
	SendSMS(ctx context.Context, phoneNumber, message string) error
}
