package words

import (
	"fmt"
	"strings"
	"time"
)

// PracticeStatus tracks what the user did with a daily word.
type PracticeStatus string

const (
	StatusPending   PracticeStatus = "pending"
	StatusPracticed PracticeStatus = "practiced"
	StatusSkipped   PracticeStatus = "skipped"
)

// Valid reports whether the status is one of the known values.
func (s PracticeStatus) Valid() bool {
	switch s {
	case StatusPending, StatusPracticed, StatusSkipped:
		return true
	}
	return false
}

// GenerationMethod records how a daily word was produced.
type GenerationMethod string

const (
	MethodAI       GenerationMethod = "AI"
	MethodWordBank GenerationMethod = "WordBank"
)

const (
	// MinDifficulty and MaxDifficulty bound the difficulty tiers.
	MinDifficulty = 1
	MaxDifficulty = 5

	// MaxSentences is the number of example sentences carried on a record.
	MaxSentences = 3

	// DateLayout is the storage format for daily word dates (UTC).
	DateLayout = "2006-01-02"
)

// WordRecord is the per-user, per-date word with its presentation content
// and practice state. Exactly one record exists per (UserID, Date) pair.
type WordRecord struct {
	UserID        string           `json:"userId"`
	Date          string           `json:"date"`
	WordID        string           `json:"wordId"`
	Word          string           `json:"word"`
	Definition    string           `json:"definition"`
	PartOfSpeech  string           `json:"partOfSpeech"`
	Pronunciation string           `json:"pronunciation"`
	Syllables     string           `json:"syllables"`
	Difficulty    int              `json:"difficulty"`
	Sentences     []string         `json:"sentences"`
	Synonyms      []string         `json:"synonyms"`
	Antonyms      []string         `json:"antonyms"`
	ImageURL      string           `json:"imageUrl"`
	AudioURL      string           `json:"audioUrl"`
	UserContext   string           `json:"userContext"`
	Status        PracticeStatus   `json:"practiceStatus"`
	Rating        int              `json:"rating"`
	Method        GenerationMethod `json:"generationMethod"`
	Provider      string           `json:"provider,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
}

// Normalize enforces the record's shape invariants: sentences are truncated
// to MaxSentences, difficulty is clamped into [MinDifficulty, MaxDifficulty],
// nil slices become empty, and media URLs are never left unset (consumers
// rely on empty string rather than null).
func (r *WordRecord) Normalize() {
	if len(r.Sentences) > MaxSentences {
		r.Sentences = r.Sentences[:MaxSentences]
	}
	if r.Sentences == nil {
		r.Sentences = []string{}
	}
	if r.Synonyms == nil {
		r.Synonyms = []string{}
	}
	if r.Antonyms == nil {
		r.Antonyms = []string{}
	}
	if r.Difficulty < MinDifficulty {
		r.Difficulty = MinDifficulty
	}
	if r.Difficulty > MaxDifficulty {
		r.Difficulty = MaxDifficulty
	}
	if r.Status == "" {
		r.Status = StatusPending
	}
}

// Validate checks the invariants a record must satisfy before persistence.
func (r *WordRecord) Validate() error {
	if r.UserID == "" {
		return fmt.Errorf("word record: userId is required")
	}
	if _, err := time.Parse(DateLayout, r.Date); err != nil {
		return fmt.Errorf("word record: invalid date %q: %w", r.Date, err)
	}
	if strings.TrimSpace(r.Word) == "" {
		return fmt.Errorf("word record: word is required")
	}
	if strings.TrimSpace(r.Definition) == "" {
		return fmt.Errorf("word record: definition is required")
	}
	if len(r.Sentences) > MaxSentences {
		return fmt.Errorf("word record: at most %d sentences allowed, got %d", MaxSentences, len(r.Sentences))
	}
	if r.Difficulty < MinDifficulty || r.Difficulty > MaxDifficulty {
		return fmt.Errorf("word record: difficulty %d outside [%d,%d]", r.Difficulty, MinDifficulty, MaxDifficulty)
	}
	if !r.Status.Valid() {
		return fmt.Errorf("word record: invalid practice status %q", r.Status)
	}
	return nil
}

// IsSkipped reports whether the user skipped this word.
func (r *WordRecord) IsSkipped() bool {
	return r.Status == StatusSkipped
}

// Today returns the current UTC date in storage format.
func Today() string {
	return time.Now().UTC().Format(DateLayout)
}

// SplitIntoSyllables applies a vowel-cluster heuristic to break a word into
// hyphen-joined syllables. It is a filler for bank entries that lack a
// curated syllable split; AI-generated records carry their own.
func SplitIntoSyllables(word string) string {
	const vowels = "aeiouyAEIOUY"
	var syllables []string
	var current strings.Builder

	runes := []rune(word)
	for i, c := range runes {
		current.WriteRune(c)
		if strings.ContainsRune(vowels, c) {
			if i < len(runes)-1 && !strings.ContainsRune(vowels, runes[i+1]) {
				syllables = append(syllables, current.String())
				current.Reset()
			}
		}
	}
	if current.Len() > 0 {
		syllables = append(syllables, current.String())
	}
	if len(syllables) == 0 {
		return word
	}
	return strings.Join(syllables, "-")
}
