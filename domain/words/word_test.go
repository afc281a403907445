package words

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRecord() WordRecord {
	return WordRecord{
		UserID:     "user-1",
		Date:       "2026-08-31",
		WordID:     "w-1",
		Word:       "serendipity",
		Definition: "a fortunate accident",
		Difficulty: 3,
		Sentences:  []string{"one", "two", "three"},
		Status:     StatusPending,
	}
}

func TestWordRecordValidate(t *testing.T) {
	t.Run("valid record passes", func(t *testing.T) {
		r := validRecord()
		require.NoError(t, r.Validate())
	})

	t.Run("missing user", func(t *testing.T) {
		r := validRecord()
		r.UserID = ""
		assert.Error(t, r.Validate())
	})

	t.Run("malformed date", func(t *testing.T) {
		r := validRecord()
		r.Date = "31/08/2026"
		assert.Error(t, r.Validate())
	})

	t.Run("blank word", func(t *testing.T) {
		r := validRecord()
		r.Word = "   "
		assert.Error(t, r.Validate())
	})

	t.Run("too many sentences", func(t *testing.T) {
		r := validRecord()
		r.Sentences = []string{"a", "b", "c", "d"}
		assert.Error(t, r.Validate())
	})

	t.Run("difficulty out of range", func(t *testing.T) {
		r := validRecord()
		r.Difficulty = 6
		assert.Error(t, r.Validate())
	})

	t.Run("unknown status", func(t *testing.T) {
		r := validRecord()
		r.Status = "paused"
		assert.Error(t, r.Validate())
	})
}

func TestWordRecordNormalize(t *testing.T) {
	t.Run("truncates sentences to three", func(t *testing.T) {
		r := validRecord()
		r.Sentences = []string{"a", "b", "c", "d", "e"}
		r.Normalize()
		assert.Equal(t, []string{"a", "b", "c"}, r.Sentences)
	})

	t.Run("clamps difficulty", func(t *testing.T) {
		low := validRecord()
		low.Difficulty = 0
		low.Normalize()
		assert.Equal(t, MinDifficulty, low.Difficulty)

		high := validRecord()
		high.Difficulty = 9
		high.Normalize()
		assert.Equal(t, MaxDifficulty, high.Difficulty)
	})

	t.Run("nil slices become empty", func(t *testing.T) {
		r := validRecord()
		r.Sentences = nil
		r.Synonyms = nil
		r.Antonyms = nil
		r.Normalize()
		assert.NotNil(t, r.Sentences)
		assert.NotNil(t, r.Synonyms)
		assert.NotNil(t, r.Antonyms)
	})

	t.Run("defaults status to pending", func(t *testing.T) {
		r := validRecord()
		r.Status = ""
		r.Normalize()
		assert.Equal(t, StatusPending, r.Status)
	})
}

func TestSplitIntoSyllables(t *testing.T) {
	tests := []struct {
		word string
		want string
	}{
		{"cat", "ca-t"},
		{"serendipity", "se-re-ndi-pi-ty"},
		{"rhythm", "rhy-thm"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SplitIntoSyllables(tt.word), "word %q", tt.word)
	}
}
