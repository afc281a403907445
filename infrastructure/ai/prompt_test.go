package ai

import (
	"testing"

	"wordaday-backend/application/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildUserPrompt(t *testing.T) {
	t.Run("renders audience and interests", func(t *testing.T) {
		prompt := buildUserPrompt(ports.WordPrompt{
			AgeGroup: "teen",
			Context:  "sports",
			ExamPrep: "sat",
		})
		assert.Contains(t, prompt, "teenager (ages 13-17)")
		assert.Contains(t, prompt, "interested in sports")
		assert.Contains(t, prompt, "preparing for the SAT exam")
	})

	t.Run("general context is omitted", func(t *testing.T) {
		prompt := buildUserPrompt(ports.WordPrompt{AgeGroup: "adult", Context: "general"})
		assert.NotContains(t, prompt, "interested in")
	})

	t.Run("lists excluded words", func(t *testing.T) {
		prompt := buildUserPrompt(ports.WordPrompt{
			AgeGroup:     "adult",
			ExcludeWords: []string{"ephemeral", "halcyon"},
		})
		assert.Contains(t, prompt, "Do NOT use any of these recently seen words: ephemeral, halcyon.")
	})

	t.Run("no exclusion clause without recent words", func(t *testing.T) {
		prompt := buildUserPrompt(ports.WordPrompt{AgeGroup: "adult"})
		assert.NotContains(t, prompt, "recently seen words")
	})

	t.Run("always demands the JSON contract", func(t *testing.T) {
		prompt := buildUserPrompt(ports.WordPrompt{AgeGroup: "child"})
		assert.Contains(t, prompt, `"word"`)
		assert.Contains(t, prompt, `"sentences"`)
		assert.Contains(t, prompt, "difficulty is an integer 1 (easiest) to 5 (hardest)")
	})
}

func TestParseSentenceArray(t *testing.T) {
	t.Run("plain array", func(t *testing.T) {
		sentences, err := parseSentenceArray(`["one", "two", "three"]`)
		require.NoError(t, err)
		assert.Equal(t, []string{"one", "two", "three"}, sentences)
	})

	t.Run("array wrapped in prose", func(t *testing.T) {
		reply := `Here are the sentences you asked for:
["one", "two", "three"]
Let me know if you need more.`
		sentences, err := parseSentenceArray(reply)
		require.NoError(t, err)
		assert.Len(t, sentences, 3)
	})

	t.Run("no array", func(t *testing.T) {
		_, err := parseSentenceArray("I cannot do that.")
		assert.Error(t, err)
	})

	t.Run("malformed array", func(t *testing.T) {
		_, err := parseSentenceArray(`["one", "two`)
		assert.Error(t, err)
	})
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcde...", truncate("abcdefgh", 5))
}
