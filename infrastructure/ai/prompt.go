// Package ai implements the language-model word and sentence providers.
package ai

import (
	"fmt"
	"strings"

	"wordaday-backend/application/ports"
)

const systemPrompt = "You are a vocabulary tutor. Respond only with a single JSON object, no prose."

// buildUserPrompt renders the structured generation request. The model must
// return the exact JSON shape GeneratedWord unmarshals from.
func buildUserPrompt(p ports.WordPrompt) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Generate one English vocabulary word suitable for a %s learner", audience(p.AgeGroup))
	if p.Context != "" && p.Context != "general" {
		fmt.Fprintf(&b, " interested in %s", p.Context)
	}
	if p.ExamPrep != "" {
		fmt.Fprintf(&b, " preparing for the %s exam", strings.ToUpper(p.ExamPrep))
	}
	b.WriteString(".\n\n")

	if len(p.ExcludeWords) > 0 {
		fmt.Fprintf(&b, "Do NOT use any of these recently seen words: %s.\n\n",
			strings.Join(p.ExcludeWords, ", "))
	}
	if p.Custom != "" {
		b.WriteString(p.Custom)
		b.WriteString("\n\n")
	}

	b.WriteString(`Respond with a JSON object with exactly these fields:
{
  "word": "the word",
  "definition": "a clear one-sentence definition",
  "partOfSpeech": "noun|verb|adjective|adverb",
  "pronunciation": "IPA pronunciation",
  "syllables": "syl-la-bles",
  "difficulty": 1,
  "sentences": ["three", "example", "sentences"],
  "synonyms": ["up to three synonyms"],
  "antonyms": ["up to three antonyms"],
  "usageContext": "when the word is typically used",
  "etymology": "one sentence on the word's origin"
}
difficulty is an integer 1 (easiest) to 5 (hardest) matching the learner.`)

	return b.String()
}

func audience(ageGroup string) string {
	switch ageGroup {
	case "child":
		return "young child (ages 5-12)"
	case "teen":
		return "teenager (ages 13-17)"
	case "young_adult":
		return "young adult (ages 18-25)"
	case "senior":
		return "senior (ages 65+)"
	default:
		return "adult"
	}
}
