package words

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDifficultyRangeFor(t *testing.T) {
	tests := []struct {
		age  AgeGroup
		want DifficultyRange
	}{
		{AgeChild, DifficultyRange{1, 2}},
		{AgeTeen, DifficultyRange{2, 3}},
		{AgeYoungAdult, DifficultyRange{3, 4}},
		{AgeAdult, DifficultyRange{4, 5}},
		{AgeSenior, DifficultyRange{3, 5}},
		{AgeGroup("martian"), DefaultDifficultyRange},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DifficultyRangeFor(tt.age), "age %q", tt.age)
	}
}

func TestDifficultyRangeContains(t *testing.T) {
	band := DifficultyRange{Low: 3, High: 5}
	assert.False(t, band.Contains(2))
	assert.True(t, band.Contains(3))
	assert.True(t, band.Contains(4))
	assert.True(t, band.Contains(5))
	assert.False(t, band.Contains(6))
}

func TestFallbackEntry(t *testing.T) {
	entry := FallbackEntry()
	require.Equal(t, "serendipity", entry.Word)
	assert.NotEmpty(t, entry.Definition)
	assert.Len(t, entry.Examples, MaxSentences)
	assert.True(t, DifficultyRange{MinDifficulty, MaxDifficulty}.Contains(entry.Difficulty))
	// The fallback must suit everyone; it is the answer of last resort.
	assert.Len(t, entry.AgeGroups, 5)
}

func TestAgeGroupsForDifficulty(t *testing.T) {
	assert.Len(t, AgeGroupsForDifficulty(1), 5)
	assert.Len(t, AgeGroupsForDifficulty(2), 4)
	assert.Len(t, AgeGroupsForDifficulty(3), 3)
	assert.Len(t, AgeGroupsForDifficulty(4), 2)
	assert.Len(t, AgeGroupsForDifficulty(5), 2)
	assert.Equal(t, []AgeGroup{AgeAdult}, AgeGroupsForDifficulty(0))
}
