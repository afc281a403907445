package words

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyRequest(t *testing.T) {
	stored := &WordRecord{Status: StatusPending}
	skipped := &WordRecord{Status: StatusSkipped}

	tests := []struct {
		name     string
		existing *WordRecord
		isToday  bool
		want     GenerationState
	}{
		{"no record today", nil, true, StateNoRecord},
		{"no record past date", nil, false, StatePastAbsent},
		{"stored today", stored, true, StateStored},
		{"stored past date", stored, false, StateStored},
		{"skipped today regenerates", skipped, true, StateSkippedToday},
		{"skipped past date stays stored", skipped, false, StateStored},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyRequest(tt.existing, tt.isToday))
		})
	}
}

func TestNeedsGeneration(t *testing.T) {
	assert.True(t, StateNoRecord.NeedsGeneration())
	assert.True(t, StateSkippedToday.NeedsGeneration())
	assert.False(t, StateStored.NeedsGeneration())
	assert.False(t, StatePastAbsent.NeedsGeneration())
}
