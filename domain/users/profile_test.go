package users

import (
	"testing"

	"wordaday-backend/domain/words"

	"github.com/stretchr/testify/assert"
)

func TestDefaultProfile(t *testing.T) {
	p := DefaultProfile("user-1")
	assert.Equal(t, "user-1", p.UserID)
	assert.Equal(t, words.AgeAdult, p.AgeGroup)
	assert.Equal(t, "general", p.Context)
	assert.Equal(t, PreferenceMedium, p.LearningPatterns.DifficultyPreference)
	assert.True(t, p.NotificationPreferences.DailyWord.Enabled)
}

func TestDifficultyLadder(t *testing.T) {
	t.Run("increase climbs one rung", func(t *testing.T) {
		p := LearningPatterns{DifficultyPreference: PreferenceEasy}
		p.IncreaseDifficulty()
		assert.Equal(t, PreferenceMedium, p.DifficultyPreference)
		p.IncreaseDifficulty()
		assert.Equal(t, PreferenceHard, p.DifficultyPreference)
		p.IncreaseDifficulty()
		assert.Equal(t, PreferenceHard, p.DifficultyPreference)
	})

	t.Run("decrease descends one rung", func(t *testing.T) {
		p := LearningPatterns{DifficultyPreference: PreferenceHard}
		p.DecreaseDifficulty()
		assert.Equal(t, PreferenceMedium, p.DifficultyPreference)
		p.DecreaseDifficulty()
		assert.Equal(t, PreferenceEasy, p.DifficultyPreference)
		p.DecreaseDifficulty()
		assert.Equal(t, PreferenceEasy, p.DifficultyPreference)
	})
}

func TestDailyWordHour(t *testing.T) {
	tests := []struct {
		time string
		want int
	}{
		{"08:00", 8},
		{"20:30", 20},
		{"00:15", 0},
		{"", 8},
		{"x9:00", 8},
		{"99:00", 8},
	}
	for _, tt := range tests {
		p := DefaultProfile("u")
		p.NotificationPreferences.DailyWord.Time = tt.time
		assert.Equal(t, tt.want, p.DailyWordHour(), "time %q", tt.time)
	}
}

func TestWantsDailyWord(t *testing.T) {
	p := DefaultProfile("u")
	p.NotificationPreferences.DailyWord.Channels = []string{ChannelPush, ChannelEmail}

	assert.True(t, p.WantsDailyWord(ChannelPush))
	assert.True(t, p.WantsDailyWord(ChannelEmail))
	assert.False(t, p.WantsDailyWord(ChannelSMS))

	p.NotificationPreferences.DailyWord.Enabled = false
	assert.False(t, p.WantsDailyWord(ChannelPush))
}
