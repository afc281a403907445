package users

import (
	"time"

	"wordaday-backend/domain/words"
)

// LearningPatterns aggregates feedback history into coarse counters used to
// steer future selection.
type LearningPatterns struct {
	TotalWords           int     `json:"totalWords"`
	PracticedWords       int     `json:"practicedWords"`
	AverageRating        float64 `json:"averageRating"`
	DifficultyPreference string  `json:"difficultyPreference"`
	LastFeedbackDate     string  `json:"lastFeedbackDate,omitempty"`
}

// Difficulty preference ladder. Feedback nudges the preference one rung at
// a time; it never jumps from easy to hard directly.
const (
	PreferenceEasy   = "easy"
	PreferenceMedium = "medium"
	PreferenceHard   = "hard"
)

// Increase moves the preference one rung harder.
func (p *LearningPatterns) IncreaseDifficulty() {
	switch p.DifficultyPreference {
	case PreferenceEasy:
		p.DifficultyPreference = PreferenceMedium
	case PreferenceMedium:
		p.DifficultyPreference = PreferenceHard
	}
}

// Decrease moves the preference one rung easier.
func (p *LearningPatterns) DecreaseDifficulty() {
	switch p.DifficultyPreference {
	case PreferenceHard:
		p.DifficultyPreference = PreferenceMedium
	case PreferenceMedium:
		p.DifficultyPreference = PreferenceEasy
	}
}

// ChannelPreference configures one notification stream.
type ChannelPreference struct {
	Enabled  bool     `json:"enabled"`
	Channels []string `json:"channels,omitempty"`
	Time     string   `json:"time,omitempty"` // HH:MM, user-local
	Timezone string   `json:"timezone,omitempty"`
}

// NotificationPreferences groups the user's notification settings.
type NotificationPreferences struct {
	DailyWord        ChannelPreference `json:"dailyWord"`
	FeedbackReminder ChannelPreference `json:"feedbackReminder"`
	Milestones       ChannelPreference `json:"milestones"`
}

// Notification channel names.
const (
	ChannelPush  = "push"
	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

// ContactInfo holds the delivery endpoints for notifications.
type ContactInfo struct {
	ExpoPushToken string `json:"expoPushToken,omitempty"`
	PhoneNumber   string `json:"phoneNumber,omitempty"`
	Email         string `json:"email,omitempty"`
}

// Profile is a learner's account settings. It is owned by the preferences
// handler; the generation core reads it and never writes it.
type Profile struct {
	UserID                  string                  `json:"userId"`
	Email                   string                  `json:"email,omitempty"`
	Name                    string                  `json:"name,omitempty"`
	AgeGroup                words.AgeGroup          `json:"ageGroup"`
	Context                 string                  `json:"context"`
	ExamPrep                string                  `json:"examPrep,omitempty"`
	Timezone                string                  `json:"timezone"`
	Language                string                  `json:"language"`
	NotificationPreferences NotificationPreferences `json:"notificationPreferences"`
	ContactInfo             ContactInfo             `json:"contactInfo"`
	LearningPatterns        LearningPatterns        `json:"learningPatterns"`
	CreatedAt               time.Time               `json:"createdAt,omitempty"`
	UpdatedAt               time.Time               `json:"updatedAt,omitempty"`
	LastLoginAt             time.Time               `json:"lastLoginAt,omitempty"`
}

// DefaultProfile is what the generation core uses when a user has no stored
// profile yet. A missing profile must never block word generation.
func DefaultProfile(userID string) *Profile {
	return &Profile{
		UserID:   userID,
		AgeGroup: words.AgeAdult,
		Context:  "general",
		Timezone: "UTC",
		Language: "en",
		NotificationPreferences: DefaultNotificationPreferences(),
		LearningPatterns: LearningPatterns{
			DifficultyPreference: PreferenceMedium,
		},
	}
}

// DefaultNotificationPreferences enables a morning push and an evening
// feedback reminder, matching the onboarding defaults.
func DefaultNotificationPreferences() NotificationPreferences {
	return NotificationPreferences{
		DailyWord: ChannelPreference{
			Enabled:  true,
			Channels: []string{ChannelPush},
			Time:     "08:00",
			Timezone: "UTC",
		},
		FeedbackReminder: ChannelPreference{
			Enabled: true,
			Time:    "20:00",
		},
		Milestones: ChannelPreference{
			Enabled: true,
		},
	}
}

// DailyWordHour returns the UTC hour at which the user wants the daily word
// notification, defaulting to 8 when unset or malformed.
func (p *Profile) DailyWordHour() int {
	t := p.NotificationPreferences.DailyWord.Time
	if len(t) < 2 {
		return 8
	}
	hour := 0
	for _, c := range t[:2] {
		if c < '0' || c > '9' {
			return 8
		}
		hour = hour*10 + int(c-'0')
	}
	if hour > 23 {
		return 8
	}
	return hour
}

// WantsDailyWord reports whether the channel is enabled for the user.
func (p *Profile) WantsDailyWord(channel string) bool {
	prefs := p.NotificationPreferences.DailyWord
	if !prefs.Enabled {
		return false
	}
	for _, c := range prefs.Channels {
		if c == channel {
			return true
		}
	}
	return false
}
