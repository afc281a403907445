package events

import "time"

// Source identifies this service on the event bus.
const Source = "wordaday.backend"

// Event detail types.
const (
	TypeWordGenerated    = "word.generated"
	TypeFeedbackReceived = "feedback.received"
)

// DomainEvent is the contract every published event satisfies.
type DomainEvent interface {
	GetEventType() string
	GetAggregateID() string
	GetTimestamp() time.Time
}

// BaseEvent carries the fields shared by all events.
type BaseEvent struct {
	EventType   string    `json:"eventType"`
	AggregateID string    `json:"aggregateId"`
	Timestamp   time.Time `json:"timestamp"`
}

func (e BaseEvent) GetEventType() string   { return e.EventType }
func (e BaseEvent) GetAggregateID() string { return e.AggregateID }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }

// WordGenerated is published when the orchestrator stores a daily word.
type WordGenerated struct {
	BaseEvent
	UserID      string `json:"userId"`
	Date        string `json:"date"`
	Word        string `json:"word"`
	Method      string `json:"generationMethod"`
	Provider    string `json:"provider,omitempty"`
	Regenerated bool   `json:"regenerated"`
}

// NewWordGenerated builds a WordGenerated event.
func NewWordGenerated(userID, date, word, method, provider string, regenerated bool) WordGenerated {
	return WordGenerated{
		BaseEvent: BaseEvent{
			EventType:   TypeWordGenerated,
			AggregateID: userID + "#" + date,
			Timestamp:   time.Now().UTC(),
		},
		UserID:      userID,
		Date:        date,
		Word:        word,
		Method:      method,
		Provider:    provider,
		Regenerated: regenerated,
	}
}

// FeedbackReceived is published when a user submits feedback for a word.
type FeedbackReceived struct {
	BaseEvent
	UserID     string `json:"userId"`
	WordID     string `json:"wordId"`
	Date       string `json:"date"`
	Rating     int    `json:"rating"`
	Practiced  bool   `json:"practiced"`
	Difficulty string `json:"difficulty"`
}

// NewFeedbackReceived builds a FeedbackReceived event.
func NewFeedbackReceived(userID, wordID, date string, rating int, practiced bool, difficulty string) FeedbackReceived {
	return FeedbackReceived{
		BaseEvent: BaseEvent{
			EventType:   TypeFeedbackReceived,
			AggregateID: userID + "#" + date,
			Timestamp:   time.Now().UTC(),
		},
		UserID:     userID,
		WordID:     wordID,
		Date:       date,
		Rating:     rating,
		Practiced:  practiced,
		Difficulty: difficulty,
	}
}
