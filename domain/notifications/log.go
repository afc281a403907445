package notifications

import "time"

// Delivery statuses recorded per attempt.
const (
	StatusDelivered = "delivered"
	StatusFailed    = "failed"
)

// LogTTL is how long delivery logs are retained.
const LogTTL = 90 * 24 * time.Hour

// Log records one delivery attempt on one channel.
type Log struct {
	LogID        string    `json:"logId"`
	UserID       string    `json:"userId"`
	Date         string    `json:"date"`
	Channel      string    `json:"channel"`
	Status       string    `json:"status"`
	ErrorMessage string    `json:"errorMessage,omitempty"`
	DeliveredAt  time.Time `json:"deliveredAt"`
}
