// Package notifications implements the delivery channel senders.
package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"wordaday-backend/application/ports"

	"go.uber.org/zap"
)

const expoPushURL = "https://exp.host/--/api/v2/push/send"

// ExpoPushSender implements ports.PushSender against the Expo push service.
type ExpoPushSender struct {
	client *http.Client
	logger *zap.Logger
}

// NewExpoPushSender creates an Expo push sender.
func NewExpoPushSender(logger *zap.Logger) ports.PushSender {
	return &ExpoPushSender{
		client: &http.Client{Timeout: 10 * time.Second},
		logger: logger,
	}
}

type expoMessage struct {
	To    string            `json:"to"`
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
	Sound string            `json:"sound"`
}

type expoResponse struct {
	Data struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	} `json:"data"`
}

// SendPush delivers one push notification to an Expo device token.
func (s *ExpoPushSender) SendPush(ctx context.Context, token, title, body string, data map[string]string) error {
	if !strings.HasPrefix(token, "ExponentPushToken[") && !strings.HasPrefix(token, "ExpoPushToken[") {
		return fmt.Errorf("invalid Expo push token")
	}

	payload, err := json.Marshal(expoMessage{
		To:    token,
		Title: title,
		Body:  body,
		Data:  data,
		Sound: "default",
	})
	if err != nil {
		return fmt.Errorf("failed to marshal push message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, expoPushURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("push delivery failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("push service returned status %d", resp.StatusCode)
	}

	var parsed expoResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return fmt.Errorf("failed to decode push response: %w", err)
	}
	if parsed.Data.Status == "error" {
		return fmt.Errorf("push rejected: %s", parsed.Data.Message)
	}

	s.logger.Debug("Push notification sent", zap.String("title", title))
	return nil
}
