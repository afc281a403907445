package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"wordaday-backend/application/ports"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// Endpoint and model defaults for the supported chat-completions services.
const (
	GroqBaseURL   = "https://api.groq.com/openai/v1"
	OpenAIBaseURL = "https://api.openai.com/v1"

	defaultGroqModel   = "llama-3.3-70b-versatile"
	defaultOpenAIModel = "gpt-4o-mini"

	requestTimeout = 30 * time.Second
)

// ChatProvider implements ports.WordProvider against an OpenAI-compatible
// chat-completions endpoint. Groq and OpenAI share the wire format; only
// base URL, model, and credential differ.
type ChatProvider struct {
	name    string
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
	logger  *zap.Logger
}

// NewGroqProvider creates the Groq-backed word provider.
func NewGroqProvider(apiKey string, logger *zap.Logger) *ChatProvider {
	return newChatProvider("groq", GroqBaseURL, apiKey, defaultGroqModel, logger)
}

// NewOpenAIProvider creates the OpenAI-backed word provider.
func NewOpenAIProvider(apiKey string, logger *zap.Logger) *ChatProvider {
	return newChatProvider("openai", OpenAIBaseURL, apiKey, defaultOpenAIModel, logger)
}

func newChatProvider(name, baseURL, apiKey, model string, logger *zap.Logger) *ChatProvider {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 2,
		Interval:    60 * time.Second,
		Timeout:     120 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.Requests >= 3 && counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(cbName string, from, to gobreaker.State) {
			logger.Warn("Provider circuit state changed",
				zap.String("provider", cbName),
				zap.Stringer("from", from),
				zap.Stringer("to", to),
			)
		},
	})
	return &ChatProvider{
		name:    name,
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		client:  &http.Client{Timeout: requestTimeout},
		breaker: breaker,
		logger:  logger,
	}
}

// Name returns the provider name used in records and usage tracking.
func (p *ChatProvider) Name() string { return p.name }

// Configured reports whether a credential is present.
func (p *ChatProvider) Configured() bool { return p.apiKey != "" }

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	Temperature    float64       `json:"temperature"`
	MaxTokens      int           `json:"max_tokens"`
	ResponseFormat *respFormat   `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type respFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// GenerateWord asks the model for one structured vocabulary word.
func (p *ChatProvider) GenerateWord(ctx context.Context, prompt ports.WordPrompt) (*ports.GeneratedWord, error) {
	result, err := p.breaker.Execute(func() (any, error) {
		return p.generate(ctx, prompt)
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return nil, fmt.Errorf("provider %s circuit open: %w", p.name, err)
		}
		return nil, err
	}
	return result.(*ports.GeneratedWord), nil
}

func (p *ChatProvider) generate(ctx context.Context, prompt ports.WordPrompt) (*ports.GeneratedWord, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	payload := chatRequest{
		Model: p.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildUserPrompt(prompt)},
		},
		Temperature:    0.8,
		MaxTokens:      1024,
		ResponseFormat: &respFormat{Type: "json_object"},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("provider %s request failed: %w", p.name, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read provider response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("provider %s returned status %d: %s", p.name, resp.StatusCode, truncate(string(raw), 200))
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode provider response: %w", err)
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("provider %s error: %s", p.name, parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("provider %s returned no choices", p.name)
	}

	var word ports.GeneratedWord
	if err := json.Unmarshal([]byte(parsed.Choices[0].Message.Content), &word); err != nil {
		return nil, fmt.Errorf("provider %s returned malformed word JSON: %w", p.name, err)
	}

	p.logger.Debug("Generated word from provider",
		zap.String("provider", p.name),
		zap.String("word", word.Word),
	)
	return &word, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
