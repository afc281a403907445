package media

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"wordaday-backend/application/ports"

	"go.uber.org/zap"
)

const forvoBaseURL = "https://apifree.forvo.com"

// maxAudioBytes caps pronunciation downloads.
const maxAudioBytes = 2 << 20

// ForvoClient implements ports.AudioProvider against the Forvo
// pronunciation API.
type ForvoClient struct {
	apiKey string
	client *http.Client
	logger *zap.Logger
}

// NewForvoClient creates a pronunciation audio provider.
func NewForvoClient(apiKey string, logger *zap.Logger) ports.AudioProvider {
	return &ForvoClient{
		apiKey: apiKey,
		client: &http.Client{Timeout: httpTimeout},
		logger: logger,
	}
}

type forvoResponse struct {
	Items []struct {
		PathMP3 string `json:"pathmp3"`
	} `json:"items"`
}

// FetchPronunciation returns MP3 bytes for the word's top-rated English
// pronunciation, or nil when none exists.
func (c *ForvoClient) FetchPronunciation(ctx context.Context, word string) ([]byte, error) {
	if c.apiKey == "" {
		return nil, nil
	}

	endpoint := fmt.Sprintf("%s/key/%s/format/json/action/word-pronunciations/word/%s/language/en/order/rate-desc/limit/1",
		forvoBaseURL, url.PathEscape(c.apiKey), url.PathEscape(word))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build pronunciation request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pronunciation lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pronunciation lookup returned status %d", resp.StatusCode)
	}

	var parsed forvoResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode pronunciation response: %w", err)
	}
	if len(parsed.Items) == 0 || parsed.Items[0].PathMP3 == "" {
		return nil, nil
	}

	return c.download(ctx, parsed.Items[0].PathMP3)
}

func (c *ForvoClient) download(ctx context.Context, audioURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, audioURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build audio download request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("audio download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("audio download returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxAudioBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read audio body: %w", err)
	}
	return data, nil
}
