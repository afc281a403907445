package media

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"wordaday-backend/application/ports"

	"go.uber.org/zap"
)

const merriamWebsterBaseURL = "https://www.dictionaryapi.com/api/v3/references/collegiate/json"

// MerriamWebsterClient implements ports.DictionaryProvider against the
// Merriam-Webster collegiate API.
type MerriamWebsterClient struct {
	apiKey string
	client *http.Client
	logger *zap.Logger
}

// NewMerriamWebsterClient creates a dictionary provider.
func NewMerriamWebsterClient(apiKey string, logger *zap.Logger) ports.DictionaryProvider {
	return &MerriamWebsterClient{
		apiKey: apiKey,
		client: &http.Client{Timeout: httpTimeout},
		logger: logger,
	}
}

// mwEntry mirrors the fields we read from a collegiate API entry. A lookup
// for an unknown word returns an array of suggestion strings instead, which
// fails to decode into this shape and is treated as not found.
type mwEntry struct {
	FL  string `json:"fl"`
	HWI struct {
		HW  string `json:"hw"`
		PRS []struct {
			MW string `json:"mw"`
		} `json:"prs"`
	} `json:"hwi"`
	Shortdef []string `json:"shortdef"`
}

// Lookup fetches the word's primary dictionary entry, or (nil, nil) when
// the dictionary has no exact match.
func (c *MerriamWebsterClient) Lookup(ctx context.Context, word string) (*ports.DictionaryEntry, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("dictionary API key not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	endpoint := fmt.Sprintf("%s/%s?key=%s", merriamWebsterBaseURL, url.PathEscape(word), url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build dictionary request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("dictionary lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("dictionary returned status %d", resp.StatusCode)
	}

	var entries []mwEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		// Suggestion list for unknown words decodes as []string, not
		// []mwEntry.
		c.logger.Debug("No exact dictionary entry", zap.String("word", word))
		return nil, nil
	}
	if len(entries) == 0 || len(entries[0].Shortdef) == 0 {
		return nil, nil
	}

	primary := entries[0]
	entry := &ports.DictionaryEntry{
		Definition:   primary.Shortdef[0],
		PartOfSpeech: primary.FL,
	}
	if len(primary.HWI.PRS) > 0 {
		entry.Pronunciation = primary.HWI.PRS[0].MW
	}
	return entry, nil
}
