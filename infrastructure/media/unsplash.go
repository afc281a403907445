// Package media implements the external content providers: image search,
// dictionary, pronunciation audio, and the media object store.
package media

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"wordaday-backend/application/ports"

	"go.uber.org/zap"
)

const (
	unsplashBaseURL = "https://api.unsplash.com"
	httpTimeout     = 10 * time.Second

	// maxImageBytes caps downloads; Unsplash regular renditions are well
	// under this.
	maxImageBytes = 5 << 20
)

// UnsplashClient implements ports.ImageProvider against the Unsplash
// search API.
type UnsplashClient struct {
	accessKey string
	client    *http.Client
	logger    *zap.Logger
}

// NewUnsplashClient creates an Unsplash image provider.
func NewUnsplashClient(accessKey string, logger *zap.Logger) ports.ImageProvider {
	return &UnsplashClient{
		accessKey: accessKey,
		client:    &http.Client{Timeout: httpTimeout},
		logger:    logger,
	}
}

type unsplashSearchResponse struct {
	Results []struct {
		URLs struct {
			Regular string `json:"regular"`
		} `json:"urls"`
	} `json:"results"`
}

// SearchImage returns the first landscape match for the query, or "".
func (c *UnsplashClient) SearchImage(ctx context.Context, query string) (string, error) {
	if c.accessKey == "" {
		return "", nil
	}

	endpoint := fmt.Sprintf("%s/search/photos?query=%s&per_page=1&orientation=landscape",
		unsplashBaseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build image search request: %w", err)
	}
	req.Header.Set("Authorization", "Client-ID "+c.accessKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("image search failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("image search returned status %d", resp.StatusCode)
	}

	var parsed unsplashSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode image search response: %w", err)
	}
	if len(parsed.Results) == 0 {
		return "", nil
	}
	return parsed.Results[0].URLs.Regular, nil
}

// DownloadImage fetches the image bytes at url.
func (c *UnsplashClient) DownloadImage(ctx context.Context, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build image download request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("image download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image download returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read image body: %w", err)
	}
	return data, nil
}
