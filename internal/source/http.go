package source

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/j-veylop/namespace-activity-tui/internal/logger"
	"github.com/j-veylop/namespace-activity-tui/internal/version"
)

// maxBodyBytes caps the size of a downloaded table.
const maxBodyBytes = 256 << 20

// HTTPSource downloads a table with a GET request.
type HTTPSource struct {
	client *http.Client
	url    string
}

// NewHTTPSource returns a source fetching url with client. A nil client uses
// http.DefaultClient.
func NewHTTPSource(url string, client *http.Client) *HTTPSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{client: client, url: url}
}

// Fetch implements Source. Any non-2xx response is an error.
func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.5")
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Error("failed to close response body", "error", err)
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if len(body) > maxBodyBytes {
		return nil, fmt.Errorf("response exceeds %d bytes", maxBodyBytes)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, snippet(body))
	}

	return body, nil
}

// Describe implements Source.
func (s *HTTPSource) Describe() string {
	return s.url
}

// WatchPath implements Source. Remote tables are not watched.
func (s *HTTPSource) WatchPath() string {
	return ""
}

func snippet(body []byte) string {
	const limit = 120
	if len(body) > limit {
		return string(body[:limit]) + "…"
	}
	return string(body)
}
