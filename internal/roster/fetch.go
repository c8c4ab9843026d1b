package roster

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-yaml"
)

// Fetcher downloads and decodes the legislators roster YAML.
type Fetcher struct {
	URL    string
	Client *http.Client
}

// NewFetcher creates a roster fetcher for the given URL.
func NewFetcher(url string, timeout time.Duration) *Fetcher {
	return &Fetcher{
		URL:    url,
		Client: &http.Client{Timeout: timeout},
	}
}

// Fetch retrieves the roster and decodes it into raw records. Network, status,
// and decode failures are all fatal to the run; no reconciliation starts on a
// partial dataset.
func (f *Fetcher) Fetch(ctx context.Context) ([]Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build roster request: %w", err)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch roster from %s: %w", f.URL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch roster from %s: unexpected status %s", f.URL, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read roster body: %w", err)
	}

	var records []Record
	if err := yaml.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("decode roster yaml: %w", err)
	}
	return records, nil
}
