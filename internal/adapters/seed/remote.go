package seed

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"schoolactivities/internal/domain"
)

// maxCatalogueSize caps how much of a remote catalogue is read.
const maxCatalogueSize = 1 << 20

// HTTPFetcher downloads a catalogue published over HTTP. The body may be YAML or JSON.
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher returns a fetcher using client, or http.DefaultClient when nil.
func NewHTTPFetcher(client *http.Client) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPFetcher{client: client}
}

// Fetch downloads and parses the catalogue at url.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]*domain.Activity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/yaml, application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalogue: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalogue server returned status: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxCatalogueSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read catalogue: %w", err)
	}
	return Parse(data)
}
