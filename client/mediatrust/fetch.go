package mediatrust

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// maxFetchBytes caps how much of a media source is read into memory.
const maxFetchBytes = 16 << 20

// Fetcher downloads the source behind a sandboxed media artifact so the
// caller can hand it to an isolated renderer. Fetching never changes a
// classification.
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a fetcher with an instrumented HTTP client.
func NewFetcher() *Fetcher {
	return &Fetcher{
		client: &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
	}
}

// Fetch downloads the media source and returns its body and content type.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, string, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to build media request: %w", err)
	}

	response, err := f.client.Do(request)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch media source: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("media source returned status %d", response.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(response.Body, maxFetchBytes))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read media source: %w", err)
	}
	return body, response.Header.Get("Content-Type"), nil
}
