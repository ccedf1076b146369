package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dasmondroy97/Quantexa/internal/domain/repository"
	"github.com/dasmondroy97/Quantexa/pkg/logger"
)

// HTTPFetcher downloads datasets over http and https
type HTTPFetcher struct {
	client *http.Client
	logger logger.Logger
}

// NewHTTPFetcher creates a new HTTP fetcher with the given request timeout
func NewHTTPFetcher(timeout time.Duration, logger logger.Logger) *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// CanHandle accepts http:// and https:// URLs
func (f *HTTPFetcher) CanHandle(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// Fetch performs a GET and returns the body of a 2xx response
func (f *HTTPFetcher) Fetch(ctx context.Context, location string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s returned %s", repository.ErrSourceUnavailable, location, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", repository.ErrSourceUnavailable, err)
	}

	f.logger.Info("Downloaded dataset",
		"url", location,
		"bytes", len(data),
		"duration", time.Since(start))
	return data, nil
}
