package router

import (
	"context"
	"errors"
	"fmt"

	"github.com/dasmondroy97/Quantexa/internal/domain/repository"
	"github.com/dasmondroy97/Quantexa/pkg/logger"
)

// ErrNoFetcher is returned when no registered fetcher understands a location
var ErrNoFetcher = errors.New("no fetcher for location")

// SourceRouter routes data locations to the fetcher that can read them
type SourceRouter struct {
	fetchers []repository.DataFetcher
	logger   logger.Logger
}

// NewSourceRouter creates a new source router
func NewSourceRouter(logger logger.Logger) *SourceRouter {
	return &SourceRouter{
		fetchers: make([]repository.DataFetcher, 0),
		logger:   logger,
	}
}

// Register appends a fetcher. Fetchers are tried in registration order.
func (r *SourceRouter) Register(fetcher repository.DataFetcher) {
	r.fetchers = append(r.fetchers, fetcher)
	r.logger.Debug("Registered fetcher", "fetcher", fmt.Sprintf("%T", fetcher))
}

// GetFetcher returns the first fetcher that can handle location, or nil
func (r *SourceRouter) GetFetcher(location string) repository.DataFetcher {
	for _, fetcher := range r.fetchers {
		if fetcher.CanHandle(location) {
			return fetcher
		}
	}
	return nil
}

// CanHandle reports whether any registered fetcher handles location
func (r *SourceRouter) CanHandle(location string) bool {
	return r.GetFetcher(location) != nil
}

// Fetch reads location through the matching fetcher
func (r *SourceRouter) Fetch(ctx context.Context, location string) ([]byte, error) {
	fetcher := r.GetFetcher(location)
	if fetcher == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoFetcher, location)
	}
	r.logger.Info("Fetching data", "location", location, "fetcher", fmt.Sprintf("%T", fetcher))
	return fetcher.Fetch(ctx, location)
}
