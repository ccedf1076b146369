package repository

import (
	"context"
	"errors"
)

// ErrSourceUnavailable is wrapped by every fetcher or repository that could
// not obtain its raw data.
var ErrSourceUnavailable = errors.New("source unavailable")

// DataFetcher retrieves the raw bytes behind a data location
type DataFetcher interface {
	// CanHandle determines if this fetcher understands the given location
	CanHandle(location string) bool

	// Fetch returns the raw content stored at location
	Fetch(ctx context.Context, location string) ([]byte, error)
}
