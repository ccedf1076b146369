package fetcher

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dasmondroy97/Quantexa/internal/domain/repository"
	"github.com/dasmondroy97/Quantexa/pkg/logger"
)

const filePrefix = "file://"

// FileFetcher reads local files. It handles "file://" URLs and plain paths.
type FileFetcher struct {
	logger logger.Logger
}

// NewFileFetcher creates a new file fetcher
func NewFileFetcher(logger logger.Logger) *FileFetcher {
	return &FileFetcher{
		logger: logger,
	}
}

// CanHandle accepts file:// URLs and anything without a scheme
func (f *FileFetcher) CanHandle(location string) bool {
	if strings.HasPrefix(location, filePrefix) {
		return true
	}
	return location != "" && !strings.Contains(location, "://") && !strings.HasPrefix(location, GmailPrefix)
}

// Fetch reads the whole file
func (f *FileFetcher) Fetch(ctx context.Context, location string) ([]byte, error) {
	path := strings.TrimPrefix(location, filePrefix)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", repository.ErrSourceUnavailable, err)
	}
	f.logger.Debug("Read file", "path", path, "bytes", len(data))
	return data, nil
}
