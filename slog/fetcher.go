// Package slog provides logging decorators for vidinfo interfaces using
// log/slog. Each decorator logs one record per call at the boundary.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/vidinfo"
)

// Ensure LoggingFetcher implements vidinfo.Fetcher.
var _ vidinfo.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with debug logging.
type LoggingFetcher struct {
	next   vidinfo.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next vidinfo.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Get logs the URL being fetched and delegates to the wrapped fetcher.
func (f *LoggingFetcher) Get(ctx context.Context, url string, headers map[string]string) (body []byte, err error) {
	defer func(begin time.Time) {
		f.logger.Debug("fetch",
			"url", url,
			"bytes", len(body),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Get(ctx, url, headers)
}

// GetJSON logs the URL being fetched and delegates to the wrapped fetcher.
func (f *LoggingFetcher) GetJSON(ctx context.Context, url string, headers map[string]string) (v any, err error) {
	defer func(begin time.Time) {
		f.logger.Debug("fetch json",
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.GetJSON(ctx, url, headers)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
