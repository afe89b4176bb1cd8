package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/vidinfo"
)

// Ensure LoggingResolver implements vidinfo.ManifestResolver.
var _ vidinfo.ManifestResolver = (*LoggingResolver)(nil)

// LoggingResolver wraps a ManifestResolver with debug logging.
type LoggingResolver struct {
	next   vidinfo.ManifestResolver
	logger *slog.Logger
}

// NewLoggingResolver creates a new LoggingResolver.
func NewLoggingResolver(next vidinfo.ManifestResolver, logger *slog.Logger) *LoggingResolver {
	return &LoggingResolver{next: next, logger: logger}
}

// ResolveFormats logs the manifest and the number of formats found.
func (r *LoggingResolver) ResolveFormats(ctx context.Context, manifestURL, id, formatIDHint string) (formats []vidinfo.Format, err error) {
	defer func(begin time.Time) {
		r.logger.Debug("resolve manifest",
			"manifest", manifestURL,
			"id", id,
			"formats", len(formats),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.ResolveFormats(ctx, manifestURL, id, formatIDHint)
}
