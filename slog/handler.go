package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/vidinfo"
)

// Ensure LoggingHandler implements vidinfo.Handler.
var _ vidinfo.Handler = (*LoggingHandler)(nil)

// LoggingHandler wraps a Handler and logs each extraction.
type LoggingHandler struct {
	next   vidinfo.Handler
	logger *slog.Logger
}

// NewLoggingHandler creates a new LoggingHandler.
func NewLoggingHandler(next vidinfo.Handler, logger *slog.Logger) *LoggingHandler {
	return &LoggingHandler{next: next, logger: logger}
}

// WrapHandlers decorates every handler with a LoggingHandler.
func WrapHandlers(handlers []vidinfo.Handler, logger *slog.Logger) []vidinfo.Handler {
	out := make([]vidinfo.Handler, len(handlers))
	for i, h := range handlers {
		out[i] = NewLoggingHandler(h, logger)
	}
	return out
}

// Name delegates to the wrapped handler.
func (h *LoggingHandler) Name() string {
	return h.next.Name()
}

// Match delegates to the wrapped handler.
func (h *LoggingHandler) Match(locator string) (string, bool) {
	return h.next.Match(locator)
}

// Extract logs the handler, ID and outcome of the extraction.
func (h *LoggingHandler) Extract(ctx context.Context, id string) (info *vidinfo.MediaInfo, err error) {
	defer func(begin time.Time) {
		formats := 0
		if info != nil {
			formats = len(info.Formats)
		}
		h.logger.Info("extract",
			"handler", h.next.Name(),
			"id", id,
			"formats", formats,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return h.next.Extract(ctx, id)
}
