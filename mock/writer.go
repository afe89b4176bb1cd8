package mock

import (
	"context"

	"github.com/fwojciec/vidinfo"
)

var _ vidinfo.InfoWriter = (*InfoWriter)(nil)

// InfoWriter is a mock implementation of vidinfo.InfoWriter.
type InfoWriter struct {
	WriteInfoFn func(ctx context.Context, info *vidinfo.MediaInfo) (string, error)
}

func (w *InfoWriter) WriteInfo(ctx context.Context, info *vidinfo.MediaInfo) (string, error) {
	return w.WriteInfoFn(ctx, info)
}
