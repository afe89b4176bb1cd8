package mock

import (
	"context"

	"github.com/fwojciec/vidinfo"
)

var _ vidinfo.MediaService = (*MediaService)(nil)

// MediaService is a mock implementation of vidinfo.MediaService.
type MediaService struct {
	SaveMediaInfoFn     func(ctx context.Context, info *vidinfo.MediaInfo) (bool, error)
	FindMediaInfoByIDFn func(ctx context.Context, extractor, mediaID string) (*vidinfo.CatalogEntry, error)
	FindMediaInfosFn    func(ctx context.Context, filter vidinfo.MediaFilter) ([]*vidinfo.CatalogEntry, error)
	DeleteMediaInfoFn   func(ctx context.Context, extractor, mediaID string) error
}

func (s *MediaService) SaveMediaInfo(ctx context.Context, info *vidinfo.MediaInfo) (bool, error) {
	return s.SaveMediaInfoFn(ctx, info)
}

func (s *MediaService) FindMediaInfoByID(ctx context.Context, extractor, mediaID string) (*vidinfo.CatalogEntry, error) {
	return s.FindMediaInfoByIDFn(ctx, extractor, mediaID)
}

func (s *MediaService) FindMediaInfos(ctx context.Context, filter vidinfo.MediaFilter) ([]*vidinfo.CatalogEntry, error) {
	return s.FindMediaInfosFn(ctx, filter)
}

func (s *MediaService) DeleteMediaInfo(ctx context.Context, extractor, mediaID string) error {
	return s.DeleteMediaInfoFn(ctx, extractor, mediaID)
}
