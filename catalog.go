package vidinfo

import (
	"context"
	"time"
)

// CatalogEntry is a stored extraction result.
type CatalogEntry struct {
	ID          string     `json:"id"`
	Extractor   string     `json:"extractor"`
	MediaID     string     `json:"mediaId"`
	Info        *MediaInfo `json:"info"`
	FormatsHash string     `json:"formatsHash"`
	ExtractedAt time.Time  `json:"extractedAt"`
}

// MediaService stores extracted media records for cataloging.
type MediaService interface {
	// SaveMediaInfo inserts or replaces the record keyed by extractor and
	// media ID. Reports whether the stored format set changed.
	SaveMediaInfo(ctx context.Context, info *MediaInfo) (changed bool, err error)

	// FindMediaInfoByID retrieves a record.
	// Returns ENOTFOUND if the record does not exist.
	FindMediaInfoByID(ctx context.Context, extractor, mediaID string) (*CatalogEntry, error)

	// FindMediaInfos retrieves records matching the filter, newest first.
	FindMediaInfos(ctx context.Context, filter MediaFilter) ([]*CatalogEntry, error)

	// DeleteMediaInfo removes a record.
	// Returns ENOTFOUND if the record does not exist.
	DeleteMediaInfo(ctx context.Context, extractor, mediaID string) error
}

// MediaFilter represents a filter for FindMediaInfos.
type MediaFilter struct {
	Extractor *string `json:"extractor"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// InfoWriter persists a MediaInfo record outside the catalog.
type InfoWriter interface {
	// WriteInfo stores info and returns where it was written.
	WriteInfo(ctx context.Context, info *MediaInfo) (string, error)
}
