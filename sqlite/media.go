package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/vidinfo"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ vidinfo.MediaService = (*MediaService)(nil)

// timeLayout is RFC3339 with fixed-width nanoseconds so stored values sort
// lexically in time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// MediaService implements vidinfo.MediaService using SQLite.
type MediaService struct {
	db  *DB
	now func() time.Time
}

// NewMediaService creates a new MediaService.
func NewMediaService(db *DB) *MediaService {
	return &MediaService{db: db, now: time.Now}
}

// SaveMediaInfo inserts or replaces the record for info.Extractor and
// info.ID. The row ID of an existing record is kept.
func (s *MediaService) SaveMediaInfo(ctx context.Context, info *vidinfo.MediaInfo) (bool, error) {
	if info == nil {
		return false, vidinfo.Errorf(vidinfo.EINVALID, "media info required")
	}
	if info.Extractor == "" {
		return false, vidinfo.Errorf(vidinfo.EINVALID, "extractor required")
	}
	if err := info.Validate(); err != nil {
		return false, err
	}

	data, err := json.Marshal(info)
	if err != nil {
		return false, fmt.Errorf("failed to encode media info: %w", err)
	}
	hash := hashFormats(info.Formats)
	title := ""
	if info.Title != nil {
		title = *info.Title
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	var existing string
	err = tx.QueryRowContext(ctx,
		"SELECT formats_hash FROM media WHERE extractor = ? AND media_id = ?",
		info.Extractor, info.ID,
	).Scan(&existing)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return false, err
	}
	changed := errors.Is(err, sql.ErrNoRows) || existing != hash

	_, err = tx.ExecContext(ctx, `
		INSERT INTO media (id, extractor, media_id, webpage_url, title, info, formats_hash, extracted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (extractor, media_id) DO UPDATE SET
			webpage_url = excluded.webpage_url,
			title = excluded.title,
			info = excluded.info,
			formats_hash = excluded.formats_hash,
			extracted_at = excluded.extracted_at
	`, uuid.New().String(), info.Extractor, info.ID, info.WebpageURL, title, string(data), hash,
		s.now().UTC().Format(timeLayout))
	if err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return changed, nil
}

// FindMediaInfoByID retrieves a record by extractor and media ID.
func (s *MediaService) FindMediaInfoByID(ctx context.Context, extractor, mediaID string) (*vidinfo.CatalogEntry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, extractor, media_id, info, formats_hash, extracted_at
		FROM media
		WHERE extractor = ? AND media_id = ?
	`, extractor, mediaID)

	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, vidinfo.Errorf(vidinfo.ENOTFOUND, "media %s %s not found", extractor, mediaID)
	}
	return entry, err
}

// FindMediaInfos retrieves records matching the filter, newest first.
func (s *MediaService) FindMediaInfos(ctx context.Context, filter vidinfo.MediaFilter) ([]*vidinfo.CatalogEntry, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, extractor, media_id, info, formats_hash, extracted_at FROM media WHERE 1=1")

	if filter.Extractor != nil {
		query.WriteString(" AND extractor = ?")
		args = append(args, *filter.Extractor)
	}

	query.WriteString(" ORDER BY extracted_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*vidinfo.CatalogEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// DeleteMediaInfo permanently removes a record.
func (s *MediaService) DeleteMediaInfo(ctx context.Context, extractor, mediaID string) error {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM media WHERE extractor = ? AND media_id = ?", extractor, mediaID)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return vidinfo.Errorf(vidinfo.ENOTFOUND, "media %s %s not found", extractor, mediaID)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (*vidinfo.CatalogEntry, error) {
	var entry vidinfo.CatalogEntry
	var data, extractedAt string

	if err := row.Scan(&entry.ID, &entry.Extractor, &entry.MediaID, &data, &entry.FormatsHash, &extractedAt); err != nil {
		return nil, err
	}

	var info vidinfo.MediaInfo
	if err := json.Unmarshal([]byte(data), &info); err != nil {
		return nil, fmt.Errorf("failed to decode info: %w", err)
	}
	entry.Info = &info

	var err error
	entry.ExtractedAt, err = parseRFC3339(extractedAt, "extracted_at")
	if err != nil {
		return nil, err
	}
	return &entry, nil
}
