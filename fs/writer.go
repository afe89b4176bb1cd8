// Package fs provides file-based storage for media info records.
package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/vidinfo"
)

// InfoPath returns the path of info relative to an output directory.
// Example: kick:video, abc-123 → kick_video/abc-123.info.json
func InfoPath(info *vidinfo.MediaInfo) (string, error) {
	if info.Extractor == "" {
		return "", vidinfo.Errorf(vidinfo.EINVALID, "extractor required")
	}
	if info.ID == "" {
		return "", vidinfo.Errorf(vidinfo.EINVALID, "media ID required")
	}
	return filepath.Join(sanitize(info.Extractor), sanitize(info.ID)+".info.json"), nil
}

// sanitize replaces characters that are unsafe in file names.
func sanitize(s string) string {
	s = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', 0:
			return '_'
		}
		return r
	}, s)
	if s == "." || s == ".." {
		return "_"
	}
	return s
}

// Ensure Writer implements vidinfo.InfoWriter at compile time.
var _ vidinfo.InfoWriter = (*Writer)(nil)

// Writer writes media info records as indented JSON files to a directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WriteInfo writes info to disk and returns the full path. The file is
// written to a temporary name first and renamed into place, so readers
// never see a partial record.
func (w *Writer) WriteInfo(ctx context.Context, info *vidinfo.MediaInfo) (string, error) {
	if err := info.Validate(); err != nil {
		return "", err
	}

	relPath, err := InfoPath(info)
	if err != nil {
		return "", err
	}

	fullPath := filepath.Join(w.baseDir, relPath)

	// Create parent directories
	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(dir, ".info-*.tmp")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return "", err
	}
	if err := os.Rename(tmp.Name(), fullPath); err != nil {
		return "", err
	}
	return fullPath, nil
}
