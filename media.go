package vidinfo

import (
	"net/url"
)

// Protocol identifies how a format is retrieved.
type Protocol string

// Supported retrieval protocols.
const (
	ProtocolHLS   Protocol = "m3u8"
	ProtocolHTTPS Protocol = "https"
)

// MediaKind describes which elementary streams a format carries.
type MediaKind string

// Media kinds. MediaKindMuxed is used when the kind cannot be narrowed.
const (
	MediaKindMuxed MediaKind = "muxed"
	MediaKindVideo MediaKind = "video"
	MediaKindAudio MediaKind = "audio"
)

// Format is one retrievable encoded variant of a media resource.
// Nil optional fields mean the source did not provide the value.
type Format struct {
	URL       string    `json:"url"`
	FormatID  string    `json:"formatId"`
	Protocol  Protocol  `json:"protocol"`
	Kind      MediaKind `json:"kind,omitempty"`
	Quality   *float64  `json:"quality,omitempty"` // kbit/s
	Container *string   `json:"container,omitempty"`
	Width     *int      `json:"width,omitempty"`
	Height    *int      `json:"height,omitempty"`
	FPS       *float64  `json:"fps,omitempty"`
	Codecs    *string   `json:"codecs,omitempty"`
}

// MediaInfo is the normalized description of a media resource.
// Optional metadata is nil when absent, never a zero value.
type MediaInfo struct {
	ID         string   `json:"id"`
	Extractor  string   `json:"extractor,omitempty"`
	WebpageURL string   `json:"webpageUrl,omitempty"`
	Title      *string  `json:"title,omitempty"`
	Formats    []Format `json:"formats"`

	Description      *string  `json:"description,omitempty"`
	Uploader         *string  `json:"uploader,omitempty"`
	UploaderID       *string  `json:"uploaderId,omitempty"`
	Creator          *string  `json:"creator,omitempty"`
	Channel          *string  `json:"channel,omitempty"`
	ChannelID        *string  `json:"channelId,omitempty"`
	Thumbnail        *string  `json:"thumbnail,omitempty"`
	Duration         *float64 `json:"duration,omitempty"` // seconds
	Timestamp        *int64   `json:"timestamp,omitempty"`
	ReleaseTimestamp *int64   `json:"releaseTimestamp,omitempty"`
	ViewCount        *int64   `json:"viewCount,omitempty"`
	IsLive           *bool    `json:"isLive,omitempty"`
	Categories       []string `json:"categories,omitempty"`
	Tags             []string `json:"tags,omitempty"`
}

// Validate returns an error if the record is missing required fields.
// A missing identifier or an empty format list is an extraction failure.
func (m *MediaInfo) Validate() error {
	if m.ID == "" {
		return Errorf(EEXTRACT, "media ID required")
	}
	if len(m.Formats) == 0 {
		return Errorf(EEXTRACT, "no playable formats for %q", m.ID)
	}
	seen := make(map[string]bool, len(m.Formats))
	for i := range m.Formats {
		f := &m.Formats[i]
		if err := f.Validate(); err != nil {
			return err
		}
		if seen[f.FormatID] {
			return Errorf(EINVALID, "duplicate format ID %q", f.FormatID)
		}
		seen[f.FormatID] = true
	}
	return nil
}

// Validate returns an error if the format has no usable URL or ID.
func (f *Format) Validate() error {
	if f.FormatID == "" {
		return Errorf(EINVALID, "format ID required")
	}
	if f.URL == "" {
		return Errorf(EINVALID, "format %q URL required", f.FormatID)
	}
	u, err := url.Parse(f.URL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return Errorf(EINVALID, "format %q URL must be absolute: %q", f.FormatID, f.URL)
	}
	return nil
}
