package site

import (
	"context"
	"net/url"
	"regexp"

	"github.com/fwojciec/vidinfo"
	"github.com/fwojciec/vidinfo/coerce"
	"github.com/fwojciec/vidinfo/traverse"
)

// Matches both https://kick.com/{channel}?clip={id} and
// https://kick.com/{channel}/clips/{id}.
var kickClipPattern = regexp.MustCompile(`^(?i:https?://(?:www\.)?kick\.com)/(?:[^/?#]+/clips/|[^?#]*\?(?:[^#]*&)?clip=)(?P<id>clip_[0-9a-zA-Z]+)`)

// Ensure KickClip implements vidinfo.Handler at compile time.
var _ vidinfo.Handler = (*KickClip)(nil)

// KickClip extracts Kick clips through the public v2 clips API.
type KickClip struct {
	fetcher  vidinfo.Fetcher
	resolver vidinfo.ManifestResolver
}

// NewKickClip creates a KickClip handler.
func NewKickClip(fetcher vidinfo.Fetcher, resolver vidinfo.ManifestResolver) *KickClip {
	return &KickClip{fetcher: fetcher, resolver: resolver}
}

func (h *KickClip) Name() string { return NameKickClip }

func (h *KickClip) Match(locator string) (string, bool) {
	return matchID(kickClipPattern, locator)
}

// Extract fetches https://kick.com/api/v2/clips/{id}. Clips served as a
// plain MP4 file yield a single https format without a manifest request.
func (h *KickClip) Extract(ctx context.Context, id string) (*vidinfo.MediaInfo, error) {
	data, err := h.fetcher.GetJSON(ctx, kickAPI+"/v2/clips/"+url.PathEscape(id), jsonHeaders())
	if err != nil {
		return nil, fetchFailed(err)
	}

	videoURL, ok := traverse.Value(data, coerce.URL,
		traverse.P("clip", "video_url"),
		traverse.P("clip", "clip_url"))
	if !ok {
		return nil, &vidinfo.Error{
			Code:    vidinfo.EEXTRACT,
			Message: "no video URL for clip " + id,
			Stage:   vidinfo.StageParse,
		}
	}

	var formats []vidinfo.Format
	if hasExt(videoURL, ".mp4") {
		formats = []vidinfo.Format{{
			URL:      videoURL,
			FormatID: "mp4",
			Protocol: vidinfo.ProtocolHTTPS,
			Kind:     vidinfo.MediaKindMuxed,
		}}
	} else {
		formats, err = h.resolver.ResolveFormats(ctx, videoURL, id, "hls")
		if err != nil {
			return nil, err
		}
	}
	if len(formats) == 0 {
		return nil, noFormats("clip", id)
	}

	return &vidinfo.MediaInfo{
		ID:      id,
		Formats: withContainer(formats, "mp4"),
		Title: traverse.Ptr(data, coerce.String,
			traverse.P("clip", "title")),
		Channel: traverse.Ptr(data, coerce.String,
			traverse.P("channel", "slug"),
			traverse.P("clip", "channel", "slug")),
		ChannelID: traverse.Ptr(data, coerce.String,
			traverse.P("channel", "id"),
			traverse.P("clip", "channel", "id"),
			traverse.P("clip", "channel_id")),
		Creator: traverse.Ptr(data, coerce.String,
			traverse.P("creator", "slug"),
			traverse.P("clip", "creator", "slug")),
		Uploader: traverse.Ptr(data, coerce.String,
			traverse.P("creator", "username"),
			traverse.P("clip", "creator", "username")),
		UploaderID: traverse.Ptr(data, coerce.String,
			traverse.P("creator", "id"),
			traverse.P("clip", "creator", "id"),
			traverse.P("clip", "user_id")),
		Thumbnail: traverse.Ptr(data, coerce.URL,
			traverse.P("clip", "thumbnail_url")),
		Duration: traverse.Ptr(data, coerce.Float,
			traverse.P("clip", "duration")),
		ViewCount: traverse.Ptr(data, coerce.Int,
			traverse.P("clip", "views"),
			traverse.P("clip", "view_count")),
		Timestamp: traverse.Ptr(data, coerce.Timestamp,
			traverse.P("clip", "created_at")),
		Categories: coerce.Set(traverse.Values(data, coerce.String,
			traverse.P("clip", "category", "name"))),
	}, nil
}
