package site

import (
	"context"
	"net/url"
	"regexp"

	"github.com/fwojciec/vidinfo"
	"github.com/fwojciec/vidinfo/coerce"
	"github.com/fwojciec/vidinfo/traverse"
)

const kickAPI = "https://kick.com/api"

var kickVideoPattern = regexp.MustCompile(`^(?i:https?://(?:www\.)?kick\.com)/video/(?P<id>[0-9a-zA-Z-]+)`)

// Ensure the Kick handlers implement vidinfo.Handler at compile time.
var (
	_ vidinfo.Handler = (*KickVideo)(nil)
	_ vidinfo.Handler = (*KickVideoAuth)(nil)
)

// KickVideo extracts Kick VODs through the public v1 API.
type KickVideo struct {
	fetcher  vidinfo.Fetcher
	resolver vidinfo.ManifestResolver
}

// NewKickVideo creates a KickVideo handler.
func NewKickVideo(fetcher vidinfo.Fetcher, resolver vidinfo.ManifestResolver) *KickVideo {
	return &KickVideo{fetcher: fetcher, resolver: resolver}
}

func (h *KickVideo) Name() string { return NameKickVideo }

func (h *KickVideo) Match(locator string) (string, bool) {
	return matchID(kickVideoPattern, locator)
}

// Extract fetches https://kick.com/api/v1/video/{id}. A refusal from the
// API is reported as EAUTH.
func (h *KickVideo) Extract(ctx context.Context, id string) (*vidinfo.MediaInfo, error) {
	data, err := h.fetcher.GetJSON(ctx, kickAPI+"/v1/video/"+url.PathEscape(id), jsonHeaders())
	if err != nil {
		return nil, fetchFailed(err)
	}
	return kickVideoInfo(ctx, h.resolver, id, data)
}

// KickVideoAuth extracts Kick VODs through the v2 API, which requires the
// session_token cookie of a logged-in kick.com session.
type KickVideoAuth struct {
	fetcher     vidinfo.Fetcher
	resolver    vidinfo.ManifestResolver
	credentials vidinfo.CredentialStore
}

// NewKickVideoAuth creates a KickVideoAuth handler. A nil credential store
// behaves like one without cookies.
func NewKickVideoAuth(fetcher vidinfo.Fetcher, resolver vidinfo.ManifestResolver, credentials vidinfo.CredentialStore) *KickVideoAuth {
	return &KickVideoAuth{fetcher: fetcher, resolver: resolver, credentials: credentials}
}

func (h *KickVideoAuth) Name() string { return NameKickVideoAuth }

func (h *KickVideoAuth) Match(locator string) (string, bool) {
	return matchID(kickVideoPattern, locator)
}

// Extract fetches https://kick.com/api/v2/video/{id} with the session token
// as bearer credentials. Returns EAUTH without a request when no token is
// stored.
func (h *KickVideoAuth) Extract(ctx context.Context, id string) (*vidinfo.MediaInfo, error) {
	token, ok := h.sessionToken()
	if !ok {
		return nil, &vidinfo.Error{
			Code:    vidinfo.EAUTH,
			Message: "kick.com session_token cookie required",
			Stage:   vidinfo.StageFetch,
		}
	}

	headers := jsonHeaders()
	headers["Authorization"] = "Bearer " + token

	data, err := h.fetcher.GetJSON(ctx, kickAPI+"/v2/video/"+url.PathEscape(id), headers)
	if err != nil {
		return nil, fetchFailed(err)
	}
	return kickVideoInfo(ctx, h.resolver, id, data)
}

// sessionToken returns the stored token. Browsers store it URL-encoded.
func (h *KickVideoAuth) sessionToken() (string, bool) {
	if h.credentials == nil {
		return "", false
	}
	token, ok := h.credentials.Cookie("kick.com", "session_token")
	if !ok || token == "" {
		return "", false
	}
	if unescaped, err := url.PathUnescape(token); err == nil {
		token = unescaped
	}
	return token, true
}

// kickVideoInfo maps a Kick video payload (v1 and v2 share the shape).
func kickVideoInfo(ctx context.Context, resolver vidinfo.ManifestResolver, id string, data any) (*vidinfo.MediaInfo, error) {
	source, ok := traverse.Value(data, coerce.URL, traverse.P("source"))
	if !ok {
		return nil, &vidinfo.Error{
			Code:    vidinfo.EEXTRACT,
			Message: "no stream source for video " + id,
			Stage:   vidinfo.StageParse,
		}
	}

	formats, err := resolver.ResolveFormats(ctx, source, id, "hls")
	if err != nil {
		return nil, err
	}
	if len(formats) == 0 {
		return nil, noFormats("video", id)
	}

	return &vidinfo.MediaInfo{
		ID:      id,
		Formats: withContainer(formats, "mp4"),
		Title: traverse.Ptr(data, coerce.String,
			traverse.P("livestream", "session_title"),
			traverse.P("livestream", "slug")),
		Uploader: traverse.Ptr(data, coerce.String,
			traverse.P("livestream", "channel", "user", "username")),
		UploaderID: traverse.Ptr(data, coerce.String,
			traverse.P("livestream", "channel", "user", "id"),
			traverse.P("livestream", "channel", "user_id")),
		Channel: traverse.Ptr(data, coerce.String,
			traverse.P("livestream", "channel", "slug")),
		ChannelID: traverse.Ptr(data, coerce.String,
			traverse.P("livestream", "channel", "id"),
			traverse.P("livestream", "channel_id")),
		Thumbnail: traverse.Ptr(data, coerce.URL,
			traverse.P("livestream", "thumbnail"),
			traverse.P("livestream", "thumbnail", "url")),
		Duration: traverse.Ptr(data, coerce.Scale(1000),
			traverse.P("livestream", "duration")),
		Timestamp: traverse.Ptr(data, coerce.Timestamp,
			traverse.P("updated_at"),
			traverse.P("created_at")),
		ReleaseTimestamp: traverse.Ptr(data, coerce.Timestamp,
			traverse.P("created_at")),
		ViewCount: traverse.Ptr(data, coerce.Int,
			traverse.P("views"),
			traverse.P("view_count")),
		IsLive: traverse.Ptr(data, coerce.Bool,
			traverse.P("livestream", "is_live")),
		Categories: coerce.Set(traverse.Values(data, coerce.String,
			traverse.P("categories", traverse.All, "name"),
			traverse.P("livestream", "categories", traverse.All, "name"))),
		Tags: coerce.Set(traverse.Values(data, coerce.String,
			traverse.P("categories", traverse.All, "tags", traverse.All),
			traverse.P("livestream", "categories", traverse.All, "tags", traverse.All))),
	}, nil
}
