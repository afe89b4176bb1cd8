package site_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/vidinfo"
	"github.com/fwojciec/vidinfo/mock"
	"github.com/fwojciec/vidinfo/site"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const kickVideoJSON = `{
  "id": 1234,
  "source": "https://stream.kick.com/ivs/v1/master.m3u8",
  "created_at": "2024-01-28T04:37:52.000000Z",
  "updated_at": "2024-01-28 04:37:52",
  "views": 27511,
  "categories": [
    {"name": "Just Chatting", "tags": ["IRL", "Chatting"]},
    {"name": "Just Chatting", "tags": ["IRL"]}
  ],
  "livestream": {
    "session_title": "2",
    "slug": "e335c041-2",
    "is_live": false,
    "duration": 27228000,
    "thumbnail": "https://images.kick.com/video_thumbnails/abc/720.jpg",
    "channel": {
      "id": 676,
      "slug": "xqc",
      "user": {"id": 668, "username": " xQc "}
    }
  }
}`

const kickVideoID = "e335c041-acca-4c5f-9c4e-1a6e4643462c"

func TestKickVideo_Match(t *testing.T) {
	t.Parallel()

	h := site.NewKickVideo(nil, nil)

	tests := []struct {
		locator string
		id      string
		ok      bool
	}{
		{"https://kick.com/video/" + kickVideoID, kickVideoID, true},
		{"https://www.kick.com/video/" + kickVideoID, kickVideoID, true},
		{"http://kick.com/video/abc-123?t=10", "abc-123", true},
		{"HTTPS://WWW.Kick.COM/video/abc-123", "abc-123", true},
		{"https://kick.com/VIDEO/abc-123", "", false},
		{"https://kick.com/xqc", "", false},
		{"https://kick.com/xqc?clip=clip_01H811MXG4FBR62FXPE1AXABDH", "", false},
		{"https://notkick.com/video/abc", "", false},
		{"https://kick.com/video/", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.locator, func(t *testing.T) {
			t.Parallel()

			id, ok := h.Match(tt.locator)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.id, id)
		})
	}
}

func TestKickVideo_Extract(t *testing.T) {
	t.Parallel()

	t.Run("maps the API payload", func(t *testing.T) {
		t.Parallel()

		fetcher := newJSONFetcher(t, kickVideoJSON)
		resolver := newResolver(hlsFormats(), nil)
		h := site.NewKickVideo(fetcher, resolver)

		info, err := h.Extract(context.Background(), kickVideoID)
		require.NoError(t, err)

		assert.Equal(t, "https://kick.com/api/v1/video/"+kickVideoID, fetcher.url)
		assert.Equal(t, "application/json", fetcher.headers["Accept"])
		assert.Equal(t, "https://stream.kick.com/ivs/v1/master.m3u8", resolver.manifestURL)
		assert.Equal(t, kickVideoID, resolver.id)
		assert.Equal(t, "hls", resolver.hint)

		assert.Equal(t, kickVideoID, info.ID)
		require.NotNil(t, info.Title)
		assert.Equal(t, "2", *info.Title)
		require.NotNil(t, info.Uploader)
		assert.Equal(t, "xQc", *info.Uploader)
		require.NotNil(t, info.UploaderID)
		assert.Equal(t, "668", *info.UploaderID)
		require.NotNil(t, info.Channel)
		assert.Equal(t, "xqc", *info.Channel)
		require.NotNil(t, info.ChannelID)
		assert.Equal(t, "676", *info.ChannelID)
		require.NotNil(t, info.Thumbnail)
		assert.Equal(t, "https://images.kick.com/video_thumbnails/abc/720.jpg", *info.Thumbnail)
		require.NotNil(t, info.Duration)
		assert.InDelta(t, 27228.0, *info.Duration, 0.0001)
		require.NotNil(t, info.Timestamp)
		assert.Equal(t, int64(1706416672), *info.Timestamp)
		require.NotNil(t, info.ReleaseTimestamp)
		assert.Equal(t, int64(1706416672), *info.ReleaseTimestamp)
		require.NotNil(t, info.ViewCount)
		assert.Equal(t, int64(27511), *info.ViewCount)
		require.NotNil(t, info.IsLive)
		assert.False(t, *info.IsLive)
		assert.Equal(t, []string{"Just Chatting"}, info.Categories)
		assert.Equal(t, []string{"IRL", "Chatting"}, info.Tags)

		require.Len(t, info.Formats, 2)
		for _, f := range info.Formats {
			require.NotNil(t, f.Container)
			assert.Equal(t, "mp4", *f.Container)
		}
		assert.Equal(t, "1080p60", info.Formats[0].FormatID)
		require.NoError(t, info.Validate())
	})

	t.Run("title falls back to slug", func(t *testing.T) {
		t.Parallel()

		fetcher := newJSONFetcher(t, `{"source": "https://stream.kick.com/master.m3u8", "livestream": {"slug": "x"}}`)
		h := site.NewKickVideo(fetcher, newResolver(hlsFormats(), nil))

		info, err := h.Extract(context.Background(), "abc")
		require.NoError(t, err)
		require.NotNil(t, info.Title)
		assert.Equal(t, "x", *info.Title)
	})

	t.Run("session title wins over slug", func(t *testing.T) {
		t.Parallel()

		fetcher := newJSONFetcher(t, `{"source": "https://stream.kick.com/master.m3u8", "livestream": {"session_title": "2", "slug": "x"}}`)
		h := site.NewKickVideo(fetcher, newResolver(hlsFormats(), nil))

		info, err := h.Extract(context.Background(), "abc")
		require.NoError(t, err)
		require.NotNil(t, info.Title)
		assert.Equal(t, "2", *info.Title)
	})

	t.Run("missing optional fields stay nil", func(t *testing.T) {
		t.Parallel()

		fetcher := newJSONFetcher(t, `{"source": "https://stream.kick.com/master.m3u8", "livestream": {"thumbnail": null, "duration": "n/a"}}`)
		h := site.NewKickVideo(fetcher, newResolver(hlsFormats(), nil))

		info, err := h.Extract(context.Background(), "abc")
		require.NoError(t, err)
		assert.Nil(t, info.Thumbnail)
		assert.Nil(t, info.Duration)
		assert.Nil(t, info.Title)
		assert.Nil(t, info.Uploader)
		assert.Nil(t, info.Timestamp)
		assert.Nil(t, info.ViewCount)
		assert.Nil(t, info.IsLive)
		assert.Nil(t, info.Categories)
		assert.Nil(t, info.Tags)
	})

	t.Run("thumbnail object is read through its url", func(t *testing.T) {
		t.Parallel()

		fetcher := newJSONFetcher(t, `{"source": "https://stream.kick.com/master.m3u8", "livestream": {"thumbnail": {"url": "https://images.kick.com/t.jpg"}}}`)
		h := site.NewKickVideo(fetcher, newResolver(hlsFormats(), nil))

		info, err := h.Extract(context.Background(), "abc")
		require.NoError(t, err)
		require.NotNil(t, info.Thumbnail)
		assert.Equal(t, "https://images.kick.com/t.jpg", *info.Thumbnail)
	})

	t.Run("missing source is an extraction error", func(t *testing.T) {
		t.Parallel()

		fetcher := newJSONFetcher(t, `{"livestream": {"session_title": "2"}}`)
		h := site.NewKickVideo(fetcher, newResolver(hlsFormats(), nil))

		_, err := h.Extract(context.Background(), "abc")
		assert.Equal(t, vidinfo.EEXTRACT, vidinfo.ErrorCode(err))
	})

	t.Run("empty manifest is an extraction error", func(t *testing.T) {
		t.Parallel()

		fetcher := newJSONFetcher(t, kickVideoJSON)
		h := site.NewKickVideo(fetcher, newResolver([]vidinfo.Format{}, nil))

		_, err := h.Extract(context.Background(), "abc")
		assert.Equal(t, vidinfo.EEXTRACT, vidinfo.ErrorCode(err))
	})

	t.Run("manifest errors propagate", func(t *testing.T) {
		t.Parallel()

		fetcher := newJSONFetcher(t, kickVideoJSON)
		h := site.NewKickVideo(fetcher, newResolver(nil, vidinfo.Errorf(vidinfo.EMANIFEST, "unreachable")))

		_, err := h.Extract(context.Background(), "abc")
		assert.Equal(t, vidinfo.EMANIFEST, vidinfo.ErrorCode(err))
	})

	t.Run("forbidden maps to auth required", func(t *testing.T) {
		t.Parallel()

		h := site.NewKickVideo(failingFetcher(&vidinfo.FetchError{Status: 403, URL: "https://kick.com/api/v1/video/abc"}), newResolver(nil, nil))

		_, err := h.Extract(context.Background(), "abc")
		require.Error(t, err)
		assert.Equal(t, vidinfo.EAUTH, vidinfo.ErrorCode(err))
		var fe *vidinfo.FetchError
		assert.True(t, errors.As(err, &fe))
	})

	t.Run("server errors stay fetch errors", func(t *testing.T) {
		t.Parallel()

		h := site.NewKickVideo(failingFetcher(&vidinfo.FetchError{Status: 500}), newResolver(nil, nil))

		_, err := h.Extract(context.Background(), "abc")
		assert.Equal(t, vidinfo.EFETCH, vidinfo.ErrorCode(err))
		var appErr *vidinfo.Error
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, vidinfo.StageFetch, appErr.Stage)
	})
}

func TestKickVideoAuth_Extract(t *testing.T) {
	t.Parallel()

	t.Run("requires the session cookie", func(t *testing.T) {
		t.Parallel()

		fetcher := newJSONFetcher(t, kickVideoJSON)
		creds := &mock.CredentialStore{CookieFn: func(string, string) (string, bool) { return "", false }}
		h := site.NewKickVideoAuth(fetcher, newResolver(hlsFormats(), nil), creds)

		_, err := h.Extract(context.Background(), "abc")
		assert.Equal(t, vidinfo.EAUTH, vidinfo.ErrorCode(err))
		assert.Equal(t, 0, fetcher.calls)
	})

	t.Run("nil credential store requires auth", func(t *testing.T) {
		t.Parallel()

		h := site.NewKickVideoAuth(newJSONFetcher(t, kickVideoJSON), newResolver(hlsFormats(), nil), nil)

		_, err := h.Extract(context.Background(), "abc")
		assert.Equal(t, vidinfo.EAUTH, vidinfo.ErrorCode(err))
	})

	t.Run("sends the bearer token to the v2 API", func(t *testing.T) {
		t.Parallel()

		var gotDomain, gotName string
		fetcher := newJSONFetcher(t, kickVideoJSON)
		creds := &mock.CredentialStore{CookieFn: func(domain, name string) (string, bool) {
			gotDomain, gotName = domain, name
			return "123%7Csecret", true
		}}
		h := site.NewKickVideoAuth(fetcher, newResolver(hlsFormats(), nil), creds)

		info, err := h.Extract(context.Background(), kickVideoID)
		require.NoError(t, err)

		assert.Equal(t, "kick.com", gotDomain)
		assert.Equal(t, "session_token", gotName)
		assert.Equal(t, "https://kick.com/api/v2/video/"+kickVideoID, fetcher.url)
		assert.Equal(t, "Bearer 123|secret", fetcher.headers["Authorization"])
		require.NotNil(t, info.Title)
		assert.Equal(t, "2", *info.Title)
	})

	t.Run("plus signs in the token are kept", func(t *testing.T) {
		t.Parallel()

		fetcher := newJSONFetcher(t, kickVideoJSON)
		creds := &mock.CredentialStore{CookieFn: func(_, _ string) (string, bool) {
			return "123%7Cab+cd/ef==", true
		}}
		h := site.NewKickVideoAuth(fetcher, newResolver(hlsFormats(), nil), creds)

		_, err := h.Extract(context.Background(), kickVideoID)
		require.NoError(t, err)

		assert.Equal(t, "Bearer 123|ab+cd/ef==", fetcher.headers["Authorization"])
	})

	t.Run("same locators as the public handler", func(t *testing.T) {
		t.Parallel()

		h := site.NewKickVideoAuth(nil, nil, nil)
		id, ok := h.Match("https://kick.com/video/" + kickVideoID)
		assert.True(t, ok)
		assert.Equal(t, kickVideoID, id)
		assert.Equal(t, site.NameKickVideoAuth, h.Name())
	})
}
