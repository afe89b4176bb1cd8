// Package site implements vidinfo.Handler for the supported sites.
//
// Handlers map raw site payloads onto vidinfo.MediaInfo using the
// traverse and coerce packages. They hold no state beyond the
// collaborators injected at construction, so one handler value may serve
// concurrent extractions.
package site

import (
	"errors"
	"net/http"
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/fwojciec/vidinfo"
)

// Handler names.
const (
	NameKickClip      = "kick:clip"
	NameKickVideo     = "kick:video"
	NameKickVideoAuth = "kick:video:auth"
	NameDzenEmbed     = "dzen:embed"
)

// Dependencies holds the collaborators shared by the default handlers.
type Dependencies struct {
	// Fetcher retrieves JSON APIs.
	Fetcher vidinfo.Fetcher
	// PageFetcher retrieves HTML pages. Defaults to Fetcher.
	PageFetcher vidinfo.Fetcher
	Resolver    vidinfo.ManifestResolver
	Credentials vidinfo.CredentialStore
}

// DefaultHandlers returns the standard handlers in routing order: the
// public Kick handlers come before the authenticated one so that the
// authenticated endpoint is only used when the public API refuses.
func DefaultHandlers(deps Dependencies) []vidinfo.Handler {
	pages := deps.PageFetcher
	if pages == nil {
		pages = deps.Fetcher
	}
	return []vidinfo.Handler{
		NewKickClip(deps.Fetcher, deps.Resolver),
		NewKickVideo(deps.Fetcher, deps.Resolver),
		NewKickVideoAuth(deps.Fetcher, deps.Resolver, deps.Credentials),
		NewDzenEmbed(pages, deps.Resolver),
	}
}

// matchID returns the "id" capture of re in locator.
func matchID(re *regexp.Regexp, locator string) (string, bool) {
	m := re.FindStringSubmatch(strings.TrimSpace(locator))
	if m == nil {
		return "", false
	}
	id := m[re.SubexpIndex("id")]
	return id, id != ""
}

func jsonHeaders() map[string]string {
	return map[string]string{"Accept": "application/json"}
}

// fetchFailed tags a fetch failure with the fetch stage. Refusals by the
// API (401, 403) mean credentials are required.
func fetchFailed(err error) error {
	var fe *vidinfo.FetchError
	if errors.As(err, &fe) && (fe.Status == http.StatusUnauthorized || fe.Status == http.StatusForbidden) {
		return &vidinfo.Error{
			Code:    vidinfo.EAUTH,
			Message: "authentication required",
			Stage:   vidinfo.StageFetch,
			Err:     err,
		}
	}
	return vidinfo.WithContext(err, "", vidinfo.StageFetch)
}

// noFormats reports a resource without any playable format.
func noFormats(kind, id string) error {
	return &vidinfo.Error{
		Code:    vidinfo.EEXTRACT,
		Message: "no formats found for " + kind + " " + id,
		Stage:   vidinfo.StageAssemble,
	}
}

// hasExt reports whether the URL path ends in ext.
func hasExt(rawURL, ext string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return strings.EqualFold(path.Ext(u.Path), ext)
}

func withContainer(formats []vidinfo.Format, container string) []vidinfo.Format {
	for i := range formats {
		if formats[i].Container == nil {
			c := container
			formats[i].Container = &c
		}
	}
	return formats
}
