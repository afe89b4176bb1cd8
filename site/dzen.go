package site

import (
	"context"
	"regexp"

	"github.com/fwojciec/vidinfo"
	"github.com/fwojciec/vidinfo/coerce"
	"github.com/fwojciec/vidinfo/goquery"
	"github.com/fwojciec/vidinfo/traverse"
)

const dzenPlayerInit = "Dzen.player.init"

var dzenEmbedPattern = regexp.MustCompile(`^(?i:https?://(?:www\.)?dzen\.ru)/embed/(?P<id>[a-zA-Z0-9]+)`)

// Ensure DzenEmbed implements vidinfo.Handler at compile time.
var _ vidinfo.Handler = (*DzenEmbed)(nil)

// DzenEmbed extracts videos from Dzen embed pages. The player config is
// the JSON argument of the Dzen.player.init call in the page scripts.
type DzenEmbed struct {
	fetcher  vidinfo.Fetcher
	resolver vidinfo.ManifestResolver
}

// NewDzenEmbed creates a DzenEmbed handler.
func NewDzenEmbed(fetcher vidinfo.Fetcher, resolver vidinfo.ManifestResolver) *DzenEmbed {
	return &DzenEmbed{fetcher: fetcher, resolver: resolver}
}

func (h *DzenEmbed) Name() string { return NameDzenEmbed }

func (h *DzenEmbed) Match(locator string) (string, bool) {
	return matchID(dzenEmbedPattern, locator)
}

// Extract fetches https://dzen.ru/embed/{id} and resolves the first HLS
// stream of the player config.
func (h *DzenEmbed) Extract(ctx context.Context, id string) (*vidinfo.MediaInfo, error) {
	body, err := h.fetcher.Get(ctx, "https://dzen.ru/embed/"+id, nil)
	if err != nil {
		return nil, fetchFailed(err)
	}

	page, err := goquery.ParsePage(body)
	if err != nil {
		return nil, err
	}

	config, ok := page.ScriptJSON(dzenPlayerInit)
	if !ok {
		return nil, &vidinfo.Error{
			Code:    vidinfo.EEXTRACT,
			Message: "player config not found for embed " + id,
			Stage:   vidinfo.StageParse,
		}
	}

	var manifest string
	for _, u := range traverse.Values(config, coerce.URL, traverse.P("data", "content", "streams", traverse.All, "url")) {
		if hasExt(u, ".m3u8") {
			manifest = u
			break
		}
	}
	if manifest == "" {
		return nil, &vidinfo.Error{
			Code:    vidinfo.EEXTRACT,
			Message: "no HLS stream for embed " + id,
			Stage:   vidinfo.StageParse,
		}
	}

	formats, err := h.resolver.ResolveFormats(ctx, manifest, id, "hls")
	if err != nil {
		return nil, err
	}
	if len(formats) == 0 {
		return nil, noFormats("embed", id)
	}

	info := &vidinfo.MediaInfo{
		ID:      id,
		Formats: formats,
		Title: traverse.Ptr(config, coerce.String,
			traverse.P("data", "content", "streams", 0, "title"),
			traverse.P("data", "content", "title")),
	}
	if info.Title == nil {
		if title, ok := page.Meta("og:title"); ok {
			info.Title = &title
		} else if title, ok := page.Title(); ok {
			info.Title = &title
		}
	}
	if thumb, ok := page.Meta("og:image"); ok {
		info.Thumbnail = coerce.Opt(coerce.URL, thumb)
	}
	if desc, ok := page.Meta("og:description"); ok {
		info.Description = &desc
	}
	return info, nil
}
