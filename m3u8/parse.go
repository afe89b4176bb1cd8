package m3u8

import (
	"bytes"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/fwojciec/vidinfo"
	"github.com/grafov/m3u8"
)

// candidate is a manifest entry before deduplication and ID assignment.
type candidate struct {
	uri     string
	name    string
	kind    vidinfo.MediaKind
	quality float64 // kbit/s, 0 when absent
	width   int
	height  int
	fps     float64
	codecs  string
}

// ParseFormats parses an HLS manifest fetched from manifestURL.
//
// Master playlists yield one format per variant stream followed by one per
// audio/video rendition that has its own URI. Media playlists yield a single
// format pointing at manifestURL. Formats are deduplicated by resolved URL
// and, when any of them declares a bandwidth, stably sorted by descending
// bandwidth with undeclared ones last.
func ParseFormats(body []byte, manifestURL, formatIDHint string) ([]vidinfo.Format, error) {
	base, err := url.Parse(manifestURL)
	if err != nil || !base.IsAbs() {
		return nil, vidinfo.Errorf(vidinfo.EMANIFEST, "invalid manifest URL %q", manifestURL)
	}

	trimmed := bytes.TrimSpace(body)
	if !bytes.HasPrefix(trimmed, []byte("#EXTM3U")) {
		return nil, vidinfo.Errorf(vidinfo.EMANIFEST, "not an HLS playlist: %s", manifestURL)
	}
	if !hasPlaylistContent(trimmed) {
		return []vidinfo.Format{}, nil
	}

	playlist, listType, err := m3u8.DecodeFrom(bytes.NewReader(trimmed), false)
	if err != nil {
		return nil, &vidinfo.Error{Code: vidinfo.EMANIFEST, Message: "unparsable playlist " + manifestURL, Err: err}
	}

	var candidates []candidate
	switch listType {
	case m3u8.MASTER:
		master, ok := playlist.(*m3u8.MasterPlaylist)
		if !ok {
			return nil, vidinfo.Errorf(vidinfo.EMANIFEST, "unexpected master playlist type %T", playlist)
		}
		candidates = masterCandidates(master)
	case m3u8.MEDIA:
		candidates = []candidate{{uri: manifestURL, kind: vidinfo.MediaKindMuxed}}
	default:
		return nil, vidinfo.Errorf(vidinfo.EMANIFEST, "unknown playlist type in %s", manifestURL)
	}

	formats := buildFormats(base, candidates, formatIDHint)
	sortByQuality(formats)
	return formats, nil
}

// hasPlaylistContent reports whether the playlist has any variant, rendition
// or segment tags. A bare header is an empty manifest.
func hasPlaylistContent(body []byte) bool {
	for _, tag := range []string{"#EXT-X-STREAM-INF", "#EXT-X-MEDIA:", "#EXTINF", "#EXT-X-TARGETDURATION"} {
		if bytes.Contains(body, []byte(tag)) {
			return true
		}
	}
	return false
}

func masterCandidates(master *m3u8.MasterPlaylist) []candidate {
	var variants, renditions []candidate
	for _, v := range master.Variants {
		if v == nil || v.Iframe || v.URI == "" {
			continue
		}
		c := candidate{
			uri:    v.URI,
			name:   v.Name,
			kind:   codecKind(v.Codecs),
			codecs: v.Codecs,
			fps:    v.FrameRate,
		}
		bandwidth := v.Bandwidth
		if bandwidth == 0 {
			bandwidth = v.AverageBandwidth
		}
		c.quality = float64(bandwidth) / 1000
		c.width, c.height = parseResolution(v.Resolution)
		if c.kind == vidinfo.MediaKindMuxed && c.codecs == "" && v.Resolution == "" && v.Audio == "" && isAudioOnlyName(v.Name) {
			c.kind = vidinfo.MediaKindAudio
		}
		variants = append(variants, c)

		for _, alt := range v.Alternatives {
			if alt == nil || alt.URI == "" {
				continue
			}
			switch strings.ToUpper(alt.Type) {
			case "AUDIO":
				renditions = append(renditions, candidate{uri: alt.URI, name: alt.Name, kind: vidinfo.MediaKindAudio})
			case "VIDEO":
				renditions = append(renditions, candidate{uri: alt.URI, name: alt.Name, kind: vidinfo.MediaKindVideo})
			}
		}
	}
	return append(variants, renditions...)
}

func buildFormats(base *url.URL, candidates []candidate, hint string) []vidinfo.Format {
	seenURL := make(map[string]bool, len(candidates))
	usedID := make(map[string]bool, len(candidates))
	formats := make([]vidinfo.Format, 0, len(candidates))

	for _, c := range candidates {
		ref, err := url.Parse(strings.TrimSpace(c.uri))
		if err != nil {
			continue
		}
		resolved := base.ResolveReference(ref).String()
		if seenURL[resolved] {
			continue
		}
		seenURL[resolved] = true

		f := vidinfo.Format{
			URL:      resolved,
			FormatID: assignID(usedID, sanitizeID(c.name), hint, len(formats)),
			Protocol: vidinfo.ProtocolHLS,
			Kind:     c.kind,
		}
		if c.quality > 0 {
			q := c.quality
			f.Quality = &q
		}
		if c.width > 0 && c.height > 0 {
			w, h := c.width, c.height
			f.Width, f.Height = &w, &h
		}
		if c.fps > 0 {
			fps := c.fps
			f.FPS = &fps
		}
		if c.codecs != "" {
			codecs := c.codecs
			f.Codecs = &codecs
		}
		formats = append(formats, f)
	}
	return formats
}

// assignID returns the native ID when present and unused, otherwise
// "{hint}-{index}", suffixed until unique.
func assignID(used map[string]bool, native, hint string, index int) string {
	id := native
	if id == "" || used[id] {
		id = strconv.Itoa(index)
		if hint != "" {
			id = hint + "-" + id
		}
	}
	for base, n := id, 2; used[id]; n++ {
		id = base + "-" + strconv.Itoa(n)
	}
	used[id] = true
	return id
}

func sanitizeID(name string) string {
	name = strings.TrimSpace(name)
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		}
		return '_'
	}, name)
}

func sortByQuality(formats []vidinfo.Format) {
	anyQuality := false
	for _, f := range formats {
		if f.Quality != nil {
			anyQuality = true
			break
		}
	}
	if !anyQuality {
		return
	}
	sort.SliceStable(formats, func(i, j int) bool {
		qi, qj := formats[i].Quality, formats[j].Quality
		switch {
		case qi != nil && qj == nil:
			return true
		case qi != nil && qj != nil:
			return *qi > *qj
		}
		return false
	})
}

func parseResolution(s string) (int, int) {
	w, h, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0
	}
	width, err1 := strconv.Atoi(w)
	height, err2 := strconv.Atoi(h)
	if err1 != nil || err2 != nil {
		return 0, 0
	}
	return width, height
}

// codecKind classifies a CODECS attribute. Unknown or mixed codec lists are
// reported as muxed.
func codecKind(codecs string) vidinfo.MediaKind {
	if codecs == "" {
		return vidinfo.MediaKindMuxed
	}
	var audio, video bool
	for _, c := range strings.Split(codecs, ",") {
		c = strings.ToLower(strings.TrimSpace(c))
		switch {
		case strings.HasPrefix(c, "mp4a"), strings.HasPrefix(c, "ac-3"), strings.HasPrefix(c, "ec-3"),
			strings.HasPrefix(c, "opus"), strings.HasPrefix(c, "flac"):
			audio = true
		case strings.HasPrefix(c, "avc"), strings.HasPrefix(c, "hvc"), strings.HasPrefix(c, "hev"),
			strings.HasPrefix(c, "vp09"), strings.HasPrefix(c, "vp9"), strings.HasPrefix(c, "av01"):
			video = true
		default:
			return vidinfo.MediaKindMuxed
		}
	}
	switch {
	case audio && !video:
		return vidinfo.MediaKindAudio
	case video && !audio:
		return vidinfo.MediaKindVideo
	}
	return vidinfo.MediaKindMuxed
}

func isAudioOnlyName(name string) bool {
	return strings.Contains(strings.ToLower(name), "audio")
}
