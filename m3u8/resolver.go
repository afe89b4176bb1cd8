// Package m3u8 resolves HLS manifests into vidinfo format lists using
// github.com/grafov/m3u8 for playlist decoding.
package m3u8

import (
	"context"

	"github.com/fwojciec/vidinfo"
)

// Ensure Resolver implements vidinfo.ManifestResolver at compile time.
var _ vidinfo.ManifestResolver = (*Resolver)(nil)

// Resolver fetches HLS manifests and parses them into formats.
type Resolver struct {
	fetcher vidinfo.Fetcher
	headers map[string]string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithHeaders sets extra request headers sent with manifest requests.
func WithHeaders(headers map[string]string) Option {
	return func(r *Resolver) {
		r.headers = headers
	}
}

// NewResolver creates a Resolver that downloads manifests with fetcher.
func NewResolver(fetcher vidinfo.Fetcher, opts ...Option) *Resolver {
	r := &Resolver{fetcher: fetcher}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ResolveFormats fetches the manifest and returns its variants as formats.
func (r *Resolver) ResolveFormats(ctx context.Context, manifestURL, id, formatIDHint string) ([]vidinfo.Format, error) {
	if manifestURL == "" {
		return nil, &vidinfo.Error{Code: vidinfo.EMANIFEST, Message: "manifest URL required for " + id, Stage: vidinfo.StageManifest}
	}

	body, err := r.fetcher.Get(ctx, manifestURL, r.headers)
	if err != nil {
		return nil, &vidinfo.Error{
			Code:    vidinfo.EMANIFEST,
			Message: "manifest unreachable for " + id,
			Stage:   vidinfo.StageManifest,
			Err:     err,
		}
	}

	formats, err := ParseFormats(body, manifestURL, formatIDHint)
	if err != nil {
		return nil, vidinfo.WithContext(err, "", vidinfo.StageManifest)
	}
	return formats, nil
}
