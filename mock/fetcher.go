package mock

import (
	"context"

	"github.com/fwojciec/vidinfo"
)

var _ vidinfo.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of vidinfo.Fetcher.
type Fetcher struct {
	GetFn     func(ctx context.Context, url string, headers map[string]string) ([]byte, error)
	GetJSONFn func(ctx context.Context, url string, headers map[string]string) (any, error)
	CloseFn   func() error
}

func (f *Fetcher) Get(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	return f.GetFn(ctx, url, headers)
}

func (f *Fetcher) GetJSON(ctx context.Context, url string, headers map[string]string) (any, error) {
	return f.GetJSONFn(ctx, url, headers)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ vidinfo.CredentialStore = (*CredentialStore)(nil)

// CredentialStore is a mock implementation of vidinfo.CredentialStore.
type CredentialStore struct {
	CookieFn func(domain, name string) (string, bool)
}

func (s *CredentialStore) Cookie(domain, name string) (string, bool) {
	return s.CookieFn(domain, name)
}

var _ vidinfo.ManifestResolver = (*ManifestResolver)(nil)

// ManifestResolver is a mock implementation of vidinfo.ManifestResolver.
type ManifestResolver struct {
	ResolveFormatsFn func(ctx context.Context, manifestURL, id, formatIDHint string) ([]vidinfo.Format, error)
}

func (r *ManifestResolver) ResolveFormats(ctx context.Context, manifestURL, id, formatIDHint string) ([]vidinfo.Format, error) {
	return r.ResolveFormatsFn(ctx, manifestURL, id, formatIDHint)
}
