package vidinfo

import "context"

// Fetcher retrieves remote documents. Implementations own timeout, retry
// and rate limiting policy; callers only pass a context.
type Fetcher interface {
	// Get returns the response body for url. Non-success statuses and
	// network failures are reported as *FetchError.
	Get(ctx context.Context, url string, headers map[string]string) ([]byte, error)

	// GetJSON fetches url and decodes the body into the generic JSON value
	// set: map[string]any, []any, string, json.Number, bool and nil.
	GetJSON(ctx context.Context, url string, headers map[string]string) (any, error)

	// Close releases resources held by the fetcher.
	Close() error
}

// CredentialStore provides read-only access to stored cookies.
type CredentialStore interface {
	// Cookie returns the value of the named cookie for domain.
	Cookie(domain, name string) (string, bool)
}

// ManifestResolver turns a streaming manifest into an ordered format list.
type ManifestResolver interface {
	// ResolveFormats fetches and parses the manifest at manifestURL.
	// formatIDHint prefixes generated format IDs. Returns EMANIFEST when the
	// manifest is unreachable or unparsable. An empty manifest yields an
	// empty list, not an error.
	ResolveFormats(ctx context.Context, manifestURL, id, formatIDHint string) ([]Format, error)
}
