package vidinfo

import "context"

// Handler extracts media from one family of locators (usually one site
// endpoint). Handlers are stateless; collaborators are injected when the
// handler is constructed.
type Handler interface {
	// Name returns the handler identifier (e.g., "kick:video").
	Name() string

	// Match tests the locator against the handler's pattern and returns the
	// captured resource ID. It has no side effects and never touches the
	// network. The ID is non-empty whenever ok is true. Scheme and host
	// compare case-insensitively, so locators equal under bloom.Normalize
	// match the same way.
	Match(locator string) (id string, ok bool)

	// Extract fetches and normalizes the resource identified by id.
	// Missing optional fields are left nil. Returns EEXTRACT when a required
	// field cannot be resolved and EAUTH when credentials are mandatory but
	// unavailable.
	Extract(ctx context.Context, id string) (*MediaInfo, error)
}

// Route pairs a matching handler with the ID it captured.
type Route struct {
	Handler Handler
	ID      string
}

// Router maps locators to handlers.
type Router interface {
	// Route returns the first handler matching the locator in registration
	// order. Returns EUNSUPPORTED when nothing matches.
	Route(locator string) (Route, error)

	// Routes returns every matching handler in registration order.
	Routes(locator string) []Route

	// Handlers returns the registered handlers in registration order.
	Handlers() []Handler
}
