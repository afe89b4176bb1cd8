// Package extract routes locators to site handlers and runs extractions.
package extract

import (
	"github.com/fwojciec/vidinfo"
)

// Ensure Registry implements vidinfo.Router at compile time.
var _ vidinfo.Router = (*Registry)(nil)

// Registry holds handlers in registration order. Register all handlers
// before routing; Registry is safe for concurrent routing afterwards.
type Registry struct {
	handlers []vidinfo.Handler
}

// NewRegistry creates a Registry with the given handlers.
func NewRegistry(handlers ...vidinfo.Handler) *Registry {
	r := &Registry{}
	for _, h := range handlers {
		r.Register(h)
	}
	return r
}

// Register appends a handler. Nil handlers are ignored.
func (r *Registry) Register(h vidinfo.Handler) {
	if h == nil {
		return
	}
	r.handlers = append(r.handlers, h)
}

// Route returns the first handler whose pattern matches the locator.
// Returns EUNSUPPORTED when no handler matches.
func (r *Registry) Route(locator string) (vidinfo.Route, error) {
	for _, h := range r.handlers {
		if id, ok := h.Match(locator); ok {
			return vidinfo.Route{Handler: h, ID: id}, nil
		}
	}
	return vidinfo.Route{}, unsupported(locator)
}

// Routes returns every matching handler in registration order.
func (r *Registry) Routes(locator string) []vidinfo.Route {
	var routes []vidinfo.Route
	for _, h := range r.handlers {
		if id, ok := h.Match(locator); ok {
			routes = append(routes, vidinfo.Route{Handler: h, ID: id})
		}
	}
	return routes
}

// Handlers returns a copy of the registered handlers.
func (r *Registry) Handlers() []vidinfo.Handler {
	out := make([]vidinfo.Handler, len(r.handlers))
	copy(out, r.handlers)
	return out
}

func unsupported(locator string) error {
	return &vidinfo.Error{
		Code:    vidinfo.EUNSUPPORTED,
		Message: "no handler matches " + locator,
		Locator: locator,
		Stage:   vidinfo.StageRoute,
	}
}
