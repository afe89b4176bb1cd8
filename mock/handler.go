package mock

import (
	"context"

	"github.com/fwojciec/vidinfo"
)

var _ vidinfo.Handler = (*Handler)(nil)

// Handler is a mock implementation of vidinfo.Handler.
type Handler struct {
	NameFn    func() string
	MatchFn   func(locator string) (string, bool)
	ExtractFn func(ctx context.Context, id string) (*vidinfo.MediaInfo, error)
}

func (h *Handler) Name() string {
	return h.NameFn()
}

func (h *Handler) Match(locator string) (string, bool) {
	return h.MatchFn(locator)
}

func (h *Handler) Extract(ctx context.Context, id string) (*vidinfo.MediaInfo, error) {
	return h.ExtractFn(ctx, id)
}

var _ vidinfo.Router = (*Router)(nil)

// Router is a mock implementation of vidinfo.Router.
type Router struct {
	RouteFn    func(locator string) (vidinfo.Route, error)
	RoutesFn   func(locator string) []vidinfo.Route
	HandlersFn func() []vidinfo.Handler
}

func (r *Router) Route(locator string) (vidinfo.Route, error) {
	return r.RouteFn(locator)
}

func (r *Router) Routes(locator string) []vidinfo.Route {
	return r.RoutesFn(locator)
}

func (r *Router) Handlers() []vidinfo.Handler {
	return r.HandlersFn()
}
