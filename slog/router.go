package slog

import (
	"log/slog"

	"github.com/fwojciec/vidinfo"
)

// Ensure LoggingRouter implements vidinfo.Router.
var _ vidinfo.Router = (*LoggingRouter)(nil)

// LoggingRouter wraps a Router and logs routing decisions.
type LoggingRouter struct {
	next   vidinfo.Router
	logger *slog.Logger
}

// NewLoggingRouter creates a new LoggingRouter.
func NewLoggingRouter(next vidinfo.Router, logger *slog.Logger) *LoggingRouter {
	return &LoggingRouter{next: next, logger: logger}
}

// Route logs the selected handler and delegates to the wrapped router.
func (r *LoggingRouter) Route(locator string) (route vidinfo.Route, err error) {
	route, err = r.next.Route(locator)
	handler := "(none)"
	if route.Handler != nil {
		handler = route.Handler.Name()
	}
	r.logger.Debug("route",
		"locator", locator,
		"handler", handler,
		"id", route.ID,
		"err", err,
	)
	return route, err
}

// Routes logs every matching handler and delegates to the wrapped router.
func (r *LoggingRouter) Routes(locator string) []vidinfo.Route {
	routes := r.next.Routes(locator)
	names := make([]string, len(routes))
	for i, route := range routes {
		names[i] = route.Handler.Name()
	}
	r.logger.Debug("routes",
		"locator", locator,
		"handlers", names,
	)
	return routes
}

// Handlers delegates to the wrapped router.
func (r *LoggingRouter) Handlers() []vidinfo.Handler {
	return r.next.Handlers()
}
