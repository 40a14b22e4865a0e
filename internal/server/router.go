package server

import (
	"net/http"

	"github.com/charmbracelet/log"
)

// LoopbackRouter routes requests on the short-lived localhost server that
// receives the identity provider's authorization redirect. It wraps
// [http.ServeMux] and applies registered [Middleware] to every handler.
type LoopbackRouter struct {
	mux         *http.ServeMux
	middlewares []Middleware
}

// NewLoopbackRouter creates an empty router.
func NewLoopbackRouter() *LoopbackRouter {
	return &LoopbackRouter{mux: http.NewServeMux()}
}

// Use adds middleware applied to every handler registered after the call.
func (r *LoopbackRouter) Use(middleware ...Middleware) {
	r.middlewares = append(r.middlewares, middleware...)
}

// Handle registers a handler for a method-qualified pattern like "GET /callback".
func (r *LoopbackRouter) Handle(pattern string, handler http.Handler) {
	r.mux.Handle(pattern, r.apply(handler))
}

// Mount registers a [Handler] on every route it declares.
func (r *LoopbackRouter) Mount(handler Handler) {
	wrapped := r.apply(handler)
	for _, route := range handler.Routes() {
		r.mux.Handle(route, wrapped)
	}
}

// ServeHTTP implements [http.Handler] for the entire router.
func (r *LoopbackRouter) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// apply wraps a handler in reverse registration order so the first middleware
// added is the outermost.
func (r *LoopbackRouter) apply(handler http.Handler) http.Handler {
	for i := len(r.middlewares) - 1; i >= 0; i-- {
		handler = r.middlewares[i](handler)
	}
	return handler
}

// RequestLogging logs every request the loopback server receives. The sign-in
// flow runs without other output, so the log is the only trace of a provider
// redirect arriving.
func RequestLogging(logger *log.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			logger.Debug("loopback request", "method", req.Method, "path", req.URL.Path)
			next.ServeHTTP(w, req)
		})
	}
}
