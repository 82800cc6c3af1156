package server

import (
	"net/http"
	"slices"
	"strings"
)

// BasicRouter implements [Router] on top of the method-aware patterns of [http.ServeMux].
type BasicRouter struct {
	mux   *http.ServeMux
	chain []Middleware
	seen  []string
}

// NewBasicRouter returns an empty router.
func NewBasicRouter() *BasicRouter {
	return &BasicRouter{mux: http.NewServeMux()}
}

// Use appends middleware. The chain is captured when a route is registered,
// so call Use before Handle.
func (r *BasicRouter) Use(middleware ...Middleware) {
	r.chain = append(r.chain, middleware...)
}

// Handle registers handler under "METHOD path". A request for path with a
// different method is answered 405 by the mux.
func (r *BasicRouter) Handle(method, path string, handler http.Handler) {
	r.register(strings.ToUpper(method)+" "+path, r.Apply(handler))
}

// HandleFunc is [BasicRouter.Handle] for plain functions.
func (r *BasicRouter) HandleFunc(method, path string, fn http.HandlerFunc) {
	r.Handle(method, path, fn)
}

// Handler mounts h on each pattern from h.Routes().
func (r *BasicRouter) Handler(h Handler) {
	wrapped := r.Apply(h)
	for _, pattern := range h.Routes() {
		r.register(pattern, wrapped)
	}
}

// Patterns lists registered patterns in registration order.
func (r *BasicRouter) Patterns() []string {
	return slices.Clone(r.seen)
}

func (r *BasicRouter) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// Apply wraps handler with the current chain; the first middleware added is outermost.
func (r *BasicRouter) Apply(handler http.Handler) http.Handler {
	for _, mw := range slices.Backward(r.chain) {
		handler = mw(handler)
	}
	return handler
}

func (r *BasicRouter) register(pattern string, h http.Handler) {
	r.mux.Handle(pattern, h)
	r.seen = append(r.seen, pattern)
}
