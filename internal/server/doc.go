// Package server provides HTTP routing, middleware, and the serve loop for the web grid.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] runs in the order it is added: [BasicRouter.Apply] wraps in reverse, so the first added is outermost.
//
// The [BasicRouter] implementation uses [http.ServeMux] method patterns, so a path may be registered once per
// method and path wildcards such as {name} are available through [http.Request.PathValue].
//
// # Middleware
//
//   - [RequestID] : propagates or generates an X-Request-ID header
//   - [Logging] : one structured log line per request
//   - [Metrics] : Prometheus request counters and latency histograms
//   - [Recover] : turns a panicking handler into a 500
//   - [Throttle] : token-bucket limiter for a single route
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
