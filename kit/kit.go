// Package kit is the endpoint plumbing shared by the HTTP and MCP
// transports: a transport-agnostic Endpoint shape, middleware chaining
// and request-scoped context values.
package kit

import "context"

// Endpoint is a single operation exposed over any transport.
type Endpoint func(ctx context.Context, req any) (any, error)

// Middleware wraps an Endpoint.
type Middleware func(Endpoint) Endpoint

// Chain composes middlewares; the first one is outermost.
func Chain(mw ...Middleware) Middleware {
	return func(next Endpoint) Endpoint {
		for i := len(mw) - 1; i >= 0; i-- {
			next = mw[i](next)
		}
		return next
	}
}
