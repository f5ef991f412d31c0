package provider

import "context"

// Call is a single provider operation: one input, one output, an error.
// Provider methods with this shape adapt directly; multi-argument
// operations close over their extra parameters.
type Call[I, O any] func(ctx context.Context, input I) (O, error)

// Middleware transforms a Call by wrapping it. The returned call typically
// delegates to the original while adding cross-cutting behavior (logging,
// metrics).
type Middleware[I, O any] func(Call[I, O]) Call[I, O]

// Chain composes multiple middlewares into one. Middlewares are applied
// in order: the first middleware is outermost (executes first on the
// way in, last on the way out).
//
// Chain(a, b, c)(call) is equivalent to a(b(c(call))).
func Chain[I, O any](middlewares ...Middleware[I, O]) Middleware[I, O] {
	return func(inner Call[I, O]) Call[I, O] {
		for i := len(middlewares) - 1; i >= 0; i-- {
			inner = middlewares[i](inner)
		}
		return inner
	}
}
