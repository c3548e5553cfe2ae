// Copyright © 2021 The Stax authors

package profiler

import (
	"github.com/luthersystems/stax/stack"
)

// SkipFilter decides whether a call should be left out of the trace.
// name is the symbol the call was made through, or "call" for anonymous
// invocations.
type SkipFilter func(name string, expr *stack.Expr) bool

// WithSkipFilter sets the filter for tracing spans.
func WithSkipFilter(skipFilter SkipFilter) Option {
	return func(p *profiler) {
		p.skipFilter = skipFilter
	}
}

// WithNamedOnly filters to only include spans for calls made through a
// defined name, dropping anonymous call invocations.
func WithNamedOnly() Option {
	return WithSkipFilter(namedOnlySkipFilter)
}

func namedOnlySkipFilter(name string, _ *stack.Expr) bool {
	return name == "call"
}
