// Copyright © 2021 The Stax authors

package profiler

import (
	"context"
	"runtime/pprof"

	"github.com/luthersystems/stax/stack"
)

// pprofAnnotator appends tags to pprof output if pprof is enabled.  It
// does not start pprof for the user.
type pprofAnnotator struct {
	profiler
	currentContext context.Context
}

var _ stack.Profiler = &pprofAnnotator{}

func NewPprofAnnotator(runtime *stack.Runtime, parentContext context.Context, opts ...Option) *pprofAnnotator {
	p := &pprofAnnotator{
		profiler: profiler{
			runtime: runtime,
		},
		currentContext: parentContext,
	}
	p.profiler.applyConfigs(opts...)
	return p
}

func (p *pprofAnnotator) Enable() error {
	p.runtime.Profiler = p
	if p.currentContext == nil {
		p.currentContext = context.Background()
	}
	return p.profiler.Enable()
}

func (p *pprofAnnotator) Complete() error {
	pprof.SetGoroutineLabels(context.Background())
	return nil
}

func (p *pprofAnnotator) Start(name string, expr *stack.Expr) func() {
	if p.skipTrace(name, expr) {
		return func() {}
	}
	oldContext := p.currentContext
	p.currentContext = pprof.WithLabels(p.currentContext, pprof.Labels("function", name))
	// Labels apply to the goroutine until the call returns.
	pprof.SetGoroutineLabels(p.currentContext)

	return func() {
		p.currentContext = oldContext
		pprof.SetGoroutineLabels(p.currentContext)
	}
}
