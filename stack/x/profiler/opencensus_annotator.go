// Copyright © 2021 The Stax authors

package profiler

import (
	"context"
	"errors"

	collections "github.com/golang-collections/collections/stack"
	"go.opencensus.io/trace"

	"github.com/luthersystems/stax/stack"
)

type ocAnnotator struct {
	profiler
	currentContext context.Context
	currentSpan    *trace.Span
	contexts       *collections.Stack
}

func NewOpenCensusAnnotator(runtime *stack.Runtime, parentContext context.Context, opts ...Option) *ocAnnotator {
	p := &ocAnnotator{
		profiler: profiler{
			runtime: runtime,
		},
		currentContext: parentContext,
		contexts:       collections.New(),
	}
	p.profiler.applyConfigs(opts...)
	return p
}

func (p *ocAnnotator) Enable() error {
	p.runtime.Profiler = p
	if p.currentContext == nil {
		return errors.New("we can only append spans to a context that is linked to opencensus")
	}
	return p.profiler.Enable()
}

func (p *ocAnnotator) Complete() error {
	if p.currentSpan != nil {
		p.currentSpan.End()
	}
	return nil
}

func (p *ocAnnotator) Start(name string, expr *stack.Expr) func() {
	if p.skipTrace(name, expr) {
		return func() {}
	}
	p.contexts.Push(p.currentContext)
	p.currentContext, p.currentSpan = trace.StartSpan(p.currentContext, name)
	if expr != nil && expr.Loc != nil {
		p.currentSpan.Annotate([]trace.Attribute{
			trace.StringAttribute("file", expr.Loc.Name),
			trace.Int64Attribute("line", int64(expr.Loc.Line)),
		}, "source")
	}
	return func() {
		p.currentSpan.End()
		// And pop the current context back
		p.currentContext = p.contexts.Pop().(context.Context)
		p.currentSpan = trace.FromContext(p.currentContext)
	}
}
