// Copyright © 2021 The Stax authors

// Package profiler annotates engine call events with tracing spans.
package profiler

import (
	"fmt"

	"github.com/luthersystems/stax/stack"
)

// profiler carries the state shared by every annotator.
type profiler struct {
	runtime    *stack.Runtime
	enabled    bool
	skipFilter SkipFilter
}

func (p *profiler) Enabled() bool {
	return p.enabled
}

// Option configures an annotator.
type Option func(*profiler)

func (p *profiler) applyConfigs(opts ...Option) {
	for _, opt := range opts {
		opt(p)
	}
}

func (p *profiler) Enable() error {
	if p.enabled {
		return fmt.Errorf("profiler already enabled")
	}
	p.enabled = true
	return nil
}

// skipTrace is a helper function to decide whether to skip tracing.
func (p *profiler) skipTrace(name string, expr *stack.Expr) bool {
	return !p.enabled || p.skipFilter != nil && p.skipFilter(name, expr)
}
