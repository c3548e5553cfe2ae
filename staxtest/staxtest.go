// Copyright © 2021 The Stax authors

// Package staxtest provides a test runner that evaluates program source
// strings and compares the resulting stack, printed output, and errors.
package staxtest

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/luthersystems/stax/parser"
	"github.com/luthersystems/stax/stack"
)

// TestSequence is a sequence of program fragments evaluated in order
// against one context.  After each fragment the rendered stack, any
// printed output, and any error are compared against the expectations.
type TestSequence []struct {
	Expr   string // program source
	Stack  string // rendered stack after evaluation, bottom first
	Output string // output written by print during evaluation
	Err    string // expected error reason, empty when none
}

// TestSuite is a set of named TestSequences.
type TestSuite []struct {
	Name string
	TestSequence
}

// Runner configures engines for test runs.
type Runner struct {
	// Modules are registered on every engine the runner creates.
	Modules []*stack.Module

	// Timeout bounds each run when nonzero.
	Timeout time.Duration

	// Journal attaches a journal to every context when true.
	Journal bool
}

// NewEngine returns an engine and context wired for a test.
func (r *Runner) NewEngine(t testing.TB) (*stack.Engine, *stack.Context, *bytes.Buffer) {
	logger := NewLogger(t)
	out := &bytes.Buffer{}
	rt := &stack.Runtime{
		Stdout: out,
		Stderr: logger,
	}
	eng := stack.NewEngine(rt).WithReader(parser.NewReader())
	if r.Timeout > 0 {
		eng.WithTimeout(r.Timeout)
	}
	for _, m := range r.Modules {
		eng.WithModule(m)
	}
	ctx := stack.NewContext()
	if r.Journal {
		ctx.WithJournal(stack.NewJournal())
	}
	return eng, ctx, out
}

// RunTestSuite runs each TestSequence in tests against an isolated engine
// and context.
func (r *Runner) RunTestSuite(t *testing.T, tests TestSuite) {
	for _, test := range tests {
		test := test
		t.Run(test.Name, func(t *testing.T) {
			eng, ctx, out := r.NewEngine(t)
			for j, step := range test.TestSequence {
				out.Reset()
				err := eng.RunString(ctx, "test", step.Expr)
				if step.Err == "" {
					if err != nil {
						t.Errorf("expr %d %q: unexpected error: %v", j, step.Expr, err)
						continue
					}
				} else {
					reason := errorReason(err)
					if reason != step.Err {
						t.Errorf("expr %d %q: expected error %q (got %q)", j, step.Expr, step.Err, reason)
						continue
					}
				}
				if got := RenderStack(ctx); got != step.Stack {
					t.Errorf("expr %d %q: expected stack %q (got %q)", j, step.Expr, step.Stack, got)
				}
				if step.Output != "" || out.Len() > 0 {
					if out.String() != step.Output {
						t.Errorf("expr %d %q: expected output %q (got %q)", j, step.Expr, step.Output, out.String())
					}
				}
			}
		})
	}
}

// RunTestSuite runs tests with a default runner.
func RunTestSuite(t *testing.T, tests TestSuite) {
	(&Runner{}).RunTestSuite(t, tests)
}

// RenderStack renders a context's stack bottom first, space separated.
func RenderStack(ctx *stack.Context) string {
	var sb strings.Builder
	for i, v := range ctx.Stack() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(v.String())
	}
	return sb.String()
}

func errorReason(err error) string {
	if err == nil {
		return ""
	}
	if rerr, ok := err.(*stack.RunError); ok {
		return rerr.Reason.String()
	}
	return err.Error()
}

// RunBenchmark evaluates source b.N times against fresh contexts.
func RunBenchmark(b *testing.B, source string) {
	b.StopTimer()
	r := &Runner{}
	eng, _, _ := r.NewEngine(b)
	src := stack.NewSource("benchmark", source)
	b.StartTimer()
	for i := 0; i < b.N; i++ {
		ctx := stack.NewContext()
		if err := eng.RunSource(ctx, src); err != nil {
			b.Fatalf("run error: %v", err)
		}
	}
}
