// Copyright © 2021 The Stax authors

package repl

import (
	"errors"
	"io"

	"github.com/luthersystems/stax/diagnostic"
	"github.com/luthersystems/stax/stack"
)

// renderError renders a runtime error using the diagnostic renderer for
// Rust-style annotated output.  Snippets come from the sources the
// context has already read, so entries typed at the prompt annotate
// just like file programs.
func renderError(w io.Writer, ctx *stack.Context, err error) {
	d := runErrorToDiag(ctx, err)
	r := &diagnostic.Renderer{
		Color:        diagnostic.ColorAuto,
		SourceReader: contextReader(ctx),
	}
	_ = r.Render(w, d)
}

// runErrorToDiag converts a RunError to a Diagnostic for display.
func runErrorToDiag(ctx *stack.Context, err error) diagnostic.Diagnostic {
	d := diagnostic.Diagnostic{
		Severity: diagnostic.SeverityError,
		Message:  err.Error(),
	}
	var rerr *stack.RunError
	if !errors.As(err, &rerr) {
		return d
	}
	d.Message = rerr.Reason.String()
	if rerr.Expr != nil && rerr.Expr.Loc != nil {
		loc := rerr.Expr.Loc
		d.Spans = []diagnostic.Span{{
			File:  loc.Name,
			Line:  loc.Line,
			Col:   loc.Column,
			Label: rerr.Expr.String(),
		}}
	}
	return d
}

// contextReader resolves span files against the sources the context has
// seen, falling back to nothing when a name is unknown.
func contextReader(ctx *stack.Context) func(string) ([]byte, error) {
	return func(name string) ([]byte, error) {
		src, ok := ctx.Source(name)
		if !ok {
			return nil, errors.New("unknown source: " + name)
		}
		return []byte(src.Content()), nil
	}
}
