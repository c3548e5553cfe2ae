// Copyright © 2021 The Stax authors

package cmd

import (
	"errors"

	"github.com/luthersystems/stax/diagnostic"
	"github.com/luthersystems/stax/stack"
)

func colorMode() diagnostic.ColorMode {
	switch colorFlag {
	case "always":
		return diagnostic.ColorAlways
	case "never":
		return diagnostic.ColorNever
	default:
		return diagnostic.ColorAuto
	}
}

// runErrorDiag converts a runtime error to a Diagnostic for display.
func runErrorDiag(err error) diagnostic.Diagnostic {
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
		d.Spans = append(d.Spans, diagnostic.Span{
			File:  loc.Name,
			Line:  loc.Line,
			Col:   loc.Column,
			Label: rerr.Expr.String(),
		})
	}
	return d
}
