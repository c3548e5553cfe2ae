// Copyright © 2021 The Stax authors

package stack

import (
	"fmt"
)

// Reason classifies a runtime error.
type Reason int

const (
	// ReasonStackUnderflow is returned when an operation pops an empty
	// stack.
	ReasonStackUnderflow Reason = iota
	// ReasonUnknownCall is returned when a symbol resolves to nothing.
	ReasonUnknownCall
	// ReasonInvalidDefinition is returned when def or set is applied to
	// something other than a symbol.
	ReasonInvalidDefinition
	// ReasonInvalidFunction is returned when a callable list is
	// malformed.
	ReasonInvalidFunction
	// ReasonInvalidLet is returned when let receives a names list that
	// is not a list of symbols.
	ReasonInvalidLet
	// ReasonCannotSetBeforeDef is returned when set targets a name that
	// has never been defined, including names bound only by a let.
	ReasonCannotSetBeforeDef
	// ReasonAssertionFailed is returned by a failing assert.
	ReasonAssertionFailed
	// ReasonDoubleError is returned when an error value is itself
	// evaluated.
	ReasonDoubleError
	// ReasonHalt is returned when a program stops itself.
	ReasonHalt
	// ReasonTimeout is returned when the engine deadline passes.
	ReasonTimeout
)

func (r Reason) String() string {
	switch r {
	case ReasonStackUnderflow:
		return "stack underflow"
	case ReasonUnknownCall:
		return "unknown call"
	case ReasonInvalidDefinition:
		return "invalid definition"
	case ReasonInvalidFunction:
		return "invalid function"
	case ReasonInvalidLet:
		return "invalid let"
	case ReasonCannotSetBeforeDef:
		return "cannot set before def"
	case ReasonAssertionFailed:
		return "assertion failed"
	case ReasonDoubleError:
		return "double error"
	case ReasonHalt:
		return "halt"
	case ReasonTimeout:
		return "timeout"
	}
	return "unknown error"
}

// RunError is a runtime failure.  Errors are ordinary values in the
// language; a RunError carries the context at the point of failure and
// travels on the stack wrapped in an error expression when a program
// chooses to handle it.
type RunError struct {
	Reason  Reason
	Context *Context
	Expr    *Expr
}

// NewRunError builds an error for the expression under evaluation.
func NewRunError(reason Reason, ctx *Context, expr *Expr) *RunError {
	return &RunError{Reason: reason, Context: ctx, Expr: expr}
}

func (e *RunError) Error() string {
	if e.Expr != nil && e.Expr.Loc != nil {
		return fmt.Sprintf("%v: %s: %s", e.Expr.Loc, e.Reason, e.Expr)
	}
	if e.Expr != nil {
		return fmt.Sprintf("%s: %s", e.Reason, e.Expr)
	}
	return e.Reason.String()
}
