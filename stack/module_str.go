// Copyright © 2021 The Stax authors

package stack

import (
	"strings"
)

// StrModule returns the built-in string module.  Programs call its
// functions with namespaced symbols such as str:upper.
func StrModule() *Module {
	m := NewModule("str")
	m.WithFunc("upper", strUnary(strings.ToUpper))
	m.WithDocs("upper", "pop a string and push it uppercased")
	m.WithFunc("lower", strUnary(strings.ToLower))
	m.WithDocs("lower", "pop a string and push it lowercased")
	m.WithFunc("trim", strUnary(strings.TrimSpace))
	m.WithDocs("trim", "pop a string and push it without surrounding whitespace")
	m.WithDocs("contains", "pop two strings and push whether the lower contains the upper")
	m.WithDocs("join", "pop a separator and a list and push the joined string")
	m.WithFunc("contains", func(_ *Engine, ctx *Context, _ *Expr) error {
		lhs, rhs, err := pop2(ctx)
		if err != nil {
			return err
		}
		if lhs.Kind != KindString || rhs.Kind != KindString {
			return ctx.Push(Nil())
		}
		return ctx.Push(Bool(strings.Contains(lhs.Str, rhs.Str)))
	})
	m.WithFunc("join", func(_ *Engine, ctx *Context, _ *Expr) error {
		list, sep, err := pop2(ctx)
		if err != nil {
			return err
		}
		if list.Kind != KindList || sep.Kind != KindString {
			return ctx.Push(Nil())
		}
		parts := make([]string, len(list.Cells))
		for i, cell := range list.Cells {
			if cell.Kind == KindString {
				parts[i] = cell.Str
			} else {
				parts[i] = cell.String()
			}
		}
		return ctx.Push(String(strings.Join(parts, sep.Str)))
	})
	return m
}

func strUnary(fn func(string) string) Func {
	return func(_ *Engine, ctx *Context, _ *Expr) error {
		v, err := ctx.Pop()
		if err != nil {
			return err
		}
		if v.Kind != KindString {
			return ctx.Push(Nil())
		}
		return ctx.Push(String(fn(v.Str)))
	}
}
