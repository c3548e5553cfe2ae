// Copyright © 2021 The Stax authors

package stack

import (
	"time"

	"github.com/pkg/errors"
)

// Reader parses program text into expressions.  The concrete reader lives
// in its own package and is attached to the engine at startup so the core
// has no parser dependency.
type Reader interface {
	Read(src *Source) ([]*Expr, error)
}

// Engine evaluates programs.  An engine is configured once and may run any
// number of contexts; all run state lives in the Context.
type Engine struct {
	runtime  *Runtime
	reader   Reader
	modules  map[Symbol]*Module
	timeout  time.Duration
	deadline time.Time
}

// NewEngine returns an engine over rt.  A nil rt gets the standard
// runtime.
func NewEngine(rt *Runtime) *Engine {
	if rt == nil {
		rt = StdRuntime()
	}
	return &Engine{
		runtime: rt,
		modules: make(map[Symbol]*Module),
	}
}

// Runtime returns the engine's runtime.
func (e *Engine) Runtime() *Runtime { return e.runtime }

// WithReader attaches the program reader used by RunSource and import.
func (e *Engine) WithReader(r Reader) *Engine {
	e.reader = r
	return e
}

// WithModule registers a host module.
func (e *Engine) WithModule(m *Module) *Engine {
	e.modules[m.Name()] = m
	return e
}

// Module returns a registered module.
func (e *Engine) Module(name Symbol) (*Module, bool) {
	m, ok := e.modules[name]
	return m, ok
}

// Modules returns every registered module.
func (e *Engine) Modules() []*Module {
	ms := make([]*Module, 0, len(e.modules))
	for _, m := range e.modules {
		ms = append(ms, m)
	}
	return ms
}

// WithTimeout limits each top-level run to d.  The deadline is checked
// before every expression step, so runaway recursion and long straight
// line programs both stop promptly at step granularity.
func (e *Engine) WithTimeout(d time.Duration) *Engine {
	e.timeout = d
	return e
}

// RunString parses and runs code against ctx under the given source name.
func (e *Engine) RunString(ctx *Context, name, code string) error {
	return e.RunSource(ctx, NewSource(name, code))
}

// RunSource parses and runs a source against ctx.
func (e *Engine) RunSource(ctx *Context, src *Source) error {
	if e.reader == nil {
		return errors.New("engine has no reader")
	}
	ctx.AddSource(src)
	exprs, err := e.reader.Read(src)
	if err != nil {
		return err
	}
	return e.Run(ctx, exprs)
}

// Run evaluates exprs in order against ctx.  The first failure stops the
// run and is returned; the context holds the state at the failure point.
func (e *Engine) Run(ctx *Context, exprs []*Expr) error {
	if e.timeout > 0 && e.deadline.IsZero() {
		e.deadline = time.Now().Add(e.timeout)
		defer func() { e.deadline = time.Time{} }()
	}
	for _, expr := range exprs {
		if err := e.RunExpr(ctx, expr); err != nil {
			return err
		}
		if j := ctx.Journal(); j != nil {
			j.Commit()
		}
	}
	return nil
}

// RunExpr evaluates a single expression step.
func (e *Engine) RunExpr(ctx *Context, expr *Expr) error {
	if !e.deadline.IsZero() && time.Now().After(e.deadline) {
		return NewRunError(ReasonTimeout, ctx, expr)
	}
	switch expr.Kind {
	case KindNil, KindBool, KindInt, KindFloat, KindString, KindUserData:
		return ctx.Push(expr)
	case KindLazy:
		return ctx.Push(expr.Cells[0])
	case KindList:
		return e.runList(ctx, expr)
	case KindRecord:
		return e.runRecord(ctx, expr)
	case KindError:
		return NewRunError(ReasonDoubleError, ctx, expr)
	case KindSymbol:
		return e.runSymbol(ctx, expr)
	case KindFnMark:
		// A bare marker has nothing to evaluate.
		return nil
	}
	return NewRunError(ReasonUnknownCall, ctx, expr)
}

// runList evaluates a list expression.  A callable list is scanned against
// the current scope and called.  Any other list is a literal whose
// elements run as a sub-program against a scratch context; the scratch
// stack becomes the value pushed, so list literals are programs with
// confined side effects.
func (e *Engine) runList(ctx *Context, expr *Expr) error {
	if expr.IsFunction() {
		scanner := NewScanner(ctx.CurrentScope().Duplicate())
		scanned, err := scanner.Scan(expr)
		if err != nil {
			return err
		}
		return e.CallFn(ctx, expr, scanned)
	}
	scratch := NewContext()
	if err := e.Run(scratch, expr.Cells); err != nil {
		return err
	}
	out := List(scratch.Stack()...)
	out.Loc = expr.Loc
	return ctx.Push(out)
}

// runRecord evaluates each value of a record literal and pushes the
// resulting record.
func (e *Engine) runRecord(ctx *Context, expr *Expr) error {
	rec := make(map[Symbol]*Expr, len(expr.Record))
	for k, v := range expr.Record {
		if err := e.RunExpr(ctx, v); err != nil {
			return err
		}
		val, err := ctx.Pop()
		if err != nil {
			return err
		}
		rec[k] = val
	}
	out := RecordExpr(rec)
	out.Loc = expr.Loc
	return ctx.Push(out)
}

// runSymbol resolves a symbol evaluation.  Resolution order: intrinsic,
// module function, let overlay, scope item.  Let bindings and plain scope
// values push; a scope-bound function auto-calls.  A namespaced symbol
// whose function is missing pushes an error value rather than failing the
// run; evaluating that value later is a double error.
func (e *Engine) runSymbol(ctx *Context, expr *Expr) error {
	sym := expr.Symbol()
	if j := ctx.Journal(); j != nil {
		j.Op(JournalOp{Kind: OpCall, Expr: expr})
	}

	if fn, ok := lookupIntrinsic(sym); ok {
		return fn(e, ctx, expr)
	}

	if ns, name, ok := sym.ModuleSplit(); ok {
		if m, ok := e.modules[ns]; ok {
			if fn, ok := m.Func(name); ok {
				return fn(e, ctx, expr)
			}
		}
		return ctx.Push(ErrorExpr(NewRunError(ReasonUnknownCall, ctx, expr)))
	}

	if v, ok := ctx.LetGet(sym); ok {
		return ctx.Push(v)
	}

	if v, ok := ctx.ScopeItem(sym); ok {
		if v.IsFunction() {
			return e.CallFn(ctx, expr, v)
		}
		return ctx.Push(v)
	}

	return NewRunError(ReasonUnknownCall, ctx, expr)
}

// RunBody executes a popped value as a body: callable lists go through the
// call protocol, plain lists run in the current context, and anything else
// evaluates as a single expression.  call, if, let, and import all share
// this shape.
func (e *Engine) RunBody(ctx *Context, body *Expr) error {
	switch {
	case body.IsFunction():
		return e.CallFn(ctx, body, body)
	case body.Kind == KindList:
		return e.Run(ctx, body.Cells)
	default:
		return e.RunExpr(ctx, body)
	}
}

// CallFn runs a callable list.  A scoped function executes under its
// captured scope, which is pushed as-is rather than copied; state the body
// defines there persists across calls of the same closure instance.  A
// scopeless function runs in the caller's scope so its definitions leak.
// When the body leaves the recur sentinel on top of the stack the body
// reruns under the same scope, mutations intact, without growing the host
// call stack.
func (e *Engine) CallFn(ctx *Context, call *Expr, fnList *Expr) error {
	marker := fnList.FnMarker()
	if marker == nil || (marker.Scoped && marker.Scope == nil) {
		return NewRunError(ReasonInvalidFunction, ctx, fnList)
	}

	if j := ctx.Journal(); j != nil {
		j.Op(JournalOp{Kind: OpFnCall, Expr: call})
	}
	if p := e.runtime.Profiler; p != nil && p.Enabled() {
		end := p.Start(callName(call), fnList)
		defer end()
	}

	if marker.Scoped {
		ctx.PushScope(marker.Scope)
	}
	if j := ctx.Journal(); j != nil {
		j.Commit()
		j.Op(JournalOp{Kind: OpFnStart, Scoped: marker.Scoped})
	}

	body := fnList.FnBody()
	for {
		if err := e.Run(ctx, body); err != nil {
			return err
		}
		top, ok := ctx.Peek()
		if !ok || !isRecurSentinel(top) {
			break
		}
		if _, err := ctx.Pop(); err != nil {
			return err
		}
	}

	if j := ctx.Journal(); j != nil {
		j.Commit()
		j.Op(JournalOp{Kind: OpFnEnd})
	}
	if marker.Scoped {
		ctx.PopScope()
	}
	return nil
}

func isRecurSentinel(v *Expr) bool {
	return v.Kind == KindSymbol && v.Symbol() == SymbolRecur
}

func callName(call *Expr) string {
	if call != nil && call.Kind == KindSymbol {
		return call.Str
	}
	return "call"
}
