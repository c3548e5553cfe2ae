// Copyright © 2021 The Stax authors

package stack

// Context carries the mutable state of a run: the operand stack, the let
// overlays, the scope stack, and the optional journal.  The scope stack
// always holds at least one scope.
type Context struct {
	stack   []*Expr
	lets    []map[Symbol]*Expr
	scopes  []*Scope
	journal *Journal
	sources map[string]*Source
}

// NewContext returns a context with an empty stack and a single root
// scope.
func NewContext() *Context {
	return &Context{
		scopes:  []*Scope{NewScope()},
		sources: make(map[string]*Source),
	}
}

// WithJournal attaches a journal that records every stack operation.
func (c *Context) WithJournal(j *Journal) *Context {
	c.journal = j
	return c
}

// Journal returns the attached journal, or nil.
func (c *Context) Journal() *Journal { return c.journal }

// Stack returns the operand stack, bottom first.
func (c *Context) Stack() []*Expr { return c.stack }

// AddSource registers a loaded source for location reporting.
func (c *Context) AddSource(src *Source) {
	c.sources[src.Name()] = src
}

// Source returns a registered source by name.
func (c *Context) Source(name string) (*Source, bool) {
	src, ok := c.sources[name]
	return src, ok
}

// Push evaluates the push of v: lists are scanned first so any callable
// list captures the current scope, then v lands on the stack.
func (c *Context) Push(v *Expr) error {
	if v.Kind == KindList {
		scanner := NewScanner(c.CurrentScope().Duplicate())
		scanned, err := scanner.Scan(v)
		if err != nil {
			return err
		}
		v = scanned
	}
	if c.journal != nil {
		c.journal.Op(JournalOp{Kind: OpPush, Expr: v})
	}
	c.stack = append(c.stack, v)
	return nil
}

// Pop removes and returns the top of the stack.
func (c *Context) Pop() (*Expr, error) {
	if len(c.stack) == 0 {
		return nil, NewRunError(ReasonStackUnderflow, c, nil)
	}
	v := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	if c.journal != nil {
		c.journal.Op(JournalOp{Kind: OpPop, Expr: v})
	}
	return v, nil
}

// Peek returns the top of the stack without removing it.
func (c *Context) Peek() (*Expr, bool) {
	if len(c.stack) == 0 {
		return nil, false
	}
	return c.stack[len(c.stack)-1], true
}

// CurrentScope returns the innermost scope.
func (c *Context) CurrentScope() *Scope {
	return c.scopes[len(c.scopes)-1]
}

// PushScope enters scope for the duration of a scoped call.
func (c *Context) PushScope(scope *Scope) {
	c.scopes = append(c.scopes, scope)
}

// PopScope leaves the innermost scope.  The last scope is never popped.
func (c *Context) PopScope() {
	if len(c.scopes) > 1 {
		c.scopes = c.scopes[:len(c.scopes)-1]
	}
}

// ScopeDepth returns the number of scopes on the stack.
func (c *Context) ScopeDepth() int { return len(c.scopes) }

// DefScopeItem defines name in the innermost scope.  A let binding of the
// same name is removed from the innermost overlay so the definition wins
// from here on.
func (c *Context) DefScopeItem(name Symbol, v *Expr) {
	c.CurrentScope().Define(name, v)
	c.LetRemove(name)
}

// SetScopeItem writes v through name's chain.  It reports false when the
// name was never defined.
func (c *Context) SetScopeItem(name Symbol, v *Expr) bool {
	return c.CurrentScope().Set(name, v)
}

// ScopeItem returns the value bound to name in the innermost scope.
func (c *Context) ScopeItem(name Symbol) (*Expr, bool) {
	return c.CurrentScope().Get(name)
}

// LetPush enters a new let overlay.
func (c *Context) LetPush() {
	c.lets = append(c.lets, make(map[Symbol]*Expr))
}

// LetPop leaves the innermost let overlay.
func (c *Context) LetPop() {
	if len(c.lets) > 0 {
		c.lets = c.lets[:len(c.lets)-1]
	}
}

// LetBind binds name in the innermost overlay.
func (c *Context) LetBind(name Symbol, v *Expr) {
	if len(c.lets) == 0 {
		return
	}
	c.lets[len(c.lets)-1][name] = v
}

// LetGet searches the overlays innermost first.
func (c *Context) LetGet(name Symbol) (*Expr, bool) {
	for i := len(c.lets) - 1; i >= 0; i-- {
		if v, ok := c.lets[i][name]; ok {
			return v, true
		}
	}
	return nil, false
}

// LetRemove unbinds name from the innermost overlay.
func (c *Context) LetRemove(name Symbol) {
	if len(c.lets) > 0 {
		delete(c.lets[len(c.lets)-1], name)
	}
}
