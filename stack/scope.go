// Copyright © 2021 The Stax authors

package stack

// Scope maps names to chains of values.  A chain holding nil is reserved:
// the name exists so closures can link to it before anything is bound.
type Scope struct {
	items map[Symbol]*Chain[*Expr]
}

// NewScope returns an empty scope.
func NewScope() *Scope {
	return &Scope{items: make(map[Symbol]*Chain[*Expr])}
}

// Define binds name to v.  A name whose chain is a root, or that does not
// exist yet, is written in place.  A name inherited from an ancestor scope
// is unlinked first so the definition stays private to this scope and the
// chains derived from it, leaving the ancestor's binding untouched.
func (s *Scope) Define(name Symbol, v *Expr) {
	if c, ok := s.items[name]; ok {
		if c.IsRoot() {
			c.Set(v)
		} else {
			c.UnlinkWith(v)
		}
		return
	}
	s.items[name] = NewChain[*Expr](v)
}

// Reserve ensures name exists, creating an unbound root chain when absent.
func (s *Scope) Reserve(name Symbol) {
	if _, ok := s.items[name]; !ok {
		s.items[name] = NewChain[*Expr](nil)
	}
}

// Set writes v through name's chain so every aliasing scope observes the
// new value.  Set reports false when the name does not exist; callers turn
// that into a cannot-set-before-def error.
func (s *Scope) Set(name Symbol, v *Expr) bool {
	c, ok := s.items[name]
	if !ok {
		return false
	}
	c.Set(v)
	return true
}

// Get returns the value bound to name.  The second return is false when
// the name is absent or reserved but unbound.
func (s *Scope) Get(name Symbol) (*Expr, bool) {
	c, ok := s.items[name]
	if !ok {
		return nil, false
	}
	v := c.Value()
	if v == nil {
		return nil, false
	}
	return v, true
}

// Ref returns the raw chain for name.
func (s *Scope) Ref(name Symbol) (*Chain[*Expr], bool) {
	c, ok := s.items[name]
	return c, ok
}

// Has reports whether name exists, bound or reserved.
func (s *Scope) Has(name Symbol) bool {
	_, ok := s.items[name]
	return ok
}

// Remove deletes name from the scope.
func (s *Scope) Remove(name Symbol) {
	delete(s.items, name)
}

// Names returns every name in the scope, bound or reserved.
func (s *Scope) Names() []Symbol {
	names := make([]Symbol, 0, len(s.items))
	for name := range s.items {
		names = append(names, name)
	}
	return names
}

// Clone returns a scope with a fresh name table aliasing the same chains.
// Bindings added or removed in the clone are invisible to s, but writes
// through shared chains remain visible to both.
func (s *Scope) Clone() *Scope {
	items := make(map[Symbol]*Chain[*Expr], len(s.items))
	for name, c := range s.items {
		items[name] = c
	}
	return &Scope{items: items}
}

// Duplicate returns a scope whose entries are links of s's entries.  The
// duplicate aliases every value and sits on the recorded path, so a later
// unlink in s carries the duplicate along.
func (s *Scope) Duplicate() *Scope {
	items := make(map[Symbol]*Chain[*Expr], len(s.items))
	for name, c := range s.items {
		items[name] = c.Link()
	}
	return &Scope{items: items}
}

// Merge adopts other's chains for names that are absent here, or reserved
// here but bound in other.  Bound names are never overridden.
func (s *Scope) Merge(other *Scope) {
	for name, c := range other.items {
		cur, ok := s.items[name]
		if !ok || (cur.Value() == nil && c.Value() != nil) {
			s.items[name] = c
		}
	}
}
