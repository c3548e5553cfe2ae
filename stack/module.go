// Copyright © 2021 The Stax authors

package stack

// Func is a host function callable from programs through a module
// namespace.
type Func func(eng *Engine, ctx *Context, expr *Expr) error

// Module is a named table of host functions.  Programs reach them with
// namespaced symbols of the form name:func.
type Module struct {
	name  Symbol
	funcs map[Symbol]Func
	docs  map[Symbol]string
}

// NewModule returns an empty module.
func NewModule(name Symbol) *Module {
	return &Module{
		name:  name,
		funcs: make(map[Symbol]Func),
		docs:  make(map[Symbol]string),
	}
}

// Name returns the module's namespace.
func (m *Module) Name() Symbol { return m.name }

// WithFunc registers fn under name and returns m for chaining.
func (m *Module) WithFunc(name Symbol, fn Func) *Module {
	m.funcs[name] = fn
	return m
}

// WithDocs attaches a usage description to a registered function and
// returns m for chaining.
func (m *Module) WithDocs(name Symbol, docs string) *Module {
	m.docs[name] = docs
	return m
}

// Docs returns the usage description for a registered function.
func (m *Module) Docs(name Symbol) (string, bool) {
	docs, ok := m.docs[name]
	return docs, ok
}

// Func looks up a registered function.
func (m *Module) Func(name Symbol) (Func, bool) {
	fn, ok := m.funcs[name]
	return fn, ok
}

// Funcs returns the registered function names.
func (m *Module) Funcs() []Symbol {
	names := make([]Symbol, 0, len(m.funcs))
	for name := range m.funcs {
		names = append(names, name)
	}
	return names
}
