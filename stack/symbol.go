// Copyright © 2021 The Stax authors

package stack

// Symbol identifies a name in a program.  Go's string interning and cheap
// comparisons make a dedicated interner unnecessary, so symbols are plain
// strings with a distinct type for clarity at API boundaries.
type Symbol string

// Symbols with special meaning to the runtime.
const (
	// SymbolRecur is the sentinel pushed by the recur operation.  The
	// call loop watches for it at the top of the stack after a function
	// body finishes and reruns the body in place when it finds one.
	SymbolRecur Symbol = "recur"

	// SymbolTrue and SymbolFalse parse as boolean literals.
	SymbolTrue  Symbol = "true"
	SymbolFalse Symbol = "false"

	// SymbolNil parses as the nil literal.
	SymbolNil Symbol = "nil"
)

// ModuleSplit splits a namespaced symbol of the form ns:name.  The second
// return is false when sym has no namespace.
func (sym Symbol) ModuleSplit() (ns Symbol, name Symbol, ok bool) {
	for i := 0; i < len(sym); i++ {
		if sym[i] == ':' {
			return sym[:i], sym[i+1:], true
		}
	}
	return "", "", false
}
