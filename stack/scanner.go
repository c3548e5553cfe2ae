// Copyright © 2021 The Stax authors

package stack

// Scanner finalizes the captured scope of callable lists at the moment
// they are evaluated or pushed, not at parse time, because the same
// literal can be reached under different scopes and must capture each one.
//
// While walking a body the scanner reserves placeholder slots in the
// function's own scope for bare symbols that name neither an intrinsic nor
// a module call, so a later ambient definition of the name is still
// visible through the forming closure.  The ambient scope then fills the
// remaining gaps without overriding anything the function claimed for
// itself.  A function never captures its own name; named self-recursion
// does not resolve, which is what recur is for.
type Scanner struct {
	scope *Scope
}

// NewScanner returns a scanner over the given ambient scope.  Callers pass
// a duplicate of the scope in effect at the push, so captures alias the
// ambient chains through fresh links.
func NewScanner(scope *Scope) *Scanner {
	return &Scanner{scope: scope}
}

// Scan returns expr with its function marker rewritten to capture the
// ambient scope.  Non-function expressions pass through untouched.
func (sc *Scanner) Scan(expr *Expr) (*Expr, error) {
	if !expr.IsFunction() {
		return expr, nil
	}
	marker := expr.FnMarker()
	if marker == nil || marker.Scope == nil {
		return nil, NewRunError(ReasonInvalidFunction, nil, expr)
	}

	fnScope := marker.Scope.Clone()
	body := make([]*Expr, len(expr.FnBody()))
	copy(body, expr.FnBody())

	for i, item := range body {
		inner := item.Unlazy()
		switch {
		case inner.Kind == KindSymbol:
			sym := inner.Symbol()
			if isCallable(sym) || fnScope.Has(sym) {
				continue
			}
			fnScope.Reserve(sym)
		case inner.IsFunction():
			nested := NewScanner(sc.scope.Duplicate())
			scanned, err := nested.Scan(inner)
			if err != nil {
				return nil, err
			}
			body[i] = relazy(item, scanned)
		}
	}

	fnScope.Merge(sc.scope)

	cells := make([]*Expr, 0, len(body)+1)
	head := FnMark(marker.Scoped, fnScope)
	head.Loc = expr.Cells[0].Loc
	cells = append(cells, head)
	cells = append(cells, body...)

	out := List(cells...)
	out.Loc = expr.Loc
	return out, nil
}

// isCallable reports whether sym resolves ahead of scope lookup, as an
// intrinsic or a namespaced module call, and therefore never needs a
// placeholder slot.
func isCallable(sym Symbol) bool {
	if _, ok := lookupIntrinsic(sym); ok {
		return true
	}
	_, _, namespaced := sym.ModuleSplit()
	return namespaced
}

// relazy rewraps scanned in as many quote levels as orig carried.
func relazy(orig, scanned *Expr) *Expr {
	depth := 0
	for e := orig; e.Kind == KindLazy; e = e.Cells[0] {
		depth++
	}
	for i := 0; i < depth; i++ {
		scanned = Lazy(scanned)
	}
	return scanned
}
