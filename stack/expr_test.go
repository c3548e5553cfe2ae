// Copyright © 2021 The Stax authors

package stack

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExprRender(t *testing.T) {
	for _, test := range []struct {
		expr *Expr
		want string
	}{
		{Nil(), "nil"},
		{Bool(true), "true"},
		{Bool(false), "false"},
		{Int(-3), "-3"},
		{Float(2.5), "2.5"},
		{String("hi\n"), `"hi\n"`},
		{SymbolExpr("abc"), "abc"},
		{Lazy(SymbolExpr("abc")), "'abc"},
		{Lazy(Lazy(Int(1))), "''1"},
		{List(), "()"},
		{List(Int(1), String("a"), List(Int(2))), `(1 "a" (2))`},
		{RecordExpr(map[Symbol]*Expr{"b": Int(2), "a": Int(1)}), "{a 1 b 2}"},
		{FnMark(true, NewScope()), "fn"},
		{FnMark(false, NewScope()), "fn!"},
		{List(FnMark(true, NewScope()), Int(1)), "(fn 1)"},
		{ErrorExpr(NewRunError(ReasonHalt, nil, nil)), "error(halt)"},
	} {
		assert.Equal(t, test.want, test.expr.String())
	}
}

func TestExprEqual(t *testing.T) {
	assert.True(t, Int(1).Equal(Int(1)))
	assert.False(t, Int(1).Equal(Int(2)))

	// Numbers compare across kinds.
	assert.True(t, Int(1).Equal(Float(1.0)))
	assert.True(t, Float(2.0).Equal(Int(2)))
	assert.False(t, Int(1).Equal(Float(1.5)))

	assert.True(t, Nil().Equal(Nil()))
	assert.False(t, Nil().Equal(Bool(false)))
	assert.True(t, String("a").Equal(String("a")))
	assert.False(t, String("a").Equal(SymbolExpr("a")))

	assert.True(t, List(Int(1), Int(2)).Equal(List(Int(1), Int(2))))
	assert.False(t, List(Int(1)).Equal(List(Int(1), Int(2))))

	r1 := RecordExpr(map[Symbol]*Expr{"a": Int(1)})
	r2 := RecordExpr(map[Symbol]*Expr{"a": Int(1)})
	r3 := RecordExpr(map[Symbol]*Expr{"a": Int(2)})
	assert.True(t, r1.Equal(r2))
	assert.False(t, r1.Equal(r3))

	assert.True(t, Lazy(Int(1)).Equal(Lazy(Int(1))))
}

func TestExprCompare(t *testing.T) {
	c, ok := Int(1).Compare(Int(2))
	assert.True(t, ok)
	assert.Equal(t, -1, c)

	c, ok = Float(2.5).Compare(Int(2))
	assert.True(t, ok)
	assert.Equal(t, 1, c)

	c, ok = String("a").Compare(String("b"))
	assert.True(t, ok)
	assert.Equal(t, -1, c)

	_, ok = String("a").Compare(Int(1))
	assert.False(t, ok)
	_, ok = Nil().Compare(Nil())
	assert.False(t, ok)
}

func TestExprTruthy(t *testing.T) {
	assert.False(t, Nil().IsTruthy())
	assert.False(t, Bool(false).IsTruthy())
	assert.True(t, Bool(true).IsTruthy())
	assert.True(t, Int(0).IsTruthy())
	assert.True(t, String("").IsTruthy())
	assert.True(t, List().IsTruthy())
}

func TestExprUnlazy(t *testing.T) {
	e := Lazy(Lazy(Int(1)))
	assert.Equal(t, KindInt, e.Unlazy().Kind)
	assert.Equal(t, KindInt, Int(1).Unlazy().Kind)
}

func TestExprClone(t *testing.T) {
	orig := List(Int(1), List(Int(2)))
	dup := orig.Clone()
	dup.Cells[1].Cells[0] = Int(9)
	assert.True(t, orig.Cells[1].Cells[0].Equal(Int(2)))

	// Cloned markers alias the same captured scope.
	scope := NewScope()
	fn := List(FnMark(true, scope), Int(1))
	fdup := fn.Clone()
	assert.Same(t, scope, fdup.FnMarker().Scope)
}

func TestExprTypeName(t *testing.T) {
	assert.Equal(t, "integer", Int(1).TypeName())
	assert.Equal(t, "list", List().TypeName())
	assert.Equal(t, "function", List(FnMark(true, NewScope())).TypeName())
	assert.Equal(t, "error", ErrorExpr(NewRunError(ReasonHalt, nil, nil)).TypeName())
}

func TestSymbolModuleSplit(t *testing.T) {
	ns, name, ok := Symbol("str:upper").ModuleSplit()
	assert.True(t, ok)
	assert.Equal(t, Symbol("str"), ns)
	assert.Equal(t, Symbol("upper"), name)

	_, _, ok = Symbol("upper").ModuleSplit()
	assert.False(t, ok)
}
