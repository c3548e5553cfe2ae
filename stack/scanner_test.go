// Copyright © 2021 The Stax authors

package stack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fnList(scoped bool, body ...*Expr) *Expr {
	cells := append([]*Expr{FnMark(scoped, NewScope())}, body...)
	return List(cells...)
}

func TestScanCapturesAmbient(t *testing.T) {
	ambient := NewScope()
	ambient.Define("a", Int(0))

	fn := fnList(true, SymbolExpr("a"), Int(1), SymbolExpr("+"), Lazy(SymbolExpr("a")), SymbolExpr("set"))
	scanned, err := NewScanner(ambient.Duplicate()).Scan(fn)
	require.NoError(t, err)
	require.True(t, scanned.IsFunction())

	captured := scanned.FnMarker().Scope
	v, ok := captured.Get("a")
	require.True(t, ok)
	assert.True(t, v.Equal(Int(0)))

	// The capture aliases the ambient binding through the duplicate.
	assert.True(t, captured.Set("a", Int(5)))
	v, _ = ambient.Get("a")
	assert.True(t, v.Equal(Int(5)))
}

func TestScanSkipsIntrinsicsAndModuleCalls(t *testing.T) {
	ambient := NewScope()

	fn := fnList(true, SymbolExpr("+"), SymbolExpr("drop"), SymbolExpr("str:upper"))
	scanned, err := NewScanner(ambient.Duplicate()).Scan(fn)
	require.NoError(t, err)

	captured := scanned.FnMarker().Scope
	assert.False(t, captured.Has("+"))
	assert.False(t, captured.Has("drop"))
	assert.False(t, captured.Has("str:upper"))
}

func TestScanReservesUnknownNames(t *testing.T) {
	ambient := NewScope()

	fn := fnList(true, SymbolExpr("ghost"))
	scanned, err := NewScanner(ambient.Duplicate()).Scan(fn)
	require.NoError(t, err)

	captured := scanned.FnMarker().Scope
	assert.True(t, captured.Has("ghost"))
	_, ok := captured.Get("ghost")
	assert.False(t, ok)
}

func TestScanNestedFunction(t *testing.T) {
	ambient := NewScope()
	ambient.Define("x", Int(7))

	inner := fnList(true, SymbolExpr("x"))
	fn := fnList(true, Lazy(inner))
	scanned, err := NewScanner(ambient.Duplicate()).Scan(fn)
	require.NoError(t, err)

	body := scanned.FnBody()
	require.Len(t, body, 1)
	scannedInner := body[0].Unlazy()
	require.True(t, scannedInner.IsFunction())

	v, ok := scannedInner.FnMarker().Scope.Get("x")
	require.True(t, ok)
	assert.True(t, v.Equal(Int(7)))
}

func TestScanPassesThroughPlainLists(t *testing.T) {
	list := List(Int(1), Int(2))
	scanned, err := NewScanner(NewScope()).Scan(list)
	require.NoError(t, err)
	assert.Same(t, list, scanned)
}
