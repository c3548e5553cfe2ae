// Copyright © 2021 The Stax authors

package stack

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Kind enumerates the runtime value variants.  The set is closed.  Host
// programs requiring new variants wrap them in UserData instead of
// extending Kind.
type Kind int

const (
	KindNil Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindSymbol
	KindLazy
	KindList
	KindRecord
	KindFnMark
	KindError
	KindUserData
)

// UserData is the extension point for host values that have no native
// variant.  Values must be comparable for equality and renderable.
type UserData interface {
	TypeName() string
	String() string
	Equal(other UserData) bool
}

// FnMarker is the head element of a list that makes the list callable.  A
// scoped function pushes its captured scope for the duration of the call.
// A scopeless function runs in the caller's scope so its definitions leak.
type FnMarker struct {
	Scoped bool
	Scope  *Scope
}

// Expr is a program expression and a runtime value.  There is no
// distinction between the two; lists are data until their head marks them
// callable.
type Expr struct {
	Kind   Kind
	Bool   bool
	Int    int64
	Float  float64
	Str    string // payload for KindString and KindSymbol
	Cells  []*Expr
	Record map[Symbol]*Expr
	Fn     *FnMarker
	Err    *RunError
	User   UserData

	// Loc is the source offset the expression was read from, when known.
	Loc *Location
}

// Nil returns the nil value.
func Nil() *Expr { return &Expr{Kind: KindNil} }

// Bool returns a boolean value.
func Bool(b bool) *Expr { return &Expr{Kind: KindBool, Bool: b} }

// Int returns an integer value.
func Int(n int64) *Expr { return &Expr{Kind: KindInt, Int: n} }

// Float returns a float value.
func Float(f float64) *Expr { return &Expr{Kind: KindFloat, Float: f} }

// String returns a string value.
func String(s string) *Expr { return &Expr{Kind: KindString, Str: s} }

// SymbolExpr returns a symbol value.
func SymbolExpr(sym Symbol) *Expr { return &Expr{Kind: KindSymbol, Str: string(sym)} }

// Lazy returns v wrapped in one level of quoting.
func Lazy(v *Expr) *Expr { return &Expr{Kind: KindLazy, Cells: []*Expr{v}} }

// List returns a list of cells.
func List(cells ...*Expr) *Expr { return &Expr{Kind: KindList, Cells: cells} }

// RecordExpr returns a record value.
func RecordExpr(entries map[Symbol]*Expr) *Expr {
	return &Expr{Kind: KindRecord, Record: entries}
}

// FnMark returns a function marker expression.
func FnMark(scoped bool, scope *Scope) *Expr {
	return &Expr{Kind: KindFnMark, Fn: &FnMarker{Scoped: scoped, Scope: scope}}
}

// ErrorExpr wraps a runtime error as a first-class value.
func ErrorExpr(err *RunError) *Expr { return &Expr{Kind: KindError, Err: err} }

// UserDataExpr wraps host data as a value.
func UserDataExpr(u UserData) *Expr { return &Expr{Kind: KindUserData, User: u} }

// Symbol returns the symbol payload.  Valid only for KindSymbol.
func (e *Expr) Symbol() Symbol { return Symbol(e.Str) }

// Unlazy strips every level of quoting and returns the innermost
// expression.
func (e *Expr) Unlazy() *Expr {
	for e.Kind == KindLazy {
		e = e.Cells[0]
	}
	return e
}

// IsFunction reports whether e is a callable list, that is a list whose
// first cell is a function marker.
func (e *Expr) IsFunction() bool {
	return e.Kind == KindList && len(e.Cells) > 0 && e.Cells[0].Kind == KindFnMark
}

// FnMarker returns the marker of a callable list, or nil.
func (e *Expr) FnMarker() *FnMarker {
	if !e.IsFunction() {
		return nil
	}
	return e.Cells[0].Fn
}

// FnBody returns the body cells of a callable list, excluding the marker.
func (e *Expr) FnBody() []*Expr {
	if !e.IsFunction() {
		return nil
	}
	return e.Cells[1:]
}

// IsTruthy reports the boolean interpretation of e.  Only nil and false
// are falsy.
func (e *Expr) IsTruthy() bool {
	switch e.Kind {
	case KindNil:
		return false
	case KindBool:
		return e.Bool
	default:
		return true
	}
}

// TypeName returns the name of e's kind as seen by programs.
func (e *Expr) TypeName() string {
	switch e.Kind {
	case KindNil:
		return "nil"
	case KindBool:
		return "boolean"
	case KindInt:
		return "integer"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindSymbol:
		return "symbol"
	case KindLazy:
		return "lazy"
	case KindList:
		if e.IsFunction() {
			return "function"
		}
		return "list"
	case KindRecord:
		return "record"
	case KindFnMark:
		return "function"
	case KindError:
		return "error"
	case KindUserData:
		return e.User.TypeName()
	}
	return "unknown"
}

// Equal reports deep structural equality.  Integer and float values
// compare numerically across kinds.
func (e *Expr) Equal(other *Expr) bool {
	if e.Kind != other.Kind {
		if e.isNumeric() && other.isNumeric() {
			return e.asFloat() == other.asFloat()
		}
		return false
	}
	switch e.Kind {
	case KindNil:
		return true
	case KindBool:
		return e.Bool == other.Bool
	case KindInt:
		return e.Int == other.Int
	case KindFloat:
		return e.Float == other.Float
	case KindString, KindSymbol:
		return e.Str == other.Str
	case KindLazy:
		return e.Cells[0].Equal(other.Cells[0])
	case KindList:
		if len(e.Cells) != len(other.Cells) {
			return false
		}
		for i := range e.Cells {
			if !e.Cells[i].Equal(other.Cells[i]) {
				return false
			}
		}
		return true
	case KindRecord:
		if len(e.Record) != len(other.Record) {
			return false
		}
		for k, v := range e.Record {
			ov, ok := other.Record[k]
			if !ok || !v.Equal(ov) {
				return false
			}
		}
		return true
	case KindFnMark:
		return e.Fn == other.Fn
	case KindError:
		return e.Err.Reason == other.Err.Reason
	case KindUserData:
		return e.User.Equal(other.User)
	}
	return false
}

// Compare orders two values when the ordering is meaningful.  The second
// return is false for unordered pairs.
func (e *Expr) Compare(other *Expr) (int, bool) {
	if e.isNumeric() && other.isNumeric() {
		a, b := e.asFloat(), other.asFloat()
		switch {
		case a < b:
			return -1, true
		case a > b:
			return 1, true
		}
		return 0, true
	}
	if e.Kind != other.Kind {
		return 0, false
	}
	switch e.Kind {
	case KindString, KindSymbol:
		return strings.Compare(e.Str, other.Str), true
	case KindBool:
		switch {
		case e.Bool == other.Bool:
			return 0, true
		case other.Bool:
			return -1, true
		}
		return 1, true
	}
	return 0, false
}

func (e *Expr) isNumeric() bool {
	return e.Kind == KindInt || e.Kind == KindFloat
}

func (e *Expr) asFloat() float64 {
	if e.Kind == KindInt {
		return float64(e.Int)
	}
	return e.Float
}

// Clone returns a deep copy of e.  Function markers share their captured
// scope; everything else is copied.
func (e *Expr) Clone() *Expr {
	dup := *e
	if e.Cells != nil {
		dup.Cells = make([]*Expr, len(e.Cells))
		for i, c := range e.Cells {
			dup.Cells[i] = c.Clone()
		}
	}
	if e.Record != nil {
		dup.Record = make(map[Symbol]*Expr, len(e.Record))
		for k, v := range e.Record {
			dup.Record[k] = v.Clone()
		}
	}
	return &dup
}

// String renders e in its canonical printed form, the one the repl prints
// and programs read back.
func (e *Expr) String() string {
	var sb strings.Builder
	e.render(&sb)
	return sb.String()
}

func (e *Expr) render(sb *strings.Builder) {
	switch e.Kind {
	case KindNil:
		sb.WriteString("nil")
	case KindBool:
		sb.WriteString(strconv.FormatBool(e.Bool))
	case KindInt:
		sb.WriteString(strconv.FormatInt(e.Int, 10))
	case KindFloat:
		sb.WriteString(strconv.FormatFloat(e.Float, 'g', -1, 64))
	case KindString:
		sb.WriteString(strconv.Quote(e.Str))
	case KindSymbol:
		sb.WriteString(e.Str)
	case KindLazy:
		sb.WriteByte('\'')
		e.Cells[0].render(sb)
	case KindList:
		sb.WriteByte('(')
		for i, c := range e.Cells {
			if i > 0 {
				sb.WriteByte(' ')
			}
			c.render(sb)
		}
		sb.WriteByte(')')
	case KindRecord:
		keys := make([]string, 0, len(e.Record))
		for k := range e.Record {
			keys = append(keys, string(k))
		}
		sort.Strings(keys)
		sb.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(k)
			sb.WriteByte(' ')
			e.Record[Symbol(k)].render(sb)
		}
		sb.WriteByte('}')
	case KindFnMark:
		if e.Fn.Scoped {
			sb.WriteString("fn")
		} else {
			sb.WriteString("fn!")
		}
	case KindError:
		fmt.Fprintf(sb, "error(%s)", e.Err.Reason)
	case KindUserData:
		sb.WriteString(e.User.String())
	}
}
