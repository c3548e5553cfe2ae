// Copyright © 2021 The Stax authors

package stack

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// langIntrinsic pairs an intrinsic's name with its implementation and a
// short usage description rendered by the help system.
type langIntrinsic struct {
	name Symbol
	docs string
	fn   Func
}

var langIntrinsics = []*langIntrinsic{
	{"+", "pop two numbers and push their sum", opAdd},
	{"-", "pop two numbers and push their difference", opSub},
	{"*", "pop two numbers and push their product", opMul},
	{"/", "pop two numbers and push their quotient", opDiv},
	{"%", "pop two numbers and push their remainder", opRem},
	{"=", "pop two values and push whether they are equal", opEq},
	{"!=", "pop two values and push whether they differ", opNe},
	{"<", "pop two values and push whether the lower is less", opLt},
	{"<=", "pop two values and push whether the lower is at most the upper", opLe},
	{">", "pop two values and push whether the lower is greater", opGt},
	{">=", "pop two values and push whether the lower is at least the upper", opGe},
	{"or", "pop two values and push whether either is truthy", opOr},
	{"and", "pop two values and push whether both are truthy", opAnd},
	{"not", "pop a value and push its negated truthiness", opNot},
	{"assert", "pop a condition and a message; fail with the message unless truthy", opAssert},
	{"drop", "discard the top of the stack", opDrop},
	{"dupe", "push a copy of the top of the stack", opDupe},
	{"swap", "exchange the top two stack values", opSwap},
	{"rot", "rotate the third stack value to the top", opRot},
	{"len", "push the length of the list, string, or record on top", opLen},
	{"nth", "pop an index and push the element at it", opNth},
	{"split", "pop an index and split the list or string there", opSplit},
	{"concat", "pop two lists or strings and push their concatenation", opConcat},
	{"push", "pop a collection and a value and push the extended collection", opPush},
	{"pop", "split a collection into its last element and the rest", opPop},
	{"insert", "pop a record, value, and name and push the extended record", opInsert},
	{"prop", "pop a name and a record and push the named value", opProp},
	{"has", "pop a name and a record and push whether the name is present", opHas},
	{"remove", "pop a record and a name and push the record without it", opRemove},
	{"keys", "push the list of keys of the record on top", opKeys},
	{"values", "push the list of values of the record on top", opValues},
	{"cast", "pop a type name and convert the value beneath it", opCast},
	{"lazy", "pop a value and push it quoted", opLazy},
	{"if", "pop a condition and a body; run the body when truthy", opIf},
	{"halt", "stop the program", opHalt},
	{"call", "pop a value and run it", opCall},
	{"let", "pop a names list and a body; bind values and run the body", opLet},
	{"def", "pop a name and a value and define the name", opDef},
	{"set", "pop a name and a value and assign an existing binding", opSet},
	{"get", "pop a name and push its bound value", opGet},
	{"print", "pop a value and print it", opPrint},
	{"pretty", "pop a value and print its canonical form", opPretty},
	{"recur", "push the tail-recursion sentinel", opRecur},
	{"orelse", "pop two values and push the first unless it is nil", opOrElse},
	{"import", "pop a path and run the source it names", opImport},
}

var intrinsicIndex map[Symbol]*langIntrinsic

func init() {
	intrinsicIndex = make(map[Symbol]*langIntrinsic, len(langIntrinsics))
	for _, in := range langIntrinsics {
		intrinsicIndex[in.name] = in
	}
}

func lookupIntrinsic(sym Symbol) (Func, bool) {
	in, ok := intrinsicIndex[sym]
	if !ok {
		return nil, false
	}
	return in.fn, true
}

// IsIntrinsic reports whether sym names a built-in operation.
func IsIntrinsic(sym Symbol) bool {
	_, ok := intrinsicIndex[sym]
	return ok
}

// IntrinsicNames returns every intrinsic name in definition order.
func IntrinsicNames() []Symbol {
	names := make([]Symbol, len(langIntrinsics))
	for i, in := range langIntrinsics {
		names[i] = in.name
	}
	return names
}

// IntrinsicDocs returns the usage description for an intrinsic.
func IntrinsicDocs(sym Symbol) (string, bool) {
	in, ok := intrinsicIndex[sym]
	if !ok {
		return "", false
	}
	return in.docs, true
}

func pop2(ctx *Context) (lhs, rhs *Expr, err error) {
	rhs, err = ctx.Pop()
	if err != nil {
		return nil, nil, err
	}
	lhs, err = ctx.Pop()
	if err != nil {
		return nil, nil, err
	}
	return lhs, rhs, nil
}

// numeric applies one of intFn or floatFn to two numeric operands.
// Integer pairs stay integral with saturation at the bounds; mixed pairs
// promote to float.  Non-numeric operands yield nil so programs can test
// for the coercion instead of failing.
func numeric(ctx *Context, intFn func(a, b int64) *Expr, floatFn func(a, b float64) *Expr) error {
	lhs, rhs, err := pop2(ctx)
	if err != nil {
		return err
	}
	switch {
	case lhs.Kind == KindInt && rhs.Kind == KindInt:
		return ctx.Push(intFn(lhs.Int, rhs.Int))
	case lhs.isNumeric() && rhs.isNumeric():
		return ctx.Push(floatFn(lhs.asFloat(), rhs.asFloat()))
	default:
		return ctx.Push(Nil())
	}
}

func satAdd(a, b int64) *Expr {
	if b > 0 && a > math.MaxInt64-b {
		return Int(math.MaxInt64)
	}
	if b < 0 && a < math.MinInt64-b {
		return Int(math.MinInt64)
	}
	return Int(a + b)
}

func satSub(a, b int64) *Expr {
	if b < 0 && a > math.MaxInt64+b {
		return Int(math.MaxInt64)
	}
	if b > 0 && a < math.MinInt64+b {
		return Int(math.MinInt64)
	}
	return Int(a - b)
}

func satMul(a, b int64) *Expr {
	if a == 0 || b == 0 {
		return Int(0)
	}
	p := a * b
	if p/b != a {
		if (a > 0) == (b > 0) {
			return Int(math.MaxInt64)
		}
		return Int(math.MinInt64)
	}
	return Int(p)
}

func opAdd(_ *Engine, ctx *Context, _ *Expr) error {
	return numeric(ctx, satAdd, func(a, b float64) *Expr { return Float(a + b) })
}

func opSub(_ *Engine, ctx *Context, _ *Expr) error {
	return numeric(ctx, satSub, func(a, b float64) *Expr { return Float(a - b) })
}

func opMul(_ *Engine, ctx *Context, _ *Expr) error {
	return numeric(ctx, satMul, func(a, b float64) *Expr { return Float(a * b) })
}

func opDiv(_ *Engine, ctx *Context, _ *Expr) error {
	return numeric(ctx,
		func(a, b int64) *Expr {
			if b == 0 {
				return Nil()
			}
			if a == math.MinInt64 && b == -1 {
				return Int(math.MaxInt64)
			}
			return Int(a / b)
		},
		func(a, b float64) *Expr { return Float(a / b) })
}

func opRem(_ *Engine, ctx *Context, _ *Expr) error {
	return numeric(ctx,
		func(a, b int64) *Expr {
			if b == 0 {
				return Nil()
			}
			return Int(a % b)
		},
		func(a, b float64) *Expr { return Float(math.Mod(a, b)) })
}

func opEq(_ *Engine, ctx *Context, _ *Expr) error {
	lhs, rhs, err := pop2(ctx)
	if err != nil {
		return err
	}
	return ctx.Push(Bool(lhs.Equal(rhs)))
}

func opNe(_ *Engine, ctx *Context, _ *Expr) error {
	lhs, rhs, err := pop2(ctx)
	if err != nil {
		return err
	}
	return ctx.Push(Bool(!lhs.Equal(rhs)))
}

func compare(ctx *Context, want func(c int) bool) error {
	lhs, rhs, err := pop2(ctx)
	if err != nil {
		return err
	}
	c, ok := lhs.Compare(rhs)
	return ctx.Push(Bool(ok && want(c)))
}

func opLt(_ *Engine, ctx *Context, _ *Expr) error {
	return compare(ctx, func(c int) bool { return c < 0 })
}

func opLe(_ *Engine, ctx *Context, _ *Expr) error {
	return compare(ctx, func(c int) bool { return c <= 0 })
}

func opGt(_ *Engine, ctx *Context, _ *Expr) error {
	return compare(ctx, func(c int) bool { return c > 0 })
}

func opGe(_ *Engine, ctx *Context, _ *Expr) error {
	return compare(ctx, func(c int) bool { return c >= 0 })
}

func opOr(_ *Engine, ctx *Context, _ *Expr) error {
	lhs, rhs, err := pop2(ctx)
	if err != nil {
		return err
	}
	return ctx.Push(Bool(lhs.IsTruthy() || rhs.IsTruthy()))
}

func opAnd(_ *Engine, ctx *Context, _ *Expr) error {
	lhs, rhs, err := pop2(ctx)
	if err != nil {
		return err
	}
	return ctx.Push(Bool(lhs.IsTruthy() && rhs.IsTruthy()))
}

func opNot(_ *Engine, ctx *Context, _ *Expr) error {
	v, err := ctx.Pop()
	if err != nil {
		return err
	}
	return ctx.Push(Bool(!v.IsTruthy()))
}

func opAssert(_ *Engine, ctx *Context, expr *Expr) error {
	cond, err := ctx.Pop()
	if err != nil {
		return err
	}
	message, err := ctx.Pop()
	if err != nil {
		return err
	}
	if cond.IsTruthy() {
		return nil
	}
	return NewRunError(ReasonAssertionFailed, ctx, message)
}

func opDrop(_ *Engine, ctx *Context, _ *Expr) error {
	_, err := ctx.Pop()
	return err
}

func opDupe(_ *Engine, ctx *Context, expr *Expr) error {
	top, ok := ctx.Peek()
	if !ok {
		return NewRunError(ReasonStackUnderflow, ctx, expr)
	}
	return ctx.Push(top)
}

func opSwap(_ *Engine, ctx *Context, _ *Expr) error {
	a, b, err := pop2(ctx)
	if err != nil {
		return err
	}
	if err := ctx.Push(b); err != nil {
		return err
	}
	return ctx.Push(a)
}

func opRot(_ *Engine, ctx *Context, _ *Expr) error {
	c, err := ctx.Pop()
	if err != nil {
		return err
	}
	b, err := ctx.Pop()
	if err != nil {
		return err
	}
	a, err := ctx.Pop()
	if err != nil {
		return err
	}
	if err := ctx.Push(b); err != nil {
		return err
	}
	if err := ctx.Push(c); err != nil {
		return err
	}
	return ctx.Push(a)
}

func opLen(_ *Engine, ctx *Context, _ *Expr) error {
	item, err := ctx.Pop()
	if err != nil {
		return err
	}
	var length *Expr
	switch item.Kind {
	case KindList:
		length = Int(int64(len(item.Cells)))
	case KindString:
		length = Int(int64(len([]rune(item.Str))))
	case KindRecord:
		length = Int(int64(len(item.Record)))
	default:
		length = Nil()
	}
	if err := ctx.Push(item); err != nil {
		return err
	}
	return ctx.Push(length)
}

func opNth(_ *Engine, ctx *Context, _ *Expr) error {
	item, index, err := pop2(ctx)
	if err != nil {
		return err
	}
	out := Nil()
	if index.Kind == KindInt && index.Int >= 0 {
		i := int(index.Int)
		switch item.Kind {
		case KindList:
			if i < len(item.Cells) {
				out = item.Cells[i]
			}
		case KindString:
			runes := []rune(item.Str)
			if i < len(runes) {
				out = String(string(runes[i]))
			}
		}
	}
	if err := ctx.Push(item); err != nil {
		return err
	}
	return ctx.Push(out)
}

func opSplit(_ *Engine, ctx *Context, _ *Expr) error {
	item, index, err := pop2(ctx)
	if err != nil {
		return err
	}
	if index.Kind != KindInt || index.Int < 0 {
		if err := ctx.Push(Nil()); err != nil {
			return err
		}
		return ctx.Push(Nil())
	}
	i := int(index.Int)
	switch item.Kind {
	case KindList:
		if i < len(item.Cells) {
			if err := ctx.Push(List(item.Cells[:i]...)); err != nil {
				return err
			}
			return ctx.Push(List(item.Cells[i:]...))
		}
		if err := ctx.Push(item); err != nil {
			return err
		}
		return ctx.Push(Nil())
	case KindString:
		runes := []rune(item.Str)
		if i < len(runes) {
			if err := ctx.Push(String(string(runes[:i]))); err != nil {
				return err
			}
			return ctx.Push(String(string(runes[i:])))
		}
		if err := ctx.Push(item); err != nil {
			return err
		}
		return ctx.Push(Nil())
	default:
		if err := ctx.Push(Nil()); err != nil {
			return err
		}
		return ctx.Push(Nil())
	}
}

func opConcat(_ *Engine, ctx *Context, _ *Expr) error {
	lhs, rhs, err := pop2(ctx)
	if err != nil {
		return err
	}
	switch {
	case lhs.Kind == KindList && rhs.Kind == KindList:
		cells := make([]*Expr, 0, len(lhs.Cells)+len(rhs.Cells))
		cells = append(cells, lhs.Cells...)
		cells = append(cells, rhs.Cells...)
		return ctx.Push(List(cells...))
	case lhs.Kind == KindString && rhs.Kind == KindString:
		return ctx.Push(String(lhs.Str + rhs.Str))
	default:
		return ctx.Push(Nil())
	}
}

func opPush(_ *Engine, ctx *Context, _ *Expr) error {
	item, coll, err := pop2(ctx)
	if err != nil {
		return err
	}
	switch {
	case coll.Kind == KindList:
		cells := make([]*Expr, 0, len(coll.Cells)+1)
		cells = append(cells, coll.Cells...)
		cells = append(cells, item)
		return ctx.Push(List(cells...))
	case coll.Kind == KindString && item.Kind == KindString:
		return ctx.Push(String(coll.Str + item.Str))
	case coll.Kind == KindString && item.Kind == KindInt:
		if item.Int >= 0 && item.Int <= 0x10FFFF {
			return ctx.Push(String(coll.Str + string(rune(item.Int))))
		}
		return ctx.Push(Nil())
	default:
		return ctx.Push(Nil())
	}
}

func opPop(_ *Engine, ctx *Context, _ *Expr) error {
	coll, err := ctx.Pop()
	if err != nil {
		return err
	}
	switch coll.Kind {
	case KindList:
		if len(coll.Cells) == 0 {
			if err := ctx.Push(coll); err != nil {
				return err
			}
			return ctx.Push(Nil())
		}
		last := coll.Cells[len(coll.Cells)-1]
		if err := ctx.Push(List(coll.Cells[:len(coll.Cells)-1]...)); err != nil {
			return err
		}
		return ctx.Push(last)
	case KindString:
		runes := []rune(coll.Str)
		if len(runes) == 0 {
			if err := ctx.Push(coll); err != nil {
				return err
			}
			return ctx.Push(Nil())
		}
		if err := ctx.Push(String(string(runes[:len(runes)-1]))); err != nil {
			return err
		}
		return ctx.Push(String(string(runes[len(runes)-1])))
	default:
		if err := ctx.Push(coll); err != nil {
			return err
		}
		return ctx.Push(Nil())
	}
}

// recordKey coerces a popped name to a record key.
func recordKey(ctx *Context, expr, name *Expr) (Symbol, error) {
	switch name.Kind {
	case KindSymbol:
		return name.Symbol(), nil
	case KindString:
		return Symbol(name.Str), nil
	default:
		return "", NewRunError(ReasonUnknownCall, ctx, expr)
	}
}

func opInsert(_ *Engine, ctx *Context, expr *Expr) error {
	record, err := ctx.Pop()
	if err != nil {
		return err
	}
	value, err := ctx.Pop()
	if err != nil {
		return err
	}
	name, err := ctx.Pop()
	if err != nil {
		return err
	}
	if record.Kind != KindRecord {
		return ctx.Push(Nil())
	}
	key, err := recordKey(ctx, expr, name)
	if err != nil {
		return err
	}
	next := make(map[Symbol]*Expr, len(record.Record)+1)
	for k, v := range record.Record {
		next[k] = v
	}
	next[key] = value
	return ctx.Push(RecordExpr(next))
}

func opProp(_ *Engine, ctx *Context, expr *Expr) error {
	record, name, err := pop2(ctx)
	if err != nil {
		return err
	}
	if record.Kind != KindRecord {
		return ctx.Push(Nil())
	}
	key, err := recordKey(ctx, expr, name)
	if err != nil {
		return err
	}
	out := Nil()
	if v, ok := record.Record[key]; ok {
		out = v
	}
	if err := ctx.Push(record); err != nil {
		return err
	}
	return ctx.Push(out)
}

func opHas(_ *Engine, ctx *Context, expr *Expr) error {
	record, name, err := pop2(ctx)
	if err != nil {
		return err
	}
	if record.Kind != KindRecord {
		return ctx.Push(Nil())
	}
	key, err := recordKey(ctx, expr, name)
	if err != nil {
		return err
	}
	_, ok := record.Record[key]
	if err := ctx.Push(record); err != nil {
		return err
	}
	return ctx.Push(Bool(ok))
}

func opRemove(_ *Engine, ctx *Context, expr *Expr) error {
	record, err := ctx.Pop()
	if err != nil {
		return err
	}
	name, err := ctx.Pop()
	if err != nil {
		return err
	}
	if record.Kind != KindRecord {
		return ctx.Push(Nil())
	}
	key, err := recordKey(ctx, expr, name)
	if err != nil {
		return err
	}
	next := make(map[Symbol]*Expr, len(record.Record))
	for k, v := range record.Record {
		if k != key {
			next[k] = v
		}
	}
	return ctx.Push(RecordExpr(next))
}

func sortedRecordKeys(record *Expr) []Symbol {
	keys := make([]Symbol, 0, len(record.Record))
	for k := range record.Record {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func opKeys(_ *Engine, ctx *Context, _ *Expr) error {
	record, err := ctx.Pop()
	if err != nil {
		return err
	}
	if record.Kind != KindRecord {
		return ctx.Push(Nil())
	}
	keys := sortedRecordKeys(record)
	cells := make([]*Expr, len(keys))
	for i, k := range keys {
		cells[i] = SymbolExpr(k)
	}
	if err := ctx.Push(record); err != nil {
		return err
	}
	return ctx.Push(List(cells...))
}

func opValues(_ *Engine, ctx *Context, _ *Expr) error {
	record, err := ctx.Pop()
	if err != nil {
		return err
	}
	if record.Kind != KindRecord {
		return ctx.Push(Nil())
	}
	keys := sortedRecordKeys(record)
	cells := make([]*Expr, len(keys))
	for i, k := range keys {
		cells[i] = record.Record[k]
	}
	if err := ctx.Push(record); err != nil {
		return err
	}
	return ctx.Push(List(cells...))
}

func opCast(_ *Engine, ctx *Context, _ *Expr) error {
	ty, err := ctx.Pop()
	if err != nil {
		return err
	}
	item, err := ctx.Pop()
	if err != nil {
		return err
	}
	if ty.Kind != KindString {
		return ctx.Push(Nil())
	}
	return ctx.Push(castTo(item, ty.Str))
}

func castTo(item *Expr, ty string) *Expr {
	switch ty {
	case "boolean":
		switch item.Kind {
		case KindNil:
			return Bool(false)
		case KindBool:
			return item
		case KindInt:
			return Bool(item.Int != 0)
		case KindFloat:
			return Bool(item.Float != 0)
		}
	case "integer":
		switch item.Kind {
		case KindNil:
			return Int(0)
		case KindBool:
			if item.Bool {
				return Int(1)
			}
			return Int(0)
		case KindInt:
			return item
		case KindFloat:
			f := math.Floor(item.Float)
			if math.IsNaN(f) || math.IsInf(f, 0) || f < math.MinInt64 || f > math.MaxInt64 {
				return Nil()
			}
			return Int(int64(f))
		case KindString:
			if n, err := strconv.ParseInt(strings.TrimSpace(item.Str), 10, 64); err == nil {
				return Int(n)
			}
		}
	case "float":
		switch item.Kind {
		case KindNil:
			return Float(0)
		case KindBool:
			if item.Bool {
				return Float(1)
			}
			return Float(0)
		case KindInt:
			return Float(float64(item.Int))
		case KindFloat:
			return item
		case KindString:
			if f, err := strconv.ParseFloat(strings.TrimSpace(item.Str), 64); err == nil {
				return Float(f)
			}
		}
	case "string":
		switch item.Kind {
		case KindString:
			return item
		case KindSymbol:
			return String(item.Str)
		default:
			return String(item.String())
		}
	case "symbol":
		switch item.Kind {
		case KindNil, KindBool:
			return item
		case KindString:
			return SymbolExpr(Symbol(item.Str))
		case KindSymbol:
			return item
		}
	case "record":
		switch item.Kind {
		case KindRecord:
			return item
		case KindList:
			rec := make(map[Symbol]*Expr, len(item.Cells))
			for _, pair := range item.Cells {
				if pair.Kind == KindList && len(pair.Cells) == 2 {
					rec[Symbol(pair.Cells[0].String())] = pair.Cells[1]
				}
			}
			return RecordExpr(rec)
		}
	case "list":
		switch item.Kind {
		case KindList:
			return item
		case KindRecord:
			keys := sortedRecordKeys(item)
			cells := make([]*Expr, len(keys))
			for i, k := range keys {
				cells[i] = List(SymbolExpr(k), item.Record[k])
			}
			return List(cells...)
		}
	}
	return Nil()
}

func opLazy(_ *Engine, ctx *Context, _ *Expr) error {
	v, err := ctx.Pop()
	if err != nil {
		return err
	}
	return ctx.Push(Lazy(v))
}

func opIf(e *Engine, ctx *Context, _ *Expr) error {
	cond, err := ctx.Pop()
	if err != nil {
		return err
	}
	body, err := ctx.Pop()
	if err != nil {
		return err
	}
	if !cond.IsTruthy() {
		return nil
	}
	return e.RunBody(ctx, body)
}

func opHalt(_ *Engine, ctx *Context, expr *Expr) error {
	return NewRunError(ReasonHalt, ctx, expr)
}

func opCall(e *Engine, ctx *Context, _ *Expr) error {
	body, err := ctx.Pop()
	if err != nil {
		return err
	}
	return e.RunBody(ctx, body)
}

func opLet(e *Engine, ctx *Context, expr *Expr) error {
	names, err := ctx.Pop()
	if err != nil {
		return err
	}
	body, err := ctx.Pop()
	if err != nil {
		return err
	}
	if names.Kind != KindList {
		return NewRunError(ReasonInvalidLet, ctx, expr)
	}
	syms := make([]Symbol, len(names.Cells))
	for i, cell := range names.Cells {
		if cell.Kind != KindSymbol {
			return NewRunError(ReasonInvalidLet, ctx, expr)
		}
		syms[i] = cell.Symbol()
	}

	ctx.LetPush()
	for i := len(syms) - 1; i >= 0; i-- {
		v, err := ctx.Pop()
		if err != nil {
			return err
		}
		ctx.LetBind(syms[i], v)
	}

	if j := ctx.Journal(); j != nil {
		j.Commit()
		j.Op(JournalOp{Kind: OpFnStart})
	}

	if err := e.RunBody(ctx, body); err != nil {
		return err
	}
	ctx.LetPop()

	if j := ctx.Journal(); j != nil {
		j.Commit()
		j.Op(JournalOp{Kind: OpFnEnd})
	}
	return nil
}

func opDef(_ *Engine, ctx *Context, expr *Expr) error {
	name, err := ctx.Pop()
	if err != nil {
		return err
	}
	value, err := ctx.Pop()
	if err != nil {
		return err
	}
	if name.Kind != KindSymbol {
		return NewRunError(ReasonInvalidDefinition, ctx, expr)
	}
	ctx.DefScopeItem(name.Symbol(), value)
	return nil
}

func opSet(_ *Engine, ctx *Context, expr *Expr) error {
	name, err := ctx.Pop()
	if err != nil {
		return err
	}
	value, err := ctx.Pop()
	if err != nil {
		return err
	}
	if name.Kind != KindSymbol {
		return NewRunError(ReasonInvalidDefinition, ctx, expr)
	}
	if !ctx.SetScopeItem(name.Symbol(), value) {
		return NewRunError(ReasonCannotSetBeforeDef, ctx, expr)
	}
	return nil
}

func opGet(_ *Engine, ctx *Context, expr *Expr) error {
	name, err := ctx.Pop()
	if err != nil {
		return err
	}
	if name.Kind != KindSymbol {
		return NewRunError(ReasonUnknownCall, ctx, expr)
	}
	v, ok := ctx.ScopeItem(name.Symbol())
	if !ok {
		return NewRunError(ReasonUnknownCall, ctx, expr)
	}
	return ctx.Push(v)
}

func opPrint(e *Engine, ctx *Context, _ *Expr) error {
	v, err := ctx.Pop()
	if err != nil {
		return err
	}
	if v.Kind == KindString {
		fmt.Fprintln(e.runtime.Stdout, v.Str)
		return nil
	}
	fmt.Fprintln(e.runtime.Stdout, v)
	return nil
}

func opPretty(e *Engine, ctx *Context, _ *Expr) error {
	v, err := ctx.Pop()
	if err != nil {
		return err
	}
	fmt.Fprintln(e.runtime.Stdout, v)
	return nil
}

func opRecur(_ *Engine, ctx *Context, _ *Expr) error {
	return ctx.Push(SymbolExpr(SymbolRecur))
}

func opOrElse(_ *Engine, ctx *Context, _ *Expr) error {
	lhs, rhs, err := pop2(ctx)
	if err != nil {
		return err
	}
	if lhs.Kind == KindNil {
		return ctx.Push(rhs)
	}
	return ctx.Push(lhs)
}

func opImport(e *Engine, ctx *Context, expr *Expr) error {
	path, err := ctx.Pop()
	if err != nil {
		return err
	}
	if path.Kind != KindString {
		return NewRunError(ReasonUnknownCall, ctx, expr)
	}
	src, err := LoadSource(path.Str)
	if err != nil {
		return err
	}
	// An import runs in the caller's scope, like a scopeless function,
	// so the imported definitions land where the import happened.
	return e.RunSource(ctx, src)
}
