// Copyright © 2021 The Stax authors

/*
Package staxparser provides a combinator based program reader.

	expr   := '\'' <expr> | '(' <expr>* ')' | '{' (<key> <expr>)* '}' | <term>
	term   := <number> | <string> | <symbol>
	number := /-?[0-9]+([.][0-9]+)?/
	string := '"' <strcontent> '"'
	symbol := /[^\s(){}'";]+/

It produces the same expression trees as the default reader and exists for
hosts that want a grammar they can extend with additional combinators.
*/
package staxparser

import (
	"fmt"
	"strconv"
	"strings"

	parsec "github.com/prataprc/goparsec"

	"github.com/luthersystems/stax/stack"
)

// NewReader returns a stack.Reader backed by the combinator parser.
func NewReader() stack.Reader {
	return &parsecReader{}
}

type parsecReader struct{}

func (p *parsecReader) Read(src *stack.Source) ([]*stack.Expr, error) {
	return Parse([]byte(src.Content()))
}

// Parse parses expressions from text.
func Parse(text []byte) ([]*stack.Expr, error) {
	var v []*stack.Expr
	s := parsec.NewScanner(text)
	s = s.TrackLineno()
	parser := newParsecParser()
	root, s := parser(s)
	for root != nil {
		expr, err := getExpr(root)
		if err != nil {
			return nil, err
		}
		if expr != nil {
			v = append(v, expr)
		}
		root, s = parser(s)
	}
	_, s = s.SkipWS()
	if !s.Endof() {
		b, _ := s.Match(`.{1,16}`)
		if len(b) > 15 {
			b = append(b[:15:15], []byte("...")...)
		}
		return nil, fmt.Errorf("%d: unexpected source text possibly starting: %s", s.Lineno(), b)
	}
	return v, nil
}

const (
	nodeInvalid nodeType = iota
	nodeTerm
	nodeList
	nodeRecord
	nodeQuote
	nodeComment
)

func newParsecParser() parsec.Parser {
	openP := parsec.Atom("(", "OPENP")
	closeP := parsec.Atom(")", "CLOSEP")
	openB := parsec.Atom("{", "OPENB")
	closeB := parsec.Atom("}", "CLOSEB")
	q := parsec.Atom("'", "QUOTE")
	comment := parsec.Token(`;([^\n]*[^\s])?`, "COMMENT")
	decimal := parsec.Token(`-?[0-9]+([.][0-9]+)?`, "DECIMAL")
	symbol := parsec.Token(`[^\s(){}'";]+`, "SYMBOL")
	term := parsec.OrdChoice(astNode(nodeTerm),
		parsec.String(),
		decimal,
		symbol, // symbol comes last because it swallows anything
	)
	var expr parsec.Parser // forward declaration allows for recursive parsing
	exprList := parsec.Kleene(nil, &expr)
	list := parsec.And(astNode(nodeList), openP, exprList, closeP)
	record := parsec.And(astNode(nodeRecord), openB, exprList, closeB)
	qexpr := parsec.And(astNode(nodeQuote), q, &expr)
	expr = parsec.OrdChoice(nil,
		comment,
		term,
		list,
		record,
		qexpr,
	)
	return expr
}

type nodeType uint

type ast struct {
	typ   nodeType
	exprs []*stack.Expr
	err   error
}

func astNode(typ nodeType) parsec.Nodify {
	return func(nodes []parsec.ParsecNode) parsec.ParsecNode {
		return newAST(typ, nodes)
	}
}

func newAST(typ nodeType, nodes []parsec.ParsecNode) parsec.ParsecNode {
	out := &ast{typ: typ}
	for _, n := range flatten(nodes) {
		switch n := n.(type) {
		case *ast:
			if n.err != nil {
				out.err = n.err
				return out
			}
			if n.typ == nodeComment {
				continue
			}
			out.exprs = append(out.exprs, n.exprs...)
		case string:
			// parsec.String() yields the quoted literal as a plain string.
			out.exprs = append(out.exprs, stack.String(unquoteString(n)))
		case *parsec.Terminal:
			expr, err := terminalExpr(n)
			if err != nil {
				out.err = err
				return out
			}
			if expr != nil {
				out.exprs = append(out.exprs, expr)
			}
		}
	}
	return finishAST(out)
}

func finishAST(out *ast) parsec.ParsecNode {
	if out.err != nil {
		return out
	}
	switch out.typ {
	case nodeTerm:
		return out
	case nodeList:
		cells := out.exprs
		out.exprs = []*stack.Expr{stack.List(cells...)}
		return out
	case nodeRecord:
		if len(out.exprs)%2 != 0 {
			out.err = fmt.Errorf("record literal has a key with no value")
			return out
		}
		rec := make(map[stack.Symbol]*stack.Expr, len(out.exprs)/2)
		for i := 0; i < len(out.exprs); i += 2 {
			key := out.exprs[i]
			switch key.Kind {
			case stack.KindSymbol, stack.KindString:
				rec[stack.Symbol(key.Str)] = out.exprs[i+1]
			default:
				out.err = fmt.Errorf("record key must be a symbol or string")
				return out
			}
		}
		out.exprs = []*stack.Expr{stack.RecordExpr(rec)}
		return out
	case nodeQuote:
		if len(out.exprs) != 1 {
			out.err = fmt.Errorf("quote requires an expression")
			return out
		}
		out.exprs = []*stack.Expr{stack.Lazy(out.exprs[0])}
		return out
	}
	return out
}

func terminalExpr(term *parsec.Terminal) (*stack.Expr, error) {
	switch term.Name {
	case "COMMENT":
		return nil, nil
	case "OPENP", "CLOSEP", "OPENB", "CLOSEB", "QUOTE":
		return nil, nil
	case "DECIMAL":
		if strings.ContainsRune(term.Value, '.') {
			f, err := strconv.ParseFloat(term.Value, 64)
			if err != nil {
				return nil, fmt.Errorf("bad number: %v (%s)", err, term.Value)
			}
			return stack.Float(f), nil
		}
		n, err := strconv.ParseInt(term.Value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad number: %v (%s)", err, term.Value)
		}
		return stack.Int(n), nil
	case "SYMBOL":
		return symbolExpr(term.Value), nil
	}
	return nil, fmt.Errorf("unexpected token %q", term.Value)
}

func symbolExpr(text string) *stack.Expr {
	switch text {
	case "nil":
		return stack.Nil()
	case "true":
		return stack.Bool(true)
	case "false":
		return stack.Bool(false)
	case "fn":
		return stack.FnMark(true, stack.NewScope())
	case "fn!":
		return stack.FnMark(false, stack.NewScope())
	default:
		return stack.SymbolExpr(stack.Symbol(text))
	}
}

func getExpr(root parsec.ParsecNode) (*stack.Expr, error) {
	switch root := root.(type) {
	case *ast:
		if root.err != nil {
			return nil, root.err
		}
		if len(root.exprs) == 0 {
			return nil, nil
		}
		return root.exprs[0], nil
	case string:
		return stack.String(unquoteString(root)), nil
	case *parsec.Terminal:
		return terminalExpr(root)
	case []parsec.ParsecNode:
		// OrdChoice without a Nodify wraps the winning alternative.
		if len(root) == 1 {
			return getExpr(root[0])
		}
	}
	return nil, nil
}

func flatten(nodes []parsec.ParsecNode) []parsec.ParsecNode {
	var out []parsec.ParsecNode
	for _, n := range nodes {
		if sub, ok := n.([]parsec.ParsecNode); ok {
			out = append(out, flatten(sub)...)
			continue
		}
		out = append(out, n)
	}
	return out
}

func unquoteString(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		if u, err := strconv.Unquote(s); err == nil {
			return u
		}
		return s[1 : len(s)-1]
	}
	return s
}
