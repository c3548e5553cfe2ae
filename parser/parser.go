// Copyright © 2021 The Stax authors

// Package parser implements the default program reader: a recursive
// descent parser over the lexer's token stream.
package parser

import (
	"fmt"
	"strconv"

	"github.com/luthersystems/stax/parser/lexer"
	"github.com/luthersystems/stax/parser/token"
	"github.com/luthersystems/stax/stack"
)

// NewReader returns a stack.Reader backed by the recursive descent parser.
func NewReader() stack.Reader {
	return &reader{}
}

type reader struct{}

func (r *reader) Read(src *stack.Source) ([]*stack.Expr, error) {
	toks, err := lexer.New(src.Name(), src.Content()).Tokens()
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	return p.parseProgram()
}

type parser struct {
	toks []*token.Token
	pos  int
}

func (p *parser) peek() *token.Token {
	return p.toks[p.pos]
}

func (p *parser) next() *token.Token {
	tok := p.toks[p.pos]
	if tok.Type != token.EOF {
		p.pos++
	}
	return tok
}

func (p *parser) errorf(tok *token.Token, format string, v ...interface{}) error {
	return &token.LocationError{
		Err:    fmt.Errorf(format, v...),
		Source: tok.Source,
	}
}

func (p *parser) parseProgram() ([]*stack.Expr, error) {
	var exprs []*stack.Expr
	for p.peek().Type != token.EOF {
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}

func (p *parser) parseExpr() (*stack.Expr, error) {
	tok := p.next()
	switch tok.Type {
	case token.QUOTE:
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return located(stack.Lazy(inner), tok), nil
	case token.PAREN_L:
		return p.parseList(tok)
	case token.BRACE_L:
		return p.parseRecord(tok)
	case token.INT:
		n, err := strconv.ParseInt(tok.Text, 10, 64)
		if err != nil {
			return nil, p.errorf(tok, "invalid integer literal %q", tok.Text)
		}
		return located(stack.Int(n), tok), nil
	case token.FLOAT:
		f, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			return nil, p.errorf(tok, "invalid float literal %q", tok.Text)
		}
		return located(stack.Float(f), tok), nil
	case token.STRING:
		return located(stack.String(tok.Text), tok), nil
	case token.SYMBOL:
		return located(symbolExpr(tok.Text), tok), nil
	case token.PAREN_R, token.BRACE_R:
		return nil, p.errorf(tok, "unexpected %q", tok.Text)
	case token.EOF:
		return nil, p.errorf(tok, "unexpected end of input")
	default:
		return nil, p.errorf(tok, "unexpected token %q", tok.Text)
	}
}

func (p *parser) parseList(open *token.Token) (*stack.Expr, error) {
	var cells []*stack.Expr
	for {
		switch p.peek().Type {
		case token.PAREN_R:
			p.next()
			return located(stack.List(cells...), open), nil
		case token.EOF:
			return nil, p.errorf(p.peek(), "unterminated list")
		}
		cell, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		cells = append(cells, cell)
	}
}

func (p *parser) parseRecord(open *token.Token) (*stack.Expr, error) {
	rec := make(map[stack.Symbol]*stack.Expr)
	for {
		switch p.peek().Type {
		case token.BRACE_R:
			p.next()
			return located(stack.RecordExpr(rec), open), nil
		case token.EOF:
			return nil, p.errorf(p.peek(), "unterminated record")
		}
		keyTok := p.next()
		var key stack.Symbol
		switch keyTok.Type {
		case token.SYMBOL:
			key = stack.Symbol(keyTok.Text)
		case token.STRING:
			key = stack.Symbol(keyTok.Text)
		default:
			return nil, p.errorf(keyTok, "record key must be a symbol or string")
		}
		if p.peek().Type == token.BRACE_R || p.peek().Type == token.EOF {
			return nil, p.errorf(keyTok, "record key %q has no value", keyTok.Text)
		}
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		rec[key] = value
	}
}

// symbolExpr maps reserved names to their literal values and fn markers;
// anything else is a plain symbol.
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

func located(expr *stack.Expr, tok *token.Token) *stack.Expr {
	if tok.Source != nil {
		expr.Loc = &stack.Location{
			Name:   tok.Source.File,
			Line:   tok.Source.Line,
			Column: tok.Source.Col,
		}
	}
	return expr
}
