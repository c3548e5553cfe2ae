// Copyright © 2021 The Stax authors

// Package lexer splits program text into tokens.  It is a small state
// machine: every token type is decided by its first rune and consumed
// greedily from there.
package lexer

import (
	"fmt"
	"strings"

	"github.com/luthersystems/stax/parser/token"
)

// Symbol runes beyond letters and digits.  Symbols soak up operator
// punctuation so names like <=, !=, and str:upper are single tokens.
const symbolRunes = "_+-*/%=<>!?:&~$."

// Lexer scans one source stream.
type Lexer struct {
	file  string
	runes []rune
	pos   int
	line  int
	col   int
}

// New returns a lexer over text.  A leading byte order mark is skipped.
func New(file, text string) *Lexer {
	text = strings.TrimPrefix(text, "\uFEFF")
	return &Lexer{
		file:  file,
		runes: []rune(text),
		line:  1,
		col:   1,
	}
}

// Tokens scans the entire stream.  Comments are dropped.  The final token
// is always EOF unless an invalid token stops the scan.
func (l *Lexer) Tokens() ([]*token.Token, error) {
	var toks []*token.Token
	for {
		tok := l.ReadToken()
		switch tok.Type {
		case token.COMMENT:
			continue
		case token.INVALID, token.ERROR:
			return nil, &token.LocationError{
				Err:    fmt.Errorf("invalid token %q", tok.Text),
				Source: tok.Source,
			}
		}
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks, nil
		}
	}
}

// ReadToken scans and returns the next token.
func (l *Lexer) ReadToken() *token.Token {
	l.skipSpace()
	loc := l.location()
	if l.eof() {
		return &token.Token{Type: token.EOF, Source: loc}
	}
	c := l.peek()
	switch {
	case c == '(':
		l.next()
		return &token.Token{Type: token.PAREN_L, Text: "(", Source: loc}
	case c == ')':
		l.next()
		return &token.Token{Type: token.PAREN_R, Text: ")", Source: loc}
	case c == '{':
		l.next()
		return &token.Token{Type: token.BRACE_L, Text: "{", Source: loc}
	case c == '}':
		l.next()
		return &token.Token{Type: token.BRACE_R, Text: "}", Source: loc}
	case c == '\'':
		l.next()
		return &token.Token{Type: token.QUOTE, Text: "'", Source: loc}
	case c == ';':
		return l.readComment(loc)
	case c == '"':
		return l.readString(loc)
	case c >= '0' && c <= '9':
		return l.readNumber(loc, false)
	case c == '-':
		return l.readMinus(loc)
	case isSymbolRune(c):
		return l.readSymbol(loc)
	default:
		l.next()
		return &token.Token{Type: token.INVALID, Text: string(c), Source: loc}
	}
}

func (l *Lexer) readComment(loc *token.Location) *token.Token {
	start := l.pos
	for !l.eof() && l.peek() != '\n' {
		l.next()
	}
	return &token.Token{Type: token.COMMENT, Text: string(l.runes[start:l.pos]), Source: loc}
}

// readMinus decides between a negative number and a symbol beginning with
// a minus sign.
func (l *Lexer) readMinus(loc *token.Location) *token.Token {
	if l.pos+1 < len(l.runes) {
		c := l.runes[l.pos+1]
		if c >= '0' && c <= '9' {
			return l.readNumber(loc, true)
		}
	}
	return l.readSymbol(loc)
}

func (l *Lexer) readNumber(loc *token.Location, neg bool) *token.Token {
	start := l.pos
	if neg {
		l.next()
	}
	typ := token.INT
	for !l.eof() {
		c := l.peek()
		if c >= '0' && c <= '9' {
			l.next()
			continue
		}
		if c == '.' && typ == token.INT {
			typ = token.FLOAT
			l.next()
			continue
		}
		break
	}
	text := string(l.runes[start:l.pos])
	// A trailing letter glues the number into a malformed symbol.
	if !l.eof() && isSymbolRune(l.peek()) {
		for !l.eof() && isSymbolRune(l.peek()) {
			l.next()
		}
		return &token.Token{Type: token.INVALID, Text: string(l.runes[start:l.pos]), Source: loc}
	}
	return &token.Token{Type: typ, Text: text, Source: loc}
}

func (l *Lexer) readString(loc *token.Location) *token.Token {
	var sb strings.Builder
	l.next()
	for {
		if l.eof() {
			return &token.Token{Type: token.INVALID, Text: sb.String(), Source: loc}
		}
		c := l.next()
		switch c {
		case '"':
			return &token.Token{Type: token.STRING, Text: sb.String(), Source: loc}
		case '\\':
			if l.eof() {
				return &token.Token{Type: token.INVALID, Text: sb.String(), Source: loc}
			}
			e := l.next()
			switch e {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			case '0':
				sb.WriteByte(0)
			default:
				sb.WriteRune(e)
			}
		default:
			sb.WriteRune(c)
		}
	}
}

func (l *Lexer) readSymbol(loc *token.Location) *token.Token {
	start := l.pos
	for !l.eof() && isSymbolRune(l.peek()) {
		l.next()
	}
	return &token.Token{Type: token.SYMBOL, Text: string(l.runes[start:l.pos]), Source: loc}
}

func (l *Lexer) skipSpace() {
	for !l.eof() {
		switch l.peek() {
		case ' ', '\t', '\r', '\n':
			l.next()
		default:
			return
		}
	}
}

func (l *Lexer) location() *token.Location {
	return &token.Location{File: l.file, Pos: l.pos, Line: l.line, Col: l.col}
}

func (l *Lexer) eof() bool {
	return l.pos >= len(l.runes)
}

func (l *Lexer) peek() rune {
	return l.runes[l.pos]
}

func (l *Lexer) next() rune {
	c := l.runes[l.pos]
	l.pos++
	if c == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return c
}

func isSymbolRune(c rune) bool {
	if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' {
		return true
	}
	return strings.ContainsRune(symbolRunes, c)
}
