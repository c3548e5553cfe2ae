// Copyright © 2021 The Stax authors

package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luthersystems/stax/parser/token"
)

type lexWant struct {
	typ  token.Type
	text string
}

func lex(t *testing.T, src string, want []lexWant) {
	toks, err := New("test.stax", src).Tokens()
	require.NoError(t, err)
	require.Len(t, toks, len(want)+1, "tokens: %v", toks)
	for i, w := range want {
		assert.Equal(t, w.typ, toks[i].Type, "token %d", i)
		assert.Equal(t, w.text, toks[i].Text, "token %d", i)
	}
	assert.Equal(t, token.EOF, toks[len(toks)-1].Type)
}

func TestLexNumbers(t *testing.T) {
	lex(t, "1 23 -4 2.5 -0.5 0", []lexWant{
		{token.INT, "1"},
		{token.INT, "23"},
		{token.INT, "-4"},
		{token.FLOAT, "2.5"},
		{token.FLOAT, "-0.5"},
		{token.INT, "0"},
	})
}

func TestLexSymbols(t *testing.T) {
	lex(t, "x foo-bar str:upper + != <= fn fn! -", []lexWant{
		{token.SYMBOL, "x"},
		{token.SYMBOL, "foo-bar"},
		{token.SYMBOL, "str:upper"},
		{token.SYMBOL, "+"},
		{token.SYMBOL, "!="},
		{token.SYMBOL, "<="},
		{token.SYMBOL, "fn"},
		{token.SYMBOL, "fn!"},
		{token.SYMBOL, "-"},
	})
}

func TestLexStrings(t *testing.T) {
	lex(t, `"hello" "a b" "" "tab\there" "quote\"d"`, []lexWant{
		{token.STRING, "hello"},
		{token.STRING, "a b"},
		{token.STRING, ""},
		{token.STRING, "tab\there"},
		{token.STRING, `quote"d`},
	})
}

func TestLexDelimiters(t *testing.T) {
	lex(t, "'( ) { }", []lexWant{
		{token.QUOTE, "'"},
		{token.PAREN_L, "("},
		{token.PAREN_R, ")"},
		{token.BRACE_L, "{"},
		{token.BRACE_R, "}"},
	})
}

func TestLexComments(t *testing.T) {
	lex(t, "1 ; the rest is ignored\n2", []lexWant{
		{token.INT, "1"},
		{token.INT, "2"},
	})
}

func TestLexInvalid(t *testing.T) {
	_, err := New("test.stax", "12abc").Tokens()
	assert.Error(t, err)

	_, err = New("test.stax", `"unterminated`).Tokens()
	assert.Error(t, err)

	_, err = New("test.stax", "#").Tokens()
	assert.Error(t, err)
}

func TestLexLocations(t *testing.T) {
	toks, err := New("test.stax", "1 2\n  x").Tokens()
	require.NoError(t, err)
	require.Len(t, toks, 4)

	assert.Equal(t, 1, toks[0].Source.Line)
	assert.Equal(t, 1, toks[0].Source.Col)
	assert.Equal(t, 1, toks[1].Source.Line)
	assert.Equal(t, 3, toks[1].Source.Col)
	assert.Equal(t, 2, toks[2].Source.Line)
	assert.Equal(t, 3, toks[2].Source.Col)
	assert.Equal(t, "test.stax", toks[2].Source.File)
}

func TestLexBOM(t *testing.T) {
	lex(t, "\uFEFF1", []lexWant{{token.INT, "1"}})
}
