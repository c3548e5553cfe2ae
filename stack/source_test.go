// Copyright © 2021 The Stax authors

package stack

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSourceLocation(t *testing.T) {
	src := NewSource("test.stax", "1 2 +\n'x def\n\nx\n")
	for _, test := range []struct {
		offset int
		line   int
		col    int
	}{
		{0, 1, 1},
		{2, 1, 3},
		{4, 1, 5},
		{6, 2, 1},
		{9, 2, 4},
		{12, 2, 7},
		{13, 3, 1},
		{14, 4, 1},
	} {
		loc := src.Location(test.offset)
		assert.Equal(t, test.line, loc.Line, "offset %d", test.offset)
		assert.Equal(t, test.col, loc.Column, "offset %d", test.offset)
		assert.Equal(t, "test.stax", loc.Name)
	}
}

func TestSourceLocationPastEnd(t *testing.T) {
	src := NewSource("test.stax", "ab")
	loc := src.Location(99)
	assert.Equal(t, 1, loc.Line)
	assert.Equal(t, 3, loc.Column)
}

func TestSourceLocationMultibyte(t *testing.T) {
	// Columns count runes, offsets count bytes.
	src := NewSource("test.stax", "αβ x")
	loc := src.Location(5)
	assert.Equal(t, 1, loc.Line)
	assert.Equal(t, 4, loc.Column)
}

func TestSourceLine(t *testing.T) {
	src := NewSource("test.stax", "first\nsecond\r\nthird")
	assert.Equal(t, "first", src.Line(1))
	assert.Equal(t, "second", src.Line(2))
	assert.Equal(t, "third", src.Line(3))
	assert.Equal(t, "", src.Line(0))
	assert.Equal(t, "", src.Line(4))
}

func TestLocationString(t *testing.T) {
	loc := &Location{Name: "test.stax", Line: 2, Column: 5}
	assert.Equal(t, "test.stax:2:5", loc.String())
}
