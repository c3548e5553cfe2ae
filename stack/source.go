// Copyright © 2021 The Stax authors

package stack

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// Location is a resolved position within a source.
type Location struct {
	Name   string
	Line   int // 1-based
	Column int // 1-based, counted in runes
}

func (l *Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.Name, l.Line, l.Column)
}

// Source is a named unit of program text.  It retains the offsets of line
// starts so byte offsets can be resolved to line and column for error
// reports.
type Source struct {
	name       string
	content    string
	lineStarts []int
}

// NewSource builds a source from in-memory text.
func NewSource(name, content string) *Source {
	starts := []int{0}
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &Source{name: name, content: content, lineStarts: starts}
}

// LoadSource reads a source from a file.
func LoadSource(path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return NewSource(path, string(data)), nil
}

// Name returns the source's name, usually its path.
func (s *Source) Name() string { return s.name }

// Content returns the program text.
func (s *Source) Content() string { return s.content }

// Location resolves a byte offset to a line and column.  Offsets past the
// end resolve to the end of the last line.
func (s *Source) Location(offset int) Location {
	if offset > len(s.content) {
		offset = len(s.content)
	}
	line := sort.Search(len(s.lineStarts), func(i int) bool {
		return s.lineStarts[i] > offset
	}) - 1
	col := 1 + len([]rune(s.content[s.lineStarts[line]:offset]))
	return Location{Name: s.name, Line: line + 1, Column: col}
}

// Line returns the text of a 1-based line without its terminator.
func (s *Source) Line(n int) string {
	if n < 1 || n > len(s.lineStarts) {
		return ""
	}
	start := s.lineStarts[n-1]
	end := len(s.content)
	if n < len(s.lineStarts) {
		end = s.lineStarts[n] - 1
	}
	return strings.TrimSuffix(s.content[start:end], "\r")
}
