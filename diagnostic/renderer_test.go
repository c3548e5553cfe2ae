// Copyright © 2021 The Stax authors

package diagnostic

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memReader(files map[string]string) func(string) ([]byte, error) {
	return func(name string) ([]byte, error) {
		if content, ok := files[name]; ok {
			return []byte(content), nil
		}
		return nil, fmt.Errorf("no source %s", name)
	}
}

func TestRenderHeaderOnly(t *testing.T) {
	r := &Renderer{Color: ColorNever}
	var buf bytes.Buffer
	err := r.Render(&buf, Diagnostic{
		Severity: SeverityError,
		Message:  "unknown call: bogus",
	})
	require.NoError(t, err)
	assert.Equal(t, "error: unknown call: bogus\n", buf.String())
}

func TestRenderSpanWithSource(t *testing.T) {
	r := &Renderer{
		Color:        ColorNever,
		SourceReader: memReader(map[string]string{"test.stax": "1 bogus +\n"}),
	}
	var buf bytes.Buffer
	err := r.Render(&buf, Diagnostic{
		Severity: SeverityError,
		Message:  "unknown call",
		Spans: []Span{{
			File:  "test.stax",
			Line:  1,
			Col:   3,
			Label: "not defined",
		}},
	})
	require.NoError(t, err)
	want := "error: unknown call\n" +
		"  --> test.stax:1:3\n" +
		"   |\n" +
		" 1 |  1 bogus +\n" +
		"   |    ^^^^^ not defined\n" +
		"   |\n"
	assert.Equal(t, want, buf.String())
}

func TestRenderSpanWithoutSource(t *testing.T) {
	r := &Renderer{
		Color:        ColorNever,
		SourceReader: memReader(nil),
	}
	var buf bytes.Buffer
	err := r.Render(&buf, Diagnostic{
		Severity: SeverityWarning,
		Message:  "shadowed name",
		Spans:    []Span{{File: "gone.stax", Line: 3, Col: 1}},
	})
	require.NoError(t, err)
	want := "warning: shadowed name\n" +
		"  --> gone.stax:3:1\n" +
		"   |\n"
	assert.Equal(t, want, buf.String())
}

func TestRenderNotes(t *testing.T) {
	r := &Renderer{Color: ColorNever}
	var buf bytes.Buffer
	err := r.Render(&buf, Diagnostic{
		Severity: SeverityError,
		Message:  "halt",
		Notes:    []string{"in count at test.stax:1:1"},
	})
	require.NoError(t, err)
	want := "error: halt\n" +
		"   = note: in count at test.stax:1:1\n"
	assert.Equal(t, want, buf.String())
}

func TestRenderAll(t *testing.T) {
	r := &Renderer{Color: ColorNever}
	var buf bytes.Buffer
	err := r.RenderAll(&buf, []Diagnostic{
		{Severity: SeverityError, Message: "first"},
		{Severity: SeverityNote, Message: "second"},
	})
	require.NoError(t, err)
	assert.Equal(t, "error: first\n\nnote: second\n", buf.String())
}

func TestDetectEndCol(t *testing.T) {
	assert.Equal(t, 7, detectEndCol("1 bogus +", 3))
	assert.Equal(t, 1, detectEndCol("x", 1))
	assert.Equal(t, 99, detectEndCol("short", 99))
}
