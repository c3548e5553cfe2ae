// Copyright © 2021 The Stax authors

package libhelp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luthersystems/stax/stack"
)

func TestRenderIntrinsic(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderIntrinsic(&buf, "push"))
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "push", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "  "), "docs should be indented")
	assert.Contains(t, lines[1], "collection")
}

func TestRenderIntrinsicUnknown(t *testing.T) {
	var buf bytes.Buffer
	err := RenderIntrinsic(&buf, "bogus")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bogus")
}

func TestRenderIntrinsics(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderIntrinsics(&buf))
	out := buf.String()
	for _, sym := range stack.IntrinsicNames() {
		assert.Contains(t, out, string(sym)+"\n")
	}
}

func TestRenderModule(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderModule(&buf, stack.StrModule()))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "module str\n"))
	assert.Contains(t, out, "str:upper\n")
	assert.Contains(t, out, "str:join\n")
	// Functions render sorted.
	assert.Less(t, strings.Index(out, "str:contains"), strings.Index(out, "str:upper"))
}

func TestRenderModuleFunc(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderModuleFunc(&buf, stack.StrModule(), "trim"))
	assert.Contains(t, buf.String(), "str:trim\n")
	assert.Contains(t, buf.String(), "whitespace")

	err := RenderModuleFunc(&buf, stack.StrModule(), "nope")
	require.Error(t, err)
}

func TestCleanDocsWrapsAndIndents(t *testing.T) {
	long := strings.Repeat("word ", 30)
	out := cleanDocs(long)
	for _, line := range strings.Split(out, "\n") {
		assert.True(t, strings.HasPrefix(line, "  "))
		assert.LessOrEqual(t, len(line), 74)
	}
}

func TestDedentDoc(t *testing.T) {
	in := "first line\n    second line\n    third line"
	out := dedentDoc(in)
	assert.Equal(t, "first line\nsecond line\nthird line", out)
}
