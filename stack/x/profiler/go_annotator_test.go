// Copyright © 2021 The Stax authors

package profiler_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luthersystems/stax/parser"
	"github.com/luthersystems/stax/stack"
	"github.com/luthersystems/stax/stack/x/profiler"
)

func TestNewPprofAnnotator(t *testing.T) {
	rt := stack.StdRuntime()
	eng := stack.NewEngine(rt).WithReader(parser.NewReader())
	ppa := profiler.NewPprofAnnotator(rt, nil)
	require.NoError(t, ppa.Enable())

	ctx := stack.NewContext()
	require.NoError(t, eng.RunString(ctx, "test.stax", testProgram))
	require.NoError(t, ppa.Complete())
}

func TestPprofAnnotatorDoubleEnable(t *testing.T) {
	rt := stack.StdRuntime()
	ppa := profiler.NewPprofAnnotator(rt, context.Background())
	require.NoError(t, ppa.Enable())
	require.Error(t, ppa.Enable())
}
