// Copyright © 2021 The Stax authors

package profiler_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opencensus.io/trace"

	"github.com/luthersystems/stax/parser"
	"github.com/luthersystems/stax/stack"
	"github.com/luthersystems/stax/stack/x/profiler"
)

// memExporter collects exported spans for inspection.
type memExporter struct {
	mu    sync.Mutex
	spans []*trace.SpanData
}

func (e *memExporter) ExportSpan(sd *trace.SpanData) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.spans = append(e.spans, sd)
}

func (e *memExporter) names() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	names := make([]string, len(e.spans))
	for i, sd := range e.spans {
		names[i] = sd.Name
	}
	return names
}

func TestNewOpenCensusAnnotator(t *testing.T) {
	trace.ApplyConfig(trace.Config{DefaultSampler: trace.AlwaysSample()})
	exporter := &memExporter{}
	trace.RegisterExporter(exporter)
	defer trace.UnregisterExporter(exporter)

	rt := stack.StdRuntime()
	eng := stack.NewEngine(rt).WithReader(parser.NewReader())
	ppa := profiler.NewOpenCensusAnnotator(rt, context.Background())
	require.NoError(t, ppa.Enable())

	ctx := stack.NewContext()
	require.NoError(t, eng.RunString(ctx, "test.stax", testProgram))
	require.NoError(t, ppa.Complete())

	assert.Equal(t, []string{"inc", "inc", "bump", "call"}, exporter.names())
}

func TestOpenCensusAnnotatorRequiresContext(t *testing.T) {
	rt := stack.StdRuntime()
	ppa := profiler.NewOpenCensusAnnotator(rt, nil)
	require.Error(t, ppa.Enable())
}
