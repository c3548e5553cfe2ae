// Copyright © 2021 The Stax authors

package stack

import (
	"io"
	"log"
	"os"
)

// Profiler receives call events from the engine.  Start is invoked when a
// callable list is entered and the returned function when it is left,
// recur iterations included.
type Profiler interface {
	Enabled() bool
	Start(name string, expr *Expr) func()
}

// Runtime carries the ambient facilities of an engine.
type Runtime struct {
	// Stdout receives the output of print.  Tests redirect it to
	// capture program output.
	Stdout io.Writer

	// Stderr receives diagnostics.
	Stderr io.Writer

	// Logger is used for engine diagnostics outside program output.
	Logger *log.Logger

	// Profiler, when non-nil and enabled, is notified of every call.
	Profiler Profiler
}

// StdRuntime returns a runtime writing to the standard streams.
func StdRuntime() *Runtime {
	return &Runtime{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Logger: log.New(os.Stderr, "stax: ", log.LstdFlags),
	}
}
