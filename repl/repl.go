// Copyright © 2021 The Stax authors

// Package repl implements the interactive evaluator.  Input accumulates
// across lines until it parses as a complete program, runs against one
// long-lived context, and the stack is printed after every entry.
package repl

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ergochat/readline"

	"github.com/luthersystems/stax/parser"
	"github.com/luthersystems/stax/stack"
)

type config struct {
	stdin   io.ReadCloser
	stderr  io.WriteCloser
	modules []*stack.Module
}

func newConfig(opts ...Option) *config {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Option configures the repl.
type Option func(*config)

// WithStdin overrides the repl's input stream.
func WithStdin(stdin io.ReadCloser) Option {
	return func(c *config) {
		c.stdin = stdin
	}
}

// WithStderr overrides the repl's output stream.
func WithStderr(stderr io.WriteCloser) Option {
	return func(c *config) {
		c.stderr = stderr
	}
}

// WithModule registers an extra host module.
func WithModule(m *stack.Module) Option {
	return func(c *config) {
		c.modules = append(c.modules, m)
	}
}

// RunRepl runs a repl over a fresh engine with the built-in modules
// loaded.
func RunRepl(prompt string, opts ...Option) {
	cfg := newConfig(opts...)

	rt := stack.StdRuntime()
	if cfg.stderr != nil {
		rt.Stderr = cfg.stderr
	}
	eng := stack.NewEngine(rt).
		WithReader(parser.NewReader()).
		WithModule(stack.StrModule())
	for _, m := range cfg.modules {
		eng.WithModule(m)
	}
	ctx := stack.NewContext()

	RunEngine(eng, ctx, prompt, strings.Repeat(" ", len(prompt)), opts...)
}

// RunEngine runs a repl over a caller-configured engine and context.
func RunEngine(eng *stack.Engine, ctx *stack.Context, prompt, cont string, opts ...Option) {
	cfg := newConfig(opts...)
	out := eng.Runtime().Stderr
	if cfg.stderr != nil {
		out = cfg.stderr
		eng.Runtime().Stderr = cfg.stderr
	}

	history := historyPath()
	ensureHistoryFilePermissions(history)
	rlCfg := &readline.Config{
		Stdout:            out,
		Stderr:            out,
		Prompt:            prompt,
		HistoryFile:       history,
		HistorySearchFold: true,
		AutoComplete:      &symbolCompleter{eng: eng, ctx: ctx},
	}
	if cfg.stdin != nil {
		rlCfg.Stdin = cfg.stdin
	}
	rl, err := readline.NewEx(rlCfg)
	if err != nil {
		panic(err)
	}
	defer rl.Close() //nolint:errcheck // best-effort cleanup

	entry := 0
	var pending string
	for {
		if pending == "" {
			rl.SetPrompt(prompt)
		} else {
			rl.SetPrompt(cont)
		}
		line, err := rl.ReadSlice()
		if err == readline.ErrInterrupt {
			pending = ""
			continue
		}
		if err != nil {
			break
		}
		if pending == "" && len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		pending += string(line) + "\n"

		entry++
		name := fmt.Sprintf("repl:%d", entry)
		src := stack.NewSource(name, pending)
		if _, perr := parser.NewReader().Read(src); perr != nil {
			if needsMore(perr) {
				entry--
				continue
			}
			fmt.Fprintln(out, perr) //nolint:errcheck // best-effort error display
			pending = ""
			continue
		}
		code := pending
		pending = ""

		if rerr := eng.RunString(ctx, name, code); rerr != nil {
			renderError(out, ctx, rerr)
		}
		printStack(out, ctx)
	}
}

// needsMore reports whether a parse error means the entry is incomplete
// rather than wrong, so the repl should keep reading lines.
func needsMore(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "unterminated list") ||
		strings.Contains(msg, "unterminated record") ||
		strings.Contains(msg, "unexpected end of input")
}

func printStack(w io.Writer, ctx *stack.Context) {
	vals := ctx.Stack()
	if len(vals) == 0 {
		fmt.Fprintln(w, "--") //nolint:errcheck // best-effort REPL output
		return
	}
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = v.String()
	}
	fmt.Fprintln(w, strings.Join(parts, " ")) //nolint:errcheck // best-effort REPL output
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".stax_history")
}

// ensureHistoryFilePermissions creates the history file when missing
// and restricts it to the owner.  Command history can contain secrets
// pasted at the prompt.
func ensureHistoryFilePermissions(path string) {
	if path == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE, 0600)
	if err != nil {
		return
	}
	f.Close() //nolint:errcheck,gosec // best-effort cleanup
	_ = os.Chmod(path, 0600)
}
