// Copyright © 2021 The Stax authors

// Package libhelp renders usage documentation for intrinsics and module
// functions.
package libhelp

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"github.com/luthersystems/stax/stack"
)

// RenderIntrinsic writes the documentation for a single intrinsic.
func RenderIntrinsic(w io.Writer, sym stack.Symbol) error {
	docs, ok := stack.IntrinsicDocs(sym)
	if !ok {
		return fmt.Errorf("unknown operation: %s", sym)
	}
	return renderEntry(w, string(sym), docs)
}

// RenderIntrinsics writes the documentation for every intrinsic in
// definition order.
func RenderIntrinsics(w io.Writer) error {
	for _, sym := range stack.IntrinsicNames() {
		docs, _ := stack.IntrinsicDocs(sym)
		if err := renderEntry(w, string(sym), docs); err != nil {
			return err
		}
	}
	return nil
}

// RenderModule writes the documentation for every function a module
// exports, sorted by name.
func RenderModule(w io.Writer, m *stack.Module) error {
	if _, err := fmt.Fprintf(w, "module %s\n", m.Name()); err != nil {
		return err
	}
	funcs := m.Funcs()
	sort.Slice(funcs, func(i, j int) bool { return funcs[i] < funcs[j] })
	for _, fn := range funcs {
		docs, _ := m.Docs(fn)
		name := string(m.Name()) + ":" + string(fn)
		if err := renderEntry(w, name, docs); err != nil {
			return err
		}
	}
	return nil
}

// RenderModuleFunc writes the documentation for a single qualified
// module function.
func RenderModuleFunc(w io.Writer, m *stack.Module, fn stack.Symbol) error {
	if _, ok := m.Func(fn); !ok {
		return fmt.Errorf("unknown function: %s:%s", m.Name(), fn)
	}
	docs, _ := m.Docs(fn)
	return renderEntry(w, string(m.Name())+":"+string(fn), docs)
}

func renderEntry(w io.Writer, name, docs string) error {
	if _, err := fmt.Fprintln(w, name); err != nil {
		return err
	}
	if docs == "" {
		return nil
	}
	_, err := fmt.Fprintln(w, cleanDocs(docs))
	return err
}

func cleanDocs(doc string) string {
	if doc == "" {
		return ""
	}
	if doc[0] == '\n' {
		doc = doc[1:]
	}
	doc = indent.String(wordwrap.String(dedentDoc(doc), 72), 2)
	doc = strings.TrimSuffix(doc, "\n")
	return doc
}

// dedentDoc removes common leading whitespace from all non-empty lines.
// It handles raw string literals where the first line may have less
// indentation than continuation lines.  Tabs are normalized to spaces
// before processing.
func dedentDoc(s string) string {
	s = strings.ReplaceAll(s, "\t", "    ")
	lines := strings.Split(s, "\n")

	minWS := -1
	start := 0
	if len(lines) > 1 {
		start = 1
	}
	for _, line := range lines[start:] {
		trimmed := strings.TrimLeft(line, " ")
		if trimmed == "" {
			continue
		}
		ws := len(line) - len(trimmed)
		if minWS < 0 || ws < minWS {
			minWS = ws
		}
	}
	if minWS <= 0 {
		return strings.TrimLeft(lines[0], " ") + "\n" + strings.Join(lines[1:], "\n")
	}

	lines[0] = strings.TrimLeft(lines[0], " ")
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "" {
			lines[i] = ""
		} else if len(lines[i]) >= minWS {
			lines[i] = lines[i][minWS:]
		}
	}
	return strings.Join(lines, "\n")
}
