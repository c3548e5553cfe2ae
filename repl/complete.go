// Copyright © 2021 The Stax authors

package repl

import (
	"sort"
	"strings"

	"github.com/luthersystems/stax/stack"
)

// symbolCompleter implements readline.AutoCompleter by enumerating the
// intrinsics, module functions, and scope names visible in the running
// context.
type symbolCompleter struct {
	eng *stack.Engine
	ctx *stack.Context
}

func (c *symbolCompleter) Do(line []rune, pos int) ([][]rune, int) {
	// Walk back from the cursor to the start of the word being typed.
	start := pos
	for start > 0 {
		ch := line[start-1]
		if ch == ' ' || ch == '\t' || ch == '\n' || ch == '(' || ch == '{' || ch == '\'' {
			break
		}
		start--
	}
	prefix := string(line[start:pos])
	if prefix == "" {
		return nil, 0
	}

	candidates := c.collectSymbols(prefix)
	if len(candidates) == 0 {
		return nil, 0
	}

	result := make([][]rune, 0, len(candidates))
	for _, sym := range candidates {
		if sym == prefix {
			continue
		}
		result = append(result, []rune(sym[len(prefix):]))
	}
	return result, len(prefix)
}

func (c *symbolCompleter) collectSymbols(prefix string) []string {
	seen := make(map[string]bool)
	var result []string
	add := func(name string) {
		if strings.HasPrefix(name, prefix) && !seen[name] {
			seen[name] = true
			result = append(result, name)
		}
	}

	for _, name := range stack.IntrinsicNames() {
		add(string(name))
	}

	if c.ctx != nil {
		for _, name := range c.ctx.CurrentScope().Names() {
			add(string(name))
		}
	}

	if c.eng != nil {
		for _, m := range c.eng.Modules() {
			ns := string(m.Name()) + ":"
			// Offer the namespace itself, then its functions.
			add(ns)
			for _, fn := range m.Funcs() {
				add(ns + string(fn))
			}
		}
	}

	sort.Strings(result)
	return result
}
