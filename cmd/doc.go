// Copyright © 2021 The Stax authors

package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/luthersystems/stax/docs"
	"github.com/luthersystems/stax/libhelp"
	"github.com/luthersystems/stax/parser"
	"github.com/luthersystems/stax/stack"
	"github.com/spf13/cobra"
)

var docModule bool
var docListAll bool
var docGuide bool

// docCmd represents the doc command
var docCmd = &cobra.Command{
	Use:   "doc [flags] QUERY",
	Short: "Show stax documentation for operations and modules",
	Long: `Show built-in documentation for stax operations and module functions.

By default, looks up an operation by name. Qualified names such as
str:upper look up a module function. Use -m to list every function a
module exports, or -l to list every built-in operation.

Examples:
  stax doc push                    Show docs for the push operation
  stax doc str:upper               Show docs for a qualified function
  stax doc -m str                  List all functions in the str module
  stax doc -l                      List every built-in operation
  stax doc -g                      Print the language guide`,
	Run: func(cmd *cobra.Command, args []string) {
		if docGuide {
			fmt.Print(docs.LangGuide)
			return
		}
		if docListAll {
			if err := docListOps(); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			return
		}
		if len(args) != 1 {
			_ = cmd.Help()
			os.Exit(1)
		}
		if err := docExec(args[0]); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

func docListOps() error {
	out := bufio.NewWriter(os.Stdout)
	defer out.Flush() //nolint:errcheck // best-effort flush on exit
	return libhelp.RenderIntrinsics(out)
}

func docExec(query string) error {
	eng := stack.NewEngine(stack.StdRuntime()).
		WithReader(parser.NewReader()).
		WithModule(stack.StrModule())

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush() //nolint:errcheck // best-effort flush on exit

	if docModule {
		m, ok := eng.Module(stack.Symbol(query))
		if !ok {
			return fmt.Errorf("unknown module: %s", query)
		}
		return libhelp.RenderModule(out, m)
	}
	if ns, fn, ok := stack.Symbol(query).ModuleSplit(); ok {
		m, found := eng.Module(ns)
		if !found {
			return fmt.Errorf("unknown module: %s", ns)
		}
		return libhelp.RenderModuleFunc(out, m, fn)
	}
	return libhelp.RenderIntrinsic(out, stack.Symbol(strings.TrimSpace(query)))
}

func init() {
	rootCmd.AddCommand(docCmd)

	docCmd.Flags().BoolVarP(&docModule, "module", "m", false,
		"Interpret the argument as a module name.")
	docCmd.Flags().BoolVarP(&docListAll, "list", "l", false,
		"List every built-in operation with its documentation.")
	docCmd.Flags().BoolVarP(&docGuide, "guide", "g", false,
		"Print the language guide.")
}
