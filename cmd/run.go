// Copyright © 2021 The Stax authors

package cmd

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/luthersystems/stax/diagnostic"
	"github.com/luthersystems/stax/parser"
	"github.com/luthersystems/stax/stack"
	"github.com/spf13/cobra"
)

var (
	runExpression bool
	runPrintStack bool
	runTimeout    time.Duration
	runJournal    string
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run stax code",
	Long:  `Run stax code supplied via the command line or a file.`,
	Run: func(cmd *cobra.Command, args []string) {
		eng := stack.NewEngine(stack.StdRuntime()).
			WithReader(parser.NewReader()).
			WithModule(stack.StrModule())
		if runTimeout > 0 {
			eng.WithTimeout(runTimeout)
		}

		ctx := stack.NewContext()
		var journal *stack.Journal
		if runJournal != "" {
			journal = stack.NewJournal()
			ctx.WithJournal(journal)
		}

		if runExpression {
			for i, expr := range args {
				name := fmt.Sprintf("arg:%d", i+1)
				if err := eng.RunString(ctx, name, expr); err != nil {
					exitError(ctx, err)
				}
			}
		} else {
			paths, err := expandArgs(args)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			for _, path := range paths {
				src, err := stack.LoadSource(path)
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(1)
				}
				if err := eng.RunSource(ctx, src); err != nil {
					exitError(ctx, err)
				}
			}
		}

		if runJournal != "" {
			f, err := os.Create(runJournal)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			defer f.Close() //nolint:errcheck // checked via WriteSnapshot
			if err := journal.WriteSnapshot(f); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			if lg := eng.Runtime().Logger; lg != nil {
				lg.Printf("wrote journal snapshot %s (%d entries)", runJournal, journal.Len())
			}
		}

		if runPrintStack {
			printFinalStack(ctx)
		}
	},
}

// exitError renders an annotated diagnostic for a runtime failure and
// terminates with a nonzero status.
func exitError(ctx *stack.Context, err error) {
	r := &diagnostic.Renderer{
		Color: colorMode(),
		SourceReader: func(name string) ([]byte, error) {
			src, ok := ctx.Source(name)
			if !ok {
				return os.ReadFile(name)
			}
			return []byte(src.Content()), nil
		},
	}
	_ = r.Render(os.Stderr, runErrorDiag(err))
	os.Exit(1)
}

// expandArgs resolves any argument ending in "/..." to the .stax sources
// found under that directory, in lexical walk order. Hidden directories
// are skipped. Other arguments pass through unchanged.
func expandArgs(args []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		dir, ok := strings.CutSuffix(arg, "/...")
		if !ok {
			out = append(out, arg)
			continue
		}
		if dir == "" {
			dir = "."
		}
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != dir && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if filepath.Ext(path) == ".stax" {
				out = append(out, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("expanding %s: %w", arg, err)
		}
	}
	return out, nil
}

func printFinalStack(ctx *stack.Context) {
	vals := ctx.Stack()
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = v.String()
	}
	fmt.Println(strings.Join(parts, " "))
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVarP(&runExpression, "expression", "e", false,
		"Interpret arguments as stax expressions")
	runCmd.Flags().BoolVarP(&runPrintStack, "print", "p", false,
		"Print the final stack to stdout")
	runCmd.Flags().DurationVar(&runTimeout, "timeout", 0,
		"Abort evaluation after the given duration")
	runCmd.Flags().StringVar(&runJournal, "journal", "",
		"Record evaluation and write a snapshot to the given file")
}
