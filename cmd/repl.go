// Copyright © 2021 The Stax authors

package cmd

import (
	"os"
	"path/filepath"

	"github.com/luthersystems/stax/repl"
	"github.com/spf13/cobra"
)

// replCmd represents the repl command
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive stax REPL",
	Long: `Start an interactive read-eval-print loop for stax.

The str module is loaded automatically. Line editing and in-session
command history are supported via readline. Use Ctrl-D or Ctrl-C to
exit. The stack is printed after every entry; -- marks an empty stack.

Example REPL session:
  stax> 1 2 +
  3
  stax> dupe *
  9
  stax> 'x def
  --
  stax> "hello" str:upper
  "HELLO"`,
	Run: func(cmd *cobra.Command, args []string) {
		repl.RunRepl(filepath.Base(os.Args[0]) + "> ")
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}
