// Copyright © 2021 The Stax authors

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	colorFlag string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "stax",
	Short: "Stax stack language interpreter",
	Long: `Stax is a small stack-oriented language implemented in Go. It provides a
standalone CLI for running and exploring stax programs.

Getting started:
  stax run file.stax           Run a source file
  stax run -e '1 2 +'          Evaluate an expression
  stax repl                    Start an interactive REPL
  stax doc push                Show documentation for an operation
  stax doc -m str              List all functions in a module

Language overview:
  A program is a sequence of words read left to right against a value
  stack. Literals push themselves; symbols call what they name. Lists
  quoted with ' are data; lists starting with fn or fn! are functions
  that capture the surrounding scope when pushed. def and set bind
  names, let binds a scope tier over a body, recur restarts the
  innermost function for iteration.

Modules provide namespaced host functions called with qualified names
such as str:upper. Use stax doc -m <module> to explore one.

More information:
  Source code:     https://github.com/luthersystems/stax`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.stax.yaml)")
	rootCmd.PersistentFlags().StringVar(&colorFlag, "color", "auto",
		`Control colored output: "auto", "always", or "never".`)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".stax" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".stax")
	}

	viper.SetEnvPrefix("STAX")
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}
