// Copyright © 2025 The furlint authors

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
	Use:   "furlint",
	Short: "furlint — continuation-line indentation linter for Python",
	Long: `furlint checks the indentation of continuation lines inside bracketed
expressions in Python source files.

A bracketed expression may span several physical lines. furlint accepts two
layouts and rejects everything else:

  Visual indent: content follows the opening bracket on its own line, and
  every continuation line aligns with that first piece of content.

      result = function(arg_one,
                        arg_two)

  Hanging indent: the opening bracket ends its line, the first continuation
  line picks an indent deeper than the opening line, and every later line at
  that depth matches it. The closing bracket returns to the opening line's
  indent (or the visual indent).

      result = function(
          arg_one,
          arg_two,
      )

Getting started:
  furlint lint file.py         Check a single file
  furlint lint ./...           Check every .py file under the current directory
  furlint lint --json file.py  Output diagnostics as JSON
  cat file.py | furlint lint   Check from stdin

Diagnostic codes:
  FUR901   closing bracket line misaligned
  FUR902   continuation line breaks visual alignment
  FUR903   inconsistent hanging indent

More information:
  Source code:     https://github.com/furlint/furlint`,
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

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.furlint.yaml)")
	rootCmd.PersistentFlags().StringVar(&colorFlag, "color", "auto",
		`Control colored output: "auto", "always", or "never".`)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".furlint" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".furlint")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}
