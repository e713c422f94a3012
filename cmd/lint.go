// Copyright © 2025 The furlint authors

package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	reflowindent "github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"

	"github.com/furlint/furlint/lint"
)

var (
	lintJSON     bool
	lintChecks   string
	lintListAll  bool
	lintExcludes []string
)

var lintCmd = &cobra.Command{
	Use:   "lint [flags] [files...]",
	Short: "Check continuation-line indentation in Python source files",
	Long: `Check continuation-line indentation in Python source files.

Each check is an independent analyzer that examines the token stream and
reports diagnostics. Continuation lines inside brackets must follow either
the visual indent of the opening bracket or a consistent hanging indent;
closing-bracket lines must return to the opening line's indent or the
visual indent.

With no files, reads from stdin. With files, analyzes each file and reports
all findings to stderr. An argument ending in /... is expanded to every .py
file found recursively under the directory.

Exit codes:
  0  No problems found
  1  One or more problems were reported
  2  Bad invocation (invalid flags, unreadable files)

To suppress a specific diagnostic, add a comment on the same line:
  x = f(a,
      b)  # nolint:FUR902

To suppress all checks on a line:
      b)  # nolint

Available checks (use --checks to select specific ones):
` + lint.AnalyzerDoc() + `
Examples:
  furlint lint file.py                                # Lint a single file
  furlint lint *.py                                   # Lint multiple files
  furlint lint --json file.py                         # Output diagnostics as JSON
  furlint lint --checks=continuation-indent file.py   # Run only specific checks
  furlint lint --list                                 # List available checks
  furlint lint --exclude='conftest.py' ./...          # Exclude a file by name
  furlint lint --exclude='build' --exclude='.venv' ./...  # Exclude directories
  cat file.py | furlint lint                          # Lint from stdin`,
	Run: func(cmd *cobra.Command, args []string) {
		if lintListAll {
			listChecks(os.Stdout)
			return
		}

		analyzers, err := selectAnalyzers(lintChecks)
		if err != nil {
			fmt.Fprintf(os.Stderr, "furlint lint: %v\n", err)
			os.Exit(2)
		}

		l := &lint.Linter{Analyzers: analyzers}

		if len(args) == 0 {
			if err := lintStdin(l); err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			return
		}

		expanded, err := expandArgs(args, lintExcludes)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}

		failed := false
		var allDiags []lint.Diagnostic
		for _, path := range expanded {
			diags, err := lintFile(l, path)
			if err != nil {
				if lint.IsStructural(err) {
					renderStructuralError(err)
					failed = true
					continue
				}
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			allDiags = append(allDiags, diags...)
		}

		if len(allDiags) > 0 {
			failed = true
			if lintJSON {
				if err := lint.FormatJSON(os.Stdout, allDiags); err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(2)
				}
			} else {
				renderLintDiagnostics(allDiags)
			}
		}
		if failed {
			os.Exit(1)
		}
	},
}

// selectAnalyzers resolves a comma-separated --checks value against the
// default analyzer set. An empty value selects everything.
func selectAnalyzers(checks string) ([]*lint.Analyzer, error) {
	analyzers := lint.DefaultAnalyzers()
	if checks == "" {
		return analyzers, nil
	}
	selected := make(map[string]bool)
	for _, name := range strings.Split(checks, ",") {
		selected[strings.TrimSpace(name)] = true
	}
	var filtered []*lint.Analyzer
	for _, a := range analyzers {
		if selected[a.Name] {
			filtered = append(filtered, a)
			delete(selected, a.Name)
		}
	}
	for name := range selected {
		return nil, fmt.Errorf("unknown check: %s", name)
	}
	return filtered, nil
}

// listChecks prints every available check with its wrapped documentation.
func listChecks(w io.Writer) {
	for _, a := range lint.DefaultAnalyzers() {
		fmt.Fprintln(w, a.Name)
		doc := reflowindent.String(wordwrap.String(a.Doc, 72), 2)
		fmt.Fprintln(w, strings.TrimSuffix(doc, "\n"))
	}
}

func lintStdin(l *lint.Linter) error {
	src, err := readStdin()
	if err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}
	diags, err := l.LintFile(src, "<stdin>")
	if err != nil {
		if lint.IsStructural(err) {
			renderStructuralError(err)
			os.Exit(1)
		}
		return err
	}
	if len(diags) == 0 {
		return nil
	}
	if lintJSON {
		if err := lint.FormatJSON(os.Stdout, diags); err != nil {
			return err
		}
	} else {
		renderLintDiagnostics(diags)
	}
	os.Exit(1)
	return nil
}

func lintFile(l *lint.Linter, path string) ([]lint.Diagnostic, error) {
	src, err := os.ReadFile(path) //nolint:gosec // CLI tool reads user-specified files
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l.LintFile(src, path)
}

func readStdin() ([]byte, error) {
	return io.ReadAll(os.Stdin)
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().BoolVar(&lintJSON, "json", false,
		"Output diagnostics as JSON.")
	lintCmd.Flags().StringVar(&lintChecks, "checks", "",
		"Comma-separated list of checks to run (default: all).")
	lintCmd.Flags().BoolVar(&lintListAll, "list", false,
		"List available checks and exit.")
	lintCmd.Flags().StringArrayVar(&lintExcludes, "exclude", nil,
		"Glob pattern for files to exclude (may be repeated).")
}
