// Copyright © 2025 The furlint authors

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/furlint/furlint/docs"
)

var explainCmd = &cobra.Command{
	Use:   "explain [CODE]",
	Short: "Show documentation for a diagnostic code",
	Long: `Show documentation for a diagnostic code such as FUR901.

With no argument the full diagnostic reference is printed.

Examples:
  furlint explain FUR901       Explain the closing-bracket rule
  furlint explain              Print the full reference`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Print(docs.CodesGuide)
			return
		}
		if len(args) != 1 {
			_ = cmd.Help()
			os.Exit(2)
		}
		code := strings.ToUpper(args[0])
		section := guideSection(docs.CodesGuide, code)
		if section == "" {
			fmt.Fprintf(os.Stderr, "furlint explain: unknown code: %s\n", args[0])
			os.Exit(2)
		}
		fmt.Print(section)
	},
}

// guideSection extracts the "## CODE ..." section of the embedded reference,
// up to the next heading.
func guideSection(guide, code string) string {
	lines := strings.Split(guide, "\n")
	start := -1
	for i, line := range lines {
		if strings.HasPrefix(line, "## "+code+" ") || line == "## "+code {
			start = i
			break
		}
	}
	if start < 0 {
		return ""
	}
	end := len(lines)
	for i := start + 1; i < len(lines); i++ {
		if strings.HasPrefix(lines[i], "## ") {
			end = i
			break
		}
	}
	return strings.TrimRight(strings.Join(lines[start:end], "\n"), "\n") + "\n"
}

func init() {
	rootCmd.AddCommand(explainCmd)
}
