// Copyright © 2025 The furlint authors

package lint

import (
	"strings"

	"github.com/furlint/furlint/parser/token"
)

// filterSuppressed removes diagnostics on lines with # nolint comments.
func filterSuppressed(diags []Diagnostic, toks []*token.Token) []Diagnostic {
	// Build a map of line -> nolint directive from comment tokens.
	nolintLines := make(map[int]string) // line -> "" (all) or "FUR901,analyzer-name"
	for _, tok := range toks {
		if tok.Type == token.COMMENT {
			checkNolintToken(tok, nolintLines)
		}
	}
	if len(nolintLines) == 0 {
		return diags
	}

	var filtered []Diagnostic
	for _, d := range diags {
		directive, ok := nolintLines[d.Pos.Line]
		if !ok {
			filtered = append(filtered, d)
			continue
		}
		// Empty directive = suppress all
		if directive == "" {
			continue
		}
		// A directive entry may name either a diagnostic code or an
		// analyzer.
		suppressed := false
		for _, name := range strings.Split(directive, ",") {
			name = strings.TrimSpace(name)
			if name == d.Code || name == d.Analyzer {
				suppressed = true
				break
			}
		}
		if !suppressed {
			filtered = append(filtered, d)
		}
	}
	return filtered
}

// checkNolintToken parses a comment token for a nolint directive and maps it
// to the comment's line number.
func checkNolintToken(tok *token.Token, lines map[int]string) {
	if tok.Source == nil {
		return
	}
	text := strings.TrimSpace(tok.Text)
	// Strip comment prefix
	text = strings.TrimLeft(text, "#")
	text = strings.TrimSpace(text)

	if !strings.HasPrefix(text, "nolint") {
		return
	}
	rest := strings.TrimPrefix(text, "nolint")
	if rest == "" {
		lines[tok.Source.Line] = ""
		return
	}
	if strings.HasPrefix(rest, ":") {
		lines[tok.Source.Line] = strings.TrimPrefix(rest, ":")
	}
}
