// Copyright © 2025 The furlint authors

package lint

import (
	"fmt"
	"sort"
	"strings"

	"github.com/furlint/furlint/indent"
)

// Stable diagnostic codes.  FUR901 keeps the number the original flake8
// plugin used for its closing-bracket rule; FUR902 and FUR903 extend the
// namespace for the visual and hanging continuation rules.
const (
	// CodeClosingMisaligned: a closer-only line sits at neither the
	// opening line's indent nor the visual indent.
	CodeClosingMisaligned = "FUR901"

	// CodeVisualMisaligned: a continuation line does not match the visual
	// indent established by content after the opening bracket.
	CodeVisualMisaligned = "FUR902"

	// CodeHangingInconsistent: a continuation line does not match the
	// hanging indent established by the first continuation line.
	CodeHangingInconsistent = "FUR903"
)

// AnalyzerContinuationIndent checks the indentation of every line that
// continues a bracketed expression.
var AnalyzerContinuationIndent = &Analyzer{
	Name: "continuation-indent",
	Doc: "Check continuation lines inside brackets for consistent indentation.\n\n" +
		"When an opening bracket is followed by content on the same line, every " +
		"continuation line must align with that content (visual indent, FUR902). " +
		"When the bracket ends its line, the first continuation line chooses the " +
		"hanging indent and every later line at that depth must match it (FUR903). " +
		"A line holding only the closing bracket must align with either the " +
		"opening line's indent or the visual indent (FUR901). A comma alone on " +
		"its own line is always accepted.",
	Run: func(pass *Pass) error {
		vs, err := indent.Check(pass.Tokens)
		if err != nil {
			return err
		}
		// At most one diagnostic per (line, code) pair, so overlapping
		// detections on one line don't produce duplicate noise.
		seen := make(map[lineCode]bool)
		for _, v := range vs {
			code := violationCode(v.Cause)
			key := lineCode{v.Line, code}
			if seen[key] {
				continue
			}
			seen[key] = true
			pass.Reportf(code, v.Line, v.Col, violationMessage(v))
		}
		return nil
	},
}

type lineCode struct {
	line int
	code string
}

func violationCode(cause indent.Cause) string {
	switch cause {
	case indent.CauseVisual:
		return CodeVisualMisaligned
	case indent.CauseHanging:
		return CodeHangingInconsistent
	default:
		return CodeClosingMisaligned
	}
}

func violationMessage(v indent.Violation) string {
	switch v.Cause {
	case indent.CauseVisual:
		if v.CloserLine {
			return fmt.Sprintf("closing %q not aligned with visual indent (found col %d, want col %d)",
				closerOf(v.Bracket), v.Col, v.Want)
		}
		return fmt.Sprintf("continuation line not aligned with visual indent after %q (found col %d, want col %d)",
			v.Bracket, v.Col, v.Want)
	case indent.CauseHanging:
		switch {
		case v.Want == 0:
			return fmt.Sprintf("continuation line must be indented past the line opening %q (found col %d, opening line indent col %d)",
				v.Bracket, v.Col, v.Alt)
		case v.CloserLine && v.Col == v.Want:
			return fmt.Sprintf("closing %q occupies the hanging indent column %d reserved for items",
				closerOf(v.Bracket), v.Want)
		case v.CloserLine:
			return fmt.Sprintf("closing %q does not match the hanging indent (found col %d, items at col %d)",
				closerOf(v.Bracket), v.Col, v.Want)
		default:
			return fmt.Sprintf("inconsistent hanging indent inside %q (found col %d, established col %d)",
				v.Bracket, v.Col, v.Want)
		}
	default:
		if v.Alt > 0 {
			return fmt.Sprintf("closing %q misaligned (found col %d, want opening line indent col %d or visual indent col %d)",
				closerOf(v.Bracket), v.Col, v.Want, v.Alt)
		}
		return fmt.Sprintf("closing %q misaligned (found col %d, want opening line indent col %d)",
			closerOf(v.Bracket), v.Col, v.Want)
	}
}

func closerOf(open rune) rune {
	switch open {
	case '(':
		return ')'
	case '[':
		return ']'
	default:
		return '}'
	}
}

// DefaultAnalyzers returns the built-in set of lint checks.
func DefaultAnalyzers() []*Analyzer {
	return []*Analyzer{
		AnalyzerContinuationIndent,
	}
}

// AnalyzerNames returns the sorted names of the default analyzers.
func AnalyzerNames() []string {
	analyzers := DefaultAnalyzers()
	names := make([]string, len(analyzers))
	for i, a := range analyzers {
		names[i] = a.Name
	}
	sort.Strings(names)
	return names
}

// AnalyzerDoc returns a formatted documentation string for all analyzers.
func AnalyzerDoc() string {
	var b strings.Builder
	for _, a := range DefaultAnalyzers() {
		fmt.Fprintf(&b, "  %s\n", a.Name)
		lines := strings.Split(a.Doc, "\n")
		fmt.Fprintf(&b, "    %s\n\n", lines[0])
	}
	return b.String()
}
