// Copyright © 2025 The furlint authors

// Package lint provides continuation-line indentation analysis for Python
// source files.
//
// The linter is modeled after go vet: each check is an independent Analyzer
// that receives a token stream and reports diagnostics. The framework
// handles tokenization, running analyzers, collecting results, and
// formatting output.
//
// Analyzers are composable and extensible; embedders can define custom
// token-level checks alongside the built-in set.
package lint

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/furlint/furlint/indent"
	"github.com/furlint/furlint/parser/lexer"
	"github.com/furlint/furlint/parser/token"
)

// Severity indicates the severity level of a lint diagnostic.
type Severity int

const (
	severityUnset Severity = iota // unexported zero sentinel for default detection
	SeverityError
	SeverityWarning
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes the severity as a JSON string.
// An unset severity (zero value) is marshaled as "warning".
func (s Severity) MarshalJSON() ([]byte, error) {
	if s == severityUnset {
		return json.Marshal("warning")
	}
	return json.Marshal(s.String())
}

// UnmarshalJSON deserializes a severity from a JSON string.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	switch str {
	case "error":
		*s = SeverityError
	case "warning":
		*s = SeverityWarning
	case "info":
		*s = SeverityInfo
	default:
		return fmt.Errorf("unknown severity: %q", str)
	}
	return nil
}

// Analyzer defines a single lint check.
type Analyzer struct {
	// Name is a short identifier for this check (e.g. "continuation-indent").
	Name string

	// Doc is a human-readable description. The first line is a short summary.
	Doc string

	// Severity is the default severity for diagnostics from this analyzer.
	Severity Severity

	// Run executes the check. It should call pass.Report() for each finding.
	Run func(pass *Pass) error
}

// Pass provides context to a running analyzer.
type Pass struct {
	// Analyzer is the currently running check.
	Analyzer *Analyzer

	// Filename is the source file being analyzed.
	Filename string

	// Tokens is the file's token stream in source order, without the
	// trailing EOF token.
	Tokens []*token.Token

	// diagnostics collects reported findings.
	diagnostics []Diagnostic
}

// Report records a diagnostic finding.
func (p *Pass) Report(d Diagnostic) {
	d.Analyzer = p.Analyzer.Name
	if d.Severity == severityUnset {
		d.Severity = p.Analyzer.Severity
	}
	p.diagnostics = append(p.diagnostics, d)
}

// Reportf is a convenience for reporting a code-carrying diagnostic at a
// position.
func (p *Pass) Reportf(code string, line, col int, format string, args ...interface{}) {
	p.Report(Diagnostic{
		Pos:     Position{File: p.Filename, Line: line, Col: col},
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	})
}

// Diagnostic is a single reported problem.
type Diagnostic struct {
	// Pos is the source location of the problem.
	Pos Position `json:"pos"`

	// Code is the stable diagnostic code (e.g. "FUR901") used by fixture
	// assertions and nolint suppression.
	Code string `json:"code"`

	// Message is a human-readable description of the problem.
	Message string `json:"message"`

	// Analyzer is the name of the check that found this problem.
	Analyzer string `json:"analyzer"`

	// Severity is the severity level of the diagnostic.
	Severity Severity `json:"severity"`

	// Notes are optional hint text lines for the user.
	Notes []string `json:"notes,omitempty"`
}

// Position identifies a location in source code.
type Position struct {
	File string `json:"file"`
	Line int    `json:"line"`
	Col  int    `json:"col,omitempty"`
}

// String returns the position in file:line:col format.
func (p Position) String() string {
	if p.Line == 0 {
		return p.File
	}
	if p.Col > 0 {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Col)
	}
	return fmt.Sprintf("%s:%d", p.File, p.Line)
}

// String returns the diagnostic in go vet style:
// file:line:col: message [CODE] (analyzer), with optional note lines
// appended.
func (d Diagnostic) String() string {
	s := fmt.Sprintf("%s: %s [%s] (%s)", d.Pos, d.Message, d.Code, d.Analyzer)
	for _, n := range d.Notes {
		s += "\n  = note: " + n
	}
	return s
}

// Linter runs a set of analyzers over source files.
type Linter struct {
	Analyzers []*Analyzer
}

// LintFile analyzes a single source file and returns all diagnostics.
// Tokenization failures and structural bracket imbalance abort the scan
// with an error; no partial diagnostic list is returned in that case.
func (l *Linter) LintFile(source []byte, filename string) ([]Diagnostic, error) {
	toks, err := lexer.Tokens(filename, source)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	var all []Diagnostic

	for _, analyzer := range l.Analyzers {
		pass := &Pass{
			Analyzer: analyzer,
			Filename: filename,
			Tokens:   toks,
		}
		if err := analyzer.Run(pass); err != nil {
			return nil, fmt.Errorf("%s: analyzer %s: %w", filename, analyzer.Name, err)
		}
		// Set file on diagnostics that don't have one
		for i := range pass.diagnostics {
			if pass.diagnostics[i].Pos.File == "" {
				pass.diagnostics[i].Pos.File = filename
			}
		}
		all = append(all, pass.diagnostics...)
	}

	// Filter suppressed diagnostics (# nolint comments)
	all = filterSuppressed(all, toks)

	// Sort by file, then position.  The sort is stable so equal-position
	// diagnostics keep their reporting order.
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Pos.File != all[j].Pos.File {
			return all[i].Pos.File < all[j].Pos.File
		}
		if all[i].Pos.Line != all[j].Pos.Line {
			return all[i].Pos.Line < all[j].Pos.Line
		}
		return all[i].Pos.Col < all[j].Pos.Col
	})

	return all, nil
}

// Codes runs the default analyzers over source and returns the set of
// unique diagnostic codes produced, discarding positions.  It exists for
// fixture-driven tests which assert on code sets rather than positions.
func Codes(source []byte) (map[string]bool, error) {
	l := &Linter{Analyzers: DefaultAnalyzers()}
	diags, err := l.LintFile(source, "<snippet>")
	if err != nil {
		return nil, err
	}
	codes := make(map[string]bool)
	for _, d := range diags {
		codes[d.Code] = true
	}
	return codes, nil
}

// IsStructural reports whether an error returned by LintFile or Codes was
// caused by unbalanced or mismatched brackets, as opposed to unreadable
// input.
func IsStructural(err error) bool {
	return errors.Is(err, indent.ErrUnbalanced)
}

// FormatText writes diagnostics in go vet text format.
func FormatText(w io.Writer, diags []Diagnostic) {
	for _, d := range diags {
		fmt.Fprintln(w, d.String()) //nolint:errcheck // best-effort output to writer
	}
}

// FormatJSON writes diagnostics as JSON.
func FormatJSON(w io.Writer, diags []Diagnostic) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(diags)
}
