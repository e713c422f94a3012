// Copyright © 2025 The furlint authors

// Package indent implements the bracket-tracking continuation-line
// analyzer.  It consumes a token stream, maintains a stack of open bracket
// frames, and judges the leading column of every continuation line against
// the layout the governing frame has committed to: visual indent when the
// opening bracket has trailing content, hanging indent otherwise, with
// closer-only and comma-only lines handled as their own cases.
package indent

import (
	"fmt"

	"github.com/furlint/furlint/parser/token"
)

// Cause identifies the rule a continuation line broke.
type Cause int

const (
	// CauseVisual: the line's column does not match the visual indent
	// established by content after the opening bracket.
	CauseVisual Cause = iota

	// CauseHanging: the line's column does not match the hanging indent
	// established by the first continuation line, or the first
	// continuation line is not indented past the opening line.
	CauseHanging

	// CauseClosing: a closer-only line sits at neither the opening line's
	// indent nor the visual indent.
	CauseClosing
)

func (c Cause) String() string {
	switch c {
	case CauseVisual:
		return "visual-misalignment"
	case CauseHanging:
		return "hanging-inconsistent"
	case CauseClosing:
		return "closing-misaligned"
	default:
		return "unknown"
	}
}

// Violation is a detected rule breach.  Want is the column that would have
// been accepted; for CauseClosing, Alt is the secondary accepted column
// (the visual indent) when one exists.  A CauseHanging violation with Want
// zero means no hanging indent was established yet and the line failed to
// indent past the opening line; Alt then carries the opening line's indent.
type Violation struct {
	Cause   Cause
	Line    int
	Col     int
	Want    int
	Alt     int
	Bracket rune

	// CloserLine is set on violations reported for a closer-only line.
	CloserLine bool
}

// Check scans a token stream produced for one source file and returns the
// continuation-line violations in source order.  Unbalanced or mismatched
// brackets abort the scan with an error wrapping ErrUnbalanced; no partial
// violation list is returned in that case.
func Check(toks []*token.Token) ([]Violation, error) {
	c := &checker{}
	for i, tok := range toks {
		switch tok.Type {
		case token.NEWLINE, token.COMMENT, token.EOF:
			continue
		}
		if err := c.next(toks, i); err != nil {
			return nil, err
		}
	}
	if top := c.stack.Top(); top != nil {
		return nil, fmt.Errorf("%w: %q opened at line %d is never closed",
			ErrUnbalanced, top.Bracket, top.OpenLine)
	}
	return c.violations, nil
}

// checker is the per-file scan state.  It is created fresh for every Check
// call; nothing persists across files.
type checker struct {
	stack      Stack
	lastLine   int // last line on which a substantive token was seen
	lineIndent int // column of the first token on the current line
	violations []Violation
}

func (c *checker) next(toks []*token.Token, i int) error {
	tok := toks[i]
	line := tok.Source.Line
	col := tok.Source.Col

	lineStart := line > c.lastLine
	if lineStart {
		c.lineIndent = col
	}
	if top := c.stack.Top(); top != nil {
		if lineStart {
			c.classify(toks, i, top)
		} else if !top.HasContentAfterOpen && line == top.OpenLine {
			// First token after the opening bracket on the same line: this
			// frame is visually indented.
			top.HasContentAfterOpen = true
			top.VisualCol = col
		}
	}

	switch {
	case tok.Type.OpenBracket():
		c.stack.Push(tok.Type.Bracket(), line, col, c.lineIndent)
	case tok.Type.CloseBracket():
		f, err := c.stack.Pop()
		if err != nil {
			return fmt.Errorf("%w: unexpected %q at line %d", ErrUnbalanced, tok.Type.Bracket(), line)
		}
		if f.Bracket != openerOf(tok.Type) {
			return fmt.Errorf("%w: %q opened at line %d closed by %q at line %d",
				ErrUnbalanced, f.Bracket, f.OpenLine, tok.Type.Bracket(), line)
		}
	}

	if end := tok.EndLine(); end > c.lastLine {
		c.lastLine = end
	}
	return nil
}

// classify judges the first token of a continuation line against the
// innermost open frame.  Outer frames are transparent until the inner one
// closes.
func (c *checker) classify(toks []*token.Token, i int, top *Frame) {
	tok := toks[i]
	col := tok.Source.Col

	if tok.Type.CloseBracket() && openerOf(tok.Type) == top.Bracket {
		c.classifyCloser(tok, top)
		return
	}

	if commaOnlyLine(toks, i) {
		// A comma alone on its own line is accepted.  It neither
		// establishes nor has to match the hanging indent.
		top.SeenCommaOnlyLine = true
		return
	}

	if top.HasContentAfterOpen {
		if col != top.VisualCol {
			c.report(Violation{
				Cause:   CauseVisual,
				Line:    tok.Source.Line,
				Col:     col,
				Want:    top.VisualCol,
				Bracket: top.Bracket,
			})
		}
		return
	}

	if top.HangingCol == 0 {
		if col > top.OpeningIndent {
			top.HangingCol = col
			return
		}
		// The first continuation line must indent past the opening line.
		// Leave the hanging indent unestablished so the next line may still
		// set it.
		c.report(Violation{
			Cause:   CauseHanging,
			Line:    tok.Source.Line,
			Col:     col,
			Alt:     top.OpeningIndent,
			Bracket: top.Bracket,
		})
		return
	}

	// A line introducing a deeper nested bracket starts its own frame and
	// is exempt from the consistency requirement.
	if col != top.HangingCol && !tok.Type.OpenBracket() {
		c.report(Violation{
			Cause:   CauseHanging,
			Line:    tok.Source.Line,
			Col:     col,
			Want:    top.HangingCol,
			Bracket: top.Bracket,
		})
	}
}

// classifyCloser judges a line whose first token closes the innermost
// frame.  The line is accepted at the opening line's indent or at the
// visual indent.  Anywhere else it is a closing misalignment, and since it
// is not a valid continuation of the frame's committed layout either, the
// frame's continuation cause is reported alongside.
func (c *checker) classifyCloser(tok *token.Token, top *Frame) {
	col := tok.Source.Col
	if col == top.OpeningIndent {
		return
	}
	if top.HasContentAfterOpen && col == top.VisualCol {
		return
	}
	c.report(Violation{
		Cause:      CauseClosing,
		Line:       tok.Source.Line,
		Col:        col,
		Want:       top.OpeningIndent,
		Alt:        top.VisualCol,
		Bracket:    top.Bracket,
		CloserLine: true,
	})
	switch {
	case top.HasContentAfterOpen:
		c.report(Violation{
			Cause:      CauseVisual,
			Line:       tok.Source.Line,
			Col:        col,
			Want:       top.VisualCol,
			Bracket:    top.Bracket,
			CloserLine: true,
		})
	case top.HangingCol > 0:
		c.report(Violation{
			Cause:      CauseHanging,
			Line:       tok.Source.Line,
			Col:        col,
			Want:       top.HangingCol,
			Bracket:    top.Bracket,
			CloserLine: true,
		})
	}
}

func (c *checker) report(v Violation) {
	c.violations = append(c.violations, v)
}

// commaOnlyLine returns true when the token at i is a comma and nothing but
// comments follow it on its physical line.
func commaOnlyLine(toks []*token.Token, i int) bool {
	if toks[i].Type != token.OP || toks[i].Text != "," {
		return false
	}
	for _, tok := range toks[i+1:] {
		switch tok.Type {
		case token.COMMENT:
			continue
		case token.NEWLINE, token.EOF:
			return true
		default:
			return tok.Source.Line > toks[i].Source.Line
		}
	}
	return true
}

// openerOf returns the rune of the opening bracket whose Match is typ, or 0
// when typ is not a closing bracket.
func openerOf(typ token.Type) rune {
	for _, open := range []token.Type{token.LPAREN, token.LBRACK, token.LBRACE} {
		if open.Match() == typ {
			return open.Bracket()
		}
	}
	return 0
}
