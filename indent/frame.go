// Copyright © 2025 The furlint authors

package indent

import "errors"

// ErrUnbalanced reports bracket-nesting corruption: a closing bracket with
// no matching opener, a mismatched bracket pair, or an opener left open at
// end of file.  It is a scan-abort condition, never a style violation.
var ErrUnbalanced = errors.New("unbalanced brackets")

// Frame records the layout facts learned about one currently-open bracket.
// Frames mutate in place as continuation lines are observed.
type Frame struct {
	// Bracket is the opening bracket rune: '(', '[' or '{'.
	Bracket rune

	// OpenLine and OpenCol locate the opening bracket token.
	OpenLine int
	OpenCol  int

	// OpeningIndent is the column of the first token on the physical line
	// holding the opening bracket, not the bracket's own column.
	OpeningIndent int

	// HasContentAfterOpen is true when a non-trivia token follows the
	// opening bracket on its own line.  VisualCol is then that token's
	// column, the alignment target for every continuation line.
	HasContentAfterOpen bool
	VisualCol           int

	// HangingCol is the hanging indent established by the first
	// continuation line when no visual indent applies.  Zero until
	// established.
	HangingCol int

	// SeenCommaOnlyLine is set when a continuation line consists solely of
	// a comma.
	SeenCommaOnlyLine bool
}

// Stack tracks the currently-open bracket frames, innermost last.
type Stack struct {
	frames []*Frame
}

// Push creates a frame for an opening bracket and returns it.
func (s *Stack) Push(bracket rune, openLine, openCol, openingIndent int) *Frame {
	f := &Frame{
		Bracket:       bracket,
		OpenLine:      openLine,
		OpenCol:       openCol,
		OpeningIndent: openingIndent,
	}
	s.frames = append(s.frames, f)
	return f
}

// Top returns the innermost open frame, or nil when no bracket is open.
func (s *Stack) Top() *Frame {
	if len(s.frames) == 0 {
		return nil
	}
	return s.frames[len(s.frames)-1]
}

// Pop removes and returns the innermost frame.  Popping an empty stack
// returns ErrUnbalanced.
func (s *Stack) Pop() (*Frame, error) {
	if len(s.frames) == 0 {
		return nil, ErrUnbalanced
	}
	f := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	return f, nil
}

// Len returns the number of open frames.
func (s *Stack) Len() int {
	return len(s.frames)
}
