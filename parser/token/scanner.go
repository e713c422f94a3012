// Copyright © 2025 The furlint authors

package token

import (
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TabWidth is the display width assumed for tab characters when computing
// columns.  It matches the tab size the Python tokenizer assumes for
// indentation, so layout rules judge tab-indented files the way a Python
// reader sees them.
const TabWidth = 8

// Scanner facilitates construction of tokens from source bytes.  Unlike a
// generic rune scanner it tracks the display column of every rune because
// layout analysis is entirely column math.
type Scanner struct {
	file string

	src  []byte
	next int // byte offset of the next rune to scan

	line int // line number at next
	col  int // display column at next (1-based, tab-aware)

	start     int // byte offset of the current token's first rune
	startLine int // line number at start
	startCol  int // display column at start

	err error
}

// NewScanner initializes and returns a new Scanner reading all of r up
// front.  A read failure is reported by the first call to Err.
func NewScanner(file string, r io.Reader) *Scanner {
	src, err := io.ReadAll(r)
	s := NewScannerBytes(file, src)
	s.err = err
	return s
}

// NewScannerBytes initializes a Scanner over src without copying.
func NewScannerBytes(file string, src []byte) *Scanner {
	return &Scanner{
		file:      file,
		src:       src,
		line:      1,
		col:       1,
		startLine: 1,
		startCol:  1,
	}
}

// EmitToken returns a token containing the text scanned since the last call
// to either EmitToken or Ignore.  The token's End location references the
// position just past its final rune.
func (s *Scanner) EmitToken(typ Type) *Token {
	tok := &Token{
		Type:   typ,
		Text:   s.Text(),
		Source: s.LocStart(),
		End:    s.Loc(),
	}
	s.Ignore()
	return tok
}

// Ignore causes the scanner to skip all text scanned since the last call to
// either EmitToken or Ignore.
func (s *Scanner) Ignore() {
	s.start = s.next
	s.startLine = s.line
	s.startCol = s.col
}

// Text returns a string containing text scanned since the last call to
// either EmitToken or Ignore.
func (s *Scanner) Text() string {
	return string(s.src[s.start:s.next])
}

// Err returns an error encountered while reading the source stream.
func (s *Scanner) Err() error {
	return s.err
}

// EOF returns true once all input has been consumed.
func (s *Scanner) EOF() bool {
	return s.next >= len(s.src)
}

// Peek returns the next rune to be scanned, if there are any.  If an invalid
// utf-8 sequence or EOF prevents further runes from being scanned Peek
// returns a false second value.
func (s *Scanner) Peek() (rune, bool) {
	if s.EOF() {
		return 0, false
	}
	c, n := utf8.DecodeRune(s.src[s.next:])
	if c == utf8.RuneError && n == 1 {
		return 0, false
	}
	return c, true
}

// ScanRune scans a utf-8 rune from the input for inclusion in the current
// token.  An invalid unicode sequence or EOF produces an error.
func (s *Scanner) ScanRune() error {
	if s.EOF() {
		return io.EOF
	}
	c, n := utf8.DecodeRune(s.src[s.next:])
	if c == utf8.RuneError && n == 1 {
		return fmt.Errorf("invalid utf-8 sequence in source text starting with byte %q", s.src[s.next])
	}
	s.next += n
	switch c {
	case '\n':
		s.line++
		s.col = 1
	case '\t':
		s.col += TabWidth - (s.col-1)%TabWidth
	default:
		s.col++
	}
	return nil
}

// Accept scans the next rune when fn approves of it.
func (s *Scanner) Accept(fn func(rune) bool) bool {
	c, ok := s.Peek()
	if !ok {
		return false
	}
	if !fn(c) {
		return false
	}
	return s.ScanRune() == nil
}

// AcceptRune scans the next rune when it equals c.
func (s *Scanner) AcceptRune(c rune) bool {
	return s.Accept(func(peek rune) bool { return peek == c })
}

// AcceptAny scans the next rune when charset contains it.
func (s *Scanner) AcceptAny(charset string) bool {
	return s.Accept(func(peek rune) bool { return strings.ContainsRune(charset, peek) })
}

// AcceptSeq scans a maximal run of runes approved by fn and returns the
// length of the run.
func (s *Scanner) AcceptSeq(fn func(rune) bool) int {
	var n int
	for s.Accept(fn) {
		n++
	}
	return n
}

// AcceptSeqAny scans a maximal run of runes contained in charset.
func (s *Scanner) AcceptSeqAny(charset string) int {
	var n int
	for s.AcceptAny(charset) {
		n++
	}
	return n
}

// AcceptString scans the runes of literal in order, stopping at the first
// mismatch.  It returns the number of runes scanned and whether the whole
// literal was matched.
func (s *Scanner) AcceptString(literal string) (int, bool) {
	var n int
	for _, c := range literal {
		if !s.AcceptRune(c) {
			return n, false
		}
		n++
	}
	return n, true
}

// AcceptNameRune scans the next rune when it can appear in an identifier.
func (s *Scanner) AcceptNameRune() bool {
	return s.Accept(isNameRune)
}

func isNameRune(c rune) bool {
	return c == '_' || unicode.IsLetter(c) || unicode.IsDigit(c)
}

// LocStart returns a Location referencing the beginning of the current
// token, just beyond the end of the previous token.
func (s *Scanner) LocStart() *Location {
	return &Location{
		File: s.file,
		Pos:  s.start,
		Line: s.startLine,
		Col:  s.startCol,
	}
}

// Loc returns a Location referencing the current scanner position, just past
// the end of the current token.
func (s *Scanner) Loc() *Location {
	return &Location{
		File: s.file,
		Pos:  s.next,
		Line: s.line,
		Col:  s.col,
	}
}
