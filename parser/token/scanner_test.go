// Copyright © 2025 The furlint authors

package token

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScannerEmitToken(t *testing.T) {
	s := NewScanner("test.py", strings.NewReader("abc def"))
	n := s.AcceptSeq(isNameRune)
	assert.Equal(t, 3, n)
	tok := s.EmitToken(NAME)
	assert.Equal(t, "abc", tok.Text)
	assert.Equal(t, 1, tok.Source.Line)
	assert.Equal(t, 1, tok.Source.Col)
	assert.Equal(t, 4, tok.End.Col)

	// Whitespace between tokens is dropped with Ignore.
	assert.True(t, s.AcceptRune(' '))
	s.Ignore()

	s.AcceptSeq(isNameRune)
	tok = s.EmitToken(NAME)
	assert.Equal(t, "def", tok.Text)
	assert.Equal(t, 5, tok.Source.Col)
}

func TestScannerLineTracking(t *testing.T) {
	s := NewScanner("test.py", strings.NewReader("a\nbc\n"))
	require.True(t, s.AcceptNameRune())
	tok := s.EmitToken(NAME)
	assert.Equal(t, 1, tok.Source.Line)

	require.True(t, s.AcceptRune('\n'))
	s.Ignore()

	s.AcceptSeq(isNameRune)
	tok = s.EmitToken(NAME)
	assert.Equal(t, 2, tok.Source.Line)
	assert.Equal(t, 1, tok.Source.Col)
	assert.Equal(t, "bc", tok.Text)
}

func TestScannerTabColumns(t *testing.T) {
	// A tab advances the column to the next multiple of TabWidth.
	s := NewScanner("test.py", strings.NewReader("\tx"))
	require.True(t, s.AcceptRune('\t'))
	s.Ignore()
	require.True(t, s.AcceptNameRune())
	tok := s.EmitToken(NAME)
	assert.Equal(t, TabWidth+1, tok.Source.Col)

	s = NewScanner("test.py", strings.NewReader("ab\tx"))
	s.AcceptSeq(isNameRune)
	s.EmitToken(NAME)
	require.True(t, s.AcceptRune('\t'))
	s.Ignore()
	require.True(t, s.AcceptNameRune())
	tok = s.EmitToken(NAME)
	assert.Equal(t, TabWidth+1, tok.Source.Col)
}

func TestScannerMultilineToken(t *testing.T) {
	src := "'''one\ntwo'''"
	s := NewScanner("test.py", strings.NewReader(src))
	for !s.EOF() {
		require.NoError(t, s.ScanRune())
	}
	tok := s.EmitToken(STRING)
	assert.Equal(t, src, tok.Text)
	assert.Equal(t, 1, tok.Source.Line)
	assert.Equal(t, 2, tok.End.Line)
	assert.Equal(t, 2, tok.EndLine())
}

func TestScannerAcceptString(t *testing.T) {
	s := NewScanner("test.py", strings.NewReader(`"""doc"""`))
	n, ok := s.AcceptString(`"""`)
	assert.True(t, ok)
	assert.Equal(t, 3, n)

	// A mismatch on the first rune consumes nothing.
	n, ok = s.AcceptString(`'''`)
	assert.False(t, ok)
	assert.Equal(t, 0, n)

	s.AcceptSeq(isNameRune)
	assert.Equal(t, `"""doc`, s.Text())

	// A partial match stops at the first mismatching rune and keeps what it
	// already scanned.
	n, ok = s.AcceptString(`"!"`)
	assert.False(t, ok)
	assert.Equal(t, 1, n)
	_, ok = s.AcceptString(`""`)
	assert.True(t, ok)
	assert.True(t, s.EOF())
}

func TestScannerEOF(t *testing.T) {
	s := NewScanner("test.py", strings.NewReader("x"))
	require.True(t, s.AcceptNameRune())
	assert.True(t, s.EOF())
	assert.False(t, s.AcceptNameRune())
	_, ok := s.Peek()
	assert.False(t, ok)
	assert.Error(t, s.ScanRune())
}

func TestScannerInvalidUTF8(t *testing.T) {
	s := NewScannerBytes("test.py", []byte{'a', 0xff, 'b'})
	require.True(t, s.AcceptNameRune())
	_, ok := s.Peek()
	assert.False(t, ok)
	assert.Error(t, s.ScanRune())
}
