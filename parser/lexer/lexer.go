// Copyright © 2025 The furlint authors

// Package lexer tokenizes Python source far enough for layout analysis.  It
// is not a full Python tokenizer: keywords are plain NAME tokens, operators
// collapse into OP, and numeric literal syntax is scanned permissively.
// What it gets exactly right is positions: every token carries the line
// and tab-expanded column of its first rune, strings (including
// triple-quoted multi-line strings) are single tokens with start and end
// locations, and backslash line continuations produce no NEWLINE token.
package lexer

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/furlint/furlint/parser/token"
)

const opRunes = "+-*/%<>=!&|^~@.:;"

type Lexer struct {
	scanner *token.Scanner
	cur     *token.Token
	peek    *token.Token
	done    bool
}

func New(s *token.Scanner) *Lexer {
	return &Lexer{scanner: s}
}

// Tokens scans src completely and returns all tokens before EOF.  An ERROR
// token (for example an unterminated string literal) aborts the scan and is
// returned as a *token.LocationError.
func Tokens(file string, src []byte) ([]*token.Token, error) {
	lex := New(token.NewScannerBytes(file, src))
	var toks []*token.Token
	for lex.Scan() {
		tok := lex.Token()
		switch tok.Type {
		case token.EOF:
			return toks, nil
		case token.ERROR:
			return nil, &token.LocationError{Err: errors.New(tok.Text), Source: tok.Source}
		}
		toks = append(toks, tok)
	}
	return toks, nil
}

// Token returns the current token.  Token returns nil if Scan has not been
// called.
func (lex *Lexer) Token() *token.Token {
	return lex.cur
}

// Peek returns the next token without advancing the stream.
func (lex *Lexer) Peek() *token.Token {
	if lex.peek == nil {
		lex.peek = lex.readToken()
	}
	return lex.peek
}

// Scan advances the token stream.  It returns false once the EOF or ERROR
// token has been consumed.
func (lex *Lexer) Scan() bool {
	if lex.done {
		return false
	}
	if lex.peek != nil {
		lex.cur, lex.peek = lex.peek, nil
	} else {
		lex.cur = lex.readToken()
	}
	if lex.cur.Type == token.EOF || lex.cur.Type == token.ERROR {
		lex.done = true
	}
	return true
}

func (lex *Lexer) readToken() *token.Token {
	if tok := lex.skipSpace(); tok != nil {
		return tok
	}
	c, ok := lex.scanner.Peek()
	if !ok {
		if lex.scanner.EOF() {
			if err := lex.scanner.Err(); err != nil {
				return lex.errorf("read source: %v", err)
			}
			return lex.emit(token.EOF, "")
		}
		lex.scanner.ScanRune() //nolint:errcheck // include the bad byte in the token position
		return lex.errorf("invalid utf-8 sequence in source text")
	}
	switch {
	case c == '\n':
		lex.scanner.AcceptRune('\n')
		return lex.emitText(token.NEWLINE)
	case c == '#':
		lex.scanner.AcceptSeq(func(c rune) bool { return c != '\n' })
		return lex.emitText(token.COMMENT)
	case c == '\'' || c == '"':
		return lex.readString(c)
	case c == '(':
		return lex.charToken(token.LPAREN)
	case c == ')':
		return lex.charToken(token.RPAREN)
	case c == '[':
		return lex.charToken(token.LBRACK)
	case c == ']':
		return lex.charToken(token.RBRACK)
	case c == '{':
		return lex.charToken(token.LBRACE)
	case c == '}':
		return lex.charToken(token.RBRACE)
	case '0' <= c && c <= '9':
		return lex.readNumber()
	case c == '_' || unicode.IsLetter(c):
		return lex.readName()
	case c == ',':
		// Commas stay single-rune tokens so comma-only lines are trivial to
		// recognize.
		lex.scanner.AcceptRune(',')
		return lex.emitText(token.OP)
	case strings.ContainsRune(opRunes, c):
		lex.scanner.AcceptSeqAny(opRunes)
		return lex.emitText(token.OP)
	default:
		// Unknown runes become OP tokens rather than errors; a layout
		// checker has no business rejecting code over characters it does
		// not understand.
		lex.scanner.ScanRune() //nolint:errcheck // peek above already validated the rune
		return lex.emitText(token.OP)
	}
}

// skipSpace discards intra-line whitespace and backslash-newline joins.  It
// returns a non-nil token only for a stray backslash, which is emitted as OP.
func (lex *Lexer) skipSpace() *token.Token {
	for {
		lex.scanner.AcceptSeqAny(" \t\r")
		lex.scanner.Ignore()
		if !lex.scanner.AcceptRune('\\') {
			return nil
		}
		if lex.scanner.AcceptRune('\n') {
			// Explicit line join: no NEWLINE token, the logical line goes on.
			lex.scanner.Ignore()
			continue
		}
		return lex.emitText(token.OP)
	}
}

func (lex *Lexer) readName() *token.Token {
	lex.scanner.AcceptSeq(func(c rune) bool {
		return c == '_' || unicode.IsLetter(c) || unicode.IsDigit(c)
	})
	if isStringPrefix(lex.scanner.Text()) {
		if c, ok := lex.scanner.Peek(); ok && (c == '\'' || c == '"') {
			// r"...", b'...', f"...": the prefix belongs to the string token.
			return lex.readString(c)
		}
	}
	return lex.emitText(token.NAME)
}

func isStringPrefix(text string) bool {
	if len(text) > 2 {
		return false
	}
	for _, c := range strings.ToLower(text) {
		if !strings.ContainsRune("rbfu", c) {
			return false
		}
	}
	return true
}

func (lex *Lexer) readNumber() *token.Token {
	lex.scanner.AcceptSeq(func(c rune) bool {
		return c == '.' || c == '_' || unicode.IsLetter(c) || unicode.IsDigit(c)
	})
	return lex.emitText(token.NUMBER)
}

func (lex *Lexer) readString(q rune) *token.Token {
	lex.scanner.AcceptRune(q)
	if !lex.scanner.AcceptRune(q) {
		return lex.readShortString(q)
	}
	if !lex.scanner.AcceptRune(q) {
		// Just an empty string.
		return lex.emitText(token.STRING)
	}
	return lex.readLongString(q)
}

func (lex *Lexer) readShortString(q rune) *token.Token {
	for {
		c, ok := lex.scanner.Peek()
		if !ok || c == '\n' {
			return lex.errorf("unterminated string literal")
		}
		if c == '\\' {
			// Scan the backslash and whatever it escapes, which may be a
			// newline (a line join inside the literal).
			lex.scanner.ScanRune() //nolint:errcheck // peeked
			if !lex.scanner.Accept(func(rune) bool { return true }) {
				return lex.errorf("unterminated string literal")
			}
			continue
		}
		lex.scanner.ScanRune() //nolint:errcheck // peeked
		if c == q {
			return lex.emitText(token.STRING)
		}
	}
}

func (lex *Lexer) readLongString(q rune) *token.Token {
	quotes := strings.Repeat(string(q), 3)
	for {
		if _, ok := lex.scanner.AcceptString(quotes); ok {
			return lex.emitText(token.STRING)
		}
		if lex.scanner.AcceptRune('\\') {
			if !lex.scanner.Accept(func(rune) bool { return true }) {
				return lex.errorf("unterminated triple-quoted string literal")
			}
			continue
		}
		if !lex.scanner.Accept(func(rune) bool { return true }) {
			return lex.errorf("unterminated triple-quoted string literal")
		}
	}
}

func (lex *Lexer) charToken(typ token.Type) *token.Token {
	lex.scanner.Accept(func(rune) bool { return true })
	return lex.emitText(typ)
}

func (lex *Lexer) emitText(typ token.Type) *token.Token {
	return lex.scanner.EmitToken(typ)
}

func (lex *Lexer) emit(typ token.Type, text string) *token.Token {
	tok := &token.Token{
		Type:   typ,
		Text:   text,
		Source: lex.scanner.LocStart(),
		End:    lex.scanner.Loc(),
	}
	lex.scanner.Ignore()
	return tok
}

func (lex *Lexer) errorf(format string, v ...interface{}) *token.Token {
	return lex.emit(token.ERROR, fmt.Sprintf(format, v...))
}
