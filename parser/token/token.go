// Copyright © 2025 The furlint authors

package token

import "fmt"

// Source is an abstract stream of tokens which allows one token lookahead.
type Source interface {
	// Token returns the current token.  Token returns nil if Scan has not been
	// called.
	Token() *Token
	// Peek returns the next token in the stream.  At the end of the stream
	// Peek should return a value to indicate the lack of a token (EOF).
	Peek() *Token
	// Scan advances the token stream if possible.  If there are no tokens
	// remaining Scan returns false.
	Scan() bool
}

// Token is an atomic lexical unit of a source file.  Source is the position
// of the token's first rune and End the position just past its last rune.
// End matters for STRING tokens, which may span physical lines.
type Token struct {
	Type   Type
	Text   string
	Source *Location
	End    *Location
}

// EndLine returns the physical line on which the token ends.  Tokens emitted
// without an end location are assumed to end on their starting line.
func (tok *Token) EndLine() int {
	if tok.End != nil {
		return tok.End.Line
	}
	return tok.Source.Line
}

type Type uint

// Type constants used by the furlint lexer.  The lexer only distinguishes
// token classes that matter for layout analysis; operators and punctuation
// other than brackets collapse into OP.
const (
	INVALID Type = iota
	ERROR
	EOF

	NEWLINE
	COMMENT

	NAME
	NUMBER
	STRING
	OP

	// Brackets get individual types so bracket matching never needs to
	// inspect token text.
	LPAREN
	RPAREN
	LBRACK
	RBRACK
	LBRACE
	RBRACE

	numTokenTypes
)

func (typ Type) String() string {
	typeStrings := [numTokenTypes]string{
		INVALID: "invalid",
		ERROR:   "error",
		EOF:     "EOF",
		NEWLINE: "newline",
		COMMENT: "comment",
		NAME:    "name",
		NUMBER:  "number",
		STRING:  "string",
		OP:      "op",
		LPAREN:  "(",
		RPAREN:  ")",
		LBRACK:  "[",
		RBRACK:  "]",
		LBRACE:  "{",
		RBRACE:  "}",
	}
	if typ >= numTokenTypes {
		return typeStrings[INVALID]
	}
	return typeStrings[typ]
}

// OpenBracket returns true for the three opening bracket types.
func (typ Type) OpenBracket() bool {
	return typ == LPAREN || typ == LBRACK || typ == LBRACE
}

// CloseBracket returns true for the three closing bracket types.
func (typ Type) CloseBracket() bool {
	return typ == RPAREN || typ == RBRACK || typ == RBRACE
}

// Bracket returns the bracket rune for a bracket token type and 0 otherwise.
func (typ Type) Bracket() rune {
	switch typ {
	case LPAREN:
		return '('
	case RPAREN:
		return ')'
	case LBRACK:
		return '['
	case RBRACK:
		return ']'
	case LBRACE:
		return '{'
	case RBRACE:
		return '}'
	}
	return 0
}

// Match returns the type of the closing bracket matching an opening bracket
// type.  Match returns INVALID when typ is not an opening bracket.
func (typ Type) Match() Type {
	switch typ {
	case LPAREN:
		return RPAREN
	case LBRACK:
		return RBRACK
	case LBRACE:
		return RBRACE
	}
	return INVALID
}

type Location struct {
	File string // a name representing the source stream
	Pos  int
	Line int // line number (starting at 1 when tracked)
	Col  int // line column number (starting at 1 when tracked)
}

func (loc *Location) String() string {
	switch {
	case loc.Pos < 0:
		return loc.File
	case loc.Line == 0:
		return fmt.Sprintf("%s[%d]", loc.File, loc.Pos)
	case loc.Col == 0:
		return fmt.Sprintf("%s:%d", loc.File, loc.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", loc.File, loc.Line, loc.Col)
	}
}

type LocationError struct {
	Err    error
	Source *Location
}

func (err *LocationError) Error() string {
	return fmt.Sprintf("%s: %s", err.Source, err.Err)
}
