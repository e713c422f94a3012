// Copyright © 2025 The furlint authors

package indent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/furlint/furlint/parser/lexer"
)

// check lexes src and runs the analyzer over the resulting token stream.
func check(t *testing.T, src string) []Violation {
	t.Helper()
	toks, err := lexer.Tokens("test.py", []byte(src))
	require.NoError(t, err)
	vs, err := Check(toks)
	require.NoError(t, err)
	return vs
}

func causes(vs []Violation) []Cause {
	var out []Cause
	for _, v := range vs {
		out = append(out, v.Cause)
	}
	return out
}

func TestHangingConsistent(t *testing.T) {
	vs := check(t, `a = [
    1,
    2,
]
`)
	assert.Empty(t, vs)
}

func TestHangingCloserMisaligned(t *testing.T) {
	// The canonical two-code case: the closer aligned with the items
	// instead of the opening line.
	vs := check(t, `a = [
    1,
    2,
    ]
`)
	assert.ElementsMatch(t, []Cause{CauseClosing, CauseHanging}, causes(vs))
	for _, v := range vs {
		assert.Equal(t, 4, v.Line)
		assert.Equal(t, 5, v.Col)
		assert.Equal(t, '[', v.Bracket)
	}
}

func TestHangingInconsistent(t *testing.T) {
	vs := check(t, `a = [
    1,
        2,
]
`)
	require.Len(t, vs, 1)
	assert.Equal(t, CauseHanging, vs[0].Cause)
	assert.Equal(t, 3, vs[0].Line)
	assert.Equal(t, 9, vs[0].Col)
	assert.Equal(t, 5, vs[0].Want)
}

func TestHangingFirstLevelThenDouble(t *testing.T) {
	// "first level 4 spaces, second is 8": the first continuation line
	// establishes the hanging indent; all later lines at this depth must
	// match it.
	vs := check(t, `result = function(
    arg_one,
        arg_two,
        arg_three,
)
`)
	assert.Equal(t, []Cause{CauseHanging, CauseHanging}, causes(vs))
	assert.Equal(t, 3, vs[0].Line)
	assert.Equal(t, 4, vs[1].Line)
}

func TestHangingNotPastOpeningLine(t *testing.T) {
	vs := check(t, `a = [
1,
    2,
]
`)
	// Line 2 fails to indent past the opening line and does not establish
	// the hanging indent; line 3 establishes it.
	require.Len(t, vs, 1)
	assert.Equal(t, CauseHanging, vs[0].Cause)
	assert.Equal(t, 2, vs[0].Line)
	assert.Zero(t, vs[0].Want)
	assert.Equal(t, 1, vs[0].Alt)
}

func TestVisualAligned(t *testing.T) {
	vs := check(t, `bkup = Table(new_name, self.structure(),
             codepage=self.codepage.name)
`)
	assert.Empty(t, vs)
}

func TestVisualMisaligned(t *testing.T) {
	vs := check(t, `bkup = Table(new_name, self.structure(),
        codepage=self.codepage.name)
`)
	require.Len(t, vs, 1)
	assert.Equal(t, CauseVisual, vs[0].Cause)
	assert.Equal(t, 2, vs[0].Line)
	assert.Equal(t, 9, vs[0].Col)
	assert.Equal(t, 14, vs[0].Want)
}

func TestVisualEveryBadLineReported(t *testing.T) {
	vs := check(t, `x = f(a,
   b,
        c,
         d)
`)
	assert.Equal(t, []Cause{CauseVisual, CauseVisual, CauseVisual}, causes(vs))
}

func TestCommaOnlyLine(t *testing.T) {
	vs := check(t, `x = f(
    a,
    b
    ,
    )
`)
	// No diagnostic for the comma-only line; the closer line is judged
	// independently and fails the closing rule.
	assert.ElementsMatch(t, []Cause{CauseClosing, CauseHanging}, causes(vs))
	for _, v := range vs {
		assert.Equal(t, 5, v.Line)
	}
}

func TestCommaOnlyDoesNotEstablishHanging(t *testing.T) {
	vs := check(t, `x = f(
    ,
        a,
        b,
)
`)
	// The comma-only line is accepted and the hanging indent is set by the
	// first real continuation line.
	assert.Empty(t, vs)
}

func TestCollapsedCloseAccepted(t *testing.T) {
	vs := check(t, `x = f(
    a,
    b)
`)
	assert.Empty(t, vs)
}

func TestCloserAtVisualIndent(t *testing.T) {
	vs := check(t, `x = f(a,
      b,
      )
`)
	assert.Empty(t, vs)
}

func TestCloserAtOpeningIndentVisualFrame(t *testing.T) {
	vs := check(t, `x = f(a,
      b,
)
`)
	assert.Empty(t, vs)
}

func TestNestedBracketsIndependent(t *testing.T) {
	vs := check(t, `x = {
    'a': [
        1,
        2,
    ],
    'b': 2,
}
`)
	assert.Empty(t, vs)
}

func TestNestedOpenersSameLine(t *testing.T) {
	vs := check(t, `x = f([
    1,
    2,
])
`)
	assert.Empty(t, vs)
}

func TestDeeperBracketLineExempt(t *testing.T) {
	vs := check(t, `x = f(
    a,
      [1,
       2],
    b,
)
`)
	assert.Empty(t, vs)
}

func TestMultilineStringInteriorNotChecked(t *testing.T) {
	vs := check(t, `x = f(
    '''text
anywhere
        at all''',
    b,
)
`)
	assert.Empty(t, vs)
}

func TestOperatorLedLineStillChecked(t *testing.T) {
	vs := check(t, `x = (a
     and b
       and c)
`)
	require.Len(t, vs, 1)
	assert.Equal(t, CauseVisual, vs[0].Cause)
	assert.Equal(t, 3, vs[0].Line)
}

func TestUnbalancedExtraCloser(t *testing.T) {
	toks, err := lexer.Tokens("test.py", []byte("a = 1)\n"))
	require.NoError(t, err)
	vs, err := Check(toks)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnbalanced)
	assert.Nil(t, vs)
}

func TestUnbalancedUnclosedOpener(t *testing.T) {
	toks, err := lexer.Tokens("test.py", []byte("a = [1,\n"))
	require.NoError(t, err)
	_, err = Check(toks)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnbalanced)
}

func TestUnbalancedMismatchedPair(t *testing.T) {
	toks, err := lexer.Tokens("test.py", []byte("a = (1]\n"))
	require.NoError(t, err)
	_, err = Check(toks)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnbalanced)
}

func TestUnbalancedMismatchedBrace(t *testing.T) {
	toks, err := lexer.Tokens("test.py", []byte("a = {1,\n    2]\n"))
	require.NoError(t, err)
	_, err = Check(toks)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnbalanced)
}

func TestBackslashContinuationNotABracketLine(t *testing.T) {
	vs := check(t, `x = 1 + \
        2
`)
	assert.Empty(t, vs)
}

func TestIdempotent(t *testing.T) {
	src := `a = [
    1,
      2,
    ]
`
	toks, err := lexer.Tokens("test.py", []byte(src))
	require.NoError(t, err)
	first, err := Check(toks)
	require.NoError(t, err)
	second, err := Check(toks)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCleanSourceNoViolations(t *testing.T) {
	vs := check(t, `def f(a, b):
    return {
        'sum': a + b,
        'args': [a, b],
    }
`)
	assert.Empty(t, vs)
}
