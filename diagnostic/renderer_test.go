// Copyright © 2025 The furlint authors

package diagnostic

import (
	"bytes"
	"strings"
	"testing"
)

// testRenderer returns a Renderer with colors disabled and a fake source reader.
func testRenderer(sources map[string]string) *Renderer {
	return &Renderer{
		Color: ColorNever,
		SourceReader: func(name string) ([]byte, error) {
			s, ok := sources[name]
			if !ok {
				return nil, &fakeErr{name}
			}
			return []byte(s), nil
		},
	}
}

type fakeErr struct{ name string }

func (e *fakeErr) Error() string { return "not found: " + e.name }

func TestRenderWarningWithCode(t *testing.T) {
	r := testRenderer(map[string]string{
		"test.py": "a = [\n    1,\n    2,\n    ]",
	})

	d := Diagnostic{
		Severity: SeverityWarning,
		Code:     "FUR901",
		Message:  "closing ']' does not match opening line indent",
		Spans: []Span{
			{File: "test.py", Line: 4, Col: 5, Label: "move to column 1"},
		},
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, d); err != nil {
		t.Fatal(err)
	}

	got := buf.String()

	// Verify key structural elements
	assertContains(t, got, "warning[FUR901]: closing ']' does not match opening line indent")
	assertContains(t, got, "--> test.py:4:5")
	assertContains(t, got, "    ]")
	assertContains(t, got, "^")
	assertContains(t, got, "move to column 1")
}

func TestRenderErrorNoCode(t *testing.T) {
	r := testRenderer(map[string]string{
		"test.py": "x = f(a,\n    b)",
	})

	d := Diagnostic{
		Severity: SeverityError,
		Message:  "unbalanced brackets",
		Spans: []Span{
			{File: "test.py", Line: 2, Col: 1, EndCol: 6},
		},
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, d); err != nil {
		t.Fatal(err)
	}

	got := buf.String()
	assertContains(t, got, "error: unbalanced brackets")
	assertNotContains(t, got, "error[")
	assertContains(t, got, "--> test.py:2:1")
	assertContains(t, got, "    b)")
}

func TestRenderNoSource(t *testing.T) {
	r := testRenderer(nil)

	d := Diagnostic{
		Severity: SeverityError,
		Message:  "some error",
		Spans: []Span{
			{File: "<stdin>", Line: 5, Col: 3},
		},
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, d); err != nil {
		t.Fatal(err)
	}

	got := buf.String()
	assertContains(t, got, "error: some error")
	assertContains(t, got, "--> <stdin>:5:3")
	// Should have a gutter but no source line
	assertContains(t, got, "|")
	assertNotContains(t, got, "^")
}

func TestRenderNotes(t *testing.T) {
	r := testRenderer(map[string]string{
		"test.py": "x = f(a,\n      b,\n  )",
	})

	d := Diagnostic{
		Severity: SeverityWarning,
		Code:     "FUR901",
		Message:  "closing ')' misaligned",
		Spans: []Span{
			{File: "test.py", Line: 3, Col: 3},
		},
		Notes: []string{
			"expected column 1 or column 7",
		},
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, d); err != nil {
		t.Fatal(err)
	}

	got := buf.String()
	assertContains(t, got, "= note: expected column 1 or column 7")
}

func TestRenderAutoDetectEndCol(t *testing.T) {
	r := testRenderer(map[string]string{
		"test.py": "result = function(arg_one,\n    arg_two)",
	})

	d := Diagnostic{
		Severity: SeverityWarning,
		Code:     "FUR902",
		Message:  "continuation line not aligned with opening bracket",
		Spans: []Span{
			{File: "test.py", Line: 2, Col: 5}, // EndCol=0 → auto-detect
		},
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, d); err != nil {
		t.Fatal(err)
	}

	got := buf.String()
	// "arg_two" starts at col 5 and is 7 chars → should produce "^^^^^^^"
	assertContains(t, got, "^^^^^^^")
}

func TestRenderMultipleDiagnostics(t *testing.T) {
	r := testRenderer(map[string]string{
		"test.py": "a = [\n    1,\n        2,\n]\nb = f(x,\n   y)",
	})

	diags := []Diagnostic{
		{
			Severity: SeverityWarning,
			Code:     "FUR903",
			Message:  "inconsistent hanging indent",
			Spans:    []Span{{File: "test.py", Line: 3, Col: 9}},
		},
		{
			Severity: SeverityWarning,
			Code:     "FUR902",
			Message:  "continuation line not aligned with opening bracket",
			Spans:    []Span{{File: "test.py", Line: 6, Col: 4}},
		},
	}

	var buf bytes.Buffer
	if err := r.RenderAll(&buf, diags); err != nil {
		t.Fatal(err)
	}

	got := buf.String()
	// Should have both diagnostics separated by blank line
	parts := strings.Split(got, "\n\n")
	if len(parts) < 2 {
		t.Errorf("expected diagnostics separated by blank line, got:\n%s", got)
	}
	assertContains(t, got, "warning[FUR903]")
	assertContains(t, got, "warning[FUR902]")
}

func TestRenderNoSpans(t *testing.T) {
	r := testRenderer(nil)

	d := Diagnostic{
		Severity: SeverityError,
		Message:  "read file: permission denied",
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, d); err != nil {
		t.Fatal(err)
	}

	got := buf.String()
	assertContains(t, got, "error: read file: permission denied")
	// Should be just the header, no arrows or source
	assertNotContains(t, got, "-->")
}

func TestRenderTabSource(t *testing.T) {
	r := testRenderer(map[string]string{
		"test.py": "a = [\n\t1,\n\t\t2,\n]",
	})

	d := Diagnostic{
		Severity: SeverityWarning,
		Code:     "FUR903",
		Message:  "inconsistent hanging indent",
		Spans:    []Span{{File: "test.py", Line: 3, Col: 3, EndCol: 3}},
	}

	var buf bytes.Buffer
	if err := r.Render(&buf, d); err != nil {
		t.Fatal(err)
	}

	got := buf.String()
	// Tabs expand to eight spaces in the rendered source line.
	assertContains(t, got, strings.Repeat(" ", 16)+"2,")
	assertNotContains(t, got, "\t")
}

func assertContains(t *testing.T, got, want string) {
	t.Helper()
	if !strings.Contains(got, want) {
		t.Errorf("output does not contain %q:\n%s", want, got)
	}
}

func assertNotContains(t *testing.T, got, unwanted string) {
	t.Helper()
	if strings.Contains(got, unwanted) {
		t.Errorf("output unexpectedly contains %q:\n%s", unwanted, got)
	}
}
