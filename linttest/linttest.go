// Copyright © 2025 The furlint authors

// Package linttest provides a fixture-driven test harness for the linter.
// Fixtures are TOML files in which every top-level table carries a source
// snippet and the set of diagnostic codes the linter must emit for it:
//
//	[closer-aligned-with-items]
//	src = '''
//	a = [
//	    1,
//	    ]
//	'''
//	expected_codes = ["FUR901", "FUR903"]
//
// Assertions compare code sets only, independent of diagnostic order and
// position.
package linttest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"

	"github.com/furlint/furlint/lint"
)

// Case is one fixture entry: a source snippet and the codes it must produce.
type Case struct {
	Src           string   `toml:"src"`
	ExpectedCodes []string `toml:"expected_codes"`
}

// Runner discovers TOML fixture files under Root and runs every case found
// in them as a subtest.
type Runner struct {
	// Root is the directory searched recursively for *.toml files.
	Root string
}

// RunTests locates all fixture files under the runner's root and executes
// their cases.  It fails the test when no fixtures are found, which usually
// indicates a bad root path.
func (r *Runner) RunTests(t *testing.T) {
	files, err := findFixtureFiles(r.Root)
	if err != nil {
		t.Fatalf("discover fixtures under %s: %v", r.Root, err)
	}
	if len(files) == 0 {
		t.Fatalf("no fixture files found under %s", r.Root)
	}
	for _, path := range files {
		cases, err := LoadCases(path)
		if err != nil {
			t.Fatalf("load fixtures from %s: %v", path, err)
		}
		for _, name := range sortedNames(cases) {
			c := cases[name]
			t.Run(filepath.Base(path)+"/"+name, func(t *testing.T) {
				RunCase(t, c)
			})
		}
	}
}

// RunCase feeds a single fixture case through the full lint pipeline and
// asserts the emitted code set equals the expected set.
func RunCase(t *testing.T, c Case) {
	t.Helper()
	src := Normalize(c.Src)
	codes, err := lint.Codes([]byte(src))
	if err != nil {
		t.Fatalf("lint snippet: %v", err)
	}
	expected := make(map[string]bool)
	for _, code := range c.ExpectedCodes {
		expected[code] = true
	}
	for code := range expected {
		if !codes[code] {
			t.Errorf("expected code %s was not emitted (got %v)", code, codeList(codes))
		}
	}
	for code := range codes {
		if !expected[code] {
			t.Errorf("unexpected code %s emitted (expected %v)", code, c.ExpectedCodes)
		}
	}
}

// Normalize strips the single leading newline a structured fixture format
// may introduce before the snippet, preserving trailing newlines.
func Normalize(src string) string {
	return strings.TrimPrefix(src, "\n")
}

// LoadCases reads every top-level table from a fixture file that carries a
// src entry.  Tables without one (shared metadata, future extensions) are
// skipped, matching how fixture discovery has always worked.
func LoadCases(path string) (map[string]Case, error) {
	var raw map[string]toml.Primitive
	md, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	cases := make(map[string]Case)
	for name, prim := range raw {
		var c Case
		if err := md.PrimitiveDecode(prim, &c); err != nil {
			return nil, fmt.Errorf("decode %s [%s]: %w", path, name, err)
		}
		if c.Src == "" {
			continue
		}
		cases[name] = c
	}
	return cases, nil
}

func findFixtureFiles(root string) ([]string, error) {
	var files []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if filepath.Ext(path) == ".toml" {
			files = append(files, path)
		}
		return nil
	})
	sort.Strings(files)
	return files, err
}

func sortedNames(cases map[string]Case) []string {
	names := make([]string, 0, len(cases))
	for name := range cases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func codeList(codes map[string]bool) []string {
	out := make([]string, 0, len(codes))
	for code := range codes {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}
