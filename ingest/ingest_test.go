/*
NaiveSystems Analyze - A tool for static code analysis
Copyright (C) 2023  Naive Systems Ltd.

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

package ingest

import (
	"reflect"
	"regexp"
	"testing"

	"naive.systems/gcs/input"
	"naive.systems/gcs/parsers/nsa"
	"naive.systems/gcs/rulesets"
)

func TestNormalizePath(t *testing.T) {
	for _, testCase := range [...]struct {
		base     string
		path     string
		expected string
	}{
		{"/ws", "/ws/src/main.c", "src/main.c"},
		{"/ws/", "/ws/src/main.c", "src/main.c"},
		{"/ws", "/ws/src/../lib/a.c", "lib/a.c"},
		{"/ws", "/wsx/main.c", "/wsx/main.c"},
		{"/ws", "/usr/include/stdio.h", "/usr/include/stdio.h"},
		{"/ws", "./src//main.c", "src/main.c"},
		{"/ws", "src/main.c", "src/main.c"},
		{"/ws", "  src/main.c \r", "src/main.c"},
		{`C:\ws`, `C:\ws\src\main.c`, "src/main.c"},
		{`C:\ws`, `D:\other\main.c`, "D:/other/main.c"},
		{"", "/ws/main.c", "/ws/main.c"},
		{"/ws", "", ""},
	} {
		t.Run(testCase.path, func(t *testing.T) {
			if got := NormalizePath(testCase.base, testCase.path); got != testCase.expected {
				t.Errorf("unexpected result for %v. got: %v. expected: %v.", testCase.path, got, testCase.expected)
			}
		})
	}
}

func c2012Options(t *testing.T) Options {
	model, err := rulesets.Builtin()
	if err != nil {
		t.Fatalf("rulesets.Builtin: %v", err)
	}
	return Options{
		Base:    "/ws",
		Version: rulesets.MisraC2012,
		Lookup: func(code string) (rulesets.Guideline, bool) {
			return model.Lookup(rulesets.MisraC2012, code)
		},
	}
}

func TestParseWarnings(t *testing.T) {
	opts := c2012Options(t)
	opts.TagPattern = regexp.MustCompile(`DEVIATION`)
	lines := []string{
		"/ws/src/main.c:12: [C0514][misra-c2012-8.7]: function only referenced in one translation unit",
		"src/io.c:40: [C2316][misra-c2012-dir-4.11]: argument validity not checked DEVIATION(D-12)",
		"",
		"src/io.c:41: [C0101][gjb-5369-1.1.1]: procedure name reused",
		"garbage",
		"note: DEVIATION approved for the whole module",
		"src/io.c:42: [C7011][misra-cpp2008-7.1.1]: variable not modified should be const",
		"src/io.c:43: [C9999][misra-c2012-30.1]: no such rule",
		"count: 1 error message: [C0514][misra-c2012-8.7]: function only referenced in one translation unit",
	}
	result := ParseWarnings(nsa.New(), lines, opts)
	expected := []Violation{
		{Code: "Rule 8.7", Path: "src/main.c", Line: 12, Message: "function only referenced in one translation unit", InputLine: 1, Checker: "C0514"},
		{Code: "Dir 4.11", Path: "src/io.c", Line: 40, Message: "argument validity not checked DEVIATION(D-12)", Deviation: true, InputLine: 2, Checker: "C2316"},
	}
	if !reflect.DeepEqual(result.Violations, expected) {
		t.Errorf("unexpected violations. got: %+v. expected: %+v.", result.Violations, expected)
	}
	if result.Informational != 2 {
		t.Errorf("unexpected informational count. got: %d. expected: 2.", result.Informational)
	}
	var errLines []int
	for _, e := range result.Errors {
		if e.Source != input.Warnings {
			t.Errorf("unexpected error source %v", e.Source)
		}
		errLines = append(errLines, e.Line)
	}
	if !reflect.DeepEqual(errLines, []int{5, 7, 8}) {
		t.Errorf("unexpected error lines. got: %v. expected: [5 7 8].", errLines)
	}
}

func TestParseWarningsIgnorePatterns(t *testing.T) {
	opts := c2012Options(t)
	opts.IgnorePatterns = []string{"third_party/**"}
	lines := []string{
		"/ws/third_party/zlib/inflate.c:1: [C0514][misra-c2012-8.7]: ignored",
		"/ws/src/main.c:2: [C0514][misra-c2012-8.7]: kept",
	}
	result := ParseWarnings(nsa.New(), lines, opts)
	if len(result.Violations) != 1 || result.Violations[0].Path != "src/main.c" || result.Ignored != 1 {
		t.Errorf("unexpected result %+v", result)
	}
}

func TestValidateIgnorePatterns(t *testing.T) {
	errs := ValidateIgnorePatterns([]string{"src/**/*.c", "[a-", "{a,b"})
	if len(errs) != 2 {
		t.Errorf("expected 2 malformed patterns, got %v", errs)
	}
}

func TestParseSourceFiles(t *testing.T) {
	opts := Options{Base: "/ws", IgnorePatterns: []string{"**/*_test.c"}}
	for _, testCase := range [...]struct {
		name     string
		lines    []string
		expected []SourceFile
		errCount int
	}{
		{
			name:     "normalized and deduplicated",
			lines:    []string{"/ws/src/main.c", "", "src/main.c", "  lib/a.c\r", "/opt/vendor/b.c"},
			expected: []SourceFile{{"src/main.c"}, {"lib/a.c"}, {"/opt/vendor/b.c"}},
		},
		{
			name:     "ignored",
			lines:    []string{"src/main.c", "src/main_test.c"},
			expected: []SourceFile{{"src/main.c"}},
		},
		{
			name:     "empty",
			lines:    []string{"", "  "},
			errCount: 1,
		},
		{
			name:     "nothing",
			errCount: 1,
		},
	} {
		t.Run(testCase.name, func(t *testing.T) {
			got, errs := ParseSourceFiles(testCase.lines, opts)
			if !reflect.DeepEqual(got, testCase.expected) {
				t.Errorf("unexpected result for %v. got: %v. expected: %v.", testCase.name, got, testCase.expected)
			}
			if len(errs) != testCase.errCount {
				t.Errorf("unexpected errors for %v: %v", testCase.name, errs)
			}
			for _, e := range errs {
				if e.Source != input.SourceList {
					t.Errorf("unexpected error source %v", e.Source)
				}
			}
		})
	}
}
