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

package nsa

import (
	"reflect"
	"testing"

	"naive.systems/gcs/parsers"
	"naive.systems/gcs/rulesets"
)

func TestParseWarning(t *testing.T) {
	for _, testCase := range [...]struct {
		line     string
		expected parsers.Warning
		wantErr  bool
	}{
		{
			line: "src/main.c:12: [C0514][misra-c2012-8.7]: function only referenced in one translation unit",
			expected: parsers.Warning{
				Kind:    parsers.Violation,
				Code:    "misra-c2012-8.7",
				Ruleset: rulesets.MisraC2012,
				Path:    "src/main.c",
				Line:    12,
				Message: "function only referenced in one translation unit",
				Checker: "C0514",
			},
		},
		{
			line: "/ws/src/io.c:40: [C2316][misra-c2012-dir-4.11]: argument validity not checked",
			expected: parsers.Warning{
				Kind:    parsers.Violation,
				Code:    "misra-c2012-dir-4.11",
				Ruleset: rulesets.MisraC2012,
				Path:    "/ws/src/io.c",
				Line:    40,
				Message: "argument validity not checked",
				Checker: "C2316",
			},
		},
		{
			line: "lib/a.cpp:7: [C7011][misra-cpp2008-7.1.1]: variable not modified should be const",
			expected: parsers.Warning{
				Kind:    parsers.Violation,
				Code:    "misra-cpp2008-7.1.1",
				Ruleset: rulesets.MisraCpp2008,
				Path:    "lib/a.cpp",
				Line:    7,
				Message: "variable not modified should be const",
				Checker: "C7011",
			},
		},
		{
			line: "lib/a.cpp:9: [A7-2-3][autosar-A7.2.3]: enumerations shall be scoped",
			expected: parsers.Warning{
				Kind:    parsers.NonMisra,
				Path:    "lib/a.cpp",
				Line:    9,
				Message: "enumerations shall be scoped",
				Checker: "A7-2-3",
			},
		},
		{
			line: "src/b.c:3: [C0101][gjb-5369-1.1.1]: procedure name reused",
			expected: parsers.Warning{
				Kind:    parsers.NonMisra,
				Path:    "src/b.c",
				Line:    3,
				Message: "procedure name reused",
				Checker: "C0101",
			},
		},
		{line: "count: 3 error message: [C0514][misra-c2012-8.7]: function only referenced in one translation unit", expected: parsers.Warning{Kind: parsers.Noise}},
		{line: "", expected: parsers.Warning{Kind: parsers.Noise}},
		{line: "src/main.c:12: no rule here", wantErr: true},
	} {
		t.Run(testCase.line, func(t *testing.T) {
			got, err := New().ParseWarning(testCase.line)
			if (err != nil) != testCase.wantErr {
				t.Fatalf("ParseWarning(%q) error = %v", testCase.line, err)
			}
			if !reflect.DeepEqual(got, testCase.expected) {
				t.Errorf("unexpected result for %v. got: %+v. expected: %+v.", testCase.line, got, testCase.expected)
			}
		})
	}
}
