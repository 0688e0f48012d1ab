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

package rulesets

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseVersion(t *testing.T) {
	for _, testCase := range [...]struct {
		name     string
		expected Version
	}{
		{"MISRA C:2012", MisraC2012},
		{"misra-c2012", MisraC2012},
		{"MISRA-C:2012", MisraC2012},
		{"misra_c_2012", MisraC2012},
		{"MISRA C++:2008", MisraCpp2008},
		{"misra-cpp2008", MisraCpp2008},
		{"MISRA-C++:2008", MisraCpp2008},
		{"misra_cpp_2008", MisraCpp2008},
	} {
		t.Run(testCase.name, func(t *testing.T) {
			got, err := ParseVersion(testCase.name)
			if err != nil {
				t.Fatalf("ParseVersion(%q): %v", testCase.name, err)
			}
			if got != testCase.expected {
				t.Errorf("unexpected result for %v. got: %v. expected: %v.", testCase.name, got, testCase.expected)
			}
		})
	}
}

func TestParseVersionUnsupported(t *testing.T) {
	_, err := ParseVersion("AUTOSAR")
	var unsupported *UnsupportedRulesetError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected *UnsupportedRulesetError, got %v", err)
	}
	if unsupported.Name != "AUTOSAR" {
		t.Errorf("unexpected name %q", unsupported.Name)
	}
}

func TestCanBecome(t *testing.T) {
	all := []Category{Mandatory, Required, Advisory, Disapplied}
	for _, testCase := range [...]struct {
		from    Category
		allowed []Category
	}{
		{Mandatory, []Category{Mandatory}},
		{Required, all},
		{Advisory, all},
	} {
		t.Run(testCase.from.String(), func(t *testing.T) {
			var got []Category
			for _, target := range all {
				if testCase.from.CanBecome(target) {
					got = append(got, target)
				}
			}
			if !reflect.DeepEqual(got, testCase.allowed) {
				t.Errorf("unexpected result for %v. got: %v. expected: %v.", testCase.from, got, testCase.allowed)
			}
		})
	}
}

func TestParseCategory(t *testing.T) {
	for _, testCase := range [...]struct {
		input    string
		expected Category
		wantErr  bool
	}{
		{"mandatory", Mandatory, false},
		{"Required", Required, false},
		{" ADVISORY ", Advisory, false},
		{"disapplied", Disapplied, false},
		{"disapply", Disapplied, false},
		{"document", Required, false},
		{"optional", 0, true},
	} {
		t.Run(testCase.input, func(t *testing.T) {
			got, err := ParseCategory(testCase.input)
			if (err != nil) != testCase.wantErr {
				t.Fatalf("ParseCategory(%q) error = %v", testCase.input, err)
			}
			if got != testCase.expected {
				t.Errorf("unexpected result for %v. got: %v. expected: %v.", testCase.input, got, testCase.expected)
			}
		})
	}
}

func TestNormalizeCode(t *testing.T) {
	for _, testCase := range [...]struct {
		input    string
		expected string
		ok       bool
	}{
		{"8.7", "rule 8.7", true},
		{"R8.7", "rule 8.7", true},
		{"Rule 8.7", "rule 8.7", true},
		{"misra-c2012-8.7", "rule 8.7", true},
		{"MISRA C:2012 Rule 8.7", "rule 8.7", true},
		{"MISRA 2012 Rule 8.7", "rule 8.7", true},
		{"dir-4.1", "dir 4.1", true},
		{"misra-c2012-dir-4.11", "dir 4.11", true},
		{"D4.1", "dir 4.1", true},
		{"Dir 4.1", "dir 4.1", true},
		{"MISRA 2012 Directive 4.6", "dir 4.6", true},
		{"0-1-1", "rule 0.1.1", true},
		{"M0-1-1", "rule 0.1.1", true},
		{"Rule 0-1-1", "rule 0.1.1", true},
		{"misra-cpp2008-7.1.1", "rule 7.1.1", true},
		{"MISRA C++ Rule 5-0-1", "rule 5.0.1", true},
		{"misra-c2004-8.7", "", false},
		{"cwe-cwe_758", "", false},
		{"A7-2-3", "", false},
		{"", "", false},
	} {
		t.Run(testCase.input, func(t *testing.T) {
			got, ok := NormalizeCode(testCase.input)
			if ok != testCase.ok || got != testCase.expected {
				t.Errorf("unexpected result for %v. got: %v, %v. expected: %v, %v.", testCase.input, got, ok, testCase.expected, testCase.ok)
			}
		})
	}
}

func TestNewRulesetOrdering(t *testing.T) {
	rs, err := NewRuleset("R",
		Guideline{Code: "Rule 10.1", Category: Required},
		Guideline{Code: "Rule 2.1", Category: Required},
		Guideline{Code: "Dir 4.10", Category: Required},
		Guideline{Code: "Rule 2.10", Category: Advisory},
		Guideline{Code: "Dir 4.2", Category: Advisory},
		Guideline{Code: "Rule 2.2", Category: Mandatory},
	)
	if err != nil {
		t.Fatalf("NewRuleset: %v", err)
	}
	var got []string
	for _, g := range rs.Guidelines() {
		got = append(got, g.Code)
	}
	expected := []string{"Dir 4.2", "Dir 4.10", "Rule 2.1", "Rule 2.2", "Rule 2.10", "Rule 10.1"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("unexpected order. got: %v. expected: %v.", got, expected)
	}
}

func TestNewRulesetRejects(t *testing.T) {
	for _, testCase := range [...]struct {
		name       string
		guidelines []Guideline
	}{
		{"duplicate", []Guideline{{Code: "Rule 1.1", Category: Required}, {Code: "R1.1", Category: Advisory}}},
		{"malformed", []Guideline{{Code: "Rule one", Category: Required}}},
		{"disapplied default", []Guideline{{Code: "Rule 1.1", Category: Disapplied}}},
	} {
		t.Run(testCase.name, func(t *testing.T) {
			if _, err := NewRuleset("R", testCase.guidelines...); err == nil {
				t.Errorf("expected an error for %v", testCase.guidelines)
			}
		})
	}
}

func TestModel(t *testing.T) {
	r1, err := NewRuleset("R1",
		Guideline{Code: "101", Category: Mandatory},
		Guideline{Code: "102", Category: Required},
		Guideline{Code: "103", Category: Advisory},
	)
	if err != nil {
		t.Fatalf("NewRuleset: %v", err)
	}
	m, err := NewModel(r1)
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	guidelines, err := m.GuidelinesFor("R1")
	if err != nil {
		t.Fatalf("GuidelinesFor: %v", err)
	}
	if len(guidelines) != 3 {
		t.Errorf("expected 3 guidelines, got %d", len(guidelines))
	}
	g, ok := m.Lookup("R1", "Rule 102")
	if !ok || g.Category != Required {
		t.Errorf("unexpected lookup result %v, %v", g, ok)
	}
	if _, err := m.GuidelinesFor(MisraC2012); err == nil {
		t.Errorf("expected an error for a version missing from the model")
	}
	if v, err := m.Resolve("R1"); err != nil || v != "R1" {
		t.Errorf("Resolve(R1) = %v, %v", v, err)
	}
	if _, err := m.Resolve("misra-c2012"); err == nil {
		t.Errorf("expected Resolve to reject a version missing from the model")
	}
	if _, err := NewModel(r1, r1); err == nil {
		t.Errorf("expected duplicate rulesets to be rejected")
	}
}

func TestBuiltin(t *testing.T) {
	m, err := Builtin()
	if err != nil {
		t.Fatalf("Builtin: %v", err)
	}
	for _, testCase := range [...]struct {
		version Version
		count   int
		first   string
		last    string
	}{
		{MisraC2012, 173, "Dir 1.1", "Rule 22.10"},
		{MisraCpp2008, 228, "Rule 0-1-1", "Rule 27-0-1"},
	} {
		t.Run(string(testCase.version), func(t *testing.T) {
			guidelines, err := m.GuidelinesFor(testCase.version)
			if err != nil {
				t.Fatalf("GuidelinesFor: %v", err)
			}
			if len(guidelines) != testCase.count {
				t.Errorf("unexpected guideline count. got: %d. expected: %d.", len(guidelines), testCase.count)
			}
			if guidelines[0].Code != testCase.first || guidelines[len(guidelines)-1].Code != testCase.last {
				t.Errorf("unexpected bounds. got: %s..%s. expected: %s..%s.",
					guidelines[0].Code, guidelines[len(guidelines)-1].Code, testCase.first, testCase.last)
			}
		})
	}
	for _, testCase := range [...]struct {
		version  Version
		code     string
		expected Category
	}{
		{MisraC2012, "misra-c2012-9.1", Mandatory},
		{MisraC2012, "R8.7", Advisory},
		{MisraC2012, "dir-4.1", Required},
		{MisraC2012, "Rule 21.17", Mandatory},
		{MisraCpp2008, "M0-1-1", Required},
		{MisraCpp2008, "misra-cpp2008-5.0.2", Advisory},
	} {
		t.Run(testCase.code, func(t *testing.T) {
			g, ok := m.Lookup(testCase.version, testCase.code)
			if !ok {
				t.Fatalf("%s not found in %s", testCase.code, testCase.version)
			}
			if g.Category != testCase.expected {
				t.Errorf("unexpected result for %v. got: %v. expected: %v.", testCase.code, g.Category, testCase.expected)
			}
		})
	}
}

func TestLookupOtherStandard(t *testing.T) {
	m, err := Builtin()
	if err != nil {
		t.Fatalf("Builtin: %v", err)
	}
	for _, testCase := range [...]struct {
		version Version
		code    string
		found   bool
	}{
		{MisraC2012, "misra-cpp2008-8.7", false},
		{MisraC2012, "MISRA C++:2008 Rule 8.7", false},
		{MisraC2012, "misra-c2012-8.7", true},
		{MisraCpp2008, "misra-c2012-5-0-1", false},
		{MisraCpp2008, "MISRA 2008 Rule 5-0-1", true},
	} {
		t.Run(testCase.code, func(t *testing.T) {
			if _, found := m.Lookup(testCase.version, testCase.code); found != testCase.found {
				t.Errorf("unexpected result for %v in %v. got: %v. expected: %v.", testCase.code, testCase.version, found, testCase.found)
			}
		})
	}
	if _, err := NewRuleset(MisraC2012, Guideline{Code: "misra-cpp2008-0-1-1", Category: Required}); err == nil {
		t.Errorf("expected an error for a guideline of another standard")
	}
}
