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

package builtin

import (
	"reflect"
	"testing"

	"naive.systems/gcs/rulesets"
)

func TestRegistry(t *testing.T) {
	r, err := Registry()
	if err != nil {
		t.Fatalf("Registry: %v", err)
	}
	if got, expected := r.Names(), []string{"cppcheck", "pclint", "nsa"}; !reflect.DeepEqual(got, expected) {
		t.Errorf("unexpected result. got: %v. expected: %v.", got, expected)
	}
	again, _ := Registry()
	if again != r {
		t.Errorf("Registry should be built once")
	}
	for _, testCase := range [...]struct {
		parser   string
		version  rulesets.Version
		expected bool
	}{
		{"cppcheck", rulesets.MisraC2012, true},
		{"cppcheck", rulesets.MisraCpp2008, false},
		{"pclint", rulesets.MisraCpp2008, true},
		{"nsa", rulesets.MisraC2012, true},
	} {
		if got := r.IsCompatible(testCase.parser, testCase.version); got != testCase.expected {
			t.Errorf("unexpected result for %v/%v. got: %v. expected: %v.", testCase.parser, testCase.version, got, testCase.expected)
		}
	}
}
