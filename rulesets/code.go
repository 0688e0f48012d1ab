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
	"regexp"
	"strconv"
	"strings"
)

// matches 'misra-c2012-', 'MISRA C:2012 ', 'misra-cpp2008-', 'MISRA C++ ', 'misra 2012 '
var standardPrefixRe = regexp.MustCompile(`^misra[-_ ]?(c\+\+|cpp|c)?[-_ :]?(\d{4})?[-_ :]*`)

// matches 'Rule 8.7', 'R8.7', 'dir-4.1', 'D4.1', 'M0-1-1', '0-1-1', '8.7'
var guidelineCodeRe = regexp.MustCompile(`^(directive|dir|rule|d|r|m)?[-_ .]*(\d+(?:[-_.]\d+)*)$`)

var numberSepRe = regexp.MustCompile(`[-_.]`)

type code struct {
	// standard is the version named by the prefix, empty without one.
	standard Version
	kind     Kind
	numbers  []int
}

// standardOf maps the language and year of a prefix to a version. A prefix
// naming neither is accepted with no version.
func standardOf(language, year string) (Version, bool) {
	switch language {
	case "c":
		if year == "" || year == "2012" {
			return MisraC2012, true
		}
	case "c++", "cpp":
		if year == "" || year == "2008" {
			return MisraCpp2008, true
		}
	case "":
		switch year {
		case "":
			return "", true
		case "2012":
			return MisraC2012, true
		case "2008":
			return MisraCpp2008, true
		}
	}
	return "", false
}

func parseCode(raw string) (code, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	c := code{kind: Rule}
	if prefix := standardPrefixRe.FindStringSubmatch(s); prefix != nil {
		standard, ok := standardOf(prefix[1], prefix[2])
		if !ok {
			return code{}, false
		}
		c.standard = standard
		s = s[len(prefix[0]):]
	}
	matches := guidelineCodeRe.FindStringSubmatch(s)
	if matches == nil {
		return code{}, false
	}
	if strings.HasPrefix(matches[1], "d") {
		c.kind = Directive
	}
	for _, part := range numberSepRe.Split(matches[2], -1) {
		n, err := strconv.Atoi(part)
		if err != nil {
			return code{}, false
		}
		c.numbers = append(c.numbers, n)
	}
	return c, true
}

// NormalizeCode returns the key shared by all spellings of a guideline code,
// e.g. "rule 8.7" for "misra-c2012-8.7" and "R8.7". The standard named by a
// prefix is not part of the key.
func NormalizeCode(raw string) (string, bool) {
	c, ok := parseCode(raw)
	if !ok {
		return "", false
	}
	return c.String(), true
}

func (c code) String() string {
	parts := make([]string, len(c.numbers))
	for i, n := range c.numbers {
		parts[i] = strconv.Itoa(n)
	}
	return strings.ToLower(c.kind.String()) + " " + strings.Join(parts, ".")
}

// directives sort before rules, then by number component-wise
func (c code) less(other code) bool {
	if c.kind != other.kind {
		return c.kind == Directive
	}
	for i := 0; i < len(c.numbers) && i < len(other.numbers); i++ {
		if c.numbers[i] != other.numbers[i] {
			return c.numbers[i] < other.numbers[i]
		}
	}
	return len(c.numbers) < len(other.numbers)
}
