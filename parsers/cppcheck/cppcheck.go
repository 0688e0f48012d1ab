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

// Package cppcheck reads cppcheck output produced with the gcc template and
// the MISRA addon.
//
//	cppcheck --addon=misra --template=gcc src/
package cppcheck

import (
	"regexp"
	"strconv"
	"strings"

	"naive.systems/gcs/grp"
	"naive.systems/gcs/parsers"
	"naive.systems/gcs/rulesets"
)

const Name = "cppcheck"

// file:line:column: severity: message [id]
var diagnosticRe = regexp.MustCompile(`^(.+?):(\d+):(?:(\d+):)?\s*(error|warning|style|performance|portability|information|debug|note):\s*(.*?)\s*\[([A-Za-z0-9_.\-]+)\]\s*$`)

// misra-c2012-8.7, misra-c2012-dir-4.1
var misraIDRe = regexp.MustCompile(`(?i)^misra-c2012-((?:dir-)?\d+\.\d+)$`)

var progressRes = []*regexp.Regexp{
	regexp.MustCompile(`^Checking .*\.\.\.`),
	regexp.MustCompile(`^\d+/\d+ files checked`),
	// indented code context and the caret under it
	regexp.MustCompile(`^\s`),
	regexp.MustCompile(`^\^\s*$`),
}

type Parser struct{}

func New() *Parser {
	return &Parser{}
}

func (p *Parser) Name() string {
	return Name
}

func (p *Parser) SupportedRulesets() []rulesets.Version {
	return []rulesets.Version{rulesets.MisraC2012}
}

// ParseWarning reads line without knowing the line before it, so a code
// context line is only recognized when it is indented.
func (p *Parser) ParseWarning(line string) (parsers.Warning, error) {
	return p.ParseWarningAfter(line, parsers.Noise)
}

// ParseWarningAfter treats the line following a diagnostic as the code
// context cppcheck prints under it, whatever its indentation.
func (p *Parser) ParseWarningAfter(line string, previous parsers.Kind) (parsers.Warning, error) {
	line = strings.TrimRight(line, "\r")
	if strings.TrimSpace(line) == "" {
		return parsers.Warning{Kind: parsers.Noise}, nil
	}
	matches := diagnosticRe.FindStringSubmatch(line)
	if matches == nil {
		if previous == parsers.NonMisra || previous == parsers.Violation {
			return parsers.Warning{Kind: parsers.Noise}, nil
		}
		for _, re := range progressRes {
			if re.MatchString(line) {
				return parsers.Warning{Kind: parsers.Noise}, nil
			}
		}
		return parsers.Warning{}, &parsers.UnrecognizedLineError{Parser: Name}
	}
	lineNumber, err := strconv.Atoi(matches[2])
	if err != nil {
		return parsers.Warning{}, &parsers.UnrecognizedLineError{Parser: Name}
	}
	w := parsers.Warning{
		Kind:    parsers.NonMisra,
		Path:    matches[1],
		Line:    lineNumber,
		Message: matches[5],
		Checker: matches[6],
	}
	// cppcheck reports findings without a location against "nofile"
	if w.Path == "nofile" {
		w.Path = ""
	}
	if id := misraIDRe.FindStringSubmatch(matches[6]); id != nil {
		w.Kind = parsers.Violation
		w.Code = matches[6]
		w.Ruleset = rulesets.MisraC2012
	}
	return w, nil
}

func (p *Parser) ParseGrpLine(line string) (*grp.Directive, error) {
	return grp.ParseLine(line)
}
