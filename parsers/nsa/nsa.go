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

// Package nsa reads the result listing printed by NaiveSystems Analyze:
//
//	src/main.c:12: [C0514][misra-c2012-8.7]: function only referenced in one translation unit
//
// followed, when counts are requested, by lines of the form
//
//	count: 3 error message: [C0514][misra-c2012-8.7]: ...
package nsa

import (
	"regexp"
	"strconv"
	"strings"

	"naive.systems/gcs/grp"
	"naive.systems/gcs/parsers"
	"naive.systems/gcs/rulesets"
)

const Name = "nsa"

var resultRe = regexp.MustCompile(`^(.+?):(\d+): \[([a-zA-Z_\d\-]*)\]\[([a-zA-Z.\-_\d]+)\]:?\s*(.*)$`)

var countRe = regexp.MustCompile(`^count: \d+ error message: `)

var standardPrefixes = map[string]rulesets.Version{
	"misra-c2012-":   rulesets.MisraC2012,
	"misra-cpp2008-": rulesets.MisraCpp2008,
}

type Parser struct{}

func New() *Parser {
	return &Parser{}
}

func (p *Parser) Name() string {
	return Name
}

func (p *Parser) SupportedRulesets() []rulesets.Version {
	return []rulesets.Version{rulesets.MisraC2012, rulesets.MisraCpp2008}
}

func (p *Parser) ParseWarning(line string) (parsers.Warning, error) {
	line = strings.TrimRight(line, "\r")
	if strings.TrimSpace(line) == "" || countRe.MatchString(line) {
		return parsers.Warning{Kind: parsers.Noise}, nil
	}
	matches := resultRe.FindStringSubmatch(line)
	if matches == nil {
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
		Checker: matches[3],
	}
	// gjb, cwe and autosar results are not MISRA guidelines
	rule := matches[4]
	for prefix, version := range standardPrefixes {
		if strings.HasPrefix(rule, prefix) {
			w.Kind = parsers.Violation
			w.Code = rule
			w.Ruleset = version
		}
	}
	return w, nil
}

func (p *Parser) ParseGrpLine(line string) (*grp.Directive, error) {
	return grp.ParseLine(line)
}
