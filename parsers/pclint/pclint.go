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

// Package pclint reads PC-lint Plus messages carrying MISRA references, in
// either the default single line format or the tabular one:
//
//	src/main.c(12): Info 9003: could define variable at block scope [MISRA 2012 Rule 8.9, advisory]
//	src/main.c  12  Info 9003: could define variable at block scope [MISRA 2012 Rule 8.9, advisory]
package pclint

import (
	"regexp"
	"strconv"
	"strings"

	"naive.systems/gcs/grp"
	"naive.systems/gcs/parsers"
	"naive.systems/gcs/rulesets"
)

const Name = "pclint"

const messageTypes = `(Error|Warning|Info|Note|Supplemental)`

var (
	parenFormRe   = regexp.MustCompile(`^(.+?)\s*\((\d+)\)\s*:\s*` + messageTypes + `\s+(\d+):\s*(.*)$`)
	tabularFormRe = regexp.MustCompile(`^(\S+)\s+(\d+)\s+` + messageTypes + `\s+(\d+):\s*(.*)$`)
	// wrap-up messages have no location
	globalFormRe = regexp.MustCompile(`^` + messageTypes + `\s+(\d+):\s*(.*)$`)
)

// [MISRA 2012 Rule 8.7, advisory], [MISRA 2012 Directive 4.6, advisory],
// [MISRA C++ Rule 5-0-1], [MISRA C++ 2008 Rule 5-0-1, required]
var misraRefRe = regexp.MustCompile(`\[MISRA (2012|C\+\+(?: 2008)?) (Rule|Directive) ([\d.\-]+)(?:, \w+)?\]`)

var noisePrefixes = []string{
	"--- Module:",
	"--- Wrap-up",
	"--- Global Wrap-up",
	"PC-lint",
	"Copyright",
	"During Specific Walk:",
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

func isNoise(line string) bool {
	if strings.TrimSpace(line) == "" {
		return true
	}
	// echoed source lines and the location marker under them are indented
	if line[0] == ' ' || line[0] == '\t' {
		return true
	}
	for _, prefix := range noisePrefixes {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

func (p *Parser) ParseWarning(line string) (parsers.Warning, error) {
	line = strings.TrimRight(line, "\r")
	if isNoise(line) {
		return parsers.Warning{Kind: parsers.Noise}, nil
	}
	var path, lineText, msgType, msgNumber, message string
	if m := parenFormRe.FindStringSubmatch(line); m != nil {
		path, lineText, msgType, msgNumber, message = m[1], m[2], m[3], m[4], m[5]
	} else if m := tabularFormRe.FindStringSubmatch(line); m != nil {
		path, lineText, msgType, msgNumber, message = m[1], m[2], m[3], m[4], m[5]
	} else if m := globalFormRe.FindStringSubmatch(line); m != nil {
		msgType, msgNumber, message = m[1], m[2], m[3]
	} else {
		return parsers.Warning{}, &parsers.UnrecognizedLineError{Parser: Name}
	}
	w := parsers.Warning{
		Kind:    parsers.NonMisra,
		Path:    path,
		Message: message,
		Checker: msgType + " " + msgNumber,
	}
	if lineText != "" {
		n, err := strconv.Atoi(lineText)
		if err != nil {
			return parsers.Warning{}, &parsers.UnrecognizedLineError{Parser: Name}
		}
		w.Line = n
	}
	if ref := misraRefRe.FindStringSubmatch(message); ref != nil {
		w.Kind = parsers.Violation
		w.Code = ref[2] + " " + ref[3]
		w.Ruleset = rulesets.MisraC2012
		if strings.HasPrefix(ref[1], "C++") {
			w.Ruleset = rulesets.MisraCpp2008
		}
	}
	return w, nil
}

func (p *Parser) ParseGrpLine(line string) (*grp.Directive, error) {
	return grp.ParseLine(line)
}
