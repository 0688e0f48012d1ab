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

// Package grp reads Guideline Re-categorization Plans and overlays them on
// the default categories of a ruleset.
package grp

import (
	"fmt"
	"strings"

	"github.com/golang/glog"
	"github.com/google/shlex"

	"naive.systems/gcs/input"
	"naive.systems/gcs/rulesets"
)

// Directive is one re-categorization line of a GRP.
type Directive struct {
	// Code is the guideline reference as written in the plan.
	Code          string
	Target        rulesets.Category
	Justification string
	Line          int
}

// LineParser turns one GRP line into at most one directive. Blank and
// comment lines yield nil.
type LineParser func(line string) (*Directive, error)

type fieldReader struct {
	tokens  []string
	pending []string
}

func (r *fieldReader) next() (string, bool) {
	for len(r.pending) == 0 {
		if len(r.tokens) == 0 {
			return "", false
		}
		for _, f := range strings.Split(r.tokens[0], ",") {
			if f = strings.TrimSpace(f); f != "" {
				r.pending = append(r.pending, f)
			}
		}
		r.tokens = r.tokens[1:]
	}
	f := r.pending[0]
	r.pending = r.pending[1:]
	return f, true
}

func (r *fieldReader) rest() string {
	var parts []string
	if len(r.pending) > 0 {
		parts = append(parts, strings.Join(r.pending, ","))
	}
	parts = append(parts, r.tokens...)
	return strings.Join(parts, " ")
}

func isKindWord(s string) bool {
	switch strings.ToLower(s) {
	case "rule", "dir", "directive":
		return true
	}
	return false
}

// ParseLine reads the generic plan grammar:
//
//	<code> <disposition> [justification...]
//
// Tokens follow shell quoting rules and may be separated by commas; '#'
// starts a comment.
func ParseLine(line string) (*Directive, error) {
	tokens, err := shlex.Split(line)
	if err != nil {
		return nil, fmt.Errorf("shlex.Split: %v", err)
	}
	if len(tokens) == 0 {
		return nil, nil
	}
	r := &fieldReader{tokens: tokens}
	code, _ := r.next()
	if isKindWord(code) {
		number, ok := r.next()
		if !ok {
			return nil, fmt.Errorf("missing guideline number after %q", code)
		}
		code = code + " " + number
	}
	if _, ok := rulesets.NormalizeCode(code); !ok {
		return nil, fmt.Errorf("malformed guideline reference %q", code)
	}
	disposition, ok := r.next()
	if !ok {
		return nil, fmt.Errorf("missing disposition for %s", code)
	}
	target, err := rulesets.ParseCategory(disposition)
	if err != nil {
		return nil, err
	}
	return &Directive{
		Code:          code,
		Target:        target,
		Justification: r.rest(),
	}, nil
}

// Parse runs parseLine over every line of a plan. Lines that cannot be
// parsed are reported as ingestion errors and skipped.
func Parse(lines []string, parseLine LineParser) ([]Directive, []input.Error) {
	var directives []Directive
	var errs []input.Error
	for i, line := range lines {
		d, err := parseLine(line)
		if err != nil {
			e := input.Error{Source: input.Grp, Line: i + 1, Text: line, Message: err.Error()}
			glog.Errorf("grp.Parse: %v", e)
			errs = append(errs, e)
			continue
		}
		if d == nil {
			continue
		}
		directive := *d
		directive.Line = i + 1
		directives = append(directives, directive)
	}
	return directives, errs
}

// EffectiveGuideline is a guideline with the category it has after the plan
// has been applied.
type EffectiveGuideline struct {
	rulesets.Guideline
	Effective     rulesets.Category
	Justification string
	// Recategorized is set when a directive of the plan applied.
	Recategorized bool
}

// Apply overlays directives on guidelines and returns a new list in the same
// order. Directives that name an unknown guideline, that the category state
// machine forbids, or that conflict with an earlier directive are reported
// and ignored. The inputs are not modified.
func Apply(guidelines []rulesets.Guideline, directives []Directive, lookup func(code string) (rulesets.Guideline, bool)) ([]EffectiveGuideline, []input.Error) {
	var errs []input.Error
	reject := func(d Directive, format string, args ...interface{}) {
		e := input.Error{Source: input.Grp, Line: d.Line, Message: fmt.Sprintf(format, args...)}
		glog.Errorf("grp.Apply: %v", e)
		errs = append(errs, e)
	}
	accepted := make(map[string]Directive)
	for _, d := range directives {
		g, ok := lookup(d.Code)
		if !ok {
			reject(d, "unknown guideline %q", d.Code)
			continue
		}
		if first, ok := accepted[g.Key()]; ok {
			if first.Target != d.Target {
				reject(d, "%s is already re-categorized as %s on line %d", g.Code, first.Target, first.Line)
			} else {
				glog.Warningf("grp line %d repeats the directive for %s", d.Line, g.Code)
			}
			continue
		}
		if !g.Category.CanBecome(d.Target) {
			reject(d, "%s is %s and cannot be re-categorized as %s", g.Code, g.Category, d.Target)
			continue
		}
		accepted[g.Key()] = d
	}

	effective := make([]EffectiveGuideline, 0, len(guidelines))
	for _, g := range guidelines {
		eg := EffectiveGuideline{Guideline: g, Effective: g.Category}
		if d, ok := accepted[g.Key()]; ok {
			eg.Effective = d.Target
			eg.Justification = d.Justification
			eg.Recategorized = true
		}
		effective = append(effective, eg)
	}
	return effective, errs
}
