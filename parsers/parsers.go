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

// Package parsers defines the adapter capability set for the output of a
// static analysis tool and the registry the adapters are looked up in.
package parsers

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"

	"naive.systems/gcs/grp"
	"naive.systems/gcs/rulesets"
)

type Kind int

const (
	// Noise is a banner, progress, context or blank line.
	Noise Kind = iota
	// NonMisra is a well-formed diagnostic that names no MISRA guideline.
	NonMisra
	Violation
)

func (k Kind) String() string {
	switch k {
	case Noise:
		return "noise"
	case NonMisra:
		return "non-MISRA"
	case Violation:
		return "violation"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Warning is one line of tool output as understood by an adapter.
type Warning struct {
	Kind Kind
	// Code is the guideline reference as reported by the tool. Empty unless
	// Kind is Violation.
	Code string
	// Ruleset is the standard the tool attributed Code to, if it says so.
	Ruleset rulesets.Version
	Path    string
	// Line is 0 when the tool reports no line.
	Line    int
	Message string
	// Checker is the tool specific check id or message number.
	Checker string
}

type Parser interface {
	Name() string
	SupportedRulesets() []rulesets.Version
	// ParseWarning returns an error for a line it does not recognize.
	ParseWarning(line string) (Warning, error)
	ParseGrpLine(line string) (*grp.Directive, error)
}

// ContextParser is implemented by adapters of tools that echo source code
// after a diagnostic. previous is the kind of the line before line.
type ContextParser interface {
	ParseWarningAfter(line string, previous Kind) (Warning, error)
}

// ParseWarning uses the ContextParser form of p when it has one.
func ParseWarning(p Parser, line string, previous Kind) (Warning, error) {
	if cp, ok := p.(ContextParser); ok {
		return cp.ParseWarningAfter(line, previous)
	}
	return p.ParseWarning(line)
}

type UnknownParserError struct {
	Name string
}

func (e *UnknownParserError) Error() string {
	return fmt.Sprintf("unknown warning parser %q", e.Name)
}

// UnrecognizedLineError is returned by adapters for lines outside their
// grammar.
type UnrecognizedLineError struct {
	Parser string
}

func (e *UnrecognizedLineError) Error() string {
	return fmt.Sprintf("line not recognized by the %s parser", e.Parser)
}

// Registry is read-only after construction.
type Registry struct {
	parsers []Parser
	byName  map[string]Parser
}

func NewRegistry(p ...Parser) (*Registry, error) {
	r := &Registry{byName: make(map[string]Parser, len(p))}
	for _, parser := range p {
		key := strings.ToLower(parser.Name())
		if _, ok := r.byName[key]; ok {
			return nil, fmt.Errorf("parsers.NewRegistry: duplicate parser %q", parser.Name())
		}
		r.byName[key] = parser
		r.parsers = append(r.parsers, parser)
	}
	return r, nil
}

// All returns the parsers in registration order.
func (r *Registry) All() []Parser {
	return append([]Parser(nil), r.parsers...)
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.parsers))
	for _, p := range r.parsers {
		names = append(names, p.Name())
	}
	return names
}

// Lookup ignores case.
func (r *Registry) Lookup(name string) (Parser, error) {
	p, ok := r.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, &UnknownParserError{Name: name}
	}
	return p, nil
}

func (r *Registry) IsCompatible(name string, version rulesets.Version) bool {
	p, err := r.Lookup(name)
	if err != nil {
		return false
	}
	return slices.Contains(p.SupportedRulesets(), version)
}
