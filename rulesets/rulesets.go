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

// Package rulesets holds the MISRA guideline catalogues and the category
// state machine used when guidelines are re-categorized.
package rulesets

import (
	"fmt"
	"sort"
	"strings"
)

type Version string

const (
	MisraC2012   Version = "MISRA C:2012"
	MisraCpp2008 Version = "MISRA C++:2008"
)

// to fix the sequence of the supported versions
var versions = []Version{MisraC2012, MisraCpp2008}

// keyed by the lower-cased name with separators removed
var versionAliases = map[string]Version{
	"misrac2012":   MisraC2012,
	"c2012":        MisraC2012,
	"misracpp2008": MisraCpp2008,
	"misrac++2008": MisraCpp2008,
	"cpp2008":      MisraCpp2008,
	"c++2008":      MisraCpp2008,
}

func Versions() []Version {
	return append([]Version(nil), versions...)
}

// ParseVersion accepts the canonical names and the common tool spellings
// such as misra-c2012, MISRA-C:2012 or misra_cpp_2008.
func ParseVersion(s string) (Version, error) {
	key := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_', ':', '\t':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(s)))
	if v, ok := versionAliases[key]; ok {
		return v, nil
	}
	return "", &UnsupportedRulesetError{Name: s}
}

type UnsupportedRulesetError struct {
	Name string
}

func (e *UnsupportedRulesetError) Error() string {
	return fmt.Sprintf("unsupported rule set %q", e.Name)
}

type Category int

const (
	Mandatory Category = iota + 1
	Required
	Advisory
	// Disapplied is only reachable through re-categorization.
	Disapplied
)

var categoryNames = map[Category]string{
	Mandatory:  "Mandatory",
	Required:   "Required",
	Advisory:   "Advisory",
	Disapplied: "Disapplied",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mandatory":
		return Mandatory, nil
	case "required", "document":
		return Required, nil
	case "advisory":
		return Advisory, nil
	case "disapplied", "disapply":
		return Disapplied, nil
	}
	return 0, fmt.Errorf("unknown category %q", s)
}

// CanBecome reports whether a guideline whose default category is c may be
// re-categorized to target. Mandatory guidelines stay Mandatory.
func (c Category) CanBecome(target Category) bool {
	if _, ok := categoryNames[target]; !ok {
		return false
	}
	switch c {
	case Mandatory:
		return target == Mandatory
	case Required, Advisory:
		return true
	}
	return false
}

func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

type Kind int

const (
	Rule Kind = iota
	Directive
)

func (k Kind) String() string {
	if k == Directive {
		return "Dir"
	}
	return "Rule"
}

type Guideline struct {
	// Code is the display form, e.g. "Rule 8.7", "Dir 4.1" or "Rule 0-1-1".
	Code        string
	Kind        Kind
	Category    Category
	Description string

	key code
}

// Key is the normalized form of Code shared by every spelling of it.
func (g Guideline) Key() string {
	return g.key.String()
}

type Ruleset struct {
	Version    Version
	guidelines []Guideline
	index      map[string]int
}

// NewRuleset validates the guideline codes and orders the guidelines with
// directives first, then by guideline number.
func NewRuleset(version Version, guidelines ...Guideline) (*Ruleset, error) {
	rs := &Ruleset{
		Version: version,
		index:   make(map[string]int, len(guidelines)),
	}
	for _, g := range guidelines {
		c, ok := parseCode(g.Code)
		if !ok {
			return nil, fmt.Errorf("rulesets.NewRuleset: %s: malformed guideline code %q", version, g.Code)
		}
		if _, ok := categoryNames[g.Category]; !ok || g.Category == Disapplied {
			return nil, fmt.Errorf("rulesets.NewRuleset: %s: invalid default category for %s", version, g.Code)
		}
		if c.standard != "" && c.standard != version {
			return nil, fmt.Errorf("rulesets.NewRuleset: %s: %s belongs to %s", version, g.Code, c.standard)
		}
		g.key = c
		g.Kind = c.kind
		rs.guidelines = append(rs.guidelines, g)
	}
	sort.SliceStable(rs.guidelines, func(i, j int) bool {
		return rs.guidelines[i].key.less(rs.guidelines[j].key)
	})
	for i, g := range rs.guidelines {
		key := g.key.String()
		if _, ok := rs.index[key]; ok {
			return nil, fmt.Errorf("rulesets.NewRuleset: %s: duplicate guideline %s", version, g.Code)
		}
		rs.index[key] = i
	}
	return rs, nil
}

func (rs *Ruleset) Guidelines() []Guideline {
	return append([]Guideline(nil), rs.guidelines...)
}

// Lookup fails for codes whose prefix names another standard, e.g.
// misra-cpp2008-8.7 in MISRA C:2012.
func (rs *Ruleset) Lookup(rawCode string) (Guideline, bool) {
	c, ok := parseCode(rawCode)
	if !ok || c.standard != "" && c.standard != rs.Version {
		return Guideline{}, false
	}
	i, ok := rs.index[c.String()]
	if !ok {
		return Guideline{}, false
	}
	return rs.guidelines[i], true
}

// Model is the read-only table of rulesets known to a process.
type Model struct {
	order    []Version
	rulesets map[Version]*Ruleset
}

func NewModel(rulesets ...*Ruleset) (*Model, error) {
	m := &Model{rulesets: make(map[Version]*Ruleset, len(rulesets))}
	for _, rs := range rulesets {
		if _, ok := m.rulesets[rs.Version]; ok {
			return nil, fmt.Errorf("rulesets.NewModel: duplicate rule set %s", rs.Version)
		}
		m.rulesets[rs.Version] = rs
		m.order = append(m.order, rs.Version)
	}
	return m, nil
}

func (m *Model) Versions() []Version {
	return append([]Version(nil), m.order...)
}

// Resolve maps a user supplied ruleset name to a version of the model.
func (m *Model) Resolve(name string) (Version, error) {
	if _, ok := m.rulesets[Version(name)]; ok {
		return Version(name), nil
	}
	v, err := ParseVersion(name)
	if err != nil {
		return "", err
	}
	if _, ok := m.rulesets[v]; !ok {
		return "", &UnsupportedRulesetError{Name: name}
	}
	return v, nil
}

func (m *Model) Ruleset(version Version) (*Ruleset, error) {
	rs, ok := m.rulesets[version]
	if !ok {
		return nil, &UnsupportedRulesetError{Name: string(version)}
	}
	return rs, nil
}

func (m *Model) GuidelinesFor(version Version) ([]Guideline, error) {
	rs, err := m.Ruleset(version)
	if err != nil {
		return nil, err
	}
	return rs.Guidelines(), nil
}

func (m *Model) Lookup(version Version, rawCode string) (Guideline, bool) {
	rs, ok := m.rulesets[version]
	if !ok {
		return Guideline{}, false
	}
	return rs.Lookup(rawCode)
}
