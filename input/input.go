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

// Package input describes the non-fatal problems found while reading the
// inputs of a compliance run.
package input

import (
	"fmt"
	"strings"
)

// Source identifies which input an Error belongs to. The values are bits of
// the error code of a run.
type Source int

const (
	Host Source = 1 << iota
	Warnings
	Grp
	SourceList
)

func (s Source) String() string {
	switch s {
	case Host:
		return "input"
	case Warnings:
		return "warnings"
	case Grp:
		return "GRP"
	case SourceList:
		return "source list"
	}
	return fmt.Sprintf("Source(%d)", int(s))
}

// Error is an ingestion error: the run goes on and the report is marked
// as not valid.
type Error struct {
	Source Source
	// Line is the 1-based line number in the input, 0 when not attributable.
	Line    int
	Text    string
	Message string
}

func (e Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Source.String())
	if e.Line > 0 {
		fmt.Fprintf(&b, " line %d", e.Line)
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Text != "" {
		fmt.Fprintf(&b, ": %q", e.Text)
	}
	return b.String()
}

// Code folds the sources of errs into an error code, 0 when errs is empty.
func Code(errs []Error) int {
	code := 0
	for _, e := range errs {
		code |= int(e.Source)
	}
	return code
}
