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

// Package ingest turns tool output and source lists into violations and
// source files of a compliance run.
package ingest

import (
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/golang/glog"

	"naive.systems/gcs/input"
	"naive.systems/gcs/parsers"
	"naive.systems/gcs/rulesets"
)

// Violation is never modified after it is created.
type Violation struct {
	// Code is the catalogue form of the guideline, e.g. "Rule 8.7".
	Code string `json:"code" yaml:"code"`
	// Path is relative to the workspace when the file is inside it.
	Path string `json:"path" yaml:"path"`
	// Line is 0 when the tool reported no line.
	Line    int    `json:"line" yaml:"line"`
	Message string `json:"message" yaml:"message"`
	// Deviation is set when the message matches the tag pattern.
	Deviation bool `json:"deviation" yaml:"deviation"`
	// InputLine is the 1-based line of the warnings input.
	InputLine int `json:"input_line" yaml:"input_line"`
	// Checker is the tool's own check id, e.g. "misra-c2012-8.7" or "Info 9003".
	Checker string `json:"checker,omitempty" yaml:"checker,omitempty"`
}

type SourceFile struct {
	Path string `json:"path" yaml:"path"`
}

type Options struct {
	// Base is the workspace directory absolute paths are made relative to.
	Base    string
	Version rulesets.Version
	Lookup  func(code string) (rulesets.Guideline, bool)
	// TagPattern marks deviations and tolerated non-MISRA lines. Optional.
	TagPattern     *regexp.Regexp
	IgnorePatterns []string
}

type WarningsResult struct {
	Violations []Violation
	// Informational counts diagnostics that do not name a MISRA guideline.
	Informational int
	// Ignored counts violations dropped by an ignore pattern.
	Ignored int
	Errors  []input.Error
}

var driveLetterRe = regexp.MustCompile(`^[A-Za-z]:/`)

func toSlash(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

func isAbs(p string) bool {
	return strings.HasPrefix(p, "/") || driveLetterRe.MatchString(p)
}

// NormalizePath makes absolute paths under base relative to it. Other paths
// are only cleaned. The result always uses '/' separators.
func NormalizePath(base, p string) string {
	p = toSlash(strings.TrimSpace(p))
	if p == "" {
		return ""
	}
	p = path.Clean(p)
	if !isAbs(p) || base == "" {
		return p
	}
	base = path.Clean(toSlash(base))
	if p == base {
		return "."
	}
	prefix := base
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	if strings.HasPrefix(p, prefix) {
		return strings.TrimPrefix(p, prefix)
	}
	return p
}

// ValidateIgnorePatterns reports the malformed patterns of patterns.
func ValidateIgnorePatterns(patterns []string) []input.Error {
	var errs []input.Error
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			e := input.Error{Source: input.Host, Message: fmt.Sprintf("malformed ignore pattern %s", pattern)}
			glog.Errorf("ingest.ValidateIgnorePatterns: %v", e)
			errs = append(errs, e)
		}
	}
	return errs
}

func isIgnored(patterns []string, p string) bool {
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, p)
		if err != nil {
			continue
		}
		if matched {
			glog.V(1).Infof("%s ignored due to pattern %s", p, pattern)
			return true
		}
	}
	return false
}

// ParseWarnings runs parser over the lines of the warnings input. Lines the
// parser cannot read are ingestion errors unless they match the tag pattern.
func ParseWarnings(parser parsers.Parser, lines []string, opts Options) WarningsResult {
	var result WarningsResult
	fail := func(lineNumber int, line, format string, args ...interface{}) {
		e := input.Error{Source: input.Warnings, Line: lineNumber, Text: line, Message: fmt.Sprintf(format, args...)}
		glog.Errorf("ingest.ParseWarnings: %v", e)
		result.Errors = append(result.Errors, e)
	}
	previous := parsers.Noise
	for i, line := range lines {
		lineNumber := i + 1
		w, err := parsers.ParseWarning(parser, line, previous)
		previous = w.Kind
		if err != nil {
			previous = parsers.Noise
			if opts.TagPattern != nil && opts.TagPattern.MatchString(line) {
				glog.V(1).Infof("warnings line %d is tagged, not parsed: %s", lineNumber, line)
				result.Informational++
				continue
			}
			fail(lineNumber, line, "%v", err)
			continue
		}
		switch w.Kind {
		case parsers.Noise:
			continue
		case parsers.NonMisra:
			result.Informational++
			continue
		}
		if w.Ruleset != "" && opts.Version != "" && w.Ruleset != opts.Version {
			fail(lineNumber, line, "%s guideline reported for a %s run", w.Ruleset, opts.Version)
			continue
		}
		g, ok := opts.Lookup(w.Code)
		if !ok {
			fail(lineNumber, line, "unknown guideline %q", w.Code)
			continue
		}
		p := NormalizePath(opts.Base, w.Path)
		if isIgnored(opts.IgnorePatterns, p) {
			result.Ignored++
			continue
		}
		result.Violations = append(result.Violations, Violation{
			Code:      g.Code,
			Path:      p,
			Line:      w.Line,
			Message:   w.Message,
			Deviation: opts.TagPattern != nil && opts.TagPattern.MatchString(w.Message),
			InputLine: lineNumber,
			Checker:   w.Checker,
		})
	}
	glog.Infof("%d violations, %d informational warnings and %d errors in %d warning lines",
		len(result.Violations), result.Informational, len(result.Errors), len(lines))
	return result
}

// ParseSourceFiles normalizes the source list the same way as violation
// paths and drops blank lines and duplicates.
func ParseSourceFiles(lines []string, opts Options) ([]SourceFile, []input.Error) {
	var files []SourceFile
	seen := make(map[string]bool)
	for i, line := range lines {
		p := NormalizePath(opts.Base, line)
		if p == "" {
			continue
		}
		if seen[p] {
			glog.Warningf("source list line %d repeats %s", i+1, p)
			continue
		}
		seen[p] = true
		if isIgnored(opts.IgnorePatterns, p) {
			continue
		}
		files = append(files, SourceFile{Path: p})
	}
	if len(files) == 0 {
		e := input.Error{Source: input.SourceList, Message: "no source files to process"}
		glog.Errorf("ingest.ParseSourceFiles: %v", e)
		return nil, []input.Error{e}
	}
	return files, nil
}
