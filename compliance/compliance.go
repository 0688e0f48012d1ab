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

// Package compliance computes the Guideline Compliance Summary of a run from
// the warnings of an analysis tool, the analyzed source files and an
// optional re-categorization plan.
package compliance

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/golang/glog"
	"github.com/google/uuid"

	"naive.systems/gcs/grp"
	"naive.systems/gcs/i18n"
	"naive.systems/gcs/ingest"
	"naive.systems/gcs/input"
	"naive.systems/gcs/parsers"
	"naive.systems/gcs/rulesets"
)

// ConfigurationError stops a run before any input is read. No report is
// produced.
type ConfigurationError struct {
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

type Input struct {
	ProjectName     string
	SoftwareVersion string
	Ruleset         string
	Parser          string
	// TagPattern is a regular expression. Empty disables tagging.
	TagPattern string
	// Base is the workspace absolute paths are made relative to.
	Base string
	// GrpLines is nil when the project has no re-categorization plan.
	GrpLines       []string
	WarningLines   []string
	SourceLines    []string
	IgnorePatterns []string
	Lang           string
	// Errors are problems the host had reading the inputs.
	Errors []input.Error
}

type Result struct {
	Report *Report
	Errors []input.Error
}

// ErrorCode is 0 when the inputs were read without error, otherwise a bit
// set of input.Source values.
func (r *Result) ErrorCode() int {
	return input.Code(r.Errors)
}

type Engine struct {
	model    *rulesets.Model
	registry *parsers.Registry
}

func NewEngine(model *rulesets.Model, registry *parsers.Registry) *Engine {
	return &Engine{model: model, registry: registry}
}

// Run returns a *ConfigurationError when the ruleset or the parser cannot be
// used. Problems in the inputs are collected in Result.Errors instead.
func (e *Engine) Run(in Input) (*Result, error) {
	version, err := e.model.Resolve(in.Ruleset)
	if err != nil {
		return nil, &ConfigurationError{Reason: "rule set", Err: err}
	}
	parser, err := e.registry.Lookup(in.Parser)
	if err != nil {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("warning parser (available: %s)", strings.Join(e.registry.Names(), ", ")), Err: err}
	}
	if !e.registry.IsCompatible(parser.Name(), version) {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("warning parser %s does not support %s", parser.Name(), version)}
	}
	var tag *regexp.Regexp
	if in.TagPattern != "" {
		tag, err = regexp.Compile(in.TagPattern)
		if err != nil {
			return nil, &ConfigurationError{Reason: "non-MISRA tag pattern", Err: err}
		}
	}
	rs, err := e.model.Ruleset(version)
	if err != nil {
		return nil, &ConfigurationError{Reason: "rule set", Err: err}
	}
	glog.Infof("computing the compliance summary of %q with %s against %s", in.ProjectName, parser.Name(), version)

	errs := append([]input.Error(nil), in.Errors...)
	errs = append(errs, ingest.ValidateIgnorePatterns(in.IgnorePatterns)...)

	directives, grpErrs := grp.Parse(in.GrpLines, parser.ParseGrpLine)
	errs = append(errs, grpErrs...)
	effective, applyErrs := grp.Apply(rs.Guidelines(), directives, rs.Lookup)
	errs = append(errs, applyErrs...)

	opts := ingest.Options{
		Base:           in.Base,
		Version:        version,
		Lookup:         rs.Lookup,
		TagPattern:     tag,
		IgnorePatterns: in.IgnorePatterns,
	}
	warnings := ingest.ParseWarnings(parser, in.WarningLines, opts)
	errs = append(errs, warnings.Errors...)
	sources, sourceErrs := ingest.ParseSourceFiles(in.SourceLines, opts)
	errs = append(errs, sourceErrs...)

	report := &Report{
		ProjectName:     in.ProjectName,
		SoftwareVersion: in.SoftwareVersion,
		Ruleset:         version,
		Parser:          parser.Name(),
		Guidelines:      assess(effective, warnings.Violations),
		Violations:      sortViolations(warnings.Violations),
		SourceFiles:     sources,
		Informational:   warnings.Informational,
		Ignored:         warnings.Ignored,
		ErrorCode:       input.Code(errs),
	}
	report.Compliant = true
	for _, g := range report.Guidelines {
		report.Totals.add(g.Status)
		if g.Status == NotCompliant {
			report.Compliant = false
		}
	}
	p := i18n.GetPrinter(in.Lang)
	report.Summary = summarize(report, p)
	report.Notes = notes(errs, p)
	report.ID = reportID(report)
	glog.Infof("compliant: %v, error code: %d", report.Compliant, report.ErrorCode)
	return &Result{Report: report, Errors: errs}, nil
}

// assess runs the state machine of every guideline: Disapplied when the
// plan disapplies it, else NotCompliant when violated, else Compliant.
func assess(effective []grp.EffectiveGuideline, violations []ingest.Violation) []GuidelineResult {
	violated := make(map[string]int)
	deviated := make(map[string]int)
	for _, v := range violations {
		violated[v.Code]++
		if v.Deviation {
			deviated[v.Code]++
		}
	}
	results := make([]GuidelineResult, 0, len(effective))
	for _, eg := range effective {
		r := GuidelineResult{
			Code:          eg.Code,
			Description:   eg.Description,
			Category:      eg.Category,
			Effective:     eg.Effective,
			Recategorized: eg.Recategorized,
			Justification: eg.Justification,
			Violations:    violated[eg.Code],
			Deviations:    deviated[eg.Code],
		}
		switch {
		case eg.Effective == rulesets.Disapplied:
			r.Status = Disapplied
		case r.Violations > 0:
			r.Status = NotCompliant
		default:
			r.Status = Compliant
		}
		results = append(results, r)
	}
	return results
}

func sortViolations(violations []ingest.Violation) []ingest.Violation {
	sorted := append([]ingest.Violation(nil), violations...)
	sort.SliceStable(sorted, func(i, j int) bool {
		x, y := sorted[i], sorted[j]
		if x.Path != y.Path {
			return x.Path < y.Path
		}
		if x.Line != y.Line {
			return x.Line < y.Line
		}
		return x.Code < y.Code
	})
	return sorted
}

var reportNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://naivesystems.com/misra-gcs/report"))

// reportID is derived from the content so that identical inputs give
// identical reports.
func reportID(r *Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\x00%s\x00%s\x00%s\x00%v\x00%d\x00%d\n", r.ProjectName, r.SoftwareVersion, r.Ruleset, r.Parser, r.Compliant, r.ErrorCode, r.Ignored)
	for _, g := range r.Guidelines {
		fmt.Fprintf(&b, "%s\x00%s\x00%s\x00%d\x00%d\n", g.Code, g.Effective, g.Status, g.Violations, g.Deviations)
	}
	for _, v := range r.Violations {
		fmt.Fprintf(&b, "%s\x00%s\x00%d\x00%s\n", v.Code, v.Path, v.Line, v.Message)
	}
	for _, s := range r.SourceFiles {
		fmt.Fprintf(&b, "%s\n", s.Path)
	}
	return uuid.NewSHA1(reportNamespace, []byte(b.String())).String()
}
