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

package compliance

import (
	"fmt"
	"strings"

	"golang.org/x/text/message"

	"naive.systems/gcs/i18n"
	"naive.systems/gcs/ingest"
	"naive.systems/gcs/input"
	"naive.systems/gcs/rulesets"
)

type Status int

const (
	Unassessed Status = iota
	Compliant
	NotCompliant
	Disapplied
)

var statusNames = map[Status]string{
	Unassessed:   "Unassessed",
	Compliant:    "Compliant",
	NotCompliant: "NotCompliant",
	Disapplied:   "Disapplied",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

type GuidelineResult struct {
	Code        string `json:"code" yaml:"code"`
	Description string `json:"description" yaml:"description"`
	// Category is the default category of the guideline.
	Category      rulesets.Category `json:"category" yaml:"category"`
	Effective     rulesets.Category `json:"effective_category" yaml:"effective_category"`
	Recategorized bool              `json:"recategorized" yaml:"recategorized"`
	Justification string            `json:"justification,omitempty" yaml:"justification,omitempty"`
	Status        Status            `json:"status" yaml:"status"`
	Violations    int               `json:"violations" yaml:"violations"`
	Deviations    int               `json:"deviations" yaml:"deviations"`
}

type Totals struct {
	Compliant    int `json:"compliant" yaml:"compliant"`
	NotCompliant int `json:"not_compliant" yaml:"not_compliant"`
	Disapplied   int `json:"disapplied" yaml:"disapplied"`
}

func (t *Totals) add(s Status) {
	switch s {
	case Compliant:
		t.Compliant++
	case NotCompliant:
		t.NotCompliant++
	case Disapplied:
		t.Disapplied++
	}
}

// Report is the Guideline Compliance Summary of one run.
type Report struct {
	ID              string              `json:"id" yaml:"id"`
	ProjectName     string              `json:"project_name" yaml:"project_name"`
	SoftwareVersion string              `json:"software_version" yaml:"software_version"`
	Ruleset         rulesets.Version    `json:"rule_set" yaml:"rule_set"`
	Parser          string              `json:"warning_parser" yaml:"warning_parser"`
	Compliant       bool                `json:"compliant" yaml:"compliant"`
	ErrorCode       int                 `json:"error_code" yaml:"error_code"`
	Summary         string              `json:"summary" yaml:"summary"`
	Notes           string              `json:"notes,omitempty" yaml:"notes,omitempty"`
	Totals          Totals              `json:"totals" yaml:"totals"`
	Guidelines      []GuidelineResult   `json:"guidelines" yaml:"guidelines"`
	Violations      []ingest.Violation  `json:"violations" yaml:"violations"`
	SourceFiles     []ingest.SourceFile `json:"source_files" yaml:"source_files"`
	Informational   int                 `json:"informational_warnings" yaml:"informational_warnings"`
	Ignored         int                 `json:"ignored_violations" yaml:"ignored_violations"`
	LinesOfCode     int                 `json:"lines_of_code,omitempty" yaml:"lines_of_code,omitempty"`
}

func (r *Report) IsCompliant() bool {
	return r.Compliant
}

func (r *Report) Deviations() int {
	n := 0
	for _, v := range r.Violations {
		if v.Deviation {
			n++
		}
	}
	return n
}

func summarize(r *Report, p *message.Printer) string {
	lines := make([]string, 0, 5)
	if r.Compliant {
		lines = append(lines, p.Sprintf(i18n.SummaryVerdictPass, r.ProjectName, r.Ruleset))
	} else {
		lines = append(lines, p.Sprintf(i18n.SummaryVerdictFail, r.ProjectName, r.Ruleset))
	}
	lines = append(lines,
		p.Sprintf(i18n.SummaryGuidelines, len(r.Guidelines), r.Totals.Compliant, r.Totals.NotCompliant, r.Totals.Disapplied),
		p.Sprintf(i18n.SummaryViolations, len(r.Violations), r.Deviations(), len(r.SourceFiles)),
		p.Sprintf(i18n.SummaryInformational, r.Informational),
	)
	if r.Ignored > 0 {
		lines = append(lines, p.Sprintf(i18n.SummaryIgnored, r.Ignored))
	}
	return strings.Join(lines, "\n")
}

// notes is empty when there are no errors.
func notes(errs []input.Error, p *message.Printer) string {
	if len(errs) == 0 {
		return ""
	}
	lines := []string{p.Sprintf(i18n.NotesHeadline)}
	for _, e := range errs {
		lines = append(lines, e.Error())
	}
	return strings.Join(lines, "\n")
}
