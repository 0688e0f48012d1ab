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

package job

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/golang/glog"

	"naive.systems/gcs/compliance"
	"naive.systems/gcs/input"
	"naive.systems/gcs/report"
)

type Outcome struct {
	Result *compliance.Result
	// Failed tells whether the enclosing job fails.
	Failed bool
	Reason string
}

// Decide applies the failure policy of cfg to a finished run.
func Decide(cfg *Config, result *compliance.Result) (bool, string) {
	if cfg.FailOnError && result.ErrorCode() != 0 {
		return true, "errors occurred during processing"
	}
	if cfg.FailOnIncompliance && !result.Report.IsCompliant() {
		return true, "the project is not compliant"
	}
	return false, ""
}

func (c *Config) readInput(name string, errs *[]input.Error) []string {
	lines, err := ReadLines(c.Workspace, name, c.Charset)
	if err != nil {
		e := input.Error{Source: input.Host, Message: err.Error()}
		glog.Errorf("job.Run: %v", e)
		*errs = append(*errs, e)
		return nil
	}
	return lines
}

// Run reads the inputs named by cfg, runs engine over them and writes the
// report to cfg.Output, or to stdout when no output is configured. The
// returned error is a configuration error or a failure to write the report.
// The job fails in both cases.
func Run(cfg *Config, engine *compliance.Engine, stdout io.Writer) (*Outcome, error) {
	if err := cfg.Validate(); err != nil {
		return nil, &compliance.ConfigurationError{Reason: "job configuration", Err: err}
	}
	format, _ := report.ParseFormat(cfg.Format)
	cfg.ExpandEnv(os.Getenv)
	workspace, err := filepath.Abs(cfg.Workspace)
	if err != nil {
		return nil, &compliance.ConfigurationError{Reason: "workspace", Err: err}
	}
	cfg.Workspace = workspace

	var errs []input.Error
	in := compliance.Input{
		ProjectName:     cfg.ProjectName,
		SoftwareVersion: cfg.SoftwareVersion,
		Ruleset:         cfg.RuleSet,
		Parser:          cfg.WarningParser,
		TagPattern:      cfg.NonMisraTagPattern,
		Base:            cfg.Workspace,
		IgnorePatterns:  cfg.IgnorePatterns,
		Lang:            cfg.Lang,
	}
	if cfg.GrpFile != "" {
		in.GrpLines = cfg.readInput(cfg.GrpFile, &errs)
	}
	in.WarningLines = cfg.readInput(cfg.WarningsFile, &errs)
	in.SourceLines = cfg.readInput(cfg.SourceListFile, &errs)
	in.Errors = errs

	result, err := engine.Run(in)
	if err != nil {
		return nil, err
	}
	loc, err := CountLines(cfg.Workspace, result.Report.SourceFiles)
	if err != nil {
		glog.Warningf("CountLines: %v", err)
	}
	result.Report.LinesOfCode = loc

	if cfg.Output != "" {
		if err := report.WriteFile(cfg.Output, result.Report, format, cfg.Lang); err != nil {
			return nil, err
		}
		glog.Infof("report written to %s", cfg.Output)
	} else {
		out, err := report.Encode(result.Report, format, cfg.Lang)
		if err != nil {
			return nil, err
		}
		if _, err := stdout.Write(out); err != nil {
			return nil, fmt.Errorf("stdout.Write: %v", err)
		}
	}
	failed, reason := Decide(cfg, result)
	if failed {
		glog.Errorf("job failed: %s", reason)
	}
	return &Outcome{Result: result, Failed: failed, Reason: reason}, nil
}
