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

package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/golang/glog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"naive.systems/gcs/compliance"
	"naive.systems/gcs/job"
	"naive.systems/gcs/parsers"
	"naive.systems/gcs/parsers/builtin"
	"naive.systems/gcs/rulesets"
)

func newEngine() (*compliance.Engine, *rulesets.Model, *parsers.Registry, error) {
	model, err := rulesets.Builtin()
	if err != nil {
		return nil, nil, nil, err
	}
	registry, err := builtin.Registry()
	if err != nil {
		return nil, nil, nil, err
	}
	return compliance.NewEngine(model, registry), model, registry, nil
}

// bindConfigFlags registers one flag per configuration field. Flags that are
// set on the command line override the configuration file.
func bindConfigFlags(flags *pflag.FlagSet, cfg *job.Config) {
	flags.StringVar(&cfg.Workspace, "workspace", cfg.Workspace, "workspace directory, absolute paths below it are reported relative to it")
	flags.StringVar(&cfg.WarningsFile, "warnings_file", cfg.WarningsFile, "file with the warnings of the analysis tool")
	flags.StringVar(&cfg.SourceListFile, "source_list_file", cfg.SourceListFile, "file listing the analyzed source files, one per line")
	flags.StringVar(&cfg.GrpFile, "grp_file", cfg.GrpFile, "guideline re-categorization plan")
	flags.StringVar(&cfg.WarningParser, "warning_parser", cfg.WarningParser, "name of the warning parser")
	flags.StringVar(&cfg.RuleSet, "rule_set", cfg.RuleSet, "MISRA C:2012 or MISRA C++:2008")
	flags.BoolVar(&cfg.FailOnError, "fail_on_error", cfg.FailOnError, "fail when errors occurred during processing")
	flags.BoolVar(&cfg.FailOnIncompliance, "fail_on_incompliance", cfg.FailOnIncompliance, "fail when the project is not compliant")
	flags.StringVar(&cfg.NonMisraTagPattern, "non_misra_tag_pattern", cfg.NonMisraTagPattern, "regular expression marking deviations and tolerated lines")
	flags.StringVar(&cfg.ProjectName, "project_name", cfg.ProjectName, "project name, environment variables are expanded")
	flags.StringVar(&cfg.SoftwareVersion, "software_version", cfg.SoftwareVersion, "software version, environment variables are expanded")
	flags.StringVar(&cfg.Charset, "charset", cfg.Charset, "charset of the input files")
	flags.StringSliceVar(&cfg.IgnorePatterns, "ignore_patterns", cfg.IgnorePatterns, "glob patterns of paths to leave out")
	flags.StringVar(&cfg.Output, "output", cfg.Output, "report file, stdout when empty")
	flags.StringVar(&cfg.Format, "format", cfg.Format, "report format: json, yaml or text")
	flags.StringVar(&cfg.Lang, "lang", cfg.Lang, "report language: en or zh")
}

// mergeFlags copies the flags set on the command line over cfg.
func mergeFlags(flags *pflag.FlagSet, cfg *job.Config) error {
	var err error
	overrides := pflag.NewFlagSet("overrides", pflag.ContinueOnError)
	bindConfigFlags(overrides, cfg)
	flags.Visit(func(f *pflag.Flag) {
		if err != nil || overrides.Lookup(f.Name) == nil {
			return
		}
		if f.Value.Type() == "stringSlice" {
			err = overrides.Set(f.Name, strings.Join(mustStringSlice(flags, f.Name), ","))
			return
		}
		err = overrides.Set(f.Name, f.Value.String())
	})
	return err
}

func mustStringSlice(flags *pflag.FlagSet, name string) []string {
	values, err := flags.GetStringSlice(name)
	if err != nil {
		glog.Errorf("flags.GetStringSlice(%s): %v", name, err)
	}
	return values
}

func newReportCmd() *cobra.Command {
	var configPath string
	flagValues := job.DefaultConfig()
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Compute the compliance summary of a project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := job.DefaultConfig()
			if configPath != "" {
				loaded, err := job.LoadConfig(configPath)
				if err != nil {
					return fmt.Errorf("job.LoadConfig: %v", err)
				}
				cfg = loaded
			}
			if err := mergeFlags(cmd.Flags(), cfg); err != nil {
				return err
			}
			if cfg.LogDir != "" {
				if err := os.MkdirAll(cfg.LogDir, os.ModePerm); err != nil {
					return fmt.Errorf("os.MkdirAll: %v", err)
				}
				if err := flag.Set("log_dir", cfg.LogDir); err != nil {
					return fmt.Errorf("flag.Set(log_dir): %v", err)
				}
			}
			engine, _, _, err := newEngine()
			if err != nil {
				return err
			}
			outcome, err := job.Run(cfg, engine, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if outcome.Failed {
				fmt.Fprintf(cmd.ErrOrStderr(), "misra_gcs: %s\n", outcome.Reason)
				return errJobFailed
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "YAML job configuration")
	bindConfigFlags(cmd.Flags(), flagValues)
	return cmd
}

func newParsersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parsers",
		Short: "List the warning parsers and the rule sets they support",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, registry, err := newEngine()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, p := range registry.All() {
				var names []string
				for _, v := range p.SupportedRulesets() {
					names = append(names, string(v))
				}
				fmt.Fprintf(w, "%s\t%s\n", p.Name(), strings.Join(names, ", "))
			}
			return w.Flush()
		},
	}
}

func newRulesetsCmd() *cobra.Command {
	var guidelinesOf string
	cmd := &cobra.Command{
		Use:   "rulesets",
		Short: "List the supported rule sets or the guidelines of one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, model, _, err := newEngine()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			if guidelinesOf == "" {
				for _, v := range model.Versions() {
					guidelines, err := model.GuidelinesFor(v)
					if err != nil {
						return err
					}
					fmt.Fprintf(w, "%s\t%d guidelines\n", v, len(guidelines))
				}
				return w.Flush()
			}
			version, err := model.Resolve(guidelinesOf)
			if err != nil {
				return err
			}
			guidelines, err := model.GuidelinesFor(version)
			if err != nil {
				return err
			}
			for _, g := range guidelines {
				fmt.Fprintf(w, "%s\t%s\t%s\n", g.Code, g.Category, g.Description)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&guidelinesOf, "guidelines", "", "print the guidelines of this rule set")
	return cmd
}
