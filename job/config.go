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

// Package job is the host of a compliance run: it loads the job
// configuration, reads the input files from the workspace and decides
// whether the job fails.
package job

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v2"

	"naive.systems/gcs/i18n"
	"naive.systems/gcs/report"
)

type Config struct {
	Workspace          string   `yaml:"workspace"`
	WarningsFile       string   `yaml:"warnings_file"`
	SourceListFile     string   `yaml:"source_list_file"`
	GrpFile            string   `yaml:"grp_file"`
	WarningParser      string   `yaml:"warning_parser"`
	RuleSet            string   `yaml:"rule_set"`
	FailOnError        bool     `yaml:"fail_on_error"`
	FailOnIncompliance bool     `yaml:"fail_on_incompliance"`
	NonMisraTagPattern string   `yaml:"non_misra_tag_pattern"`
	ProjectName        string   `yaml:"project_name"`
	SoftwareVersion    string   `yaml:"software_version"`
	Charset            string   `yaml:"charset"`
	IgnorePatterns     []string `yaml:"ignore_patterns"`
	Output             string   `yaml:"output"`
	Format             string   `yaml:"format"`
	Lang               string   `yaml:"lang"`
	LogDir             string   `yaml:"log_dir"`
}

func DefaultConfig() *Config {
	return &Config{
		Workspace: ".",
		Charset:   "UTF-8",
		Format:    string(report.JSON),
		Lang:      "en",
	}
}

// LoadConfig reads a YAML job configuration over the defaults. Unknown keys
// are rejected.
func LoadConfig(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile: %v", err)
	}
	cfg := DefaultConfig()
	if err := yaml.UnmarshalStrict(content, cfg); err != nil {
		return nil, fmt.Errorf("yaml.UnmarshalStrict: %v", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	var missing []string
	for _, field := range []struct {
		name  string
		value string
	}{
		{"warnings_file", c.WarningsFile},
		{"source_list_file", c.SourceListFile},
		{"warning_parser", c.WarningParser},
		{"rule_set", c.RuleSet},
	} {
		if strings.TrimSpace(field.value) == "" {
			missing = append(missing, field.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required settings: %s", strings.Join(missing, ", "))
	}
	if _, err := report.ParseFormat(c.Format); err != nil {
		return err
	}
	if c.Lang != "" && !i18n.IsSupported(c.Lang) {
		return fmt.Errorf("unsupported language %q", c.Lang)
	}
	if _, err := lookupEncoding(c.Charset); err != nil {
		return err
	}
	return nil
}

// ExpandEnv replaces $VAR and ${VAR} in the project identity.
func (c *Config) ExpandEnv(getenv func(string) string) {
	c.ProjectName = os.Expand(c.ProjectName, getenv)
	c.SoftwareVersion = os.Expand(c.SoftwareVersion, getenv)
}
