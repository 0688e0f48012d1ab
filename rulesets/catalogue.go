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

package rulesets

import (
	"embed"
	"fmt"
	"sync"

	"github.com/golang/glog"
	"gopkg.in/yaml.v2"
)

//go:embed catalogue/*.yaml
var catalogueFS embed.FS

var catalogueFiles = []string{
	"catalogue/misra_c_2012.yaml",
	"catalogue/misra_cpp_2008.yaml",
}

type catalogue struct {
	Version    string `yaml:"version"`
	Guidelines []struct {
		Code        string `yaml:"code"`
		Category    string `yaml:"category"`
		Description string `yaml:"description"`
	} `yaml:"guidelines"`
}

// LoadCatalogue decodes a YAML guideline catalogue into a Ruleset.
func LoadCatalogue(content []byte) (*Ruleset, error) {
	var c catalogue
	if err := yaml.Unmarshal(content, &c); err != nil {
		return nil, fmt.Errorf("yaml.Unmarshal: %v", err)
	}
	if c.Version == "" {
		return nil, fmt.Errorf("catalogue has no version")
	}
	guidelines := make([]Guideline, 0, len(c.Guidelines))
	for _, g := range c.Guidelines {
		category, err := ParseCategory(g.Category)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %v", c.Version, g.Code, err)
		}
		guidelines = append(guidelines, Guideline{
			Code:        g.Code,
			Category:    category,
			Description: g.Description,
		})
	}
	return NewRuleset(Version(c.Version), guidelines...)
}

var (
	builtinOnce  sync.Once
	builtinModel *Model
	builtinErr   error
)

// Builtin returns the model of the embedded MISRA C:2012 and MISRA C++:2008
// catalogues. It is decoded once and shared.
func Builtin() (*Model, error) {
	builtinOnce.Do(func() {
		builtinModel, builtinErr = loadBuiltin()
	})
	return builtinModel, builtinErr
}

func loadBuiltin() (*Model, error) {
	var rulesets []*Ruleset
	for _, name := range catalogueFiles {
		content, err := catalogueFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("rulesets.Builtin: %v", err)
		}
		rs, err := LoadCatalogue(content)
		if err != nil {
			return nil, fmt.Errorf("rulesets.LoadCatalogue(%s): %v", name, err)
		}
		glog.V(1).Infof("loaded %d guidelines of %s", len(rs.guidelines), rs.Version)
		rulesets = append(rulesets, rs)
	}
	return NewModel(rulesets...)
}
