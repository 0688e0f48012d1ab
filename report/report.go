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

// Package report encodes compliance reports and writes them to disk.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/message"
	"gopkg.in/yaml.v2"

	"naive.systems/gcs/atomic"
	"naive.systems/gcs/compliance"
	"naive.systems/gcs/i18n"
)

type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
	Text Format = "text"
)

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	case "text", "txt":
		return Text, nil
	}
	return "", fmt.Errorf("unknown report format %q", s)
}

func Encode(r *compliance.Report, format Format, lang string) ([]byte, error) {
	switch format {
	case JSON:
		buf := new(bytes.Buffer)
		enc := json.NewEncoder(buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			return nil, fmt.Errorf("enc.Encode: %v", err)
		}
		return buf.Bytes(), nil
	case YAML:
		out, err := yaml.Marshal(r)
		if err != nil {
			return nil, fmt.Errorf("yaml.Marshal: %v", err)
		}
		return out, nil
	case Text:
		return encodeText(r, i18n.GetPrinter(lang))
	}
	return nil, fmt.Errorf("unknown report format %q", format)
}

func localizedStatus(s compliance.Status, p *message.Printer) string {
	switch s {
	case compliance.Compliant:
		return p.Sprintf(i18n.StatusCompliant)
	case compliance.NotCompliant:
		return p.Sprintf(i18n.StatusNotCompliant)
	case compliance.Disapplied:
		return p.Sprintf(i18n.StatusDisapplied)
	}
	return s.String()
}

func encodeText(r *compliance.Report, p *message.Printer) ([]byte, error) {
	buf := new(bytes.Buffer)
	fmt.Fprintf(buf, "%s %s\n", r.ProjectName, r.SoftwareVersion)
	fmt.Fprintf(buf, "%s / %s / %s\n\n", r.Ruleset, r.Parser, r.ID)
	fmt.Fprintf(buf, "%s\n\n", r.Summary)
	w := tabwriter.NewWriter(buf, 0, 4, 2, ' ', 0)
	for _, g := range r.Guidelines {
		category := g.Category.String()
		if g.Recategorized {
			category += " -> " + g.Effective.String()
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\n", g.Code, category, localizedStatus(g.Status, p), g.Violations, g.Deviations)
	}
	if err := w.Flush(); err != nil {
		return nil, fmt.Errorf("w.Flush: %v", err)
	}
	if len(r.Violations) > 0 {
		buf.WriteString("\n")
	}
	for _, v := range r.Violations {
		tag := ""
		if v.Deviation {
			tag = " (deviation)"
		}
		fmt.Fprintf(buf, "%s:%d: [%s] %s%s\n", v.Path, v.Line, v.Code, v.Message, tag)
	}
	if r.Notes != "" {
		fmt.Fprintf(buf, "\n%s\n", r.Notes)
	}
	return buf.Bytes(), nil
}

// WriteFile replaces path with the encoded report.
func WriteFile(path string, r *compliance.Report, format Format, lang string) error {
	out, err := Encode(r, format, lang)
	if err != nil {
		return err
	}
	if err := atomic.Write(path, out, 0644); err != nil {
		return fmt.Errorf("atomic.Write: %v", err)
	}
	return nil
}
