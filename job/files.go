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
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
	"github.com/hhatto/gocloc"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"

	"naive.systems/gcs/ingest"
)

// lookupEncoding returns nil for UTF-8.
func lookupEncoding(charset string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(charset)) {
	case "", "utf8", "utf-8":
		return nil, nil
	}
	e, err := ianaindex.MIME.Encoding(charset)
	if err != nil {
		return nil, fmt.Errorf("ianaindex.MIME.Encoding: %v", err)
	}
	if e == nil {
		return nil, fmt.Errorf("charset %s is not supported", charset)
	}
	return e, nil
}

// Decode converts content in charset to UTF-8.
func Decode(content []byte, charset string) (string, error) {
	e, err := lookupEncoding(charset)
	if err != nil {
		return "", err
	}
	if e == nil {
		return string(content), nil
	}
	reader := transform.NewReader(bytes.NewReader(content), e.NewDecoder())
	decoded, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("io.ReadAll: %v", err)
	}
	return string(decoded), nil
}

// SplitLines splits on "\n" and "\r\n". A trailing line break does not add
// an empty line.
func SplitLines(content string) []string {
	content = strings.TrimSuffix(content, "\n")
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// ReadLines reads a workspace file. Relative paths are resolved against
// workspace.
func ReadLines(workspace, name, charset string) ([]string, error) {
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(workspace, name)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text, err := Decode(content, charset)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %v", path, err)
	}
	lines := SplitLines(text)
	if len(lines) == 0 {
		glog.Warningf("%s is empty", path)
	}
	return lines, nil
}

var countLangs = []string{"C", "C++", "C Header", "C++ Header"}

// CountLines counts the code lines of the source files that exist in the
// workspace.
func CountLines(workspace string, files []ingest.SourceFile) (int, error) {
	var paths []string
	for _, f := range files {
		path := filepath.FromSlash(f.Path)
		if !filepath.IsAbs(path) {
			path = filepath.Join(workspace, path)
		}
		if info, err := os.Stat(path); err != nil || info.IsDir() {
			continue
		}
		paths = append(paths, path)
	}
	if len(paths) == 0 {
		return 0, nil
	}
	clocOpts := gocloc.NewClocOptions()
	languages := gocloc.NewDefinedLanguages()
	for _, lang := range countLangs {
		if _, exists := languages.Langs[lang]; exists {
			clocOpts.IncludeLangs[lang] = struct{}{}
		}
	}
	processor := gocloc.NewProcessor(languages, clocOpts)
	result, err := processor.Analyze(paths)
	if err != nil {
		return 0, fmt.Errorf("gocloc: %v", err)
	}
	sum := 0
	for _, file := range result.Files {
		sum += int(file.Code)
	}
	return sum, nil
}
