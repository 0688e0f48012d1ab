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

// Package builtin assembles the registry of the adapters shipped with the
// tool.
package builtin

import (
	"sync"

	"naive.systems/gcs/parsers"
	"naive.systems/gcs/parsers/cppcheck"
	"naive.systems/gcs/parsers/nsa"
	"naive.systems/gcs/parsers/pclint"
)

var (
	once     sync.Once
	registry *parsers.Registry
	err      error
)

// Registry returns the process wide registry, built on first use.
func Registry() (*parsers.Registry, error) {
	once.Do(func() {
		registry, err = parsers.NewRegistry(
			cppcheck.New(),
			pclint.New(),
			nsa.New(),
		)
	})
	return registry, err
}
