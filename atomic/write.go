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

// Package atomic replaces files so that readers never see a partial write.
package atomic

import (
	"fmt"
	"os"
	"path/filepath"
)

// Write replaces name with data. The content goes to a temporary file in the
// same directory first, which is then renamed over name.
func Write(name string, data []byte, perm os.FileMode) error {
	pattern := "tmp-*-" + filepath.Base(name)
	f, err := os.CreateTemp(filepath.Dir(name), pattern)
	if err != nil {
		return fmt.Errorf("os.CreateTemp: %v", err)
	}
	tmpName := f.Name()
	// a no-op once the rename succeeded
	defer os.Remove(tmpName)
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("failed to write to file %s: %v", tmpName, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("f.Sync: %v", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("f.Close: %v", err)
	}
	// CreateTemp always uses 0600
	if err := os.Chmod(tmpName, perm); err != nil {
		return fmt.Errorf("os.Chmod: %v", err)
	}
	if err := os.Rename(tmpName, name); err != nil {
		return fmt.Errorf("failed to rename file %s to %s: %v", tmpName, name, err)
	}
	return nil
}
