// Package file contains helpers for reading local files as datasources.
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// List returns the paths of regular files directly inside dir whose names
// end with one of exts (compared case-insensitively), in the name order
// os.ReadDir returns.
//
// Subdirectories are not descended into. A missing dir yields an error that
// satisfies errors.Is(err, os.ErrNotExist). An existing dir with no matches
// returns an empty slice and no error; callers decide whether that is fatal.
func List(dir string, exts []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	var out []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if hasExt(e.Name(), exts) {
			out = append(out, filepath.Join(dir, e.Name()))
		}
	}
	return out, nil
}

func hasExt(name string, exts []string) bool {
	lower := strings.ToLower(name)
	for _, ext := range exts {
		if strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}
