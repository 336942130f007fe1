package output

import (
	"errors"
	"os"

	"campaign/internal/etlerr"
)

// ReplaceDir removes dir with everything in it, then recreates it empty.
// A missing dir is not an error. Subdirectories are removed as well.
func ReplaceDir(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return etlerr.IO("output.reset", dir, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return etlerr.IO("output.reset", dir, err)
	}
	return nil
}

// swapDir moves the fully written stage directory to dir, removing any
// previous dir first. Between the removal and the rename dir does not
// exist, but it is never visible half-written.
func swapDir(stage, dir string) error {
	if err := os.RemoveAll(dir); err != nil && !errors.Is(err, os.ErrNotExist) {
		return etlerr.IO("output.swap", dir, err)
	}
	if err := os.Chmod(stage, 0o755); err != nil {
		return etlerr.IO("output.swap", stage, err)
	}
	if err := os.Rename(stage, dir); err != nil {
		return etlerr.IO("output.swap", dir, err)
	}
	return nil
}
