// Package dotdir resolves the .duet/ directory that holds duet's config.toml.
package dotdir

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DirName is the name of the duet directory.
	DirName = ".duet"
)

type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

// Target returns the target absolute path to a .duet/ directory.
// Order of precedence is as follows:
//  1. Provided override (created if missing)
//  2. Local ./.duet/ dir
//  3. Home ~/.duet/ dir
//  4. If none found, returns an empty string and callers fall back to defaults
func (m *Manager) Target(overrideDir string) (string, error) {
	if overrideDir != "" {
		if err := os.MkdirAll(overrideDir, 0o755); err != nil {
			return "", fmt.Errorf("creating duet directory %s: %w", overrideDir, err)
		}
		return filepath.Abs(overrideDir)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting current directory: %w", err)
	}
	if dirExists(filepath.Join(cwd, DirName)) {
		return filepath.Join(cwd, DirName), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		// No home directory is not fatal: defaults apply.
		return "", nil
	}
	if dirExists(filepath.Join(home, DirName)) {
		return filepath.Join(home, DirName), nil
	}

	return "", nil
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
