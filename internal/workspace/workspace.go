// Package workspace locates the project's state directory and roots by
// walking the filesystem upward. Pure path logic — callers inject the start
// directory so tests never depend on the real working directory.
package workspace

import (
	"os"
	"path/filepath"
)

// StateDirName is the hidden directory holding hook config, rules, and the
// marker cache.
const StateDirName = ".chainlink"

// maxWalkUp bounds upward traversal so a pathological mount layout can't
// loop forever.
const maxWalkUp = 10

// FindStateDir walks up from startDir looking for a .chainlink directory.
// Returns the directory path and true, or "" and false if none is found.
func FindStateDir(startDir string) (string, bool) {
	current := startDir
	for i := 0; i < maxWalkUp; i++ {
		candidate := filepath.Join(current, StateDirName)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}
	return "", false
}

// FindProjectRoot walks up from the directory containing filePath looking for
// any of the given marker files (Cargo.toml, go.mod, package.json, ...).
// Returns "" if no marker is found.
func FindProjectRoot(filePath string, markers ...string) string {
	abs, err := filepath.Abs(filePath)
	if err != nil {
		return ""
	}
	current := filepath.Dir(abs)
	for i := 0; i < maxWalkUp; i++ {
		for _, marker := range markers {
			if _, err := os.Stat(filepath.Join(current, marker)); err == nil {
				return current
			}
		}
		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}
	return ""
}

// CacheDir returns the marker-cache directory under a state directory.
func CacheDir(stateDir string) string {
	return filepath.Join(stateDir, ".cache")
}

// RulesDir returns the rules directory under a state directory.
func RulesDir(stateDir string) string {
	return filepath.Join(stateDir, "rules")
}
