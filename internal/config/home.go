package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// HomeDirName is the per-project directory holding config and settings
const HomeDirName = ".nestree"

// HomeEnv overrides home discovery when set
const HomeEnv = "NESTREE_HOME"

// GetHome returns the nestree home directory
// Priority order:
//  1. NESTREE_HOME environment variable (if set)
//  2. .nestree in the nearest ancestor of start that already has one
//  3. .nestree under start (not created; the first settings write creates it)
func GetHome(start string) (string, error) {
	if home := os.Getenv(HomeEnv); home != "" {
		return home, nil
	}

	if start == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		start = cwd
	}

	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", start, err)
	}

	if found, ok := findHome(abs); ok {
		return found, nil
	}

	return filepath.Join(abs, HomeDirName), nil
}

// findHome walks up from dir looking for an existing .nestree directory
func findHome(dir string) (string, bool) {
	current := dir
	for {
		candidate := filepath.Join(current, HomeDirName)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, true
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", false
		}
		current = parent
	}
}
