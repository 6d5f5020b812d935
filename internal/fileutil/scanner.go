package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// ScanOptions configures the directory scanning behavior
type ScanOptions struct {
	// ExcludeDirs is a list of directory names to skip (e.g., ".git", "node_modules")
	ExcludeDirs []string
	// IncludeHidden descends into directories whose name starts with "."
	IncludeHidden bool
	// MaxDepth limits recursion depth (0 = unlimited, 1 = root only)
	MaxDepth int
}

// ScanResult contains the results of a directory scan
type ScanResult struct {
	// Dirs contains the root and every directory found below it, sorted
	Dirs []string
	// Errors contains any errors encountered during scanning
	Errors []error
}

// ScanDirectories walks root on fs and collects every directory that is not
// excluded. Unreadable directories are reported in Errors and skipped.
func ScanDirectories(fs afero.Fs, root string, opts ScanOptions) (*ScanResult, error) {
	root = filepath.Clean(root)

	info, err := fs.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", root)
	}

	result := &ScanResult{
		Dirs:   make([]string, 0),
		Errors: make([]error, 0),
	}

	excludeMap := make(map[string]bool, len(opts.ExcludeDirs))
	for _, dir := range opts.ExcludeDirs {
		excludeMap[dir] = true
	}

	err = afero.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("error accessing %s: %w", path, err))
			return nil
		}

		if !info.IsDir() {
			return nil
		}

		if path != root {
			name := info.Name()
			if excludeMap[name] || (!opts.IncludeHidden && strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			if opts.MaxDepth > 0 && depth(root, path) >= opts.MaxDepth {
				return filepath.SkipDir
			}
		}

		result.Dirs = append(result.Dirs, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	sort.Strings(result.Dirs)

	return result, nil
}

// depth returns how many levels path sits below root.
func depth(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}
