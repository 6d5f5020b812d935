package fileutil

import (
	"fmt"

	"github.com/harrison/nestree/internal/project"
)

// Pair is one file that absorbed a sibling directory.
type Pair struct {
	File      string `yaml:"file"`
	Directory string `yaml:"directory"`
}

// PairResult contains every pair found under a view's root
type PairResult struct {
	// Pairs is ordered by parent directory, then by the view's sibling order
	Pairs []Pair
	// Errors contains scan and read errors; the rest of the tree is still reported
	Errors []error
}

// FindPairs scans every directory below the view's root and reports the
// composites the view's nesting provider produces for each of them. The scan
// honours the view's hidden and excluded directory options.
func FindPairs(view *project.View, maxDepth int) (*PairResult, error) {
	opts := view.Options()
	scan, err := ScanDirectories(view.Fs(), view.RootPath(), ScanOptions{
		ExcludeDirs:   opts.ExcludeDirs,
		IncludeHidden: opts.ShowHidden,
		MaxDepth:      maxDepth,
	})
	if err != nil {
		return nil, err
	}

	result := &PairResult{
		Pairs:  make([]Pair, 0),
		Errors: scan.Errors,
	}

	for _, dir := range scan.Dirs {
		children, err := view.Children(view.Directory(dir))
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("failed to list %s: %w", dir, err))
			continue
		}
		for _, child := range children {
			composite, ok := child.Composite()
			if !ok {
				continue
			}
			result.Pairs = append(result.Pairs, Pair{
				File:      composite.File().Path,
				Directory: composite.Directory().Path,
			})
		}
	}

	return result, nil
}
