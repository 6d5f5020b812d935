// Package fileutil scans a project for directories and reports where the
// nesting provider pairs a file with a sibling directory.
//
// # Scanning
//
// ScanDirectories walks an afero filesystem from a root and returns every
// directory it may descend into, sorted. Hidden directories (starting with
// ".") and names listed in ScanOptions.ExcludeDirs are skipped. Errors on
// individual directories are collected in ScanResult.Errors and the walk
// continues.
//
//	result, err := fileutil.ScanDirectories(afero.NewOsFs(), "/path/to/project", fileutil.ScanOptions{
//	    ExcludeDirs: []string{".git", "node_modules"},
//	    MaxDepth:    3,
//	})
//
// # Pairs
//
// FindPairs runs the view's children listing for each scanned directory and
// collects the composites it produces. The result is what the tree would show
// folded if every directory were expanded.
//
//	pairs, err := fileutil.FindPairs(view, 0)
//	for _, p := range pairs.Pairs {
//	    fmt.Printf("%s -> %s\n", p.File, p.Directory)
//	}
package fileutil
