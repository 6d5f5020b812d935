// Package nesting folds a directory into the sibling file that shares its
// base name, so "User.php" can be expanded to show the contents of "User/".
//
// Transform is a pure function of its inputs. It performs no I/O, never logs
// and never fails: anything it does not understand is passed through.
package nesting

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/harrison/nestree/internal/models"
)

// Config is an immutable snapshot of the nesting settings.
type Config struct {
	// Enabled turns nesting on or off
	Enabled bool

	// Extensions lists file extensions, without dots, whose files may absorb
	// a directory. Compared case-insensitively.
	Extensions []string
}

// Eligible reports whether files with the given extension may be nested.
func (c Config) Eligible(ext string) bool {
	lower := cases.Lower(language.Und)
	_, ok := c.extensionSet(lower)[lower.String(strings.TrimPrefix(ext, "."))]
	return ok
}

// extensionSet builds the lowercased lookup set used by a single Transform call.
func (c Config) extensionSet(lower cases.Caser) map[string]struct{} {
	set := make(map[string]struct{}, len(c.Extensions))
	for _, e := range c.Extensions {
		e = strings.TrimPrefix(strings.TrimSpace(e), ".")
		if e == "" {
			continue
		}
		set[lower.String(e)] = struct{}{}
	}
	return set
}

// Transform replaces every file/directory pair sharing a match key with a
// single composite entry at the file's position and drops the directory.
//
// When nothing changes the input slice itself is returned.
//
// Ambiguities are resolved deterministically:
//   - two directories lowercasing to the same key: the later one is used, the
//     earlier one passes through unchanged
//   - two eligible files lowercasing to the same key: the first one gets the
//     composite, later ones pass through unchanged
func Transform(children []models.Entry, cfg Config) []models.Entry {
	if !cfg.Enabled || len(children) == 0 {
		return children
	}

	lower := cases.Lower(language.Und)
	eligible := cfg.extensionSet(lower)
	if len(eligible) == 0 {
		return children
	}

	// Pass 1: classify
	filesByKey := make(map[string]int)
	dirsByKey := make(map[string]int)
	for i, entry := range children {
		switch entry.Kind() {
		case models.KindFile:
			file, _ := entry.File()
			key, ok := fileKey(file, eligible, lower)
			if !ok {
				continue
			}
			if _, seen := filesByKey[key]; !seen {
				filesByKey[key] = i
			}
		case models.KindDirectory:
			dir, _ := entry.Directory()
			if dir.Name == "" {
				continue
			}
			dirsByKey[lower.String(dir.Name)] = i
		case models.KindComposite, models.KindOther:
			// not classified
		}
	}

	if len(filesByKey) == 0 || len(dirsByKey) == 0 {
		return children
	}

	// index of the file that owns a composite -> index of its directory
	pairs := make(map[int]int)
	consumed := make(map[int]struct{})
	for key, fileIdx := range filesByKey {
		dirIdx, ok := dirsByKey[key]
		if !ok {
			continue
		}
		pairs[fileIdx] = dirIdx
		consumed[dirIdx] = struct{}{}
	}
	if len(pairs) == 0 {
		return children
	}

	// Pass 2: assemble
	result := make([]models.Entry, 0, len(children)-len(consumed))
	for i, entry := range children {
		if dirIdx, ok := pairs[i]; ok {
			file, _ := entry.File()
			dir, _ := children[dirIdx].Directory()
			result = append(result, models.CompositeEntry(models.NewComposite(file, dir)))
			continue
		}
		if _, ok := consumed[i]; ok {
			continue
		}
		result = append(result, entry)
	}

	return result
}

// fileKey returns the lowercased base name of an eligible file.
func fileKey(file models.File, eligible map[string]struct{}, lower cases.Caser) (string, bool) {
	ext, ok := file.Extension()
	if !ok {
		return "", false
	}
	if _, ok := eligible[lower.String(ext)]; !ok {
		return "", false
	}
	base := file.BaseName()
	if base == "" {
		return "", false
	}
	return lower.String(base), true
}
