package fs

import (
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// recursiveSuffix marks a pattern that selects every file below a directory.
const recursiveSuffix = "/**"

// Resolver expands the source patterns of a file task into concrete paths.
type Resolver struct {
	walker *Walker
}

// NewResolver creates a new Resolver backed by walker.
func NewResolver(walker *Walker) *Resolver {
	return &Resolver{walker: walker}
}

// ResolveSources resolves patterns relative to root.
//
// A pattern ending in "/**" selects every file below that directory. A pattern with glob
// metacharacters is expanded with filepath.Glob and may match nothing. Any other pattern is
// kept as a literal path even when the file does not exist yet; staleness ignores missing
// sources. The result is sorted and free of duplicates.
func (r *Resolver) ResolveSources(patterns []string, root string) ([]string, error) {
	var result []string

	for _, pattern := range patterns {
		path := pattern
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, pattern)
		}

		switch {
		case strings.HasSuffix(pattern, recursiveSuffix):
			for file := range r.walker.WalkFiles(strings.TrimSuffix(path, recursiveSuffix), nil) {
				result = append(result, file)
			}
		case hasMeta(pattern):
			matches, err := filepath.Glob(path)
			if err != nil {
				return nil, zerr.With(zerr.Wrap(err, "failed to glob path"), "path", path)
			}
			result = append(result, matches...)
		default:
			result = append(result, filepath.Clean(path))
		}
	}

	slices.Sort(result)
	return slices.Compact(result), nil
}

func hasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, `*?[\`)
}
