// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package check

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// ExpandArtifacts resolves artifact patterns into file paths. Plain paths
// are kept as given; patterns with glob metacharacters are expanded with
// doublestar semantics so "src/**/ConversionRules.java" works. Paths and
// patterns that match nothing are returned in missing. The result has no
// duplicates and keeps the order of the patterns.
func ExpandArtifacts(patterns []string) (paths, missing []string, err error) {
	seen := make(map[string]bool)
	add := func(p string) {
		p = filepath.Clean(p)
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}

	for _, pattern := range patterns {
		if !hasMeta(pattern) {
			info, statErr := os.Stat(pattern)
			switch {
			case statErr == nil && info.IsDir():
				return nil, nil, fmt.Errorf("artifact %s is a directory", pattern)
			case statErr == nil:
				add(pattern)
			case os.IsNotExist(statErr):
				missing = append(missing, pattern)
			default:
				return nil, nil, fmt.Errorf("checking artifact %s: %w", pattern, statErr)
			}
			continue
		}

		if !doublestar.ValidatePathPattern(pattern) {
			return nil, nil, fmt.Errorf("invalid artifact pattern %q", pattern)
		}
		matches, globErr := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if globErr != nil {
			return nil, nil, fmt.Errorf("expanding artifact pattern %q: %w", pattern, globErr)
		}
		if len(matches) == 0 {
			missing = append(missing, pattern)
			continue
		}
		for _, m := range matches {
			add(m)
		}
	}
	return paths, missing, nil
}

func hasMeta(pattern string) bool {
	for _, c := range pattern {
		switch c {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}
