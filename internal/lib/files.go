package lib

import (
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
)

// FirstMatchingPattern returns the first doublestar pattern matching path, or "" if none does.
func FirstMatchingPattern(path string, patterns []string) (string, error) {
	if path == "" {
		path = "."
	}

	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}

		ok, err := doublestar.Match(pattern, path)
		if err != nil {
			return "", fmt.Errorf("match pattern %q: %w", pattern, err)
		}
		if ok {
			return pattern, nil
		}
	}

	return "", nil
}

// IsRegularFile reports whether path exists and is not a directory.
func IsRegularFile(path string) (bool, error) {
	st, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	return !st.IsDir(), nil
}
