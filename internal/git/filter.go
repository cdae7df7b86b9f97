package git

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// PathFilter selects paths with doublestar include/exclude globs.
// Exclude wins over include; an empty include list keeps everything.
type PathFilter struct {
	Include []string
	Exclude []string
}

// Filter returns the glob filter configured for the repository.
func (o OpenOptions) Filter() PathFilter {
	return PathFilter{Include: o.Include, Exclude: o.Exclude}
}

// IsZero reports whether the filter keeps every path.
func (f PathFilter) IsZero() bool {
	return len(f.Include) == 0 && len(f.Exclude) == 0
}

// Match reports whether path passes the filter.
func (f PathFilter) Match(path string) bool {
	path = strings.ReplaceAll(path, "\\", "/")

	for _, pattern := range f.Exclude {
		if matched, _ := doublestar.Match(pattern, path); matched {
			return false
		}
	}

	if len(f.Include) == 0 {
		return true
	}

	for _, pattern := range f.Include {
		if matched, _ := doublestar.Match(pattern, path); matched {
			return true
		}
	}
	return false
}

// Apply returns the non-empty paths that pass the filter.
func (f PathFilter) Apply(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if p != "" && f.Match(p) {
			out = append(out, p)
		}
	}
	return out
}

func dropEmpty(paths []string) []string {
	out := paths[:0]
	for _, p := range paths {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
