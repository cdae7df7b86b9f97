package changeset

import "sort"

// FileSet is a set of repository-relative paths.
type FileSet map[string]struct{}

// NewFileSet builds a set from paths, dropping empty entries.
func NewFileSet(paths ...string) FileSet {
	s := make(FileSet, len(paths))
	for _, p := range paths {
		if p == "" {
			continue
		}
		s[p] = struct{}{}
	}
	return s
}

// Len returns the number of paths.
func (s FileSet) Len() int {
	return len(s)
}

// Contains reports whether path is in the set.
func (s FileSet) Contains(path string) bool {
	_, ok := s[path]
	return ok
}

// Sorted returns the paths in lexical order.
func (s FileSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Equal reports exact set equality.
func (s FileSet) Equal(other FileSet) bool {
	if len(s) != len(other) {
		return false
	}
	for p := range s {
		if !other.Contains(p) {
			return false
		}
	}
	return true
}

// SubsetOf reports whether every path of s is also in other.
// The empty set is a subset of every set.
func (s FileSet) SubsetOf(other FileSet) bool {
	if len(s) > len(other) {
		return false
	}
	for p := range s {
		if !other.Contains(p) {
			return false
		}
	}
	return true
}

// Intersects reports whether s and other share at least one path.
func (s FileSet) Intersects(other FileSet) bool {
	small, large := s, other
	if len(small) > len(large) {
		small, large = large, small
	}
	for p := range small {
		if large.Contains(p) {
			return true
		}
	}
	return false
}

// Filter returns the paths of s accepted by keep. A nil keep returns s.
func (s FileSet) Filter(keep func(path string) bool) FileSet {
	if keep == nil {
		return s
	}
	out := make(FileSet, len(s))
	for p := range s {
		if keep(p) {
			out[p] = struct{}{}
		}
	}
	return out
}
