package squash

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/masmgr/smartsquash-go/internal/changeset"
	"github.com/masmgr/smartsquash-go/internal/git"
)

// DiffChecker reports whether two commit snapshots differ.
type DiffChecker interface {
	HasContentDiff(ctx context.Context, a, b string) (bool, error)
}

// Matcher decides whether a later commit can be folded into an earlier one.
type Matcher struct {
	diff   DiffChecker
	filter git.PathFilter
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithPathFilter limits the footprint comparison to paths accepted by f.
// Interleaving is always checked against unfiltered footprints.
func WithPathFilter(f git.PathFilter) Option {
	return func(m *Matcher) {
		m.filter = f
	}
}

// NewMatcher creates a matcher using diff for the net content check.
func NewMatcher(diff DiffChecker, opts ...Option) *Matcher {
	m := &Matcher{diff: diff}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// scope returns the part of files the footprint comparison looks at.
func (m *Matcher) scope(files changeset.FileSet) changeset.FileSet {
	if m.filter.IsZero() {
		return files
	}
	return files.Filter(m.filter.Match)
}

// Eligible reports whether b can be folded into the earlier commit a:
//   - both commits change exactly the same, non-empty set of files
//     (after the path filter, if any),
//   - no commit between them touches one of a's files unless it also
//     changes exactly that set,
//   - the diff a...b is not empty.
func (m *Matcher) Eligible(ctx context.Context, a, b git.Commit, commits []git.Commit, fp *changeset.Footprints) (bool, error) {
	files := m.scope(fp.Get(a.SHA))
	if files.Len() == 0 || !files.Equal(m.scope(fp.Get(b.SHA))) {
		return false, nil
	}

	if Interleaved(a, b, commits, fp) {
		return false, nil
	}

	differs, err := m.diff.HasContentDiff(ctx, a.SHA, b.SHA)
	if err != nil {
		return false, errors.Wrapf(err, "diff %s...%s", a.ShortSHA(), b.ShortSHA())
	}
	return differs, nil
}

// Interleaved reports whether a commit between a and b partially overlaps
// a's files. Folding across such a commit would reorder edits to a shared file.
func Interleaved(a, b git.Commit, commits []git.Commit, fp *changeset.Footprints) bool {
	files := fp.Get(a.SHA)
	for _, c := range Between(a.SHA, b.SHA, commits) {
		other := fp.Get(c.SHA)
		if other.Equal(files) {
			continue
		}
		if other.Intersects(files) {
			return true
		}
	}
	return false
}
