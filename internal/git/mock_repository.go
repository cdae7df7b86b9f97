package git

import (
	"context"
	"sort"
)

// MockRepository is a test double for GitRepository.
// Commits and their footprints are predefined; mutating calls are recorded.
type MockRepository struct {
	Dir     string
	Commits []Commit
	Files   map[string][]string
	// Trees maps a commit to a content identifier; commits sharing an
	// identifier have an empty diff between them.
	Trees  map[string]string
	Staged []string
	// Unstaged lists tracked worktree modifications.
	Unstaged []string
	Error    error

	// RebaseError is returned by the rebase calls.
	RebaseError error

	ChangedPathsCalls map[string]int
	FixupTargets      []string
	AutosquashTargets []string
	Scripts           []string
}

// NewMockRepository creates a MockRepository with the given commits (oldest
// first) and footprints.
func NewMockRepository(commits []Commit, files map[string][]string) *MockRepository {
	return &MockRepository{
		Dir:               "/mock",
		Commits:           commits,
		Files:             files,
		Trees:             map[string]string{},
		ChangedPathsCalls: map[string]int{},
	}
}

func (m *MockRepository) WorkDir() string {
	return m.Dir
}

func (m *MockRepository) BranchOnlyCommits(_ context.Context, _ string) ([]Commit, error) {
	return m.Commits, m.Error
}

func (m *MockRepository) ChangedPaths(_ context.Context, sha string) ([]string, error) {
	if m.ChangedPathsCalls == nil {
		m.ChangedPathsCalls = map[string]int{}
	}
	m.ChangedPathsCalls[sha]++
	return m.Files[sha], m.Error
}

// HasContentDiff treats commits without a Trees entry as distinct snapshots.
func (m *MockRepository) HasContentDiff(_ context.Context, a, b string) (bool, error) {
	if m.Error != nil {
		return false, m.Error
	}
	ta, okA := m.Trees[a]
	tb, okB := m.Trees[b]
	if !okA || !okB {
		return true, nil
	}
	return ta != tb, nil
}

func (m *MockRepository) StagedPaths(_ context.Context, includeUnstaged bool) ([]string, error) {
	paths := append([]string{}, m.Staged...)
	if includeUnstaged {
		paths = append(paths, m.Unstaged...)
	}
	sort.Strings(paths)
	return paths, m.Error
}

func (m *MockRepository) IsDirty(_ context.Context) (bool, error) {
	return len(m.Staged)+len(m.Unstaged) > 0, m.Error
}

func (m *MockRepository) FixupCommit(_ context.Context, sha string, _ bool) error {
	m.FixupTargets = append(m.FixupTargets, sha)
	return m.Error
}

func (m *MockRepository) AutosquashRebase(_ context.Context, target string) error {
	m.AutosquashTargets = append(m.AutosquashTargets, target)
	return m.RebaseError
}

func (m *MockRepository) RebaseWithScript(_ context.Context, _ string, script string) error {
	m.Scripts = append(m.Scripts, script)
	return m.RebaseError
}

// Compile-time interface conformance check.
var _ Repository = (*MockRepository)(nil)
