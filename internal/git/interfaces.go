package git

import "context"

// Repository is the version-control collaborator used by the squash and
// fixup workflows. Read operations never mutate repository state.
type Repository interface {
	// WorkDir returns the root of the working tree.
	WorkDir() string
	// BranchOnlyCommits lists non-merge commits reachable from HEAD but not
	// from target, oldest first.
	BranchOnlyCommits(ctx context.Context, target string) ([]Commit, error)
	// ChangedPaths lists the paths a commit changed against its sole parent.
	ChangedPaths(ctx context.Context, sha string) ([]string, error)
	// HasContentDiff reports whether the three-dot diff a...b is non-empty.
	HasContentDiff(ctx context.Context, a, b string) (bool, error)
	// StagedPaths lists paths staged in the index, plus tracked worktree
	// modifications when includeUnstaged is set.
	StagedPaths(ctx context.Context, includeUnstaged bool) ([]string, error)
	// IsDirty reports whether the index or tracked files differ from HEAD.
	IsDirty(ctx context.Context) (bool, error)

	FixupCommit(ctx context.Context, sha string, includeUnstaged bool) error
	AutosquashRebase(ctx context.Context, target string) error
	RebaseWithScript(ctx context.Context, target, script string) error
}

// Compile-time interface conformance check.
var _ Repository = (*GitRepository)(nil)
