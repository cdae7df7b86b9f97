package git

import (
	"context"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"go.uber.org/zap"
)

// GitRepository reads history with go-git and shells out to the git CLI for
// index inspection and history rewriting.
type GitRepository struct {
	repo    *git.Repository
	workDir string
	opts    OpenOptions
	logger  *zap.Logger
}

// Open opens the repository containing opts.Path and validates it against
// the target branch. Parent directories are searched for the .git directory.
func Open(opts OpenOptions, logger *zap.Logger) (*GitRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if _, err := os.Stat(opts.Path); err != nil {
		return nil, errors.Wrapf(ErrPathNotExist, "%s", opts.Path)
	}

	repo, err := git.PlainOpenWithOptions(opts.Path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, errors.Wrapf(ErrNotARepository, "%s", opts.Path)
		}
		return nil, errors.Wrap(err, "open repository")
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, errors.Wrap(err, "open worktree")
	}

	if opts.Engine == "" {
		opts.Engine = EngineGoGit
	}

	r := &GitRepository{
		repo:    repo,
		workDir: wt.Filesystem.Root(),
		opts:    opts,
		logger:  logger,
	}
	if err := r.validate(opts.TargetBranch); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *GitRepository) validate(target string) error {
	if _, err := r.repo.Reference(plumbing.NewBranchReferenceName(target), true); err != nil {
		return errors.Wrapf(ErrTargetNotExist, "%s", target)
	}

	head, err := r.repo.Head()
	if err != nil {
		return errors.Wrap(err, "resolve HEAD")
	}
	if !head.Name().IsBranch() {
		return ErrHeadDetached
	}
	if head.Name().Short() == target {
		return errors.Wrapf(ErrTargetEqualsCurrent, "%s", target)
	}
	return nil
}

// WorkDir returns the root of the working tree.
func (r *GitRepository) WorkDir() string {
	return r.workDir
}

// CurrentBranch returns the short name of the checked out branch.
func (r *GitRepository) CurrentBranch() (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", errors.Wrap(err, "resolve HEAD")
	}
	return head.Name().Short(), nil
}

// BranchOnlyCommits lists commits reachable from HEAD and not from target.
// Merge commits are skipped. The result is ordered oldest first.
func (r *GitRepository) BranchOnlyCommits(ctx context.Context, target string) ([]Commit, error) {
	targetRef, err := r.repo.Reference(plumbing.NewBranchReferenceName(target), true)
	if err != nil {
		return nil, errors.Wrapf(ErrTargetNotExist, "%s", target)
	}

	onTarget := make(map[plumbing.Hash]struct{})
	tIter, err := r.repo.Log(&git.LogOptions{From: targetRef.Hash(), Order: git.LogOrderCommitterTime})
	if err != nil {
		return nil, errors.Wrapf(err, "walk %s", target)
	}
	err = tIter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		onTarget[c.Hash] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "walk %s", target)
	}

	head, err := r.repo.Head()
	if err != nil {
		return nil, errors.Wrap(err, "resolve HEAD")
	}
	hIter, err := r.repo.Log(&git.LogOptions{From: head.Hash(), Order: git.LogOrderCommitterTime})
	if err != nil {
		return nil, errors.Wrap(err, "walk HEAD")
	}

	var newestFirst []Commit
	err = hIter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, ok := onTarget[c.Hash]; ok {
			return nil
		}
		commit := Commit{
			SHA:         c.Hash.String(),
			Message:     FirstLine(c.Message),
			ParentCount: c.NumParents(),
		}
		if commit.IsMerge() {
			return nil
		}
		newestFirst = append(newestFirst, commit)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "walk HEAD")
	}

	r.logger.Debug("listed branch-only commits",
		zap.String("target", target),
		zap.Int("commits", len(newestFirst)))

	return Reversed(newestFirst), nil
}

// ChangedPaths lists the paths touched by a commit using the configured engine.
// Include/exclude globs are not applied: a footprint must show every file the
// commit touched, or an edit to an excluded file could not block a fold.
func (r *GitRepository) ChangedPaths(ctx context.Context, sha string) ([]string, error) {
	var (
		paths []string
		err   error
	)
	switch r.opts.Engine {
	case EngineCLI:
		paths, err = r.changedPathsGitCLI(ctx, sha)
	default:
		paths, err = r.changedPathsGoGit(ctx, sha)
	}
	if err != nil {
		return nil, err
	}
	return dropEmpty(paths), nil
}

// changedPathsGoGit diffs the commit tree against its first parent, or the
// empty tree for a root commit.
func (r *GitRepository) changedPathsGoGit(ctx context.Context, sha string) ([]string, error) {
	c, err := r.repo.CommitObject(plumbing.NewHash(sha))
	if err != nil {
		return nil, errors.Wrapf(err, "read commit %s", ShortSHA(sha))
	}
	tree, err := c.Tree()
	if err != nil {
		return nil, errors.Wrapf(err, "read tree of %s", ShortSHA(sha))
	}

	var parentTree *object.Tree
	if c.NumParents() > 0 {
		parent, err := c.Parent(0)
		if err != nil {
			return nil, errors.Wrapf(err, "read parent of %s", ShortSHA(sha))
		}
		if parentTree, err = parent.Tree(); err != nil {
			return nil, errors.Wrapf(err, "read parent tree of %s", ShortSHA(sha))
		}
	}

	changes, err := object.DiffTreeWithOptions(ctx, parentTree, tree, &object.DiffTreeOptions{})
	if err != nil {
		return nil, errors.Wrapf(err, "diff %s", ShortSHA(sha))
	}

	var paths []string
	for _, change := range changes {
		if change.From.Name != "" {
			paths = append(paths, change.From.Name)
		}
		if change.To.Name != "" && change.To.Name != change.From.Name {
			paths = append(paths, change.To.Name)
		}
	}
	return paths, nil
}

// HasContentDiff compares the merge base of a and b with b, like `git diff a...b`.
func (r *GitRepository) HasContentDiff(_ context.Context, a, b string) (bool, error) {
	ca, err := r.repo.CommitObject(plumbing.NewHash(a))
	if err != nil {
		return false, errors.Wrapf(err, "read commit %s", ShortSHA(a))
	}
	cb, err := r.repo.CommitObject(plumbing.NewHash(b))
	if err != nil {
		return false, errors.Wrapf(err, "read commit %s", ShortSHA(b))
	}

	base := ca
	bases, err := ca.MergeBase(cb)
	if err != nil {
		return false, errors.Wrapf(err, "merge base of %s and %s", ShortSHA(a), ShortSHA(b))
	}
	if len(bases) > 0 {
		base = bases[0]
	}

	// Trees are content addressed: equal hashes mean an empty diff.
	return base.TreeHash != cb.TreeHash, nil
}
