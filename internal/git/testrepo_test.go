package git

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// testRepo is a throwaway repository with a "master" branch holding one
// commit and "feature" checked out on top of it.
type testRepo struct {
	t     *testing.T
	dir   string
	repo  *gogit.Repository
	wt    *gogit.Worktree
	clock time.Time
}

func newTestRepo(t *testing.T) *testRepo {
	t.Helper()
	dir := t.TempDir()

	repo, err := gogit.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("PlainInit: %v", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree: %v", err)
	}

	r := &testRepo{
		t:     t,
		dir:   dir,
		repo:  repo,
		wt:    wt,
		clock: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	r.commit("initial", map[string]string{"README.md": "readme\n"})
	r.checkoutNew("feature")
	return r
}

func (r *testRepo) write(rel, content string) {
	r.t.Helper()
	full := filepath.Join(r.dir, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		r.t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		r.t.Fatalf("WriteFile: %v", err)
	}
}

func (r *testRepo) stage(rel string) {
	r.t.Helper()
	if _, err := r.wt.Add(rel); err != nil {
		r.t.Fatalf("Add: %v", err)
	}
}

func (r *testRepo) signature() *object.Signature {
	r.clock = r.clock.Add(time.Minute)
	return &object.Signature{Name: "Test", Email: "test@example.com", When: r.clock}
}

// commit writes and stages files, commits them and returns the new hash.
func (r *testRepo) commit(msg string, files map[string]string, parents ...plumbing.Hash) string {
	r.t.Helper()
	for rel, content := range files {
		r.write(rel, content)
		r.stage(rel)
	}
	sig := r.signature()
	opts := &gogit.CommitOptions{Author: sig, Committer: sig, AllowEmptyCommits: true}
	if len(parents) > 0 {
		head, err := r.repo.Head()
		if err != nil {
			r.t.Fatalf("Head: %v", err)
		}
		opts.Parents = append([]plumbing.Hash{head.Hash()}, parents...)
	}
	hash, err := r.wt.Commit(msg, opts)
	if err != nil {
		r.t.Fatalf("Commit: %v", err)
	}
	return hash.String()
}

func (r *testRepo) checkoutNew(branch string) {
	r.t.Helper()
	err := r.wt.Checkout(&gogit.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(branch),
		Create: true,
	})
	if err != nil {
		r.t.Fatalf("Checkout(%s): %v", branch, err)
	}
}

func (r *testRepo) checkout(branch string) {
	r.t.Helper()
	err := r.wt.Checkout(&gogit.CheckoutOptions{Branch: plumbing.NewBranchReferenceName(branch)})
	if err != nil {
		r.t.Fatalf("Checkout(%s): %v", branch, err)
	}
}

func (r *testRepo) open(opts OpenOptions) *GitRepository {
	r.t.Helper()
	if opts.Path == "" {
		opts.Path = r.dir
	}
	if opts.TargetBranch == "" {
		opts.TargetBranch = "master"
	}
	repo, err := Open(opts, nil)
	if err != nil {
		r.t.Fatalf("Open: %v", err)
	}
	return repo
}

// requireGitCLI skips tests that shell out to git.
func requireGitCLI(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not found on PATH")
	}
	t.Setenv("GIT_AUTHOR_NAME", "Test")
	t.Setenv("GIT_AUTHOR_EMAIL", "test@example.com")
	t.Setenv("GIT_COMMITTER_NAME", "Test")
	t.Setenv("GIT_COMMITTER_EMAIL", "test@example.com")
}

func (r *testRepo) git(args ...string) string {
	r.t.Helper()
	cmd := exec.Command("git", append([]string{"-C", r.dir}, args...)...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		r.t.Fatalf("git %v failed: %v: %s", args, err, string(out))
	}
	return strings.TrimSpace(string(out))
}
