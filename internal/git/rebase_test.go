package git

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
)

func branchCommitCount(t *testing.T, repo *GitRepository) int {
	t.Helper()
	commits, err := repo.BranchOnlyCommits(context.Background(), "master")
	if err != nil {
		t.Fatalf("BranchOnlyCommits: %v", err)
	}
	return len(commits)
}

func TestGitRepository_FixupAndAutosquash(t *testing.T) {
	requireGitCLI(t)

	r := newTestRepo(t)
	target := r.commit("first", map[string]string{"test.txt": "content"})
	r.commit("second", map[string]string{"other.txt": "other"})
	r.write("test.txt", "content-changed")

	repo := r.open(OpenOptions{})
	ctx := context.Background()

	if err := repo.FixupCommit(ctx, target, true); err != nil {
		t.Fatalf("FixupCommit: %v", err)
	}
	if n := branchCommitCount(t, repo); n != 3 {
		t.Fatalf("commits after fixup commit = %d, expected 3", n)
	}

	if err := repo.AutosquashRebase(ctx, "master"); err != nil {
		t.Fatalf("AutosquashRebase: %v", err)
	}
	commits, err := repo.BranchOnlyCommits(ctx, "master")
	if err != nil {
		t.Fatalf("BranchOnlyCommits: %v", err)
	}
	if len(commits) != 2 || commits[0].Message != "first" {
		t.Fatalf("commits after autosquash = %v", commits)
	}

	data, err := os.ReadFile(filepath.Join(r.dir, "test.txt"))
	if err != nil || string(data) != "content-changed" {
		t.Fatalf("test.txt = %q, %v", data, err)
	}
	if dirty, _ := repo.IsDirty(ctx); dirty {
		t.Fatalf("worktree still dirty after fixup")
	}
}

func TestGitRepository_RebaseWithScript(t *testing.T) {
	requireGitCLI(t)

	r := newTestRepo(t)
	a := r.commit("whatever", map[string]string{"test.txt": "whatever"})
	b := r.commit("even other content", map[string]string{"test.txt": "even other content"})

	repo := r.open(OpenOptions{})
	script := "pick " + ShortSHA(a) + " whatever\n" +
		"fixup " + ShortSHA(b) + " even other content\n"

	if err := repo.RebaseWithScript(context.Background(), "master", script); err != nil {
		t.Fatalf("RebaseWithScript: %v", err)
	}
	if n := branchCommitCount(t, repo); n != 1 {
		t.Fatalf("commits after squash = %d, expected 1", n)
	}
	data, err := os.ReadFile(filepath.Join(r.dir, "test.txt"))
	if err != nil || string(data) != "even other content" {
		t.Fatalf("test.txt = %q, %v", data, err)
	}
}

func TestGitRepository_RebaseWithScript_AbortsOnFailure(t *testing.T) {
	requireGitCLI(t)

	r := newTestRepo(t)
	r.commit("one", map[string]string{"test.txt": "1"})
	r.commit("two", map[string]string{"test.txt": "2"})
	before := r.git("rev-parse", "HEAD")

	repo := r.open(OpenOptions{})
	err := repo.RebaseWithScript(context.Background(), "master", "pick 0000000 does not exist\n")
	if !errors.Is(err, ErrRebaseAborted) {
		t.Fatalf("err = %v, want ErrRebaseAborted", err)
	}
	if after := r.git("rev-parse", "HEAD"); after != before {
		t.Fatalf("HEAD moved from %s to %s", before, after)
	}
	if status := r.git("status"); strings.Contains(status, "rebase in progress") {
		t.Fatalf("rebase left in progress:\n%s", status)
	}
}

func TestShellQuote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "/tmp/todo", want: "'/tmp/todo'"},
		{in: "/tmp/it's", want: `'/tmp/it'\''s'`},
	}
	for _, tt := range tests {
		if got := shellQuote(tt.in); got != tt.want {
			t.Errorf("shellQuote(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
