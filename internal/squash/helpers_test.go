package squash

import (
	"context"
	"strings"
	"testing"

	"github.com/masmgr/smartsquash-go/internal/changeset"
	"github.com/masmgr/smartsquash-go/internal/git"
)

// fixtureCommit describes one commit of a test sequence.
type fixtureCommit struct {
	name  string   // single letter, repeated to form the SHA
	files []string // footprint
	tree  string   // snapshot id; equal ids mean an empty diff
}

func sha(name string) string {
	return strings.Repeat(name, 40)
}

// fixture builds an oldest-first sequence, its footprints and a mock diff source.
func fixture(t *testing.T, specs ...fixtureCommit) ([]git.Commit, *changeset.Footprints, *git.MockRepository) {
	t.Helper()
	commits := make([]git.Commit, len(specs))
	files := make(map[string][]string, len(specs))
	for i, s := range specs {
		commits[i] = git.Commit{SHA: sha(s.name), Message: "commit " + s.name, ParentCount: 1}
		files[commits[i].SHA] = s.files
	}

	repo := git.NewMockRepository(commits, files)
	for i, s := range specs {
		if s.tree != "" {
			repo.Trees[commits[i].SHA] = s.tree
		}
	}

	idx, err := changeset.NewIndex(repo)
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}
	fp, err := idx.IndexAll(context.Background(), commits)
	if err != nil {
		t.Fatalf("IndexAll: %v", err)
	}
	return commits, fp, repo
}

func shas(commits []git.Commit) []string {
	out := make([]string, len(commits))
	for i, c := range commits {
		out[i] = c.SHA
	}
	return out
}
