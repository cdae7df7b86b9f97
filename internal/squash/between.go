// Package squash detects branch commits that can be folded into an earlier
// commit touching exactly the same files, and builds the rebase plan.
package squash

import "github.com/masmgr/smartsquash-go/internal/git"

// Between returns the commits strictly between a and b in commits, in
// sequence order. Argument order does not matter. The result is empty when
// either identifier is not part of commits.
func Between(a, b string, commits []git.Commit) []git.Commit {
	ia, ib := -1, -1
	for i, c := range commits {
		if c.SHA == a {
			ia = i
		}
		if c.SHA == b {
			ib = i
		}
		if ia != -1 && ib != -1 {
			break
		}
	}
	if ia == -1 || ib == -1 {
		return nil
	}
	if ia > ib {
		ia, ib = ib, ia
	}
	if ib-ia < 2 {
		return nil
	}
	return commits[ia+1 : ib]
}
