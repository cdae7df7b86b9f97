// Package fixup finds the branch commit a staged change belongs to.
package fixup

import (
	"github.com/masmgr/smartsquash-go/internal/changeset"
)

// Order selects the direction in which candidate commits are tried.
type Order string

const (
	OrderOldestFirst Order = "oldest-first"
	OrderNewestFirst Order = "newest-first"
)

// ParseOrder maps a configuration value to an Order. Unknown or empty
// values fall back to OrderOldestFirst.
func ParseOrder(s string) (Order, bool) {
	switch Order(s) {
	case OrderOldestFirst, "":
		return OrderOldestFirst, true
	case OrderNewestFirst:
		return OrderNewestFirst, true
	default:
		return OrderOldestFirst, false
	}
}

// Resolve returns the first commit, in fp's insertion order, whose footprint
// is a superset of staged. The first match wins even when a later commit
// touches fewer extra files.
//
// An empty staged set is a subset of every footprint and resolves to the
// first commit; callers check for staged changes beforehand.
func Resolve(staged changeset.FileSet, fp *changeset.Footprints) (string, bool) {
	for _, sha := range fp.Order() {
		if staged.SubsetOf(fp.Get(sha)) {
			return sha, true
		}
	}
	return "", false
}
