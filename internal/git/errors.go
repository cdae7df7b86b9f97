package git

import "github.com/cockroachdb/errors"

// Precondition failures detected while opening a repository.
var (
	ErrPathNotExist        = errors.New("the path doesn't exist")
	ErrNotARepository      = errors.New("the target is not a git repository")
	ErrTargetNotExist      = errors.New("the target branch doesn't exist")
	ErrHeadDetached        = errors.New("HEAD is detached")
	ErrTargetEqualsCurrent = errors.New("target branch equals current active branch")
)

// ErrRebaseAborted marks a rebase that failed and was rolled back.
var ErrRebaseAborted = errors.New("rebase failed and was aborted; manual fixup required")

// IsPrecondition reports whether err is one of the repository precondition failures.
func IsPrecondition(err error) bool {
	return errors.IsAny(err,
		ErrPathNotExist,
		ErrNotARepository,
		ErrTargetNotExist,
		ErrHeadDetached,
		ErrTargetEqualsCurrent,
	)
}
