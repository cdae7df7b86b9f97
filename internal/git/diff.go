package git

import (
	"bytes"
	"context"
	"fmt"
	"strings"
)

// DiffFileEntry represents a file changed in the index or worktree.
type DiffFileEntry struct {
	Path    string
	OldPath string // non-empty for renames and copies
}

// StagedPaths lists the paths `git commit --fixup` would record: the index
// against HEAD, plus tracked worktree changes when includeUnstaged is set
// (what `git commit -a` adds). Renames are reported as delete + add so the
// result lines up with commit footprints. Paths outside the include/exclude
// globs are dropped.
func (r *GitRepository) StagedPaths(ctx context.Context, includeUnstaged bool) ([]string, error) {
	entries, err := r.readNameStatus(ctx, true)
	if err != nil {
		return nil, err
	}
	if includeUnstaged {
		unstaged, err := r.readNameStatus(ctx, false)
		if err != nil {
			return nil, err
		}
		entries = append(entries, unstaged...)
	}

	seen := make(map[string]struct{}, len(entries))
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		for _, p := range []string{e.OldPath, e.Path} {
			if p == "" {
				continue
			}
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			paths = append(paths, p)
		}
	}
	return r.opts.Filter().Apply(paths), nil
}

// IsDirty reports whether the index or any tracked file differs from HEAD.
// Untracked files are ignored.
func (r *GitRepository) IsDirty(ctx context.Context) (bool, error) {
	for _, cached := range []bool{true, false} {
		entries, err := r.readNameStatus(ctx, cached)
		if err != nil {
			return false, err
		}
		if len(entries) > 0 {
			return true, nil
		}
	}
	return false, nil
}

func (r *GitRepository) readNameStatus(ctx context.Context, cached bool) ([]DiffFileEntry, error) {
	args := []string{"diff", "--no-color", "--no-renames", "--name-status", "-z"}
	if cached {
		args = append(args, "--cached")
	}
	out, err := r.runGit(ctx, nil, args...)
	if err != nil {
		return nil, err
	}
	return parseDiffNameStatus(out)
}

// parseDiffNameStatus parses NUL-delimited `git diff --name-status -z` output.
// Format: STATUS\0PATH\0 (or STATUS\0OLDPATH\0NEWPATH\0 for renames/copies)
func parseDiffNameStatus(data []byte) ([]DiffFileEntry, error) {
	parts := bytes.Split(data, []byte{0x00})

	entries := make([]DiffFileEntry, 0, len(parts)/2)
	i := 0

	for i < len(parts) {
		status := strings.TrimSpace(string(parts[i]))
		if status == "" {
			i++
			continue
		}

		if i+1 >= len(parts) {
			break
		}

		if hasTwoPaths(status) {
			if i+2 >= len(parts) {
				return nil, fmt.Errorf("unexpected diff output: rename entry missing new path")
			}
			entries = append(entries, DiffFileEntry{
				Path:    string(parts[i+2]),
				OldPath: string(parts[i+1]),
			})
			i += 3
		} else {
			entries = append(entries, DiffFileEntry{
				Path: string(parts[i+1]),
			})
			i += 2
		}
	}

	return entries, nil
}

// hasTwoPaths reports whether a status letter is followed by a source and a
// destination path (renames and copies).
func hasTwoPaths(status string) bool {
	return len(status) > 0 && (status[0] == 'R' || status[0] == 'C')
}
