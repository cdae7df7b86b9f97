package git

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

type gitRawEntry struct {
	path    string // destination path (or path for non-renames)
	oldPath string // source path for renames and copies
}

// changedPathsGitCLI runs `git diff-tree` for a single commit. --root makes a
// parentless commit diff against the empty tree, matching the go-git engine.
func (r *GitRepository) changedPathsGitCLI(ctx context.Context, sha string) ([]string, error) {
	out, err := r.runGit(ctx, nil,
		"diff-tree",
		"--no-color",
		"--no-commit-id",
		"--no-renames",
		"--root",
		"-r",
		"--raw",
		"-z",
		sha,
	)
	if err != nil {
		return nil, err
	}

	entries, _, err := parseGitRawEntries(out)
	if err != nil {
		return nil, errors.Wrapf(err, "parse diff-tree output for %s", ShortSHA(sha))
	}

	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.oldPath != "" {
			paths = append(paths, e.oldPath)
		}
		paths = append(paths, e.path)
	}
	return paths, nil
}

// runGit executes git inside the working tree and returns stdout.
// Stderr is folded into the error on failure.
func (r *GitRepository) runGit(ctx context.Context, env []string, args ...string) ([]byte, error) {
	full := append([]string{"-C", r.workDir}, args...)
	cmd := exec.CommandContext(ctx, "git", full...)
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.logger.Debug("running git", zap.Strings("args", args))
	if err := cmd.Run(); err != nil {
		return nil, errors.Wrapf(err, "git %s failed: %s", args[0], strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}

func parseGitRawEntries(body []byte) ([]gitRawEntry, int, error) {
	i := 0
	for i < len(body) && (body[i] == '\n' || body[i] == '\r') {
		i++
	}

	entries := make([]gitRawEntry, 0, 16)

	for i < len(body) && body[i] == ':' {
		meta, ok := readUntilNUL(body, &i)
		if !ok {
			return nil, 0, fmt.Errorf("unexpected git --raw format (missing NUL)")
		}

		fields := strings.Fields(string(meta))
		if len(fields) < 5 {
			return nil, 0, fmt.Errorf("unexpected git --raw meta: %q", string(meta))
		}

		status := fields[len(fields)-1]

		path1, ok := readStringUntilNUL(body, &i)
		if !ok {
			return nil, 0, fmt.Errorf("unexpected git --raw format (missing path)")
		}

		path := path1
		oldPath := ""
		if hasTwoPaths(status) {
			path2, ok := readStringUntilNUL(body, &i)
			if !ok {
				return nil, 0, fmt.Errorf("unexpected git --raw format (missing rename path)")
			}
			oldPath = path1
			path = path2
		}

		entries = append(entries, gitRawEntry{path: path, oldPath: oldPath})
	}

	return entries, i, nil
}

func readUntilNUL(b []byte, i *int) ([]byte, bool) {
	if *i >= len(b) {
		return nil, false
	}
	j := bytes.IndexByte(b[*i:], 0)
	if j == -1 {
		return nil, false
	}
	start := *i
	end := *i + j
	*i = end + 1
	return b[start:end], true
}

func readStringUntilNUL(b []byte, i *int) (string, bool) {
	raw, ok := readUntilNUL(b, i)
	if !ok {
		return "", false
	}
	return string(raw), true
}
