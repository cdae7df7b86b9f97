package git

import (
	"context"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// sequenceEditorEnv lets a non-interactive command stand in for the todo editor.
const sequenceEditorEnv = "GIT_SEQUENCE_EDITOR"

// FixupCommit records the pending change as `fixup! <sha>`.
func (r *GitRepository) FixupCommit(ctx context.Context, sha string, includeUnstaged bool) error {
	args := []string{"commit", "--fixup", sha}
	if includeUnstaged {
		args = append([]string{"commit", "-a"}, args[1:]...)
	}
	if _, err := r.runGit(ctx, nil, args...); err != nil {
		return errors.Wrapf(err, "fixup commit for %s", ShortSHA(sha))
	}
	r.logger.Info("created fixup commit", zap.String("target", ShortSHA(sha)))
	return nil
}

// AutosquashRebase folds pending fixup! commits onto target without
// opening an editor.
func (r *GitRepository) AutosquashRebase(ctx context.Context, target string) error {
	return r.rebase(ctx, "true", "--autosquash", "-i", target)
}

// RebaseWithScript runs an interactive rebase onto target whose todo list is
// replaced by script.
func (r *GitRepository) RebaseWithScript(ctx context.Context, target, script string) error {
	f, err := os.CreateTemp("", "smartsquash-todo-*")
	if err != nil {
		return errors.Wrap(err, "create rebase script")
	}
	defer os.Remove(f.Name())

	if _, err := f.WriteString(script); err != nil {
		f.Close()
		return errors.Wrap(err, "write rebase script")
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, "write rebase script")
	}

	// git invokes the editor through the shell with the todo path appended.
	return r.rebase(ctx, "cp "+shellQuote(f.Name()), "-i", target)
}

func (r *GitRepository) rebase(ctx context.Context, editor string, args ...string) error {
	env := []string{sequenceEditorEnv + "=" + editor}
	if _, err := r.runGit(ctx, env, append([]string{"rebase"}, args...)...); err != nil {
		if _, abortErr := r.runGit(context.WithoutCancel(ctx), nil, "rebase", "--abort"); abortErr != nil {
			r.logger.Warn("rebase --abort failed", zap.Error(abortErr))
		}
		return errors.Mark(errors.Wrap(err, ErrRebaseAborted.Error()), ErrRebaseAborted)
	}
	r.logger.Info("rebase done")
	return nil
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
