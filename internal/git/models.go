package git

import "strings"

// ShortSHALength is the abbreviation used in rebase scripts and console output.
const ShortSHALength = 7

// Commit represents minimal information about a branch-only, non-merge commit.
type Commit struct {
	SHA         string
	Message     string // first line only, never nil
	ParentCount int
}

// ShortSHA returns the commit identifier truncated to ShortSHALength.
// Uniqueness is not guaranteed on very large histories.
func (c Commit) ShortSHA() string {
	return ShortSHA(c.SHA)
}

// IsMerge reports whether the commit has more than one parent.
func (c Commit) IsMerge() bool {
	return c.ParentCount > 1
}

// ShortSHA truncates a full identifier for display.
func ShortSHA(sha string) string {
	if len(sha) <= ShortSHALength {
		return sha
	}
	return sha[:ShortSHALength]
}

// FirstLine extracts the first line of a commit message.
func FirstLine(message string) string {
	if idx := strings.IndexByte(message, '\n'); idx != -1 {
		message = message[:idx]
	}
	return strings.TrimRight(message, "\r")
}

// Reversed returns a copy of commits in the opposite order.
// Sequences are oldest-first by convention; callers reverse for display.
func Reversed(commits []Commit) []Commit {
	out := make([]Commit, len(commits))
	for i, c := range commits {
		out[len(commits)-1-i] = c
	}
	return out
}

// ChangeEngine selects how changed paths are read from the repository.
type ChangeEngine string

const (
	EngineGoGit ChangeEngine = "go-git"
	EngineCLI   ChangeEngine = "cli"
)

// OpenOptions configures a repository handle.
type OpenOptions struct {
	Path         string
	TargetBranch string
	Engine       ChangeEngine
	Include      []string // Glob patterns to include
	Exclude      []string // Glob patterns to exclude
}
