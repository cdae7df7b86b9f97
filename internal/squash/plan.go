package squash

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/masmgr/smartsquash-go/internal/changeset"
	"github.com/masmgr/smartsquash-go/internal/git"
)

// Action is a rebase todo command.
type Action string

const (
	ActionPick  Action = "pick"
	ActionFixup Action = "fixup"
)

// Instruction is one line of a rebase todo list.
type Instruction struct {
	Action Action
	Commit git.Commit
	Into   string // anchor SHA, set for fixup only
}

// String renders the instruction as "<action> <short-sha> <message>".
func (i Instruction) String() string {
	return fmt.Sprintf("%s %s %s", i.Action, i.Commit.ShortSHA(), i.Commit.Message)
}

// Plan is an ordered rebase todo list covering every branch commit.
type Plan struct {
	Instructions []Instruction
	HasFolds     bool
}

// Script renders the plan as a rebase todo list, one newline-terminated
// instruction per line.
func (p *Plan) Script() string {
	var sb strings.Builder
	for _, in := range p.Instructions {
		sb.WriteString(in.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FoldCount returns the number of fixup instructions.
func (p *Plan) FoldCount() int {
	n := 0
	for _, in := range p.Instructions {
		if in.Action == ActionFixup {
			n++
		}
	}
	return n
}

// MatchTable maps an anchor commit to the later commits that fold into it,
// in discovery order.
type MatchTable struct {
	targets map[string][]git.Commit
}

func newMatchTable() *MatchTable {
	return &MatchTable{targets: make(map[string][]git.Commit)}
}

func (t *MatchTable) add(anchor string, target git.Commit) {
	t.targets[anchor] = append(t.targets[anchor], target)
}

// Targets returns the commits folding into anchor.
func (t *MatchTable) Targets(anchor string) []git.Commit {
	return t.targets[anchor]
}

// Builder turns a commit sequence into a squash plan.
type Builder struct {
	matcher *Matcher
	logger  *zap.Logger
}

// NewBuilder creates a builder that checks net diffs with diff. opts are
// passed to the underlying Matcher.
func NewBuilder(diff DiffChecker, logger *zap.Logger, opts ...Option) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{matcher: NewMatcher(diff, opts...), logger: logger}
}

// Matches tests every pair (a, b) with a before b in commits. A commit is
// claimed by the first anchor it matches: claimed commits are neither tested
// as targets of later anchors nor used as anchors themselves, so no commit
// can be folded twice.
func (b *Builder) Matches(ctx context.Context, commits []git.Commit, fp *changeset.Footprints) (*MatchTable, error) {
	b.logger.Info(fmt.Sprintf("Comparing %d commits with each other...", len(commits)))

	table := newMatchTable()
	claimed := make(map[string]struct{})
	for i, anchor := range commits {
		if _, ok := claimed[anchor.SHA]; ok {
			continue
		}
		for _, candidate := range commits[i+1:] {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if _, ok := claimed[candidate.SHA]; ok {
				continue
			}
			ok, err := b.matcher.Eligible(ctx, anchor, candidate, commits, fp)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			table.add(anchor.SHA, candidate)
			claimed[candidate.SHA] = struct{}{}
		}
	}
	return table, nil
}

// Build computes the match table and emits a plan in a single forward pass:
// each unconsumed commit is picked, immediately followed by the commits
// that fold into it.
func (b *Builder) Build(ctx context.Context, commits []git.Commit, fp *changeset.Footprints) (*Plan, error) {
	table, err := b.Matches(ctx, commits, fp)
	if err != nil {
		return nil, err
	}

	plan := &Plan{Instructions: make([]Instruction, 0, len(commits))}
	consumed := make(map[string]struct{})
	for _, c := range commits {
		if _, ok := consumed[c.SHA]; ok {
			continue
		}
		plan.Instructions = append(plan.Instructions, Instruction{Action: ActionPick, Commit: c})
		for _, target := range table.Targets(c.SHA) {
			if _, ok := consumed[target.SHA]; ok {
				continue
			}
			plan.Instructions = append(plan.Instructions, Instruction{
				Action: ActionFixup,
				Commit: target,
				Into:   c.SHA,
			})
			consumed[target.SHA] = struct{}{}
			plan.HasFolds = true
		}
	}

	b.logger.Debug("built squash plan",
		zap.Int("commits", len(commits)),
		zap.Int("folds", plan.FoldCount()))
	return plan, nil
}
