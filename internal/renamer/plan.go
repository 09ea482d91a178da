package renamer

import (
	"fmt"
	"path/filepath"
)

// Operation is a single planned rename. From and To are absolute paths that
// are valid at the operation's position in the plan; earlier operations may
// have renamed a parent directory.
type Operation struct {
	From  string
	To    string
	Rule  string
	IsDir bool
}

// Plan is the ordered list of renames for one run.
type Plan struct {
	Root       string
	Operations []Operation
}

// Len returns the number of planned renames.
func (p *Plan) Len() int { return len(p.Operations) }

// Planner computes a Plan without touching the filesystem.
type Planner struct {
	fsmgr    FilesystemManager
	pipeline *Pipeline
	logger   Logger
}

// NewPlanner creates a Planner for the given pipeline.
func NewPlanner(fsmgr FilesystemManager, pipeline *Pipeline, logger Logger) *Planner {
	return &Planner{
		fsmgr:    fsmgr,
		pipeline: pipeline,
		logger:   logger,
	}
}

// Plan walks the tree under root and returns every rename a run would make,
// in the order the run makes them:
//
//  1. Directory rules run on a directory's subdirectories.
//  2. The walk descends into each subdirectory.
//  3. File rules run on the files of each subdirectory.
//  4. Once the walk returns, top-level rules run on the root's subdirectories.
//
// Files directly inside root are never renamed.
func (p *Planner) Plan(root *Path) (*Plan, error) {
	if !root.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, root.String())
	}

	tree, err := loadTree(p.fsmgr, root)
	if err != nil {
		return nil, fmt.Errorf("loading tree: %w", err)
	}

	plan := &Plan{Root: root.String()}
	if err := p.walk(plan, tree); err != nil {
		return nil, err
	}

	for _, step := range p.pipeline.TopLevel {
		if !step.Enabled {
			continue
		}
		if err := p.applyRule(plan, tree, tree.dirs(), step.Rule, true); err != nil {
			return nil, err
		}
	}

	p.logger.Debug("plan complete", "root", plan.Root, "operations", plan.Len())
	return plan, nil
}

func (p *Planner) walk(plan *Plan, dir *node) error {
	for _, step := range p.pipeline.Dirs {
		if !step.Enabled {
			continue
		}
		rule := step.Rule
		if dir.parent == nil {
			rule = p.pipeline.topLevel(rule)
		}
		if err := p.applyRule(plan, dir, dir.dirs(), rule, true); err != nil {
			return err
		}
	}

	children := dir.dirs()
	for _, child := range children {
		if err := p.walk(plan, child); err != nil {
			return err
		}
	}

	for _, child := range children {
		for _, step := range p.pipeline.Files {
			if !step.Enabled {
				continue
			}
			if err := p.applyRule(plan, child, child.files(), step.Rule, false); err != nil {
				return err
			}
		}
	}
	return nil
}

// applyRule runs rule over one sibling set, checks the resulting batch for
// collisions and appends its operations to plan.
func (p *Planner) applyRule(plan *Plan, parent *node, entries []*node, rule Rule, isDir bool) error {
	if len(entries) == 0 {
		return nil
	}

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.name
	}
	targets := rule.Rename(names)
	if len(targets) != len(names) {
		return fmt.Errorf("rule %s returned %d names for %d entries", rule.Name(), len(targets), len(names))
	}

	var moves []move
	for i, e := range entries {
		if targets[i] == names[i] {
			continue
		}
		if targets[i] == "" {
			return fmt.Errorf("rule %s produced an empty name for %s", rule.Name(), e.path())
		}
		moves = append(moves, move{entry: e, target: targets[i]})
	}
	if len(moves) == 0 {
		return nil
	}

	ordered, err := orderMoves(parent, moves, rule.Name())
	if err != nil {
		return err
	}

	dir := parent.path()
	for _, m := range ordered {
		op := Operation{
			From:  m.entry.path(),
			To:    filepath.Join(dir, m.target),
			Rule:  rule.Name(),
			IsDir: isDir,
		}
		p.logger.Debug("planned rename", "from", op.From, "to", op.To, "rule", op.Rule)
		plan.Operations = append(plan.Operations, op)
		m.entry.name = m.target
	}
	return nil
}
