package renamer

import (
	"fmt"
	"path/filepath"
)

// node is the planner's in-memory copy of a directory entry. Names are
// updated as renames are planned, so path() always reflects the location the
// entry will have at that point in the plan.
type node struct {
	name     string
	parent   *node
	isDir    bool
	eligible bool // false for ignored entries and anything that is neither a dir nor a regular file
	children []*node
}

func (n *node) path() string {
	if n.parent == nil {
		return n.name
	}
	return filepath.Join(n.parent.path(), n.name)
}

// dirs returns the subdirectories the rules apply to.
func (n *node) dirs() []*node {
	var out []*node
	for _, c := range n.children {
		if c.eligible && c.isDir {
			out = append(out, c)
		}
	}
	return out
}

// files returns the files the rules apply to.
func (n *node) files() []*node {
	var out []*node
	for _, c := range n.children {
		if c.eligible && !c.isDir {
			out = append(out, c)
		}
	}
	return out
}

// loadTree reads the whole subtree under root. The root node carries the
// absolute root path as its name and has no parent, so no rule can rename it.
func loadTree(fsmgr FilesystemManager, root *Path) (*node, error) {
	if err := fsmgr.LoadIgnore(root.String()); err != nil {
		return nil, err
	}
	n := &node{name: root.String(), isDir: true, eligible: true}
	if err := loadChildren(fsmgr, n, root, root.String()); err != nil {
		return nil, err
	}
	return n, nil
}

func loadChildren(fsmgr FilesystemManager, n *node, dir *Path, root string) error {
	entries, err := fsmgr.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading %s: %w", dir.String(), err)
	}
	for _, e := range entries {
		child := &node{
			name:   e.Name(),
			parent: n,
			isDir:  e.IsDir(),
		}
		child.eligible = (e.IsDir() || e.IsRegular()) && !fsmgr.IsIgnored(e, root)
		n.children = append(n.children, child)

		if child.isDir && child.eligible {
			if err := loadChildren(fsmgr, child, e, root); err != nil {
				return err
			}
		}
	}
	return nil
}
