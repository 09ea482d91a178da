package renamer

// move is a pending rename of one entry within its parent.
type move struct {
	entry  *node
	target string
}

// orderMoves checks a batch of renames inside parent for collisions and
// returns the batch in an order that can be applied one rename at a time.
//
// A batch collides when two entries share a target, or when a target is held
// by an entry that stays put. A target held by another entry of the batch is
// fine as long as that entry moves first; a cycle of such dependencies is a
// collision.
func orderMoves(parent *node, moves []move, rule string) ([]move, error) {
	claimed := make(map[string]*node, len(moves))
	moving := make(map[*node]bool, len(moves))
	for _, m := range moves {
		if other, ok := claimed[m.target]; ok {
			return nil, &CollisionError{
				Dir:     parent.path(),
				Target:  m.target,
				Sources: []string{other.name, m.entry.name},
				Rule:    rule,
			}
		}
		claimed[m.target] = m.entry
		moving[m.entry] = true
	}

	pending := make(map[string]bool, len(moves))
	for _, c := range parent.children {
		if moving[c] {
			pending[c.name] = true
			continue
		}
		if src, ok := claimed[c.name]; ok {
			return nil, &CollisionError{
				Dir:     parent.path(),
				Target:  c.name,
				Sources: []string{src.name},
				Rule:    rule,
			}
		}
	}

	ordered := make([]move, 0, len(moves))
	remaining := moves
	for len(remaining) > 0 {
		var blocked []move
		for _, m := range remaining {
			if pending[m.target] {
				blocked = append(blocked, m)
				continue
			}
			ordered = append(ordered, m)
			delete(pending, m.entry.name)
		}
		if len(blocked) == len(remaining) {
			sources := make([]string, len(blocked))
			for i, m := range blocked {
				sources[i] = m.entry.name
			}
			return nil, &CollisionError{
				Dir:     parent.path(),
				Target:  blocked[0].target,
				Sources: sources,
				Rule:    rule,
			}
		}
		remaining = blocked
	}
	return ordered, nil
}
