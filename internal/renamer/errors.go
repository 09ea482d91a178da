package renamer

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCollision is returned when a planned rename targets a name that is
	// already taken, or when two renames in one batch share a target.
	ErrCollision = errors.New("rename collision")

	// ErrNotDirectory is returned when the run root is not a directory.
	ErrNotDirectory = errors.New("not a directory")

	// ErrUnknownPlatform is returned when a platform has no configured suffix.
	ErrUnknownPlatform = errors.New("unknown platform")
)

// CollisionError describes a batch that cannot be applied without
// overwriting an entry.
type CollisionError struct {
	Dir     string
	Target  string
	Sources []string
	Rule    string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("%s: rule %s maps %s to %q in %s",
		ErrCollision, e.Rule, strings.Join(quoteAll(e.Sources), ", "), e.Target, e.Dir)
}

func (e *CollisionError) Unwrap() error { return ErrCollision }

// ExecuteError reports a rename that failed during execution.
// Applied is the number of operations that had succeeded before the failure.
// RollbackErr is nil when every applied rename was undone.
type ExecuteError struct {
	Op          Operation
	Applied     int
	Err         error
	RollbackErr error
}

func (e *ExecuteError) Error() string {
	msg := fmt.Sprintf("renaming %s to %s: %v", e.Op.From, e.Op.To, e.Err)
	if e.RollbackErr != nil {
		return fmt.Sprintf("%s (rollback of %d renames failed: %v)", msg, e.Applied, e.RollbackErr)
	}
	return fmt.Sprintf("%s (%d renames rolled back)", msg, e.Applied)
}

func (e *ExecuteError) Unwrap() error { return e.Err }

func quoteAll(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = fmt.Sprintf("%q", n)
	}
	return out
}
