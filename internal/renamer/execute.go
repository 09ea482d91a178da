package renamer

import (
	"errors"
	"fmt"
)

// Executor applies a Plan to the filesystem.
type Executor struct {
	fsmgr  FilesystemManager
	logger Logger
}

// NewExecutor creates an Executor.
func NewExecutor(fsmgr FilesystemManager, logger Logger) *Executor {
	return &Executor{
		fsmgr:  fsmgr,
		logger: logger,
	}
}

// Apply performs the plan's renames in order and returns how many were
// applied. A rename whose target already exists is refused. On the first
// failure every rename already applied is undone in reverse order, and Apply
// returns 0 with an *ExecuteError.
func (e *Executor) Apply(plan *Plan) (int, error) {
	for i, op := range plan.Operations {
		if err := e.rename(op.From, op.To); err != nil {
			e.logger.Error("rename failed", "from", op.From, "to", op.To, "rule", op.Rule, "error", err)
			rbErr := e.rollback(plan.Operations[:i])
			return 0, &ExecuteError{Op: op, Applied: i, Err: err, RollbackErr: rbErr}
		}
		e.logger.Info("renamed", "from", op.From, "to", op.To, "rule", op.Rule)
	}
	return plan.Len(), nil
}

func (e *Executor) rename(from, to string) error {
	exists, err := e.fsmgr.Exists(to)
	if err != nil {
		return fmt.Errorf("checking target: %w", err)
	}
	if exists {
		return fmt.Errorf("%w: %s already exists", ErrCollision, to)
	}
	return e.fsmgr.Rename(from, to)
}

// rollback undoes applied operations, newest first. It keeps going after a
// failure so as much of the tree as possible is restored.
func (e *Executor) rollback(applied []Operation) error {
	var errs []error
	for i := len(applied) - 1; i >= 0; i-- {
		op := applied[i]
		if err := e.fsmgr.Rename(op.To, op.From); err != nil {
			errs = append(errs, fmt.Errorf("restoring %s: %w", op.From, err))
			continue
		}
		e.logger.Warn("rolled back", "from", op.To, "to", op.From)
	}
	return errors.Join(errs...)
}
