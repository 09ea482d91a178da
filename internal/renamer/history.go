package renamer

import (
	"database/sql"
	"time"
)

// Run status values.
const (
	StatusRunning = "running"
	StatusSuccess = "success"
	StatusError   = "error"
)

// Run is the summary of one executing invocation.
type Run struct {
	ID         string
	Root       string
	Platform   string
	StartedAt  time.Time
	FinishedAt sql.NullTime
	Status     string
	Renames    int
}

// History stores run summaries. It records no per-rename detail.
type History interface {
	// CreateRun inserts a new run record.
	CreateRun(run *Run) error

	// FinishRun marks a run as finished with the given status and rename count.
	FinishRun(id string, status string, renames int, finishedAt time.Time) error

	// ListRuns returns up to limit runs, newest first.
	ListRuns(limit int) ([]*Run, error)

	// Close releases the underlying store.
	Close() error
}
