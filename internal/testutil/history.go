package testutil

import (
	"testing"

	"vcr-go/internal/history"
	"vcr-go/internal/renamer"
)

// NewTestHistory creates a new in-memory SQLite history with migrations applied.
// The store is automatically closed when the test completes.
func NewTestHistory(t *testing.T) renamer.History {
	t.Helper()

	h, err := history.NewSQLiteHistory(":memory:")
	if err != nil {
		t.Fatalf("failed to open history: %v", err)
	}

	t.Cleanup(func() {
		h.Close()
	})

	return h
}
