package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vcr-go/internal/renamer"
)

func newTestHistory(t *testing.T) *SQLiteHistory {
	t.Helper()
	h, err := NewSQLiteHistory(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { h.Close() })
	return h
}

func TestSQLiteHistory_CreateAndFinishRun(t *testing.T) {
	h := newTestHistory(t)
	started := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

	run := &renamer.Run{
		ID:        "run-1",
		Root:      "/courses",
		Platform:  "Pluralsight",
		StartedAt: started,
		Status:    renamer.StatusRunning,
	}
	require.NoError(t, h.CreateRun(run))

	runs, err := h.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, renamer.StatusRunning, runs[0].Status)
	assert.False(t, runs[0].FinishedAt.Valid)

	finished := started.Add(3 * time.Second)
	require.NoError(t, h.FinishRun("run-1", renamer.StatusSuccess, 12, finished))

	runs, err = h.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	got := runs[0]
	assert.Equal(t, "run-1", got.ID)
	assert.Equal(t, "/courses", got.Root)
	assert.Equal(t, "Pluralsight", got.Platform)
	assert.True(t, got.StartedAt.Equal(started), "StartedAt = %v, want %v", got.StartedAt, started)
	assert.True(t, got.FinishedAt.Valid)
	assert.True(t, got.FinishedAt.Time.Equal(finished))
	assert.Equal(t, renamer.StatusSuccess, got.Status)
	assert.Equal(t, 12, got.Renames)
}

func TestSQLiteHistory_FinishUnknownRun(t *testing.T) {
	h := newTestHistory(t)
	err := h.FinishRun("missing", renamer.StatusError, 0, time.Now())
	assert.Error(t, err)
}

func TestSQLiteHistory_ListRunsNewestFirst(t *testing.T) {
	h := newTestHistory(t)
	base := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, h.CreateRun(&renamer.Run{
			ID:        id,
			Root:      "/courses",
			Platform:  "Udemy",
			StartedAt: base.Add(time.Duration(i) * time.Minute),
			Status:    renamer.StatusSuccess,
		}))
	}

	runs, err := h.ListRuns(2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "c", runs[0].ID)
	assert.Equal(t, "b", runs[1].ID)
}

func TestSQLiteHistory_ReopenKeepsRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), DatabaseFileName)

	h, err := NewSQLiteHistory(path)
	require.NoError(t, err)
	assert.Equal(t, path, h.Path())
	require.NoError(t, h.CreateRun(&renamer.Run{
		ID:        "a",
		Root:      "/courses",
		Platform:  "Udemy",
		StartedAt: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		Status:    renamer.StatusRunning,
	}))
	require.NoError(t, h.Close())

	h, err = NewSQLiteHistory(path)
	require.NoError(t, err)
	defer h.Close()

	runs, err := h.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "a", runs[0].ID)
}
