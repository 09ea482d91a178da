package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"vcr-go/internal/history/migrations"
	"vcr-go/internal/renamer"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteHistory implements renamer.History using SQLite.
type SQLiteHistory struct {
	db   *sql.DB
	path string
}

// NewSQLiteHistory opens the history database at path and applies pending
// migrations. path can be a file path or ":memory:" for an in-memory store.
func NewSQLiteHistory(path string) (*SQLiteHistory, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}

	if err := migrations.MigrateUp(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating history database: %w", err)
	}

	return &SQLiteHistory{db: db, path: path}, nil
}

// OpenConnection opens and configures a SQLite database connection.
// path can be a file path or ":memory:" for an in-memory database.
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Every connection to ":memory:" is a separate database.
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	return db, nil
}

// CreateRun inserts a new run record.
func (s *SQLiteHistory) CreateRun(run *renamer.Run) error {
	_, err := s.db.ExecContext(context.Background(),
		`INSERT INTO runs (id, root, platform, started_at, finished_at, status, renames)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Root, run.Platform, run.StartedAt.UTC(), run.FinishedAt, run.Status, run.Renames)
	if err != nil {
		return fmt.Errorf("creating run: %w", err)
	}
	return nil
}

// FinishRun marks a run as finished.
func (s *SQLiteHistory) FinishRun(id string, status string, renames int, finishedAt time.Time) error {
	res, err := s.db.ExecContext(context.Background(),
		`UPDATE runs SET finished_at = ?, status = ?, renames = ? WHERE id = ?`,
		finishedAt.UTC(), status, renames, id)
	if err != nil {
		return fmt.Errorf("finishing run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finishing run: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("finishing run: no run with id %s", id)
	}
	return nil
}

// ListRuns returns up to limit runs, newest first.
func (s *SQLiteHistory) ListRuns(limit int) ([]*renamer.Run, error) {
	rows, err := s.db.QueryContext(context.Background(),
		`SELECT id, root, platform, started_at, finished_at, status, renames
		 FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []*renamer.Run
	for rows.Next() {
		var r renamer.Run
		if err := rows.Scan(&r.ID, &r.Root, &r.Platform, &r.StartedAt, &r.FinishedAt, &r.Status, &r.Renames); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		runs = append(runs, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	return runs, nil
}

// Path returns the database file path (or ":memory:" for in-memory databases).
func (s *SQLiteHistory) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLiteHistory) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Compile-time check that SQLiteHistory implements renamer.History interface
var _ renamer.History = (*SQLiteHistory)(nil)
