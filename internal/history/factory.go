package history

import (
	"fmt"
	"os"
	"path/filepath"

	"vcr-go/internal/config"
	"vcr-go/internal/renamer"
)

// DatabaseFileName is the history database file inside data_dir.
const DatabaseFileName = "history.db"

// NewHistoryFromConfig creates a History implementation based on the config type.
func NewHistoryFromConfig(cfg config.HistoryConfig) (renamer.History, error) {
	switch cfg.Type {
	case "sqlite":
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("data_dir required for sqlite history")
		}
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
		return newSQLite(filepath.Join(cfg.DataDir, DatabaseFileName))
	case "memory":
		return newSQLite(":memory:")
	default:
		return nil, fmt.Errorf("unknown history type: %s", cfg.Type)
	}
}

// newSQLite keeps a failed open from leaking a typed nil into the interface.
func newSQLite(path string) (renamer.History, error) {
	h, err := NewSQLiteHistory(path)
	if err != nil {
		return nil, err
	}
	return h, nil
}
