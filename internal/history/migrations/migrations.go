// Package migrations holds the run history schema.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed files/*.sql
var schema embed.FS

// MigrateUp applies every pending schema migration to db. A database left
// dirty by an interrupted migration is an error.
//
// The migrate instance is not closed: that would close db, which the caller owns.
func MigrateUp(db *sql.DB) error {
	src, err := iofs.New(schema, "files")
	if err != nil {
		return fmt.Errorf("reading history schema: %w", err)
	}

	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		src.Close()
		return fmt.Errorf("preparing history database: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		src.Close()
		return fmt.Errorf("preparing history migrations: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrating history schema: %w", err)
	}
	return nil
}
