// Package db keeps the carve-run catalogue: one row per reconstruction run
// with its configuration, summary statistics and artifact locations, plus
// per-view projection stats. The catalogue makes threshold sweeps over the
// same dataset comparable after the fact.
package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps the sqlite connection holding the run catalogue.
type DB struct {
	*sql.DB
}

// Open opens (or creates) the catalogue database at path and applies any
// pending schema migrations.
func Open(path string) (*DB, error) {
	sqldb, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("db: open %s: %w", path, err)
	}
	db := &DB{sqldb}
	if err := db.MigrateUp(); err != nil {
		sqldb.Close()
		return nil, err
	}
	return db, nil
}
