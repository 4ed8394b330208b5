// Package index holds one walk's entries in an in-memory SQLite
// database so the TUI can page through and sort a tree too large to
// keep as a slice in a readable way, without persisting anything
// across runs — the database is opened on ":memory:" and discarded
// with the process.
package index

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const entriesTableDDL = `
CREATE TABLE IF NOT EXISTS entries (
    id          INTEGER PRIMARY KEY,
    path        TEXT UNIQUE NOT NULL,
    name        TEXT NOT NULL,
    parent_path TEXT NOT NULL,
    depth       INTEGER NOT NULL,
    kind        INTEGER NOT NULL,
    size        INTEGER NOT NULL,
    mtime       INTEGER NOT NULL,
    err_message TEXT NOT NULL DEFAULT ''
);
`

const entriesParentIndexDDL = `CREATE INDEX IF NOT EXISTS idx_entries_parent ON entries(parent_path);`
const entriesParentNameIndexDDL = `CREATE INDEX IF NOT EXISTS idx_entries_parent_name ON entries(parent_path, name);`
const entriesParentSizeIndexDDL = `CREATE INDEX IF NOT EXISTS idx_entries_parent_size ON entries(parent_path, size DESC);`

// Open starts a fresh in-memory index and applies its schema. The
// returned *sql.DB is scoped to this process; there is no on-disk file
// and no cross-run retention.
func Open() (*sql.DB, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open in-memory index: %w", err)
	}
	for _, ddl := range []string{entriesTableDDL, entriesParentIndexDDL, entriesParentNameIndexDDL, entriesParentSizeIndexDDL} {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply index schema: %w", err)
		}
	}
	return db, nil
}
