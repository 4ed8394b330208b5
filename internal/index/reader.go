package index

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/parawalk/parawalk/internal/pathutil"
)

// DisplayEntry is one row as the TUI wants to show it: a single walk's
// own entry, not a subtree rollup — dug's DisplayEntry carried both;
// parawalk's index has no aggregation component to populate the
// rollup half with, so it is dropped rather than faked as zero.
type DisplayEntry struct {
	Path    string
	Name    string
	Kind    Kind
	Size    int64
	ModTime time.Time
}

// LoadChildren returns the direct children of parentPath, ordered by
// sortBy ("name", "size", or the default insertion order).
func LoadChildren(db *sql.DB, parentPath, sortBy string, limit int) ([]DisplayEntry, error) {
	parentPath = pathutil.Normalize(parentPath)

	orderClause := "id ASC"
	switch sortBy {
	case "name":
		orderClause = "name ASC"
	case "size":
		orderClause = "size DESC"
	}

	query := fmt.Sprintf(`
		SELECT path, name, kind, size, mtime
		FROM entries
		WHERE parent_path = ?
		ORDER BY %s
		LIMIT ?
	`, orderClause)

	rows, err := db.Query(query, parentPath, limit)
	if err != nil {
		return nil, fmt.Errorf("query children of %q: %w", parentPath, err)
	}
	defer rows.Close()

	var out []DisplayEntry
	for rows.Next() {
		var e DisplayEntry
		var kind int
		var mtime int64
		if err := rows.Scan(&e.Path, &e.Name, &kind, &e.Size, &mtime); err != nil {
			return nil, fmt.Errorf("scan entry row: %w", err)
		}
		e.Kind = Kind(kind)
		if mtime > 0 {
			e.ModTime = time.Unix(mtime, 0)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
