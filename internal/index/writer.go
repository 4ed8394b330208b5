package index

import (
	"database/sql"
	"fmt"

	"github.com/parawalk/parawalk"
	"github.com/parawalk/parawalk/internal/pathutil"
)

// Ingest drains it fully into db, one row per observed entry (errors
// included, with their message recorded and no size/mtime). It runs as
// a single transaction: SPEC_FULL.md's TUI ingests one already-complete
// walk, not a live unbounded stream, so dug's batch-and-flush-interval
// machinery has nothing left to do here.
func Ingest(db *sql.DB, it *parawalk.DirEntryIter) (int64, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO entries (path, name, parent_path, depth, kind, size, mtime, err_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	var count int64
	for {
		res, ok := it.Next()
		if !ok {
			break
		}

		if !res.Ok() {
			// path is UNIQUE NOT NULL; a walk can surface more than one
			// error (one per unreadable directory), and res.Err carries
			// no DirEntry to key off of, so synthesize a key that can
			// never collide with a real path or with another error row.
			errPath := fmt.Sprintf("\x00error:%d", count)
			if _, err := stmt.Exec(errPath, "", "", -1, int(KindError), 0, 0, res.Err.Error()); err != nil {
				return count, fmt.Errorf("insert error entry: %w", err)
			}
			count++
			continue
		}

		e := res.Value
		path := pathutil.Normalize(e.Path())
		parent := ""
		if e.Parent != nil {
			parent = pathutil.Normalize(e.Parent.Path())
		}

		kind := KindOther
		var size int64
		var mtime int64
		switch {
		case e.IsDir():
			kind = KindDir
		case e.FileType.Ok() && e.FileType.Value.IsRegular():
			kind = KindFile
		}
		if info, err := e.Metadata.Unwrap(); err == nil && info != nil {
			size = info.Size()
			mtime = info.ModTime().Unix()
		}

		if _, err := stmt.Exec(path, e.FileName, parent, e.Depth, int(kind), size, mtime, ""); err != nil {
			return count, fmt.Errorf("insert entry %q: %w", path, err)
		}
		count++
	}

	return count, tx.Commit()
}
