package parawalk

import (
	"io/fs"
	"path/filepath"
)

// Result wraps a value that may have failed to compute. It is the
// Go-shaped rendering of a result-typed field: a file-type or metadata
// lookup can fail per entry without aborting the directory read that
// produced it.
type Result[T any] struct {
	Value T
	Err   error
}

// Ok reports whether the result carries a usable value.
func (r Result[T]) Ok() bool { return r.Err == nil }

// Unwrap returns the value and error as a pair, for callers that
// prefer the two-value idiom over checking Ok first.
func (r Result[T]) Unwrap() (T, error) { return r.Value, r.Err }

// EntryResult is either a successfully produced DirEntry or the error
// encountered while producing it (a failed os.ReadDir entry, for
// example). Errors are preserved in-band at the position they were
// encountered; they never abort the walk.
type EntryResult = Result[DirEntry]

// DirEntry is a single observable result of a directory read: a file
// name, its type and optional metadata (each independently fallible),
// its depth, a back-reference to the spec it came from, and — if it is
// itself a directory within the configured depth bound — a spec for
// reading its own children.
type DirEntry struct {
	FileName string
	FileType Result[fs.FileMode]
	Metadata Result[fs.FileInfo]
	Depth    int
	Parent   *ReadDirSpec

	children *ReadDirSpec
}

// Path computes the entry's full path: its parent spec's path joined
// with its file name. The synthetic root entry has no parent spec and
// its path is the root path it was constructed with.
func (e DirEntry) Path() string {
	if e.Parent == nil {
		return e.FileName
	}
	return filepath.Join(e.Parent.path, e.FileName)
}

// ChildrenSpec returns the spec for reading this entry's children, or
// nil if the entry is not a directory, is beyond the depth bound, or
// had its descent suppressed by SetChildrenSpec(nil).
func (e DirEntry) ChildrenSpec() *ReadDirSpec { return e.children }

// SetChildrenSpec is the sole mutation permitted on a DirEntry after
// construction. It is only meaningful when called from a
// ProcessEntries transform, before the engine has scheduled the
// entry's children: passing nil suppresses descent into the entry,
// and passing a different spec redirects descent to that path instead.
func (e *DirEntry) SetChildrenSpec(spec *ReadDirSpec) { e.children = spec }

// IsDir reports whether the file type resolved successfully to a
// directory. A failed file-type lookup is treated as "not a
// directory" — no descent is attempted, matching the error-handling
// design (file-type errors are non-fatal but suppress descent).
func (e DirEntry) IsDir() bool {
	return e.FileType.Ok() && e.FileType.Value.IsDir()
}
