package parawalk

import (
	"sort"
	"syscall"
	"time"
)

// SortBy selects the per-directory ordering key applied before the
// user's ProcessEntries transform. Use ProcessEntries directly for
// anything more flexible than these four keys.
type SortBy int

const (
	SortName SortBy = iota
	SortAccessTime
	SortCreationTime
	SortModificationTime
)

func (s SortBy) String() string {
	switch s {
	case SortAccessTime:
		return "access"
	case SortCreationTime:
		return "creation"
	case SortModificationTime:
		return "modification"
	default:
		return "name"
	}
}

// NeedsMetadata reports whether this sort key requires fs.FileInfo
// beyond what PreloadMetadata alone would already have fetched. The
// engine uses this to force an implicit per-entry Lstat during the
// sort step when the caller asked for a time-based key without also
// turning on PreloadMetadata.
func (s SortBy) NeedsMetadata() bool { return s != SortName }

// SortEntries applies a consistent total order over entries: all
// successful entries are sorted by the chosen key and placed first,
// followed by all error entries in the order they were originally
// encountered. This replaces the original implementation's
// (Ok,Err)=Less/(Err,Ok)=Greater/(Err,Err)=Equal comparator, which is
// not a consistent total order and only "worked" by relying on a
// stable sort; see DESIGN.md for the decision record.
func SortEntries(entries []EntryResult, by SortBy) {
	idx := sortIndices(entries, by)
	sorted := make([]EntryResult, len(entries))
	for i, j := range idx {
		sorted[i] = entries[j]
	}
	copy(entries, sorted)
}

// sortIndices returns the permutation of 0..len(entries)-1 that puts
// entries in sorted order, without moving entries itself. The engine
// uses this to keep a parallel slice (each entry's not-yet-published
// child node) in step with the reordering.
func sortIndices(entries []EntryResult, by SortBy) []int {
	idx := make([]int, len(entries))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		a, b := entries[idx[i]], entries[idx[j]]
		if !a.Ok() || !b.Ok() {
			// Errors sort after successes; two errors are left in
			// arrival order by the stable sort, i.e. neither is "less".
			return a.Ok() && !b.Ok()
		}
		return sortKeyLess(a.Value, b.Value, by)
	})
	return idx
}

func sortKeyLess(a, b DirEntry, by SortBy) bool {
	switch by {
	case SortAccessTime:
		return accessTime(a).Before(accessTime(b))
	case SortCreationTime:
		return creationTime(a).Before(creationTime(b))
	case SortModificationTime:
		return modTime(a).Before(modTime(b))
	default:
		return a.FileName < b.FileName
	}
}

func modTime(e DirEntry) time.Time {
	if info, err := e.Metadata.Unwrap(); err == nil && info != nil {
		return info.ModTime()
	}
	return time.Time{}
}

func accessTime(e DirEntry) time.Time {
	info, err := e.Metadata.Unwrap()
	if err != nil || info == nil {
		return time.Time{}
	}
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return info.ModTime()
	}
	return time.Unix(stat.Atim.Sec, stat.Atim.Nsec)
}

func creationTime(e DirEntry) time.Time {
	// Linux exposes no filesystem birth time through os.FileInfo; the
	// inode change time (ctime) is the closest approximation and is
	// what every Stat_t-reaching example in the pack falls back to.
	info, err := e.Metadata.Unwrap()
	if err != nil || info == nil {
		return time.Time{}
	}
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return info.ModTime()
	}
	return time.Unix(stat.Ctim.Sec, stat.Ctim.Nsec)
}
