package parawalk

// DirEntryIter is the caller-facing handle onto a running walk. It is
// finite, single-pass, and not restartable: once Next reports no more
// entries, the iterator is exhausted. Dropping an iterator before
// exhaustion is always safe — its results are simply never read (§5
// cancellation-by-drop). Tasks are not cancelled, though: those already
// scheduled run to completion and keep scheduling their children, so
// the rest of the tree is still read in the background. A dedicated
// pool's worker goroutines then stay parked until Close is called,
// since only Close marks that pool closed.
type DirEntryIter struct {
	eng     *engine
	stack   []frame
	pending *EntryResult // the synthetic root entry, emitted once
	done    bool
}

type frame struct {
	n   *node
	idx int
}

func newIterator(eng *engine, root DirEntry, rootNode *node) *DirEntryIter {
	it := &DirEntryIter{eng: eng, pending: &EntryResult{Value: root}}
	if rootNode != nil {
		it.stack = []frame{{n: rootNode}}
	}
	return it
}

// Next blocks until the next entry is available and returns it, or
// reports false once the walk is exhausted. While entries remain, the
// only blocking point is waiting for a not-yet-published node, matching
// §5's "suspends on exactly one condition"; the call that reports
// exhaustion also runs Close, which waits for the walk's tasks to
// return.
func (it *DirEntryIter) Next() (EntryResult, bool) {
	if it.pending != nil {
		res := *it.pending
		it.pending = nil
		return res, true
	}

	for len(it.stack) > 0 {
		top := &it.stack[len(it.stack)-1]
		items := top.n.Items() // blocks until published

		if top.idx >= len(items) {
			it.stack = it.stack[:len(it.stack)-1]
			continue
		}

		i := top.idx
		top.idx++
		entry := items[i]

		if entry.Ok() {
			if child := top.n.Child(i); child != nil {
				it.stack = append(it.stack, frame{n: child})
			}
		}
		return entry, true
	}

	it.Close()
	return EntryResult{}, false
}

// Close waits for every task the underlying walk has scheduled to
// finish and, for a dedicated pool, lets its worker goroutines exit.
// Next calls it automatically once the walk is exhausted; it is safe
// to call again (or instead, for a caller abandoning the walk early
// but still wanting its pool's workers reclaimed) and is a no-op on a
// second call. Called early, it blocks until every scheduled task has
// finished, including the children those tasks go on to schedule, so
// it returns only once the rest of the tree has been read. It does not
// stop Next from returning entries that are still buffered.
func (it *DirEntryIter) Close() {
	if it.done {
		return
	}
	it.done = true
	it.eng.wait()
}
