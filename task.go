package parawalk

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/parawalk/parawalk/internal/handoff"
)

// Transform is the caller-supplied per-directory hook: it receives the
// ordered, already-sorted entries for one directory and returns the
// entries to publish in their place, which may reorder, drop, or
// mutate them, including redirecting or suppressing descent via
// DirEntry.SetChildrenSpec. It runs on whichever goroutine produced
// the directory (a worker, or the caller's own goroutine in serial
// mode) and must be safe to call concurrently on independent slices. A
// panicking Transform is recovered and reported as a single error
// entry for that directory; its subtree is pruned.
type Transform func(entries []EntryResult) []EntryResult

// runTask implements the per-directory algorithm: read, filter, sort,
// transform, publish, then eagerly schedule any children the final
// vector still points at. It is grounded on dug's Worker.ProcessDirectory,
// generalized from "emit to channels and enqueue" to "publish to a
// handoff node and schedule tasks".
func (e *engine) runTask(spec *ReadDirSpec, n *node) {
	if e.verbose {
		fmt.Fprintf(os.Stderr, "[parawalk] readdir depth=%d path=%s\n", spec.Depth(), spec.Path())
	}

	raw, err := os.ReadDir(spec.Path())
	if err != nil {
		if e.verbose {
			fmt.Fprintf(os.Stderr, "[parawalk] readdir error depth=%d path=%s err=%v\n", spec.Depth(), spec.Path(), err)
		}
		n.Publish([]EntryResult{{Err: err}}, []*node{nil})
		return
	}

	depth := spec.Depth() + 1
	needMetadata := e.needsMetadata()

	entries := make([]EntryResult, 0, len(raw))
	children := make([]*node, 0, len(raw))

	for _, de := range raw {
		name := de.Name()
		if e.skipHidden && strings.HasPrefix(name, ".") {
			continue
		}

		entry := DirEntry{
			FileName: name,
			FileType: Result[fs.FileMode]{Value: de.Type()},
			Depth:    depth,
			Parent:   spec,
		}
		if needMetadata {
			info, ierr := de.Info()
			entry.Metadata = Result[fs.FileInfo]{Value: info, Err: ierr}
		}

		var child *node
		if entry.FileType.Ok() && entry.FileType.Value.IsDir() && withinDepth(depth, e.maxDepth) {
			childPath := filepath.Join(spec.Path(), name)
			childSpec := NewReadDirSpec(childPath, depth, nil)
			entry.SetChildrenSpec(childSpec)
			child = handoff.New[EntryResult]()
		}

		entries = append(entries, EntryResult{Value: entry})
		children = append(children, child)
	}

	if e.sortSet {
		idx := sortIndices(entries, e.sortBy)
		sortedEntries := make([]EntryResult, len(entries))
		sortedChildren := make([]*node, len(entries))
		for i, j := range idx {
			sortedEntries[i] = entries[j]
			sortedChildren[i] = children[j]
		}
		entries, children = sortedEntries, sortedChildren
	}

	if e.transform != nil {
		out, perr := e.runTransform(entries)
		if perr != nil {
			if e.verbose {
				fmt.Fprintf(os.Stderr, "[parawalk] transform error depth=%d path=%s err=%v\n", spec.Depth(), spec.Path(), perr)
			}
			n.Publish([]EntryResult{{Err: perr}}, []*node{nil})
			return
		}
		// The transform may have dropped, reordered, or redirected
		// descent via SetChildrenSpec; rebuild children straight from
		// the final vector rather than reconciling against the
		// pre-transform slice, since entries may no longer correspond
		// positionally to it.
		entries = out
		children = make([]*node, len(entries))
		for i := range entries {
			if entries[i].Value.ChildrenSpec() != nil {
				children[i] = handoff.New[EntryResult]()
			}
		}
	}

	n.Publish(entries, children)
	e.scheduleChildren(entries, children)
}

// runTransform calls e.transform, recovering any panic and reporting
// it as an error instead of letting it cross into the caller's
// goroutine or wedge n's handoff channel forever.
func (e *engine) runTransform(entries []EntryResult) (out []EntryResult, panicErr error) {
	defer func() {
		if r := recover(); r != nil {
			panicErr = fmt.Errorf("parawalk: ProcessEntries panicked: %v", r)
		}
	}()
	return e.transform(entries), nil
}

func (e *engine) scheduleChildren(entries []EntryResult, children []*node) {
	for i, child := range children {
		if child == nil || !entries[i].Ok() {
			continue
		}
		if spec := entries[i].Value.ChildrenSpec(); spec != nil {
			e.schedule(spec, child)
		}
	}
}
