package parawalk

import (
	"io/fs"
	"os"

	"github.com/parawalk/parawalk/internal/handoff"
	"github.com/parawalk/parawalk/internal/pool"
)

// node is the handoff tree's per-directory slot, instantiated with the
// engine's own result type. internal/handoff knows nothing about
// directories or depth; this alias is where the two meet.
type node = handoff.Node[EntryResult]

// engine owns the pool and the configuration snapshot taken when the
// builder was consumed. It has no public surface; callers only ever
// see a *Walk and a *DirEntryIter.
type engine struct {
	root            string
	maxDepth        int
	sortBy          SortBy
	sortSet         bool
	skipHidden      bool
	preloadMetadata bool
	transform       Transform
	verbose         bool

	pool pool.Pool
}

func newEngine(w *Walk) *engine {
	threads := w.numThreads
	if w.maxDepth == 1 {
		// A single directory read has no subtree to parallelize over;
		// forcing serial here also means num_threads==0 never spins up
		// the ambient pool for a walk that can't use it.
		threads = 1
	}
	return &engine{
		root:            w.root,
		maxDepth:        w.maxDepth,
		sortBy:          w.sortBy,
		sortSet:         w.sortSet,
		skipHidden:      w.skipHidden,
		preloadMetadata: w.preloadMetadata,
		transform:       w.transform,
		verbose:         w.verbose,
		pool:            pool.New(threads),
	}
}

func (e *engine) needsMetadata() bool {
	return e.preloadMetadata || (e.sortSet && e.sortBy.NeedsMetadata())
}

// start stats the root path, builds the synthetic root entry (§4.E
// step 1), and — if the root is a directory within depth — schedules
// the task that will read it. It returns the root entry and the node
// that task will publish into, or a nil node if there is nothing to
// descend into.
func (e *engine) start() (DirEntry, *node) {
	root := DirEntry{FileName: e.root, Depth: 0}

	info, err := os.Lstat(e.root)
	if err != nil {
		root.FileType = Result[fs.FileMode]{Err: err}
		return root, nil
	}
	root.FileType = Result[fs.FileMode]{Value: info.Mode()}
	if e.needsMetadata() {
		root.Metadata = Result[fs.FileInfo]{Value: info}
	}

	if !info.Mode().IsDir() || !withinDepth(0, e.maxDepth) {
		return root, nil
	}

	spec := NewReadDirSpec(e.root, 0, nil)
	n := handoff.New[EntryResult]()
	root.SetChildrenSpec(spec)
	e.schedule(spec, n)
	return root, n
}

func (e *engine) schedule(spec *ReadDirSpec, n *node) {
	e.pool.Submit(func() { e.runTask(spec, n) })
}

// wait blocks until every task this engine has scheduled has
// completed, and — for a dedicated pool — lets its worker goroutines
// exit. DirEntryIter calls this once, after Next reports exhaustion,
// so a fully-drained walk never leaks a NumThreads>1 walk's workers
// past the last Next call. It is a no-op to call more than once.
func (e *engine) wait() { e.pool.Wait() }
