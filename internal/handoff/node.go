// Package handoff implements the publish-once tree that lets producer
// goroutines (reading directories in parallel, in any order) hand their
// results to a single consumer goroutine that observes them in a fixed
// depth-first order. A Node stands in for one directory read: producers
// fill it in exactly once via Publish, and any number of readers may
// block on Wait/Items/Child until that happens.
package handoff

// Node is one directory's slot in the handoff tree. T is the
// per-directory result item type (the engine instantiates it with its
// own entry-result type); Node itself knows nothing about directories,
// entries, or depth — that's the engine's concern.
type Node[T any] struct {
	done     chan struct{}
	items    []T
	children []*Node[T]
}

// New returns an unpublished node. Reads against it block until Publish
// is called.
func New[T any]() *Node[T] {
	return &Node[T]{done: make(chan struct{})}
}

// Publish fills in a node's results exactly once. children must be the
// same length as items; children[i] is the subtree node for items[i]
// when that item has one scheduled, or nil otherwise. Publish must not
// be called more than once per node.
func (n *Node[T]) Publish(items []T, children []*Node[T]) {
	n.items = items
	n.children = children
	close(n.done)
}

// Wait blocks until Publish has been called.
func (n *Node[T]) Wait() { <-n.done }

// Items blocks until published, then returns this node's result items.
func (n *Node[T]) Items() []T {
	<-n.done
	return n.items
}

// Child blocks until published, then returns the subtree node for
// items[i], or nil if that item has no subtree scheduled.
func (n *Node[T]) Child(i int) *Node[T] {
	<-n.done
	return n.children[i]
}

// Len blocks until published, then returns the number of result items.
func (n *Node[T]) Len() int {
	<-n.done
	return len(n.items)
}
