package tree

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by [Node.Remove] when the id does not belong to
	// a direct child of the receiver.
	ErrNotFound = errors.New("not a direct child")

	// ErrInvalidArgument is returned for malformed calls: an empty batch
	// passed to [Node.Add], a zero Node, or an [Edge] built with the wrong
	// number of arguments.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDuplicateID is returned by [Node.Add] and [Node.SetID] when a
	// sibling with the same id already exists. Ids are unique only among
	// direct siblings.
	ErrDuplicateID = errors.New("duplicate sibling id")

	// ErrCycle is returned by [Node.Add] when the node being added is the
	// receiver itself or one of its ancestors.
	ErrCycle = errors.New("containment cycle")

	// ErrForeignNode is returned when a node from another [Forest] is passed
	// to a mutation. Containment never crosses forests.
	ErrForeignNode = errors.New("node belongs to another forest")

	// ErrAlreadyRoot is returned by [Node.Detach] on a node without parent.
	ErrAlreadyRoot = errors.New("node is already a root")

	// ErrInconsistent is returned by [Forest.Validate] when parent links,
	// child lists, and child indexes disagree. This indicates corruption.
	ErrInconsistent = errors.New("inconsistent containment")
)

// noParent marks a root entry.
const noParent = -1

// entry is the arena record of one node. Parent and children are arena
// indices, never pointers.
type entry[K comparable, V any] struct {
	id       K
	value    V
	parent   int
	children []int
	index    map[K]int // id -> arena index, direct children only
	features Features
	edges    []Edge[K, V]
}

// Forest owns every node created through it. Nodes are stored in an
// append-only arena and referenced by index, so reparenting is a pure index
// update and the parent/child back-references never form ownership cycles.
//
// A Forest may hold any number of independent trees. The zero value is not
// usable - use New. Forest is not safe for concurrent use.
type Forest[K comparable, V any] struct {
	entries []entry[K, V]
}

// New creates an empty forest.
func New[K comparable, V any]() *Forest[K, V] {
	return &Forest[K, V]{}
}

// NewNode allocates a parentless node with the given payload and id.
// Children, features and edges start empty.
func (f *Forest[K, V]) NewNode(value V, id K) Node[K, V] {
	f.entries = append(f.entries, entry[K, V]{
		id:     id,
		value:  value,
		parent: noParent,
	})
	return Node[K, V]{f: f, ref: len(f.entries) - 1}
}

// Len returns the number of nodes ever allocated in the forest.
func (f *Forest[K, V]) Len() int { return len(f.entries) }

// Node resolves an arena reference obtained from [Node.Ref].
func (f *Forest[K, V]) Node(ref int) (Node[K, V], bool) {
	if ref < 0 || ref >= len(f.entries) {
		return Node[K, V]{}, false
	}
	return Node[K, V]{f: f, ref: ref}, true
}

// Roots returns every parentless node in allocation order.
func (f *Forest[K, V]) Roots() []Node[K, V] {
	var roots []Node[K, V]
	for i := range f.entries {
		if f.entries[i].parent == noParent {
			roots = append(roots, Node[K, V]{f: f, ref: i})
		}
	}
	return roots
}

// Validate checks the containment invariants of the whole forest:
//
//  1. every child's parent link points back at the node listing it
//  2. every child index entry matches exactly one listed child
//  3. no parent chain loops
//
// Returns an error wrapping ErrInconsistent or ErrCycle. Operations on
// Node keep these invariants, so a failure indicates corruption.
func (f *Forest[K, V]) Validate() error {
	for i := range f.entries {
		e := &f.entries[i]
		if len(e.index) != len(e.children) {
			return fmt.Errorf("node %v: %d children, %d indexed: %w",
				e.id, len(e.children), len(e.index), ErrInconsistent)
		}
		for _, c := range e.children {
			child := &f.entries[c]
			if child.parent != i {
				return fmt.Errorf("child %v of %v: %w", child.id, e.id, ErrInconsistent)
			}
			if e.index[child.id] != c {
				return fmt.Errorf("child %v of %v not indexed: %w", child.id, e.id, ErrInconsistent)
			}
		}
	}
	return f.detectCycles()
}

func (f *Forest[K, V]) detectCycles() error {
	const (
		white = iota
		gray
		black
	)

	color := make([]int, len(f.entries))
	for i := range f.entries {
		var chain []int
		j := i
		for j != noParent && color[j] == white {
			color[j] = gray
			chain = append(chain, j)
			j = f.entries[j].parent
		}
		if j != noParent && color[j] == gray {
			return fmt.Errorf("node %v: %w", f.entries[j].id, ErrCycle)
		}
		for _, k := range chain {
			color[k] = black
		}
	}
	return nil
}
