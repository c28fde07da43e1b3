package tree

import (
	"fmt"
	"iter"
	"slices"
)

// Node is a handle to a node stored in a [Forest]. Handles are small,
// comparable values: two handles are equal exactly when they refer to the
// same node. The zero Node refers to nothing; see [Node.IsZero].
//
// All methods except IsZero, Ref and Forest panic on the zero Node.
type Node[K comparable, V any] struct {
	f   *Forest[K, V]
	ref int
}

// IsZero reports whether n is the zero handle.
func (n Node[K, V]) IsZero() bool { return n.f == nil }

// Ref returns the node's stable arena index. See [Forest.Node].
func (n Node[K, V]) Ref() int { return n.ref }

// Forest returns the forest owning n, or nil for the zero Node.
func (n Node[K, V]) Forest() *Forest[K, V] { return n.f }

func (n Node[K, V]) entry() *entry[K, V] { return &n.f.entries[n.ref] }

func (n Node[K, V]) at(ref int) Node[K, V] { return Node[K, V]{f: n.f, ref: ref} }

// String formats the node as its id.
func (n Node[K, V]) String() string {
	if n.IsZero() {
		return "<nil>"
	}
	return fmt.Sprint(n.entry().id)
}

// ID returns the node's identifier.
func (n Node[K, V]) ID() K { return n.entry().id }

// Value returns the node's payload.
func (n Node[K, V]) Value() V { return n.entry().value }

// SetValue replaces the node's payload.
func (n Node[K, V]) SetValue(v V) { n.entry().value = v }

// SetID renames the node. If the node has a parent, the parent's child
// index is updated; ErrDuplicateID is returned when a sibling already
// uses id, and the node keeps its old id.
func (n Node[K, V]) SetID(id K) error {
	e := n.entry()
	if e.id == id {
		return nil
	}
	if e.parent != noParent {
		p := &n.f.entries[e.parent]
		if _, exists := p.index[id]; exists {
			return fmt.Errorf("rename %v to %v: %w", e.id, id, ErrDuplicateID)
		}
		delete(p.index, e.id)
		p.index[id] = n.ref
	}
	e.id = id
	return nil
}

// Parent returns the node's parent, if any.
func (n Node[K, V]) Parent() (Node[K, V], bool) {
	p := n.entry().parent
	if p == noParent {
		return Node[K, V]{}, false
	}
	return n.at(p), true
}

// Children returns the direct children in insertion order. The slice is a
// copy; modifying it does not affect the tree.
func (n Node[K, V]) Children() []Node[K, V] {
	refs := n.entry().children
	out := make([]Node[K, V], len(refs))
	for i, r := range refs {
		out[i] = n.at(r)
	}
	return out
}

// Len returns the number of direct children.
func (n Node[K, V]) Len() int { return len(n.entry().children) }

// Child returns the i-th direct child.
func (n Node[K, V]) Child(i int) (Node[K, V], bool) {
	refs := n.entry().children
	if i < 0 || i >= len(refs) {
		return Node[K, V]{}, false
	}
	return n.at(refs[i]), true
}

// Lookup returns the direct child with the given id. Unlike [Node.Find] it
// never descends.
func (n Node[K, V]) Lookup(id K) (Node[K, V], bool) {
	r, ok := n.entry().index[id]
	if !ok {
		return Node[K, V]{}, false
	}
	return n.at(r), true
}

// Each yields the direct children in insertion order. The sequence is lazy
// and may be ranged over any number of times. The tree must not be mutated
// while a range over Each is in progress.
func (n Node[K, V]) Each() iter.Seq[Node[K, V]] {
	return func(yield func(Node[K, V]) bool) {
		for _, r := range n.entry().children {
			if !yield(n.at(r)) {
				return
			}
		}
	}
}

// Add appends one or more nodes as children of n and returns the first.
//
// The whole batch is checked before anything changes. Add fails with
// ErrInvalidArgument for an empty batch or a zero Node, ErrForeignNode for
// a node of another forest, ErrCycle when a node is n or an ancestor of n,
// and ErrDuplicateID when an id is already used by a child of n or appears
// twice in the batch.
//
// A node that still has a parent is detached from it before being added,
// so each node always has exactly one owner.
func (n Node[K, V]) Add(nodes ...Node[K, V]) (Node[K, V], error) {
	if len(nodes) == 0 {
		return Node[K, V]{}, fmt.Errorf("add to %v: no nodes: %w", n, ErrInvalidArgument)
	}
	e := n.entry()
	batch := make(map[K]struct{}, len(nodes))
	for _, c := range nodes {
		if c.IsZero() {
			return Node[K, V]{}, fmt.Errorf("add to %v: zero node: %w", n, ErrInvalidArgument)
		}
		if c.f != n.f {
			return Node[K, V]{}, fmt.Errorf("add %v to %v: %w", c, n, ErrForeignNode)
		}
		if c.ref == n.ref || c.isAncestorOf(n) {
			return Node[K, V]{}, fmt.Errorf("add %v to %v: %w", c, n, ErrCycle)
		}
		id := c.entry().id
		if _, exists := e.index[id]; exists {
			return Node[K, V]{}, fmt.Errorf("add %v to %v: %w", c, n, ErrDuplicateID)
		}
		if _, seen := batch[id]; seen {
			return Node[K, V]{}, fmt.Errorf("add %v to %v: repeated in batch: %w", c, n, ErrDuplicateID)
		}
		batch[id] = struct{}{}
	}

	for _, c := range nodes {
		if p, ok := c.Parent(); ok {
			p.unlink(c)
		}
		if e.index == nil {
			e.index = make(map[K]int)
		}
		e.children = append(e.children, c.ref)
		e.index[c.entry().id] = c.ref
		c.entry().parent = n.ref
	}
	return nodes[0], nil
}

// Remove detaches the direct child with the given id and returns it as an
// independent root. Its subtree stays intact. ErrNotFound is returned, and
// nothing changes, when id is not a direct child of n.
func (n Node[K, V]) Remove(id K) (Node[K, V], error) {
	r, ok := n.entry().index[id]
	if !ok {
		return Node[K, V]{}, fmt.Errorf("remove %v from %v: %w", id, n, ErrNotFound)
	}
	c := n.at(r)
	n.unlink(c)
	return c, nil
}

// RemoveAll detaches every direct child. Each becomes a root and keeps its
// own subtree.
func (n Node[K, V]) RemoveAll() {
	e := n.entry()
	for _, r := range e.children {
		n.f.entries[r].parent = noParent
	}
	e.children = nil
	e.index = nil
}

// Detach makes n a root by removing it from its parent. It returns
// ErrAlreadyRoot if n has no parent.
func (n Node[K, V]) Detach() error {
	p, ok := n.Parent()
	if !ok {
		return fmt.Errorf("detach %v: %w", n, ErrAlreadyRoot)
	}
	p.unlink(n)
	return nil
}

// unlink removes child c from n's list and index and clears its parent.
func (n Node[K, V]) unlink(c Node[K, V]) {
	e := n.entry()
	delete(e.index, c.entry().id)
	e.children = slices.DeleteFunc(e.children, func(r int) bool { return r == c.ref })
	c.entry().parent = noParent
}

func (n Node[K, V]) isAncestorOf(m Node[K, V]) bool {
	for p := m.entry().parent; p != noParent; p = n.f.entries[p].parent {
		if p == n.ref {
			return true
		}
	}
	return false
}

// Root returns the topmost ancestor of n, or n itself when it is a root.
func (n Node[K, V]) Root() Node[K, V] {
	r := n.ref
	for p := n.entry().parent; p != noParent; p = n.f.entries[p].parent {
		r = p
	}
	return n.at(r)
}

// Depth returns the number of parent links between n and its root.
func (n Node[K, V]) Depth() int {
	d := 0
	for p := n.entry().parent; p != noParent; p = n.f.entries[p].parent {
		d++
	}
	return d
}

// Path returns the nodes from the root down to n, inclusive.
func (n Node[K, V]) Path() []Node[K, V] {
	path := []Node[K, V]{n}
	for p := n.entry().parent; p != noParent; p = n.f.entries[p].parent {
		path = append(path, n.at(p))
	}
	slices.Reverse(path)
	return path
}

// Size counts n and all of its descendants.
func (n Node[K, V]) Size() int {
	size := 1
	for c := range n.Each() {
		size += c.Size()
	}
	return size
}

// Find returns the first node with the given id below n. Direct children
// are checked through the child index first; otherwise each child's
// subtree is searched in insertion order (pre-order, depth-first). n itself
// is never matched.
//
// Ids are unique only among siblings, so when the same id occurs in
// several branches only the first match in traversal order is returned.
func (n Node[K, V]) Find(id K) (Node[K, V], bool) {
	if c, ok := n.Lookup(id); ok {
		return c, true
	}
	for c := range n.Each() {
		if found, ok := c.Find(id); ok {
			return found, true
		}
	}
	return Node[K, V]{}, false
}

// FindNode is Find keyed by the id of m.
func (n Node[K, V]) FindNode(m Node[K, V]) (Node[K, V], bool) {
	return n.Find(m.ID())
}

// IsLeaf reports whether n has no children.
func (n Node[K, V]) IsLeaf() bool { return len(n.entry().children) == 0 }

// IsRoot reports whether n has no parent.
func (n Node[K, V]) IsRoot() bool { return n.entry().parent == noParent }

// HasChildren is the inverse of IsLeaf.
func (n Node[K, V]) HasChildren() bool { return !n.IsLeaf() }

// HasParent is the inverse of IsRoot.
func (n Node[K, V]) HasParent() bool { return !n.IsRoot() }

// Index returns n's position among its siblings, or -1 for a root.
func (n Node[K, V]) Index() int {
	p := n.entry().parent
	if p == noParent {
		return -1
	}
	return slices.Index(n.f.entries[p].children, n.ref)
}

// Sibling returns the sibling offset positions away from n: -1 is the
// previous sibling, 1 the next, 0 is n itself. Roots have no siblings.
func (n Node[K, V]) Sibling(offset int) (Node[K, V], bool) {
	i := n.Index()
	if i < 0 {
		return Node[K, V]{}, false
	}
	p, _ := n.Parent()
	return p.Child(i + offset)
}

// PrevSibling returns the sibling immediately before n.
func (n Node[K, V]) PrevSibling() (Node[K, V], bool) { return n.Sibling(-1) }

// NextSibling returns the sibling immediately after n.
func (n Node[K, V]) NextSibling() (Node[K, V], bool) { return n.Sibling(1) }

// Siblings returns the other children of n's parent, in order.
func (n Node[K, V]) Siblings() []Node[K, V] {
	p, ok := n.Parent()
	if !ok {
		return nil
	}
	return slices.DeleteFunc(p.Children(), func(c Node[K, V]) bool { return c == n })
}

// Link appends e to n's edge store and returns it. The endpoints are not
// checked against n: an edge may connect any two nodes of the forest.
func (n Node[K, V]) Link(e Edge[K, V]) Edge[K, V] {
	en := n.entry()
	en.edges = append(en.edges, e)
	return e
}

// Edges returns a copy of n's edges in link order.
func (n Node[K, V]) Edges() []Edge[K, V] { return slices.Clone(n.entry().edges) }

// HasEdges reports whether any edge is linked at n.
func (n Node[K, V]) HasEdges() bool { return len(n.entry().edges) > 0 }
