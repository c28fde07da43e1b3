// Package tree provides an in-memory N-ary tree of identifiable, annotatable
// nodes, with a secondary relation of non-owning edges layered on top.
//
// # Overview
//
// Every node has an id, a payload value, an optional parent, an ordered list
// of children, a feature map, and an ordered list of edges. Containment is a
// strict tree: a node has at most one parent and is owned by it. Edges are
// different. They connect any two nodes of the same forest, inside or
// outside the linking node's subtree, and never imply ownership.
//
// # Storage
//
// Nodes live in a [Forest], an append-only arena. A [Node] is a comparable
// handle into that arena, and parent and child references are arena indices.
// Moving a subtree is therefore an index update, and there is no pointer
// cycle between a parent and its children.
//
//	f := tree.New[string, int]()
//	r := f.NewNode(1, "r")
//	a := f.NewNode(2, "a")
//	c := f.NewNode(4, "c")
//	r.Add(a)
//	a.Add(c)
//	c.Root() == r // true
//	r.Size()      // 3
//
// # Ids
//
// Ids are unique only among direct siblings: [Node.Add] rejects a child
// whose id is already used by another child of the same parent with
// [ErrDuplicateID]. The same id may appear in different branches, in which
// case [Node.Find] returns the first match in pre-order.
//
// # Traversal
//
// [Node.Each] iterates direct children only. Subtree traversal is composed
// on top of it by [Descendants], [Walk], and [Leaves].
//
// # Errors
//
// Mutations that violate a precondition return errors wrapping the
// sentinels of this package ([ErrNotFound], [ErrInvalidArgument],
// [ErrDuplicateID], [ErrCycle], [ErrForeignNode], [ErrAlreadyRoot]).
// Lookups such as [Node.Find] and [Node.Get] report absence with a false
// boolean instead of an error.
//
// # Concurrency
//
// Forests are not safe for concurrent use. Callers must provide exclusive
// access to a forest while mutating any of its nodes.
package tree
