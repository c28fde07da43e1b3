package tree

import (
	"iter"
	"slices"
)

// Descendants yields n and every node below it in pre-order (a node before
// its children, children left to right). It is composed from [Node.Each]
// with an explicit stack, so arbitrarily deep trees do not grow the
// goroutine stack. The tree must not be mutated during iteration.
func Descendants[K comparable, V any](n Node[K, V]) iter.Seq[Node[K, V]] {
	return func(yield func(Node[K, V]) bool) {
		stack := []Node[K, V]{n}
		for len(stack) > 0 {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !yield(top) {
				return
			}
			children := slices.Collect(top.Each())
			slices.Reverse(children)
			stack = append(stack, children...)
		}
	}
}

// Walk calls fn for n and its descendants in pre-order. When fn returns
// false the children of that node are skipped.
func Walk[K comparable, V any](n Node[K, V], fn func(Node[K, V]) bool) {
	if !fn(n) {
		return
	}
	for c := range n.Each() {
		Walk(c, fn)
	}
}

// Leaves returns the leaves of n's subtree in pre-order.
func Leaves[K comparable, V any](n Node[K, V]) []Node[K, V] {
	var leaves []Node[K, V]
	for d := range Descendants(n) {
		if d.IsLeaf() {
			leaves = append(leaves, d)
		}
	}
	return leaves
}

// Height returns the length of the longest downward path from n to a leaf.
// A leaf has height zero.
func Height[K comparable, V any](n Node[K, V]) int {
	h := 0
	for c := range n.Each() {
		h = max(h, Height(c)+1)
	}
	return h
}
