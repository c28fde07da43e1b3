package tree

import "fmt"

// Direction qualifies a directed [Edge]. It only carries meaning when the
// edge is directed.
type Direction int

const (
	// Neutral is the default direction.
	Neutral Direction = 0
	// Forward points from A to B.
	Forward Direction = 1
	// Backward points from B to A.
	Backward Direction = -1
)

func (d Direction) String() string {
	switch d {
	case Neutral:
		return "neutral"
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Edge is an immutable association between two nodes of the same forest.
// Edges do not own their endpoints and may connect nodes anywhere in the
// forest, independent of containment.
type Edge[K comparable, V any] struct {
	a, b      Node[K, V]
	directed  bool
	direction Direction
}

// NewEdge builds an edge between a and b. The direction is optional and
// defaults to Neutral; at most one may be given. ErrInvalidArgument is
// returned for extra direction arguments, a zero endpoint, or endpoints from
// different forests.
func NewEdge[K comparable, V any](a, b Node[K, V], directed bool, direction ...Direction) (Edge[K, V], error) {
	if len(direction) > 1 {
		return Edge[K, V]{}, fmt.Errorf("edge: %d directions given: %w", len(direction), ErrInvalidArgument)
	}
	if a.IsZero() || b.IsZero() {
		return Edge[K, V]{}, fmt.Errorf("edge: zero endpoint: %w", ErrInvalidArgument)
	}
	if a.f != b.f {
		return Edge[K, V]{}, fmt.Errorf("edge %v-%v: %w: %w", a, b, ErrInvalidArgument, ErrForeignNode)
	}
	e := Edge[K, V]{a: a, b: b, directed: directed}
	if len(direction) == 1 {
		e.direction = direction[0]
	}
	return e, nil
}

// A returns the first endpoint.
func (e Edge[K, V]) A() Node[K, V] { return e.a }

// B returns the second endpoint.
func (e Edge[K, V]) B() Node[K, V] { return e.b }

// Directed reports whether the edge is directed.
func (e Edge[K, V]) Directed() bool { return e.directed }

// Direction returns the direction given at construction.
func (e Edge[K, V]) Direction() Direction { return e.direction }

// Source returns the tail of a directed edge: B for Backward edges, A
// otherwise.
func (e Edge[K, V]) Source() Node[K, V] {
	if e.directed && e.direction == Backward {
		return e.b
	}
	return e.a
}

// Target returns the head of a directed edge: A for Backward edges, B
// otherwise.
func (e Edge[K, V]) Target() Node[K, V] {
	if e.directed && e.direction == Backward {
		return e.a
	}
	return e.b
}

// Other returns the endpoint opposite n, or false if n is not an endpoint.
func (e Edge[K, V]) Other(n Node[K, V]) (Node[K, V], bool) {
	switch n {
	case e.a:
		return e.b, true
	case e.b:
		return e.a, true
	}
	return Node[K, V]{}, false
}
