package tree

import (
	"errors"
	"slices"
	"testing"
)

func TestNewEdge(t *testing.T) {
	f := New[string, string]()
	a := f.NewNode("A", "child A")
	b := f.NewNode("B", "child B")

	e, err := NewEdge(a, b, true, Forward)
	if err != nil {
		t.Fatalf("NewEdge: %v", err)
	}
	if e.A() != a || e.B() != b {
		t.Errorf("endpoints = (%v, %v), want (a, b)", e.A(), e.B())
	}
	if !e.Directed() || e.Direction() != Forward {
		t.Errorf("directed=%v direction=%v", e.Directed(), e.Direction())
	}

	e, err = NewEdge(a, b, true)
	if err != nil {
		t.Fatalf("NewEdge: %v", err)
	}
	if e.Direction() != Neutral {
		t.Errorf("default direction = %v, want neutral", e.Direction())
	}
}

func TestNewEdgeErrors(t *testing.T) {
	f := New[string, string]()
	a := f.NewNode("A", "a")
	b := f.NewNode("B", "b")
	foreign := New[string, string]().NewNode("X", "x")

	tests := []struct {
		name string
		a, b Node[string, string]
		dirs []Direction
		want []error
	}{
		{"TooManyDirections", a, b, []Direction{Forward, Backward}, []error{ErrInvalidArgument}},
		{"ZeroA", Node[string, string]{}, b, nil, []error{ErrInvalidArgument}},
		{"ZeroB", a, Node[string, string]{}, nil, []error{ErrInvalidArgument}},
		{"CrossForest", a, foreign, nil, []error{ErrInvalidArgument, ErrForeignNode}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEdge(tt.a, tt.b, true, tt.dirs...)
			for _, want := range tt.want {
				if !errors.Is(err, want) {
					t.Errorf("err = %v, want %v", err, want)
				}
			}
		})
	}
}

func TestEdgeEndpoints(t *testing.T) {
	f := New[int, any]()
	a := f.NewNode(nil, 1)
	b := f.NewNode(nil, 2)
	c := f.NewNode(nil, 3)

	tests := []struct {
		name     string
		directed bool
		dir      Direction
		src, dst Node[int, any]
	}{
		{"Undirected", false, Neutral, a, b},
		{"Forward", true, Forward, a, b},
		{"Backward", true, Backward, b, a},
		{"DirectedNeutral", true, Neutral, a, b},
		{"UndirectedBackwardIgnored", false, Backward, a, b},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := NewEdge(a, b, tt.directed, tt.dir)
			if err != nil {
				t.Fatal(err)
			}
			if e.Source() != tt.src || e.Target() != tt.dst {
				t.Errorf("Source/Target = %v/%v, want %v/%v", e.Source(), e.Target(), tt.src, tt.dst)
			}
		})
	}

	e, _ := NewEdge(a, b, false)
	if o, ok := e.Other(a); !ok || o != b {
		t.Errorf("Other(a) = %v", o)
	}
	if o, ok := e.Other(b); !ok || o != a {
		t.Errorf("Other(b) = %v", o)
	}
	if _, ok := e.Other(c); ok {
		t.Error("Other(c) should fail for a non-endpoint")
	}
}

func TestLink(t *testing.T) {
	f := New[string, string]()
	a := f.NewNode("A", "child A")
	b := f.NewNode("B", "child B")
	edge1, _ := NewEdge(a, b, false)
	edge2, _ := NewEdge(a, b, true, Backward)

	if got := a.Link(edge1); got != edge1 {
		t.Error("Link should return its argument")
	}
	if !a.HasEdges() || len(a.Edges()) != 1 {
		t.Fatalf("edges after one Link = %d", len(a.Edges()))
	}
	if edge1.Directed() {
		t.Error("edge1 should be undirected")
	}

	a.Link(edge2)
	if got := a.Edges(); !slices.Equal(got, []Edge[string, string]{edge1, edge2}) {
		t.Errorf("Edges() = %v", got)
	}
	if b.HasEdges() {
		t.Error("Link must only touch the receiver's edge store")
	}

	// Edges may point outside the linking node's subtree, or not touch it.
	c := f.NewNode("C", "c")
	c.Link(edge1)
	if len(c.Edges()) != 1 {
		t.Errorf("c edges = %d, want 1", len(c.Edges()))
	}

	a.Edges()[0] = edge2
	if a.Edges()[0] != edge1 {
		t.Error("Edges() must return a copy")
	}
}

func TestDirectionString(t *testing.T) {
	tests := map[Direction]string{
		Neutral:      "neutral",
		Forward:      "forward",
		Backward:     "backward",
		Direction(7): "Direction(7)",
	}
	for d, want := range tests {
		if got := d.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", int(d), got, want)
		}
	}
}
