package io

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/birchtree/birch/pkg/tree"
)

var (
	// ErrMissingID is returned when a node has no id and AutoID is off.
	ErrMissingID = errors.New("node id is missing")

	// ErrUnresolvedPath is returned when a link path names no node.
	ErrUnresolvedPath = errors.New("path does not resolve to a node")
)

// Forest is the concrete forest type documents decode into.
type Forest = tree.Forest[string, any]

// Node is a node of a Forest.
type Node = tree.Node[string, any]

// Document is the serialized form of a forest.
type Document struct {
	Roots []NodeSpec `json:"roots" yaml:"roots" toml:"roots"`
	Links []LinkSpec `json:"links,omitempty" yaml:"links,omitempty" toml:"links,omitempty"`
}

// NodeSpec describes one node and its subtree.
type NodeSpec struct {
	ID       string         `json:"id,omitempty" yaml:"id,omitempty" toml:"id,omitempty"`
	Value    any            `json:"value,omitempty" yaml:"value,omitempty" toml:"value,omitempty"`
	Features map[string]any `json:"features,omitempty" yaml:"features,omitempty" toml:"features,omitempty"`
	Children []NodeSpec     `json:"children,omitempty" yaml:"children,omitempty" toml:"children,omitempty"`
}

// LinkSpec describes an edge by the id paths of its endpoints.
type LinkSpec struct {
	At        []string `json:"at,omitempty" yaml:"at,omitempty" toml:"at,omitempty"`
	From      []string `json:"from" yaml:"from" toml:"from"`
	To        []string `json:"to" yaml:"to" toml:"to"`
	Directed  bool     `json:"directed,omitempty" yaml:"directed,omitempty" toml:"directed,omitempty"`
	Direction int      `json:"direction,omitempty" yaml:"direction,omitempty" toml:"direction,omitempty"`
}

// Options controls how documents are turned into forests.
type Options struct {
	// AutoID assigns a random UUID to nodes without an id instead of failing.
	AutoID bool
}

// Build creates a new forest from doc. Nodes are allocated in document
// pre-order, so [tree.Forest.Roots] returns the roots in document order.
func Build(doc Document, opts Options) (*Forest, error) {
	f := tree.New[string, any]()
	seen := make(map[string]bool, len(doc.Roots))
	for i, spec := range doc.Roots {
		n, err := buildNode(f, spec, opts)
		if err != nil {
			return nil, fmt.Errorf("root %d: %w", i, err)
		}
		if seen[n.ID()] {
			return nil, fmt.Errorf("root %q: %w", n.ID(), tree.ErrDuplicateID)
		}
		seen[n.ID()] = true
	}
	for i, l := range doc.Links {
		if err := link(f, l); err != nil {
			return nil, fmt.Errorf("link %d: %w", i, err)
		}
	}
	return f, nil
}

func buildNode(f *Forest, spec NodeSpec, opts Options) (Node, error) {
	id := spec.ID
	if id == "" {
		if !opts.AutoID {
			return Node{}, ErrMissingID
		}
		id = uuid.NewString()
	}
	n := f.NewNode(spec.Value, id)
	for name, v := range spec.Features {
		n.Set(name, v)
	}
	for _, cs := range spec.Children {
		c, err := buildNode(f, cs, opts)
		if err != nil {
			return Node{}, fmt.Errorf("%s: %w", id, err)
		}
		if _, err := n.Add(c); err != nil {
			return Node{}, err
		}
	}
	return n, nil
}

func link(f *Forest, l LinkSpec) error {
	a, err := resolve(f, l.From)
	if err != nil {
		return err
	}
	b, err := resolve(f, l.To)
	if err != nil {
		return err
	}
	at := a
	if len(l.At) > 0 {
		if at, err = resolve(f, l.At); err != nil {
			return err
		}
	}
	e, err := tree.NewEdge(a, b, l.Directed, tree.Direction(l.Direction))
	if err != nil {
		return err
	}
	at.Link(e)
	return nil
}

func resolve(f *Forest, path []string) (Node, error) {
	n, ok := Resolve(f, path)
	if !ok {
		return Node{}, fmt.Errorf("%v: %w", path, ErrUnresolvedPath)
	}
	return n, nil
}

// Resolve finds the node addressed by an id path: path[0] names a root of
// f, each further segment a direct child of the previous node.
func Resolve(f *Forest, path []string) (Node, bool) {
	if len(path) == 0 {
		return Node{}, false
	}
	for _, r := range f.Roots() {
		if r.ID() == path[0] {
			return Descend(r, path[1:])
		}
	}
	return Node{}, false
}

// Descend follows child ids from n.
func Descend(n Node, path []string) (Node, bool) {
	for _, id := range path {
		c, ok := n.Lookup(id)
		if !ok {
			return Node{}, false
		}
		n = c
	}
	return n, true
}

// PathOf returns the id path of n from its root.
func PathOf(n Node) []string {
	nodes := n.Path()
	path := make([]string, len(nodes))
	for i, p := range nodes {
		path[i] = p.ID()
	}
	return path
}

// FormatPath joins an id path with slashes, the form accepted by the CLI.
func FormatPath(path []string) string {
	return strings.Join(path, "/")
}

// FromRoots converts the subtrees below roots into a document. The roots
// need not be forest roots; paths in the document are then relative to them.
// Links are emitted for every edge stored in those subtrees. Both endpoints
// must lie inside the exported subtrees and root ids must be distinct,
// otherwise the links could not be resolved again.
func FromRoots(roots []Node) (Document, error) {
	doc := Document{Roots: make([]NodeSpec, 0, len(roots))}
	owner := make(map[Node]Node)
	seen := make(map[string]bool, len(roots))
	for _, r := range roots {
		if seen[r.ID()] {
			return Document{}, fmt.Errorf("root %q: %w", r.ID(), tree.ErrDuplicateID)
		}
		seen[r.ID()] = true
		doc.Roots = append(doc.Roots, toSpec(r))
		for n := range tree.Descendants(r) {
			owner[n] = r
		}
	}

	relPath := func(n Node) ([]string, bool) {
		r, ok := owner[n]
		if !ok {
			return nil, false
		}
		full := n.Path()
		return PathOf(n)[slices.Index(full, r):], true
	}

	for _, r := range roots {
		for n := range tree.Descendants(r) {
			at, _ := relPath(n)
			for _, e := range n.Edges() {
				from, okA := relPath(e.A())
				to, okB := relPath(e.B())
				if !okA || !okB {
					return Document{}, fmt.Errorf("link at %v: endpoint outside exported trees: %w",
						at, ErrUnresolvedPath)
				}
				l := LinkSpec{
					From:      from,
					To:        to,
					Directed:  e.Directed(),
					Direction: int(e.Direction()),
				}
				if !slices.Equal(at, from) {
					l.At = at
				}
				doc.Links = append(doc.Links, l)
			}
		}
	}
	return doc, nil
}

// FromForest converts every tree of f into a document.
func FromForest(f *Forest) (Document, error) {
	return FromRoots(f.Roots())
}

func toSpec(n Node) NodeSpec {
	spec := NodeSpec{ID: n.ID(), Value: n.Value()}
	if n.HasFeatures() {
		spec.Features = n.Features()
	}
	for c := range n.Each() {
		spec.Children = append(spec.Children, toSpec(c))
	}
	return spec
}
