// Package text renders trees for the terminal using lipgloss.
//
//	r: Dogs bark.
//	├── np
//	│   └── w1: Dogs [pos=NNS]
//	└── vp
//	    └── w2: bark [pos=VBP] {w2 -> w1}
package text

import (
	"fmt"
	"strings"

	ltree "github.com/charmbracelet/lipgloss/tree"

	"github.com/birchtree/birch/pkg/tree"
)

// Node is the node type rendered by this package.
type Node = tree.Node[string, any]

// Enumerator selects the branch glyphs.
type Enumerator string

const (
	EnumeratorDefault Enumerator = "default" // ├── └──
	EnumeratorRounded Enumerator = "rounded" // ├── ╰──
)

// ParseEnumerator validates an enumerator name. The empty string selects
// EnumeratorDefault.
func ParseEnumerator(s string) (Enumerator, error) {
	switch e := Enumerator(strings.ToLower(s)); e {
	case "", EnumeratorDefault:
		return EnumeratorDefault, nil
	case EnumeratorRounded:
		return e, nil
	}
	return "", fmt.Errorf("unknown enumerator %q (want default or rounded)", s)
}

// Options configures text rendering.
type Options struct {
	Enumerator Enumerator
	// Features appends the feature map to each label.
	Features bool
	// Links appends the edges stored on each node to its label.
	Links bool
}

// Render draws the subtree below n. Each line holds one node's label:
// the id, then ": value" for non-nil values.
func Render(n Node, opts Options) string {
	if n.IsZero() {
		return ""
	}
	t := build(n, opts)
	if opts.Enumerator == EnumeratorRounded {
		t.Enumerator(ltree.RoundedEnumerator)
	} else {
		t.Enumerator(ltree.DefaultEnumerator)
	}
	return t.String()
}

// RenderAll renders every root, separated by blank lines.
func RenderAll(roots []Node, opts Options) string {
	parts := make([]string, 0, len(roots))
	for _, r := range roots {
		parts = append(parts, Render(r, opts))
	}
	return strings.Join(parts, "\n\n")
}

func build(n Node, opts Options) *ltree.Tree {
	t := ltree.Root(Label(n, opts))
	for c := range n.Each() {
		if c.IsLeaf() {
			t.Child(Label(c, opts))
			continue
		}
		t.Child(build(c, opts))
	}
	return t
}

// Label formats a single node the way Render does.
func Label(n Node, opts Options) string {
	var b strings.Builder
	b.WriteString(n.ID())
	if v := n.Value(); v != nil {
		fmt.Fprintf(&b, ": %v", v)
	}
	if opts.Features && n.HasFeatures() {
		b.WriteString(" [")
		feats := n.Features()
		for i, name := range n.FeatureNames() {
			if i > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%s=%v", name, feats[name])
		}
		b.WriteByte(']')
	}
	if opts.Links && n.HasEdges() {
		b.WriteString(" {")
		for i, e := range n.Edges() {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(FormatEdge(e))
		}
		b.WriteByte('}')
	}
	return b.String()
}

// FormatEdge writes a directed edge as "source -> target" and an undirected
// one as "a -- b".
func FormatEdge(e tree.Edge[string, any]) string {
	if !e.Directed() {
		return e.A().ID() + " -- " + e.B().ID()
	}
	return e.Source().ID() + " -> " + e.Target().ID()
}
