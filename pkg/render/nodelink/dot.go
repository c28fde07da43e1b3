package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/birchtree/birch/pkg/tree"
)

// Node is the node type diagrams are drawn from.
type Node = tree.Node[string, any]

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the value and every feature to node labels.
	// When false, only the node ID is shown.
	Detailed bool

	// Links draws the edges stored on nodes as dashed lines.
	Links bool
}

// ToDOT converts the trees below roots to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG] or [RenderPNG].
//
// Graphviz identifiers are derived from arena refs, since ids are only
// unique among siblings. Link endpoints outside the drawn trees are skipped.
func ToDOT(roots []Node, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	drawn := make(map[Node]bool)
	for _, r := range roots {
		for n := range tree.Descendants(r) {
			if drawn[n] {
				continue
			}
			drawn[n] = true
			fmt.Fprintf(&buf, "  %s [%s];\n", dotID(n), strings.Join(fmtAttrs(n, opts.Detailed), ", "))
		}
	}

	buf.WriteString("\n")
	for _, r := range roots {
		for n := range tree.Descendants(r) {
			for c := range n.Each() {
				fmt.Fprintf(&buf, "  %s -> %s;\n", dotID(n), dotID(c))
			}
		}
	}

	if opts.Links {
		buf.WriteString("\n")
		for _, r := range roots {
			for n := range tree.Descendants(r) {
				for _, e := range n.Edges() {
					if !drawn[e.A()] || !drawn[e.B()] {
						continue
					}
					fmt.Fprintf(&buf, "  %s -> %s [%s];\n", dotID(e.A()), dotID(e.B()), strings.Join(linkAttrs(e), ", "))
				}
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func dotID(n Node) string {
	return "n" + strconv.Itoa(n.Ref())
}

func fmtLabel(n Node, detailed bool) string {
	if !detailed {
		return n.ID()
	}

	var parts []string
	if v := n.Value(); v != nil {
		parts = append(parts, fmt.Sprintf("value: %v", v))
	}
	feats := n.Features()
	for _, k := range n.FeatureNames() {
		parts = append(parts, fmt.Sprintf("%s: %v", k, feats[k]))
	}
	if len(parts) == 0 {
		return n.ID()
	}
	return n.ID() + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(n Node, detailed bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(n, detailed))}
	if n.IsRoot() {
		attrs = append(attrs, "penwidth=2")
	}
	return attrs
}

func linkAttrs(e tree.Edge[string, any]) []string {
	attrs := []string{"style=dashed", "color=grey40", "constraint=false"}
	switch {
	case !e.Directed():
		attrs = append(attrs, "dir=none")
	case e.Direction() == tree.Backward:
		attrs = append(attrs, "dir=back")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	out, err := render(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
