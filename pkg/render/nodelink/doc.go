// Package nodelink renders trees as traditional node-link diagrams.
//
// # Overview
//
// This package produces tree visualizations using Graphviz, where nodes
// appear as boxes and parent-child relations as arrows. Edges stored on
// nodes can be overlaid as dashed lines. It is the graphical counterpart of
// the terminal renderer in [github.com/birchtree/birch/pkg/render/text].
//
// # Usage
//
// Convert one or more roots to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(roots, nodelink.Options{Links: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PNG output:
//
//	png, err := nodelink.RenderPNG(ctx, dot)
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Detailed: node labels include the value and all features
//   - Links: stored edges are drawn; undirected edges have no arrowhead and
//     Backward edges point from B to A
//
// # DOT Format
//
// The generated DOT uses top-to-bottom layout (rankdir=TB) with rounded box
// nodes. Roots are drawn with a heavier outline. Links do not take part in
// ranking (constraint=false), so the tree shape is preserved.
//
// Graphviz node names are built from [tree.Node.Ref], so all roots passed to
// one [ToDOT] call should come from the same forest.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG and
// PNG rendering. No external binaries are required.
package nodelink
