// Package render groups the tree renderers.
//
// # Overview
//
// Rendering turns one or more subtrees into a visual artifact. Two
// renderers are provided:
//
//   - [text]: indented terminal trees drawn with lipgloss
//   - [nodelink]: Graphviz node-link diagrams (DOT, SVG, PNG)
//
// Both accept the same kind of input, a slice of roots that may be any
// nodes of a forest, and can optionally include the features and edges
// stored on nodes.
//
//	fmt.Println(text.Render(root, text.Options{Features: true}))
//
//	dot := nodelink.ToDOT([]nodelink.Node{root}, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [text]: github.com/birchtree/birch/pkg/render/text
// [nodelink]: github.com/birchtree/birch/pkg/render/nodelink
package render
