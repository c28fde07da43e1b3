// Package pkg provides the libraries behind birch, a toolkit for annotated
// trees.
//
// # Overview
//
// An annotated tree is a node-labelled hierarchy: every node has an id
// unique among its siblings, an opaque value, a map of named features and
// an ordered list of edges to other nodes. The pkg directory is organized
// as follows:
//
//  1. [tree] - The core data structure (arena-backed forests and node handles)
//  2. [io] - JSON, YAML and TOML tree documents
//  3. [query] - Expression-based node selection
//  4. [render] - Terminal trees and Graphviz diagrams
//  5. [pipeline] - Orchestration (load → query → render)
//  6. [errors], [observability], [buildinfo] - Shared infrastructure
//
// # Architecture
//
// The typical data flow through birch:
//
//	JSON / YAML / TOML document
//	         ↓
//	    [io] package (decode, resolve link paths)
//	         ↓
//	    [tree] package (forest of nodes, features, edges)
//	         ↓
//	    [query] package (optional selection)
//	         ↓
//	    [render] package (txt, dot, svg, png) or [io] (json, yaml, toml)
//
// Only [tree] is needed to build and navigate trees in memory; the other
// packages are host-side tooling around it.
//
// [tree]: github.com/birchtree/birch/pkg/tree
// [io]: github.com/birchtree/birch/pkg/io
// [query]: github.com/birchtree/birch/pkg/query
// [render]: github.com/birchtree/birch/pkg/render
// [pipeline]: github.com/birchtree/birch/pkg/pipeline
// [errors]: github.com/birchtree/birch/pkg/errors
// [observability]: github.com/birchtree/birch/pkg/observability
// [buildinfo]: github.com/birchtree/birch/pkg/buildinfo
package pkg
