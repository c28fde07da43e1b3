// Package io reads and writes tree description documents in JSON, YAML, and
// TOML.
//
// # Overview
//
// A document describes one or more trees together with the links layered
// on top of them. It is the interchange format of the birch command line:
// the [tree] package itself has no on-disk representation, and this package
// only converts between documents and [tree.Forest] values.
//
// # Format
//
// Nodes nest through "children". Links address nodes by id path, the ids
// from a root down to the node. Because ids are unique among siblings, a
// path always names at most one node:
//
//	{
//	  "roots": [
//	    {
//	      "id": "s1",
//	      "value": "Dogs bark.",
//	      "children": [
//	        {"id": "w1", "value": "Dogs", "features": {"pos": "NNS"}},
//	        {"id": "w2", "value": "bark", "features": {"pos": "VBP"}}
//	      ]
//	    }
//	  ],
//	  "links": [
//	    {"from": ["s1", "w2"], "to": ["s1", "w1"], "directed": true, "direction": 1}
//	  ]
//	}
//
// # Node Fields
//
// Required:
//   - id: Identifier, unique among siblings (generated with [Options.AutoID])
//
// Optional:
//   - value: Opaque payload
//   - features: Object of named annotations
//   - children: Nested nodes, in order
//
// # Link Fields
//
//   - from, to: Id paths of the two endpoints
//   - at: Id path of the node whose edge store holds the link (defaults to from)
//   - directed: Whether the link is directed
//   - direction: 0 neutral, 1 forward (from -> to), -1 backward
//
// The YAML and TOML encodings use the same field names. In TOML, roots and
// children are arrays of tables ([[roots]], [[roots.children]]).
//
// # Errors
//
// Decoding rejects unknown fields. Building a forest fails with
// [ErrMissingID], [tree.ErrDuplicateID] for sibling collisions (root ids must
// also be distinct), or [ErrUnresolvedPath] for links naming missing nodes.
package io
