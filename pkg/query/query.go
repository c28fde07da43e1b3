// Package query selects tree nodes with boolean expressions.
//
// Expressions use the expr language (github.com/expr-lang/expr) and are
// evaluated once per node against this environment:
//
//	id        string          node id
//	value     any             node payload
//	depth     int             parent links to the root
//	size      int             nodes in the subtree, including this one
//	children  int             number of direct children
//	edges     int             number of linked edges
//	leaf      bool            no children
//	root      bool            no parent
//	features  map[string]any  feature map
//	has(name)      bool       feature is set
//	feature(name)  any        feature value, or nil
//
// Examples:
//
//	leaf && features.pos == "NN"
//	depth <= 1 and size > 3
//	has("head") || id startsWith "w"
package query

import (
	"errors"
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/birchtree/birch/pkg/tree"
)

// ErrInvalidQuery is returned by Compile for expressions that do not parse
// or do not produce a boolean.
var ErrInvalidQuery = errors.New("invalid query")

// Node is the node type queries run against.
type Node = tree.Node[string, any]

// Query is a compiled predicate. It is safe to reuse across nodes.
type Query struct {
	src     string
	program *vm.Program
}

// Compile parses and type-checks src.
func Compile(src string) (*Query, error) {
	program, err := expr.Compile(src, expr.Env(env(Node{})), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}
	return &Query{src: src, program: program}, nil
}

// String returns the source expression.
func (q *Query) String() string { return q.src }

// Match evaluates the query against n. Expressions whose result is only
// known at run time, such as a bare feature, fail with ErrInvalidQuery when
// they do not yield a bool.
func (q *Query) Match(n Node) (bool, error) {
	out, err := expr.Run(q.program, env(n))
	if err != nil {
		return false, fmt.Errorf("query %q on %v: %w", q.src, n, err)
	}
	b, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("query %q on %v: result %T is not a bool: %w", q.src, n, out, ErrInvalidQuery)
	}
	return b, nil
}

// Select returns the nodes of n's subtree, n included, that match q, in
// pre-order.
func Select(n Node, q *Query) ([]Node, error) {
	var out []Node
	for d := range tree.Descendants(n) {
		ok, err := q.Match(d)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, d)
		}
	}
	return out, nil
}

// Count returns the number of nodes Select would return.
func Count(n Node, q *Query) (int, error) {
	matches, err := Select(n, q)
	return len(matches), err
}

// env builds the evaluation environment. The zero Node yields the typed
// zero environment used for compilation.
func env(n Node) map[string]any {
	if n.IsZero() {
		return map[string]any{
			"id":       "",
			"value":    any(nil),
			"depth":    0,
			"size":     0,
			"children": 0,
			"edges":    0,
			"leaf":     false,
			"root":     false,
			"features": map[string]any{},
			"has":      func(string) bool { return false },
			"feature":  func(string) any { return nil },
		}
	}
	feats := map[string]any(n.Features())
	return map[string]any{
		"id":       n.ID(),
		"value":    n.Value(),
		"depth":    n.Depth(),
		"size":     n.Size(),
		"children": n.Len(),
		"edges":    len(n.Edges()),
		"leaf":     n.IsLeaf(),
		"root":     n.IsRoot(),
		"features": feats,
		"has":      n.HasFeature,
		"feature": func(name string) any {
			return feats[name]
		},
	}
}
