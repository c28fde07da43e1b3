package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/birchtree/birch/pkg/errors"
	treeio "github.com/birchtree/birch/pkg/io"
	"github.com/birchtree/birch/pkg/pipeline"
	"github.com/birchtree/birch/pkg/render/text"
)

// findCommand creates the find command for locating nodes by id.
func (c *CLI) findCommand() *cobra.Command {
	var root string

	cmd := &cobra.Command{
		Use:   "find [file] [id]",
		Short: "Find the first node with an id in each tree",
		Long: `Find the first node with an id in each tree.

Ids are only unique among siblings, so every tree is searched depth-first
and the first match in pre-order is reported as an id path.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateID(args[1]); err != nil {
				return err
			}
			return c.runFind(cmd.Context(), cmd.OutOrStdout(), args[0], args[1], root)
		},
	}

	cmd.Flags().StringVar(&root, "root", "", "id path of the subtree to search")
	return cmd
}

// findIn returns the first node named id in pre-order, r included.
func findIn(r pipeline.Node, id string) (pipeline.Node, bool) {
	if r.ID() == id {
		return r, true
	}
	return r.Find(id)
}

func (c *CLI) runFind(ctx context.Context, w io.Writer, input, id, root string) error {
	loadOpts, err := c.loadOptions(input, root)
	if err != nil {
		return err
	}
	res, err := c.newRunner().Load(ctx, loadOpts)
	if err != nil {
		return err
	}

	found := 0
	for _, r := range res.Roots {
		n, ok := findIn(r, id)
		if !ok {
			continue
		}
		found++
		printPath(w, treeio.PathOf(n), describe(n))
	}
	if found == 0 {
		return errors.New(errors.ErrCodeNotFound, "no node with id %q", id)
	}
	return nil
}

// describe summarizes a node for one-line listings.
func describe(n pipeline.Node) string {
	s := text.Label(n, text.Options{Features: true})
	return strings.TrimSpace(strings.TrimPrefix(s[len(n.ID()):], ":"))
}

// queryCommand creates the query command for selecting nodes by expression.
func (c *CLI) queryCommand() *cobra.Command {
	var (
		root  string
		count bool
	)

	cmd := &cobra.Command{
		Use:   "query [file] [expr]",
		Short: "List nodes matching an expression",
		Long: `List nodes matching a boolean expression.

Expressions are evaluated once per node with these variables:

  id, value         node id and payload
  depth, size       distance to the root, nodes in the subtree
  children, edges   number of children and stored edges
  leaf, root        structural flags
  features          feature map, e.g. features.pos == "NN"
  has(name)         whether a feature is set
  feature(name)     feature value or nil`,
		Example: `  birch query sentence.yaml 'leaf && features.pos startsWith "V"'
  birch query sentence.yaml 'depth == 1' --count`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runQuery(cmd.Context(), cmd.OutOrStdout(), args[0], args[1], root, count)
		},
	}

	cmd.Flags().StringVar(&root, "root", "", "id path of the subtree to search")
	cmd.Flags().BoolVar(&count, "count", false, "print only the number of matches")
	return cmd
}

func (c *CLI) runQuery(ctx context.Context, w io.Writer, input, expr, root string, count bool) error {
	loadOpts, err := c.loadOptions(input, root)
	if err != nil {
		return err
	}
	runner := c.newRunner()
	res, err := runner.Load(ctx, loadOpts)
	if err != nil {
		return err
	}

	p := newProgress(c.Logger)
	matches, err := runner.Query(ctx, res.Roots, expr)
	if err != nil {
		return err
	}
	c.Logger.Debugf("Evaluated %s on %d nodes", expr, res.Stats.NodeCount)

	if count {
		fmt.Fprintln(w, len(matches))
		return nil
	}
	for _, n := range matches {
		printPath(w, treeio.PathOf(n), describe(n))
	}
	p.done(fmt.Sprintf("Matched %d of %d nodes", len(matches), res.Stats.NodeCount))
	return nil
}
