package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/birchtree/birch/pkg/pipeline"
	"github.com/birchtree/birch/pkg/tree"
)

// statsCommand creates the stats command.
func (c *CLI) statsCommand() *cobra.Command {
	var root string

	cmd := &cobra.Command{
		Use:   "stats [file]",
		Short: "Summarize the trees of a document",
		Long: `Summarize the trees of a document.

For every root the table lists the number of nodes, the height (edges on
the longest root-to-leaf path), the number of leaves and the number of
edges stored on nodes of that tree.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runStats(cmd.Context(), cmd.OutOrStdout(), args[0], root)
		},
	}

	cmd.Flags().StringVar(&root, "root", "", "id path of the subtree to summarize")
	return cmd
}

// treeStats summarizes one tree.
type treeStats struct {
	id     string
	nodes  int
	height int
	leaves int
	edges  int
}

func statsOf(n pipeline.Node) treeStats {
	nodes, edges := pipeline.Count([]pipeline.Node{n})
	return treeStats{
		id:     n.ID(),
		nodes:  nodes,
		height: tree.Height(n),
		leaves: len(tree.Leaves(n)),
		edges:  edges,
	}
}

func (c *CLI) runStats(ctx context.Context, w io.Writer, input, root string) error {
	loadOpts, err := c.loadOptions(input, root)
	if err != nil {
		return err
	}
	res, err := c.newRunner().Load(ctx, loadOpts)
	if err != nil {
		return err
	}
	if len(res.Roots) == 0 {
		printInfo(w, "%s contains no trees", input)
		return nil
	}

	rows := make([][]string, 0, len(res.Roots))
	for _, r := range res.Roots {
		s := statsOf(r)
		rows = append(rows, []string{
			s.id,
			strconv.Itoa(s.nodes),
			strconv.Itoa(s.height),
			strconv.Itoa(s.leaves),
			strconv.Itoa(s.edges),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers("Root", "Nodes", "Height", "Leaves", "Edges").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1: // header
				return styleHeader
			case col == 0:
				return StyleHighlight
			}
			return StyleNumber
		})

	fmt.Fprintln(w, t.Render())
	printStats(w, res.Stats.NodeCount, res.Stats.EdgeCount)
	return nil
}
