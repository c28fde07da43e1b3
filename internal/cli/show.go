package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/birchtree/birch/pkg/render/text"
)

// showOpts holds the command-line flags shared by show and render.
type showOpts struct {
	root       string // slash-separated id path of the subtree to use
	features   bool   // append feature maps to labels
	links      bool   // include stored edges
	enumerator string // default or rounded
}

// showCommand creates the show command for printing trees to the terminal.
func (c *CLI) showCommand() *cobra.Command {
	var opts showOpts

	cmd := &cobra.Command{
		Use:   "show [file]",
		Short: "Print the trees of a document",
		Long: `Print the trees of a document as an indented terminal tree.

Each line shows a node id followed by its value. Use --features and --links
to include feature maps and the edges stored on each node, and --root to
print only the subtree at an id path such as "s/np".`,
		Example: `  birch show sentence.yaml
  birch show sentence.yaml --root s/vp --features --enumerator rounded`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runShow(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	addShowFlags(cmd, &opts)
	return cmd
}

func addShowFlags(cmd *cobra.Command, opts *showOpts) {
	cmd.Flags().StringVar(&opts.root, "root", "", "id path of the subtree to use (e.g. s/np)")
	cmd.Flags().BoolVar(&opts.features, "features", false, "show node features")
	cmd.Flags().BoolVar(&opts.links, "links", false, "show edges stored on nodes")
	cmd.Flags().StringVar(&opts.enumerator, "enumerator", "", "branch style: default, rounded (default from config)")
}

// textOptions resolves the enumerator against the config file.
func (c *CLI) textOptions(opts showOpts) (text.Options, error) {
	name := opts.enumerator
	if name == "" {
		name = c.Config.Enumerator
	}
	enum, err := text.ParseEnumerator(name)
	if err != nil {
		return text.Options{}, err
	}
	return text.Options{Enumerator: enum, Features: opts.features, Links: opts.links}, nil
}

func (c *CLI) runShow(ctx context.Context, w io.Writer, input string, opts showOpts) error {
	textOpts, err := c.textOptions(opts)
	if err != nil {
		return err
	}
	loadOpts, err := c.loadOptions(input, opts.root)
	if err != nil {
		return err
	}

	res, err := c.newRunner().Load(ctx, loadOpts)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, text.RenderAll(res.Roots, textOpts))
	return err
}
