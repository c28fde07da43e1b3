package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/birchtree/birch/pkg/errors"
	treeio "github.com/birchtree/birch/pkg/io"
	"github.com/birchtree/birch/pkg/pipeline"
)

// detachOpts holds the command-line flags for the detach command.
type detachOpts struct {
	output string // output document; "" or "-" writes to stdout
	format string // format for stdout; defaults to the input format
	keep   bool   // keep the detached subtree as an extra root
}

// detachCommand creates the detach command.
func (c *CLI) detachCommand() *cobra.Command {
	var opts detachOpts

	cmd := &cobra.Command{
		Use:   "detach [file] [path]",
		Short: "Remove a subtree and write the remaining forest",
		Long: `Remove the node at an id path from its parent and write the result.

The path names a root followed by child ids, e.g. "s/vp/w2". The detached
subtree is dropped from the output unless --keep is given, in which case it
is written as an additional root. Edges between the detached subtree and
the rest of the forest cannot be written without it and make the command
fail.`,
		Example: `  birch detach sentence.yaml s/vp -o trimmed.yaml
  birch detach sentence.yaml s/np/w1 --keep -f json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDetach(cmd.Context(), cmd.OutOrStdout(), args[0], args[1], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output document (format from extension); stdout if empty")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "document format: json, yaml, toml (default: output or input extension)")
	cmd.Flags().BoolVar(&opts.keep, "keep", false, "keep the detached subtree as a separate root")
	return cmd
}

func (c *CLI) runDetach(ctx context.Context, w io.Writer, input, pathStr string, opts detachOpts) error {
	path, err := errors.ParsePath(pathStr)
	if err != nil {
		return err
	}
	loadOpts, err := c.loadOptions(input, "")
	if err != nil {
		return err
	}
	res, err := c.newRunner().Load(ctx, loadOpts)
	if err != nil {
		return err
	}

	n, ok := treeio.Resolve(res.Forest, path)
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "no node at path %s", pathStr)
	}
	parent, ok := n.Parent()
	if !ok {
		return errors.New(errors.ErrCodeInvalidArgument, "%s is a root", pathStr)
	}
	if _, err := parent.Remove(n.ID()); err != nil {
		return errors.Wrap(errors.FromTree(err), err, "detach %s", pathStr)
	}
	c.Logger.Infof("Detached %s (%d nodes)", pathStr, n.Size())

	roots := make([]pipeline.Node, 0, len(res.Roots)+1)
	for _, r := range res.Forest.Roots() {
		if r == n && !opts.keep {
			continue
		}
		roots = append(roots, r)
	}

	format, err := detachFormat(input, opts)
	if err != nil {
		return err
	}
	if opts.output == "" || opts.output == "-" {
		return treeio.Write(w, format, roots)
	}

	if err := treeio.WriteFile(opts.output, format, roots); err != nil {
		return err
	}
	printSuccess(w, "Wrote %d tree(s)", len(roots))
	printFile(w, opts.output)
	if opts.keep {
		printDetail(w, "%s kept as a separate root", n.ID())
	} else {
		printWarning(w, "Dropped %d node(s) below %s", n.Size(), pathStr)
	}
	return nil
}

// detachFormat picks the document format: the output extension, then
// --format, then the input extension. A --format that disagrees with the
// output extension is an error.
func detachFormat(input string, opts detachOpts) (string, error) {
	if opts.format != "" {
		if err := errors.ValidateFormat(opts.format, treeio.Formats); err != nil {
			return "", err
		}
	}
	if opts.output != "" && opts.output != "-" {
		format, err := treeio.FormatFromPath(opts.output)
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeInvalidFormat, err, "output %s", opts.output)
		}
		if opts.format != "" && opts.format != format {
			return "", errors.New(errors.ErrCodeInvalidArgument,
				"--format %s conflicts with output %s", opts.format, opts.output)
		}
		return format, nil
	}
	if opts.format != "" {
		return opts.format, nil
	}
	return treeio.FormatFromPath(input)
}
