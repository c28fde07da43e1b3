package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/birchtree/birch/pkg/errors"
	"github.com/birchtree/birch/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	showOpts
	output   string   // output file path (or base path for multiple outputs)
	formats  []string // output formats: txt, dot, svg, png, json, yaml, toml
	detailed bool     // show value and features in nodelink labels
}

// renderCommand creates the render command for generating outputs.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render trees to text, diagrams or documents",
		Long: `Render trees to text, diagrams or documents.

Formats:
  txt              indented terminal tree
  dot              Graphviz source
  svg, png         node-link diagrams rendered with Graphviz
  json, yaml, toml tree documents (subtrees selected with --root are
                   written with paths relative to them)

With a single format, --output names the file; "-" writes to stdout. With
several formats, --output is a base path and the format is appended as the
extension. Without --output, paths are derived from the input file.`,
		Example: `  birch render sentence.yaml -f svg,dot --links
  birch render sentence.yaml -f yaml --root s/vp -o vp.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr, c.Config.Format)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			if !cmd.Flags().Changed("detailed") {
				opts.detailed = c.Config.Detailed
			}
			return c.runRender(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], opts)
		},
	}

	addShowFlags(cmd, &opts.showOpts)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): "+strings.Join(pipeline.Formats, ", ")+" (comma-separated)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show values and features in diagram labels")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, w, errw io.Writer, input string, opts renderOpts) error {
	textOpts, err := c.textOptions(opts.showOpts)
	if err != nil {
		return err
	}
	pipeOpts, err := c.loadOptions(input, opts.root)
	if err != nil {
		return err
	}
	pipeOpts.Formats = opts.formats
	pipeOpts.Detailed = opts.detailed
	pipeOpts.Links = opts.links
	pipeOpts.Features = opts.features
	pipeOpts.Enumerator = textOpts.Enumerator

	if err := pipeOpts.ValidateForRender(); err != nil {
		return err
	}
	runner := c.newRunner()
	res, err := runner.Load(ctx, pipeOpts)
	if err != nil {
		return err
	}

	spinner := newSpinner(ctx, errw, renderMessage(pipeOpts.Formats, res.Stats.NodeCount))
	spinner.Start()

	start := time.Now()
	res.Artifacts, err = runner.Render(ctx, res.Roots, pipeOpts)
	if err != nil {
		if spinner.Cancelled() {
			spinner.Stop()
		} else {
			spinner.StopWithError("Render failed")
		}
		return fmt.Errorf("render: %w", err)
	}
	res.Stats.RenderTime = time.Since(start)
	spinner.Stop()

	c.Logger.Infof("Rendered %d nodes, %d edges in %s", res.Stats.NodeCount, res.Stats.EdgeCount, res.Stats.RenderTime)

	return writeArtifacts(withLogger(ctx, c.Logger), w, artifactWriteParams{
		artifacts: res.Artifacts,
		formats:   opts.formats,
		input:     input,
		output:    opts.output,
	})
}

// artifactWriteParams describes where rendered artifacts go.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
}

// writeArtifacts writes each artifact to its output path, or to w when a
// single format is written to "-".
func writeArtifacts(ctx context.Context, w io.Writer, p artifactWriteParams) error {
	logger := loggerFromContext(ctx)

	if len(p.formats) == 1 && p.output == "-" {
		_, err := w.Write(p.artifacts[p.formats[0]])
		return err
	}

	var written []string
	for _, format := range p.formats {
		path := outputPath(p.output, p.input, format, len(p.formats) > 1)
		if sameFile(path, p.input) {
			return errors.New(errors.ErrCodeInvalidArgument, "refusing to overwrite input %s; pass --output", p.input)
		}
		if err := os.WriteFile(path, p.artifacts[format], 0o644); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
		}
		logger.Debugf("Wrote %s: %d bytes", path, len(p.artifacts[format]))
		written = append(written, path)
	}

	printSuccess(w, "Generated %d file(s)", len(written))
	for _, path := range written {
		printFile(w, path)
	}
	return nil
}

// outputPath derives the file for one format. A single format is written to
// output as given; several formats share the base path.
func outputPath(output, input, format string, multiple bool) string {
	if output != "" && !multiple {
		return output
	}
	return basePath(output, input) + "." + format
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .yaml, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if slices.Contains(pipeline.Formats, strings.TrimPrefix(ext, ".")) {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

func sameFile(a, b string) bool {
	ia, err := os.Stat(a)
	if err != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	ib, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ia, ib)
}
