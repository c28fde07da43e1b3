package pipeline

import (
	"context"
	"time"

	"github.com/birchtree/birch/pkg/errors"
	treeio "github.com/birchtree/birch/pkg/io"
	"github.com/birchtree/birch/pkg/observability"
	"github.com/birchtree/birch/pkg/render/nodelink"
	"github.com/birchtree/birch/pkg/render/text"
)

// Render generates output artifacts for the subtrees below roots in the
// requested formats.
func (r *Runner) Render(ctx context.Context, roots []Node, opts Options) (artifacts map[string][]byte, err error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	defer func() {
		observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	}()

	artifacts, err = Render(ctx, roots, opts)
	if err != nil {
		return nil, err
	}

	opts.Logger.Debug("rendered outputs",
		"formats", opts.Formats,
		"duration", time.Since(start))
	return artifacts, nil
}

// Render generates output artifacts in the requested formats without
// logging or hooks. opts must already be validated.
func Render(ctx context.Context, roots []Node, opts Options) (map[string][]byte, error) {
	var dot string
	if opts.NeedsDOT() {
		dot = nodelink.ToDOT(roots, nodelink.Options{Detailed: opts.Detailed, Links: opts.Links})
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var data []byte
		var err error

		switch format {
		case FormatText:
			data = []byte(text.RenderAll(roots, text.Options{
				Enumerator: opts.Enumerator,
				Features:   opts.Features,
				Links:      opts.Links,
			}) + "\n")
		case FormatDOT:
			data = []byte(dot)
		case FormatSVG:
			data, err = nodelink.RenderSVG(ctx, dot)
		case FormatPNG:
			data, err = nodelink.RenderPNG(ctx, dot)
		case FormatJSON, FormatYAML, FormatTOML:
			data, err = treeio.Marshal(format, roots)
		default:
			return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, errors.Wrap(errors.FromTree(err), err, "render %s", format)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
