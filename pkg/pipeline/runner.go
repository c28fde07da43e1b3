package pipeline

import (
	"context"
	stderrors "errors"
	"io/fs"
	"time"

	"github.com/charmbracelet/log"

	"github.com/birchtree/birch/pkg/errors"
	treeio "github.com/birchtree/birch/pkg/io"
	"github.com/birchtree/birch/pkg/observability"
	"github.com/birchtree/birch/pkg/query"
	"github.com/birchtree/birch/pkg/tree"
)

// Runner executes pipeline stages and reports them to the logger and the
// registered observability hooks.
//
// The Runner is stateless except for the logger: it doesn't store pipeline
// results. Forests are not safe for concurrent mutation, so callers sharing a
// Runner across goroutines must not share loaded forests.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. A nil logger selects log.Default().
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute runs the complete load → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	result, err := r.Load(ctx, opts)
	if err != nil {
		return nil, err
	}

	renderStart := time.Now()
	artifacts, err := r.Render(ctx, result.Roots, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	return result, nil
}

// Load decodes the document at opts.Path and selects the subtree at
// opts.Root, if set.
func (r *Runner) Load(ctx context.Context, opts Options) (result *Result, err error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	start := time.Now()
	observability.Pipeline().OnLoadStart(ctx, opts.Path)
	defer func() {
		nodes := 0
		if result != nil {
			nodes = result.Stats.NodeCount
		}
		observability.Pipeline().OnLoadComplete(ctx, opts.Path, nodes, time.Since(start), err)
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	forest, err := treeio.ImportFile(opts.Path, treeio.Options{AutoID: opts.AutoID})
	if err != nil {
		return nil, classifyLoad(opts.Path, err)
	}
	if err := validateFeatureNames(forest); err != nil {
		return nil, err
	}

	roots := forest.Roots()
	if opts.Root != nil {
		n, ok := treeio.Resolve(forest, opts.Root)
		if !ok {
			return nil, errors.New(errors.ErrCodeNotFound, "no node at path %s", treeio.FormatPath(opts.Root))
		}
		roots = []Node{n}
	}

	result = &Result{Forest: forest, Roots: roots}
	result.Stats.NodeCount, result.Stats.EdgeCount = Count(roots)
	result.Stats.LoadTime = time.Since(start)

	opts.Logger.Debug("loaded document",
		"path", opts.Path,
		"roots", len(roots),
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"duration", result.Stats.LoadTime)
	return result, nil
}

// validateFeatureNames rejects documents whose feature names could not be
// addressed from a query or the command line.
func validateFeatureNames(f *treeio.Forest) error {
	for _, root := range f.Roots() {
		for n := range tree.Descendants(root) {
			for _, name := range n.FeatureNames() {
				if err := errors.ValidateFeatureName(name); err != nil {
					return errors.Wrap(errors.ErrCodeInvalidInput, err, "node %s", treeio.FormatPath(treeio.PathOf(n)))
				}
			}
		}
	}
	return nil
}

// Query returns the nodes below roots that match the expression src, in
// pre-order per root.
func (r *Runner) Query(ctx context.Context, roots []Node, src string) (matches []Node, err error) {
	start := time.Now()
	defer func() {
		observability.Pipeline().OnQuery(ctx, src, len(matches), time.Since(start), err)
	}()

	q, err := query.Compile(src)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidQuery, err, "compile %q", src)
	}
	for _, root := range roots {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		found, err := query.Select(root, q)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidQuery, err, "evaluate %q", src)
		}
		matches = append(matches, found...)
	}

	r.Logger.Debug("evaluated query", "expr", src, "matches", len(matches), "duration", time.Since(start))
	return matches, nil
}

// Count returns the number of nodes and stored edges in the subtrees below
// roots.
func Count(roots []Node) (nodes, edges int) {
	for _, root := range roots {
		for n := range tree.Descendants(root) {
			nodes++
			edges += len(n.Edges())
		}
	}
	return nodes, edges
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func classifyLoad(path string, err error) error {
	switch {
	case stderrors.Is(err, fs.ErrNotExist):
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "load %s", path)
	case stderrors.Is(err, treeio.ErrMissingID),
		stderrors.Is(err, treeio.ErrUnresolvedPath):
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "load %s", path)
	case errors.FromTree(err) != errors.ErrCodeInternal:
		return errors.Wrap(errors.FromTree(err), err, "load %s", path)
	}
	if _, ferr := treeio.FormatFromPath(path); ferr != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "load %s", path)
	}
	return errors.Wrap(errors.ErrCodeInvalidInput, err, "load %s", path)
}
