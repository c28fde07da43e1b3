// Package pipeline provides the load → select → render pipeline behind the
// birch CLI.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Decode a tree document (JSON, YAML or TOML) into a forest and
//     optionally narrow it to the subtree at an id path
//  2. Query: Select nodes with an expression (optional)
//  3. Render: Generate output in various formats (txt, dot, svg, png, json,
//     yaml, toml)
//
// Each stage can be run independently or as part of the complete pipeline,
// and each reports to the hooks registered in
// [github.com/birchtree/birch/pkg/observability].
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{
//	    Path:    "sentence.yaml",
//	    Formats: []string{"svg", "txt"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	loaded, err := runner.Load(ctx, opts)
//	matches, err := runner.Query(ctx, loaded.Roots, "leaf")
//	artifacts, err := runner.Render(ctx, matches, opts)
//
// Errors returned by the Runner are [github.com/birchtree/birch/pkg/errors.Error]
// values carrying a code that classifies the failure.
package pipeline

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/birchtree/birch/pkg/errors"
	treeio "github.com/birchtree/birch/pkg/io"
	"github.com/birchtree/birch/pkg/render/text"
	"github.com/birchtree/birch/pkg/tree"
)

// Node is the node type the pipeline operates on.
type Node = tree.Node[string, any]

// Format constants for output formats.
const (
	FormatText = "txt"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = treeio.FormatJSON
	FormatYAML = treeio.FormatYAML
	FormatTOML = treeio.FormatTOML
)

// DefaultFormat is used when no format is requested.
const DefaultFormat = FormatText

// Formats lists the supported output formats.
var Formats = []string{FormatText, FormatDOT, FormatSVG, FormatPNG, FormatJSON, FormatYAML, FormatTOML}

// Options contains all configuration for the pipeline.
type Options struct {
	// Load options
	Path   string   // document to load; the format comes from the extension
	Root   []string // optional id path selecting a single subtree
	AutoID bool     // assign UUIDs to nodes without an id

	// Render options
	Formats    []string
	Detailed   bool // nodelink labels show value and features
	Links      bool // draw stored edges
	Features   bool // text labels show features
	Enumerator text.Enumerator

	// Runtime options
	Logger *log.Logger
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Forest is the complete decoded forest.
	Forest *treeio.Forest

	// Roots are the selected subtrees: the forest roots, or the node at
	// Options.Root.
	Roots []Node

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	LoadTime   time.Duration
	RenderTime time.Duration
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	return errors.ValidateFormat(format, Formats)
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateForLoad checks required fields for loading.
func (o *Options) ValidateForLoad() error {
	if o.Path == "" {
		return errors.New(errors.ErrCodeInvalidInput, "document path is required")
	}
	if o.Root != nil {
		if err := errors.ValidatePath(o.Root); err != nil {
			return err
		}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.Enumerator == "" {
		o.Enumerator = text.EnumeratorDefault
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if _, err := text.ParseEnumerator(string(o.Enumerator)); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidArgument, err, "enumerator")
	}
	return nil
}

// NeedsDOT reports whether any requested format is produced from DOT source.
func (o *Options) NeedsDOT() bool {
	return slices.ContainsFunc(o.Formats, func(f string) bool {
		return f == FormatDOT || f == FormatSVG || f == FormatPNG
	})
}
