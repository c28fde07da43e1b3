// Package cli implements the birch command-line interface.
//
// This package provides commands for inspecting tree documents, selecting
// nodes by id or expression, editing trees and rendering them as terminal
// trees or Graphviz diagrams. The CLI is built using cobra and supports
// verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - show: Print a tree with lipgloss
//   - stats: Summarize size, height, leaves and edges per root
//   - find, query: Locate nodes by id or by expression
//   - render: Generate txt, dot, svg, png, json, yaml or toml outputs
//   - detach: Remove a subtree and write the remaining forest
//   - browse: Explore a tree interactively
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// reports pipeline events registered through package observability.
//
// # Configuration
//
// Defaults are read from $XDG_CONFIG_HOME/birch/config.toml, or the file
// given with --config. See [Config].
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/birchtree/birch/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Loaded 42 nodes (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// ctxKey is the type for context keys used in this package.
type ctxKey int

// loggerKey is the context key for storing a logger.
const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx.
// If no logger is attached, it returns log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// LogHooks reports pipeline events to a logger at debug level.
type LogHooks struct {
	Logger *log.Logger
}

var _ observability.PipelineHooks = LogHooks{}

func (h LogHooks) OnLoadStart(_ context.Context, path string) {
	h.Logger.Debug("load started", "path", path)
}

func (h LogHooks) OnLoadComplete(_ context.Context, path string, nodeCount int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("load failed", "path", path, "err", err)
		return
	}
	h.Logger.Debug("load complete", "path", path, "nodes", nodeCount, "duration", d)
}

func (h LogHooks) OnQuery(_ context.Context, expr string, matches int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("query failed", "expr", expr, "err", err)
		return
	}
	h.Logger.Debug("query complete", "expr", expr, "matches", matches, "duration", d)
}

func (h LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.Logger.Debug("render started", "formats", formats)
}

func (h LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("render failed", "formats", formats, "err", err)
		return
	}
	h.Logger.Debug("render complete", "formats", formats, "duration", d)
}
