package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/birchtree/birch/pkg/buildinfo"
	"github.com/birchtree/birch/pkg/errors"
	"github.com/birchtree/birch/pkg/observability"
	"github.com/birchtree/birch/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "birch"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: DefaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Birch inspects and renders annotated trees",
		Long: `Birch is a CLI tool for working with annotated trees: node-labelled
hierarchies whose nodes carry an id, a value, named features and edges to
other nodes, such as parse trees or dependency structures.

Trees are read from JSON, YAML or TOML documents and can be printed,
searched, queried, edited and rendered as diagrams.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			observability.SetPipelineHooks(LogHooks{Logger: c.Logger})
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/birch/config.toml)")

	// Register all subcommands
	root.AddCommand(c.showCommand())
	root.AddCommand(c.statsCommand())
	root.AddCommand(c.findCommand())
	root.AddCommand(c.queryCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.detachCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file named by --config, or the default one if
// it exists. A missing default file is not an error.
func (c *CLI) loadConfig() error {
	path := c.configPath
	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return nil
		}
		path = filepath.Join(dir, configFileName)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		if !explicit && errors.Is(err, errors.ErrCodeFileNotFound) {
			return nil
		}
		return err
	}
	c.Config = cfg
	c.Logger.Debug("loaded config", "path", path)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(c.Logger)
}

// loadOptions builds pipeline load options from the input path, the
// --root flag and the config file.
func (c *CLI) loadOptions(input, root string) (pipeline.Options, error) {
	opts := pipeline.Options{
		Path:   input,
		AutoID: c.Config.AutoID,
		Logger: c.Logger,
	}
	if root != "" {
		path, err := errors.ParsePath(root)
		if err != nil {
			return opts, err
		}
		opts.Root = path
	}
	return opts, nil
}

// =============================================================================
// Paths
// =============================================================================

// configDir returns the config directory using XDG standard (~/.config/birch/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
// An empty string yields the configured default format.
func parseFormats(s, fallback string) []string {
	if s == "" {
		if fallback == "" {
			fallback = pipeline.DefaultFormat
		}
		return []string{fallback}
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
