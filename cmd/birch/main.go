package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/birchtree/birch/internal/cli"
	birchErrors "github.com/birchtree/birch/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130) // Standard shell convention for SIGINT
		}
		fmt.Fprintln(os.Stderr, "Error:", birchErrors.UserMessage(err))
		os.Exit(exitCode(err))
	}
}

// exitCode maps error classes to process exit codes: 2 for bad input,
// 1 for everything else.
func exitCode(err error) int {
	switch birchErrors.GetCode(err) {
	case birchErrors.ErrCodeInvalidInput, birchErrors.ErrCodeInvalidFormat,
		birchErrors.ErrCodeInvalidPath, birchErrors.ErrCodeInvalidArgument,
		birchErrors.ErrCodeInvalidQuery, birchErrors.ErrCodeFileNotFound:
		return 2
	}
	return 1
}

func run(ctx context.Context) error {
	var verbose bool

	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	root.SilenceErrors = true

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	// Set the log level before the root's own pre-run so config loading is logged.
	originalPreRun := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		level := cli.LogInfo
		if verbose {
			level = cli.LogDebug
		}
		c.SetLogLevel(level)

		if originalPreRun != nil {
			return originalPreRun(cmd, args)
		}
		return nil
	}

	return root.ExecuteContext(ctx)
}
