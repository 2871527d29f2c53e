// Command gridstack edits, compacts and previews grid layouts.
package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridstack/internal/cli"
	"github.com/matzehuels/gridstack/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		if stderrors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}

func run(ctx context.Context) error {
	var verbose bool

	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	root.SilenceErrors = true
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	preRun := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose {
			c.SetLogLevel(cli.LogDebug)
		}
		if preRun != nil {
			return preRun(cmd, args)
		}
		return nil
	}

	return root.ExecuteContext(ctx)
}

// exitCode maps invalid input to 2 and everything else to 1.
func exitCode(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidConfig, errors.ErrCodeInvalidLayout, errors.ErrCodeInvalidCommand:
		return 2
	}
	return 1
}
