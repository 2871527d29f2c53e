package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridstack/pkg/buildinfo"
	"github.com/matzehuels/gridstack/pkg/config"
	"github.com/matzehuels/gridstack/pkg/observability"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "gridstack"
)

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

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Gridstack edits, compacts and previews grid layouts",
		Long: `Gridstack is a CLI for grid layouts: items placed on a fixed number of
columns that settle toward the top (or left) as they are moved, resized,
added and removed.

Layout files are JSON or TOML. Grid settings come from gridstack.toml in the
working directory, or the file named by --config.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			observability.SetEngineHooks(logHooks{c.Logger})
			observability.SetStoreHooks(logHooks{c.Logger})
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file (default: ./"+config.FileName+" when present)")

	// Editing
	root.AddCommand(c.compactCommand())
	root.AddCommand(c.moveCommand())
	root.AddCommand(c.resizeCommand())
	root.AddCommand(c.reflowCommand())
	root.AddCommand(c.addCommand())
	root.AddCommand(c.removeCommand())
	root.AddCommand(c.applyCommand())
	root.AddCommand(c.playCommand())

	// Inspection
	root.AddCommand(c.showCommand())
	root.AddCommand(c.findCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.breakpointCommand())
	root.AddCommand(c.renderCommand())

	// Persistence and housekeeping
	root.AddCommand(c.storeCommand())
	root.AddCommand(c.versionCommand())
	root.AddCommand(c.completionCommand())

	setLayoutCompletion(root)
	return root
}

// setLayoutCompletion completes layout file arguments on every command that
// takes one first.
func setLayoutCompletion(cmd *cobra.Command) {
	for _, sub := range cmd.Commands() {
		if strings.Contains(sub.Use, " [layout]") && sub.ValidArgsFunction == nil {
			sub.ValidArgsFunction = completeLayoutFiles
		}
		setLayoutCompletion(sub)
	}
}

// =============================================================================
// Configuration
// =============================================================================

// loadConfig reads the --config file, or ./gridstack.toml when it exists.
// Without either, the built-in defaults apply.
func (c *CLI) loadConfig() (config.Config, error) {
	path := c.configPath
	if path == "" {
		if _, err := os.Stat(config.FileName); errors.Is(err, fs.ErrNotExist) {
			c.Logger.Debug("no config file, using defaults")
			return config.Default(), nil
		}
		path = config.FileName
	}

	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	c.Logger.Debug("loaded config", "path", path)
	return cfg, nil
}
