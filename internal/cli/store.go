package cli

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridstack/pkg/errors"
	layoutio "github.com/matzehuels/gridstack/pkg/io"
	"github.com/matzehuels/gridstack/pkg/store"
)

// storeCommand creates the snapshot store command.
func (c *CLI) storeCommand() *cobra.Command {
	var backend string

	cmd := &cobra.Command{
		Use:   "store",
		Short: "Save and load named layout snapshots",
		Long: `Manage named layout snapshots in the configured store.

The backend is set by [store] in the config: null, memory, file (default),
redis or mongo. Use --backend to override it for one command.`,
	}

	cmd.PersistentFlags().StringVar(&backend, "backend", "", "store backend (default: from config)")
	cmd.AddCommand(c.storeSaveCommand(&backend))
	cmd.AddCommand(c.storeLoadCommand(&backend))
	cmd.AddCommand(c.storeListCommand(&backend))
	cmd.AddCommand(c.storeDeleteCommand(&backend))
	return cmd
}

// openStore opens the configured store, with an optional backend override.
func (c *CLI) openStore(ctx context.Context, backend string) (store.Store, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	opts := cfg.StoreOptions()
	if backend != "" {
		opts.Backend = backend
	}

	spin := newSpinnerWithContext(ctx, "Connecting to "+opts.Backend+" store...")
	spin.Start()
	s, err := store.Open(ctx, opts)
	spin.Stop()
	if err != nil {
		return nil, err
	}
	loggerFromContext(ctx).Debug("opened store", "backend", opts.Backend, "scope", opts.Scope)
	return s, nil
}

// storeSaveCommand creates the "store save" subcommand.
func (c *CLI) storeSaveCommand(backend *string) *cobra.Command {
	return &cobra.Command{
		Use:   "save [layout] [name]",
		Short: "Save a layout file as a named snapshot",
		Long:  `Save a layout file under name. The name defaults to the file's base name.`,
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			doc, err := layoutio.Import(args[0])
			if err != nil {
				return err
			}
			name := snapshotName(args)

			s, err := c.openStore(ctx, *backend)
			if err != nil {
				return err
			}
			defer s.Close()

			snap := store.Snapshot{Name: name, Cols: doc.Cols, Layout: doc.Layout, Layouts: doc.Layouts}
			if err := s.Save(ctx, snap); err != nil {
				return err
			}
			printSuccess("Saved snapshot %s", StyleHighlight.Render(name))
			printDetail("%d items, %d breakpoint layouts", len(doc.Layout), len(doc.Layouts))
			printNewline()
			printNextStep("Restore", appName+" store load "+name+" -o "+args[0])
			return nil
		},
	}
}

func snapshotName(args []string) string {
	if len(args) > 1 {
		return args[1]
	}
	base := filepath.Base(args[0])
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// storeLoadCommand creates the "store load" subcommand.
func (c *CLI) storeLoadCommand(backend *string) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "load [name]",
		Short: "Write a snapshot to a layout file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := c.openStore(ctx, *backend)
			if err != nil {
				return err
			}
			defer s.Close()

			snap, ok, err := s.Load(ctx, args[0])
			if err != nil {
				return err
			}
			if !ok {
				return errors.New(errors.ErrCodeNotFound, "no snapshot named %q", args[0])
			}

			if output == "" {
				output = args[0] + ".json"
			}
			doc := layoutio.Document{Cols: snap.Cols, Layout: snap.Layout, Layouts: snap.Layouts}
			if err := layoutio.Export(output, doc); err != nil {
				return err
			}
			printSuccess("Loaded snapshot %s", StyleHighlight.Render(snap.Name))
			printDetail("saved %s", snap.SavedAt.Local().Format("2006-01-02 15:04:05"))
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <name>.json)")
	return cmd
}

// storeListCommand creates the "store list" subcommand.
func (c *CLI) storeListCommand(backend *string) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List snapshot names",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := c.openStore(ctx, *backend)
			if err != nil {
				return err
			}
			defer s.Close()

			names, err := s.List(ctx)
			if err != nil {
				return err
			}
			if len(names) == 0 {
				printInfo("No snapshots")
				return nil
			}
			for _, name := range names {
				printFile(name)
			}
			return nil
		},
	}
}

// storeDeleteCommand creates the "store delete" subcommand.
func (c *CLI) storeDeleteCommand(backend *string) *cobra.Command {
	return &cobra.Command{
		Use:     "delete [name]...",
		Aliases: []string{"rm"},
		Short:   "Delete snapshots",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := c.openStore(ctx, *backend)
			if err != nil {
				return err
			}
			defer s.Close()

			for _, name := range args {
				if err := s.Delete(ctx, name); err != nil {
					return err
				}
			}
			printSuccess("Deleted %d snapshot(s)", len(args))
			return nil
		},
	}
}
