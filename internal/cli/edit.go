package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridstack/pkg/engine"
	"github.com/matzehuels/gridstack/pkg/geometry"
	"github.com/matzehuels/gridstack/pkg/grid"
	"github.com/matzehuels/gridstack/pkg/grid/compact"
)

// compactCommand creates the compact command.
func (c *CLI) compactCommand() *cobra.Command {
	var (
		f    editFlags
		name string
	)

	cmd := &cobra.Command{
		Use:   "compact [layout]",
		Short: "Settle every item toward the top (or left) of the grid",
		Long: `Compact a layout file with the configured compactor, or the one named by
--compactor. Available compactors: ` + strings.Join(compact.Names(), ", ") + ".",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runEdit(args[0], f, func(w *workspace) error {
				var ec engine.Compact
				if name != "" {
					comp, err := compact.ByName(name, compact.WithLogger(c.Logger))
					if err != nil {
						return err
					}
					ec.Compactor = &comp
				}
				_, err := w.eng.Dispatch(ec)
				return err
			})
		},
	}

	addEditFlags(cmd, &f)
	cmd.Flags().StringVar(&name, "compactor", "", "compactor to use instead of the configured one")
	return cmd
}

// moveCommand creates the move command.
func (c *CLI) moveCommand() *cobra.Command {
	var (
		f         editFlags
		noCompact bool
		system    bool
	)

	cmd := &cobra.Command{
		Use:   "move [layout] [id] [x] [y]",
		Short: "Move an item and push colliding items out of the way",
		Long: `Move an item to grid cell (x, y). Items in the way are pushed along the
compaction axis, then the layout is compacted.

With --no-compact only the collisions are resolved, the way a drag preview
behaves before the item is dropped.`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			xy, err := intArgs(args[2:], "x", "y")
			if err != nil {
				return err
			}
			return c.runEdit(args[0], f, func(w *workspace) error {
				if err := w.mustItem(args[1]); err != nil {
					return err
				}
				var ec engine.Command = engine.Move{ID: args[1], X: xy[0], Y: xy[1], IsUserAction: !system}
				if noCompact {
					ec = engine.ResolveCollisions{ID: args[1], X: xy[0], Y: xy[1], IsUserAction: !system}
				}
				_, err := w.eng.Dispatch(ec)
				return err
			})
		},
	}

	addEditFlags(cmd, &f)
	cmd.Flags().BoolVar(&noCompact, "no-compact", false, "resolve collisions without compacting")
	cmd.Flags().BoolVar(&system, "system", false, "treat the move as programmatic (no swap-upward attempt)")
	return cmd
}

// resizeCommand creates the resize command.
func (c *CLI) resizeCommand() *cobra.Command {
	var (
		f      editFlags
		handle string
	)

	cmd := &cobra.Command{
		Use:   "resize [layout] [id] [w] [h]",
		Short: "Resize an item from one of its handles",
		Long: `Resize an item to w by h cells. The handle (n, s, e, w, ne, nw, se, sw)
decides which edge moves: west and north handles keep the opposite edge
anchored and shift the item's origin.`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			wh, err := intArgs(args[2:], "w", "h")
			if err != nil {
				return err
			}
			h, err := geometry.ParseHandle(handle)
			if err != nil {
				return err
			}
			return c.runEdit(args[0], f, func(w *workspace) error {
				if err := w.mustItem(args[1]); err != nil {
					return err
				}
				_, err := w.eng.Resize(args[1], wh[0], wh[1], h)
				return err
			})
		},
	}

	addEditFlags(cmd, &f)
	cmd.Flags().StringVar(&handle, "handle", string(geometry.HandleSE), "resize handle")
	return cmd
}

// reflowCommand creates the reflow command.
func (c *CLI) reflowCommand() *cobra.Command {
	var f editFlags

	cmd := &cobra.Command{
		Use:   "reflow [layout]",
		Short: "Fit a layout to the grid and compact it",
		Long: `Pull every item back inside the grid's columns, then compact.

Use --cols to reflow a layout onto a different column count.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runEdit(args[0], f, func(w *workspace) error {
				_, err := w.eng.Reflow(nil)
				return err
			})
		},
	}

	addEditFlags(cmd, &f)
	return cmd
}

// addCommand creates the add command.
func (c *CLI) addCommand() *cobra.Command {
	var (
		f    editFlags
		item grid.Item
	)

	cmd := &cobra.Command{
		Use:   "add [layout]",
		Short: "Add an item to a layout",
		Long: `Add a w by h item. Without --x and --y the item goes to the first empty
slot that fits; without --id it gets a random id.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var added []string
			err := c.runEdit(args[0], f, func(w *workspace) error {
				before := w.eng.Layout()
				if _, err := w.eng.Add(item); err != nil {
					return err
				}
				added = newIDs(before, w.eng.Layout())
				return nil
			})
			if err != nil {
				return err
			}
			for _, id := range added {
				printKeyValue("id", id)
			}
			return nil
		},
	}

	addEditFlags(cmd, &f)
	cmd.Flags().StringVar(&item.ID, "id", "", "item id (default: random)")
	cmd.Flags().IntVar(&item.X, "x", -1, "column (default: first empty slot)")
	cmd.Flags().IntVar(&item.Y, "y", -1, "row (default: first empty slot)")
	cmd.Flags().IntVar(&item.W, "w", 1, "width in columns")
	cmd.Flags().IntVar(&item.H, "h", 1, "height in rows")
	cmd.Flags().BoolVar(&item.Static, "static", false, "pin the item in place")
	return cmd
}

// removeCommand creates the remove command.
func (c *CLI) removeCommand() *cobra.Command {
	var f editFlags

	cmd := &cobra.Command{
		Use:     "remove [layout] [id]",
		Aliases: []string{"rm"},
		Short:   "Remove an item and close the gap",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runEdit(args[0], f, func(w *workspace) error {
				if err := w.mustItem(args[1]); err != nil {
					return err
				}
				_, err := w.eng.Remove(args[1])
				return err
			})
		},
	}

	addEditFlags(cmd, &f)
	return cmd
}

func newIDs(before, after grid.Layout) []string {
	var out []string
	for _, it := range after {
		if before.Index(it.ID) < 0 {
			out = append(out, it.ID)
		}
	}
	return out
}
