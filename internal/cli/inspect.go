package cli

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridstack/pkg/errors"
	"github.com/matzehuels/gridstack/pkg/grid"
	layoutio "github.com/matzehuels/gridstack/pkg/io"
	"github.com/matzehuels/gridstack/pkg/render"
	"github.com/matzehuels/gridstack/pkg/responsive"
)

// showCommand creates the show command.
func (c *CLI) showCommand() *cobra.Command {
	var (
		cols       int
		table      bool
		breakpoint string
	)

	cmd := &cobra.Command{
		Use:   "show [layout]",
		Short: "Print a layout as a character grid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := c.openWorkspace(args[0], cols)
			if err != nil {
				return err
			}
			l, n := w.eng.Layout(), w.cols()
			title := filepath.Base(args[0])
			if breakpoint != "" {
				if l, n, err = w.breakpointLayout(breakpoint); err != nil {
					return err
				}
				title += " @ " + breakpoint
			}

			printLine(StyleTitle.Render(title))
			printNewline()
			printBlock(render.Terminal(l, n))
			printNewline()
			if table {
				printBlock(render.Table(l))
				printNewline()
			}
			printLayoutStats(len(l), grid.FiniteBottom(l), n, 0)
			return nil
		},
	}

	cmd.Flags().IntVar(&cols, "cols", 0, "column count (default: from the file or config)")
	cmd.Flags().BoolVarP(&table, "table", "t", false, "also list item geometry")
	cmd.Flags().StringVarP(&breakpoint, "breakpoint", "b", "", "show the stored layout for this breakpoint")
	return cmd
}

// breakpointLayout returns the stored layout for bp and the columns it uses:
// the configured breakpoint's, or the engine's when bp is not configured.
func (w *workspace) breakpointLayout(bp string) (grid.Layout, int, error) {
	l, ok := w.doc.Layouts[bp]
	if !ok {
		return nil, 0, errors.New(errors.ErrCodeNotFound, "%s has no layout for breakpoint %q", w.path, bp)
	}
	cols, err := w.cfg.ResponsiveBreakpoints().Cols(bp)
	if err != nil {
		cols = w.cols()
	}
	return l, cols, nil
}

// findCommand creates the find command.
func (c *CLI) findCommand() *cobra.Command {
	var cols int

	cmd := &cobra.Command{
		Use:   "find [layout] [w] [h]",
		Short: "Find the first empty slot that fits a w by h item",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			wh, err := intArgs(args[1:], "w", "h")
			if err != nil {
				return err
			}
			w, err := c.openWorkspace(args[0], cols)
			if err != nil {
				return err
			}

			l := w.eng.Layout()
			x, y := grid.FindEmptyPosition(l, wh[0], wh[1], w.cols())
			preview := append(l, grid.Item{ID: "+", X: x, Y: y, W: wh[0], H: wh[1]})
			printBlock(render.Terminal(preview, w.cols(), render.WithCursor("+")))
			printNewline()
			printKeyValue("x", strconv.Itoa(x))
			printKeyValue("y", strconv.Itoa(y))
			return nil
		},
	}

	cmd.Flags().IntVar(&cols, "cols", 0, "column count (default: from the file or config)")
	return cmd
}

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	var cols int

	cmd := &cobra.Command{
		Use:   "validate [layout]",
		Short: "Check a layout file for structural and placement problems",
		Long: `Validate a layout file. Structural problems (bad sizes, duplicate ids,
min/max conflicts) are reported first; a structurally sound layout is then
checked for items outside the grid and, unless the compactor allows overlap,
for overlapping items.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := c.openWorkspace(args[0], cols)
			if err != nil {
				return reportIssues(err)
			}
			if err := placementIssues(w.doc.Layout, w.cols(), w.eng.Options().Compactor.AllowOverlap); err != nil {
				return reportIssues(fmt.Errorf("%s: %w", args[0], err))
			}
			printSuccess("%s is valid", args[0])
			printLayoutStats(len(w.doc.Layout), grid.FiniteBottom(w.doc.Layout), w.cols(), 0)
			return nil
		},
	}

	cmd.Flags().IntVar(&cols, "cols", 0, "column count (default: from the file or config)")
	return cmd
}

// placementIssues checks a stored layout against the grid it will run on.
func placementIssues(l grid.Layout, cols int, allowOverlap bool) error {
	v := errors.NewValidator(errors.ErrCodeInvalidLayout)
	v.Merge("", grid.CheckCommitted(l, allowOverlap))
	for i, it := range l {
		v.Check(it.Right() <= cols, fmt.Sprintf("layout[%d]", i), "%q extends past column %d", it.ID, cols)
	}
	return v.Err()
}

// reportIssues prints each validation issue in err and returns a summary.
// Errors without issues are returned unchanged.
func reportIssues(err error) error {
	issues := errors.Issues(err)
	if len(issues) == 0 {
		return err
	}
	for _, is := range issues {
		printError("%s", is)
	}
	return errors.New(errors.GetCode(err), "%d issue(s)", len(issues))
}

// breakpointCommand creates the breakpoint command.
func (c *CLI) breakpointCommand() *cobra.Command {
	var (
		last  string
		write bool
	)

	cmd := &cobra.Command{
		Use:   "breakpoint [width] [layout]",
		Short: "Show the breakpoint active at a container width",
		Long: `Print the configured breakpoint active at width.

With a layout file, also resolve that breakpoint's layout. A missing layout
is handled by the configured strategy (derive, warn, error or empty); a
derived layout is saved into the file with --write. A file without
per-breakpoint layouts is treated as the largest breakpoint's layout.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			width, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return errors.New(errors.ErrCodeInvalidInput, "width must be a number, got %q", args[0])
			}
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			r, err := cfg.Resolver(c.Logger)
			if err != nil {
				return err
			}

			bps := r.Breakpoints()
			active := r.ForWidth(width)
			printBreakpoints(bps, active)
			if len(args) == 1 {
				return nil
			}

			path := args[1]
			doc, err := layoutio.Import(path)
			if err != nil {
				return err
			}
			largest := bps[len(bps)-1].Name
			if last == "" {
				last = largest
			}
			layouts := responsive.Layouts(doc.Layouts)
			if len(layouts) == 0 {
				layouts = responsive.Layouts{largest: doc.Layout}
			}

			l, err := r.Resolve(layouts, active, last)
			if err != nil {
				return err
			}
			cols, _ := bps.Cols(active)
			printNewline()
			printBlock(render.Terminal(l, cols))
			printNewline()

			_, stored := layouts[active]
			if !write || stored {
				return nil
			}
			if doc.Layouts == nil {
				doc.Layouts = map[string]grid.Layout{}
			}
			if len(doc.Layouts) == 0 {
				doc.Layouts[largest] = doc.Layout
			}
			doc.Layouts[active] = l
			if err := layoutio.Export(path, doc); err != nil {
				return err
			}
			printSuccess("Stored derived %s layout", active)
			printFile(path)
			return nil
		},
	}

	cmd.Flags().StringVar(&last, "last", "", "breakpoint the layout was last edited at (default: largest)")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "store a derived layout in the file")
	return cmd
}

func printBreakpoints(bps responsive.Breakpoints, active string) {
	for _, bp := range bps {
		line := fmt.Sprintf("%-6s ≥%-6v %d cols", bp.Name, bp.Width, bp.Cols)
		if bp.Name == active {
			printLine(StyleHighlight.Render(iconArrow + " " + line))
			continue
		}
		printLine(StyleDim.Render("  " + line))
	}
}
