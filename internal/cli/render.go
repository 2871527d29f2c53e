package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridstack/pkg/grid"
	"github.com/matzehuels/gridstack/pkg/render"
)

// renderOpts holds the flags of the render command.
type renderOpts struct {
	output     string
	cols       int
	width      float64
	breakpoint string
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [layout]",
		Short: "Render a layout to SVG",
		Long: `Render a layout to SVG. Every item is drawn at the pixel box the grid
geometry gives it (column width, row height, gap and padding from the
config), so the picture matches what a browser would paint.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: <input>.svg)")
	cmd.Flags().IntVar(&opts.cols, "cols", 0, "column count (default: from the file or config)")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "container width in pixels (default: from config, else 1200)")
	cmd.Flags().StringVarP(&opts.breakpoint, "breakpoint", "b", "", "render the stored layout for this breakpoint")
	return cmd
}

// runRender loads the layout, renders it and writes the SVG.
func (c *CLI) runRender(ctx context.Context, input string, opts renderOpts) error {
	w, err := c.openWorkspace(input, opts.cols)
	if err != nil {
		return err
	}

	eo := w.eng.Options()
	l := w.eng.Layout()
	if opts.breakpoint != "" {
		if l, eo.Cols, err = w.breakpointLayout(opts.breakpoint); err != nil {
			return err
		}
	}
	params := eo.Params()
	if opts.width > 0 {
		params.ContainerWidth = opts.width
	}

	prog := newProgress(loggerFromContext(ctx))
	spin := newSpinnerWithContext(ctx, "Rendering SVG...")
	spin.Start()

	svg, err := render.SVG(ctx, l, params)
	if err != nil {
		spin.StopWithError("Render failed")
		return fmt.Errorf("render %s: %w", input, err)
	}
	spin.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	output := opts.output
	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".svg"
	}
	if err := os.WriteFile(output, svg, 0644); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}
	prog.done("Rendered " + filepath.Base(output))

	printSuccess("Render complete")
	printFile(output)
	printLayoutStats(len(l), grid.FiniteBottom(l), eo.Cols, 0)
	printNewline()
	printNextStep("Edit interactively", appName+" play "+input)
	return nil
}
