package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridstack/pkg/config"
	"github.com/matzehuels/gridstack/pkg/engine"
	"github.com/matzehuels/gridstack/pkg/errors"
	"github.com/matzehuels/gridstack/pkg/grid"
	layoutio "github.com/matzehuels/gridstack/pkg/io"
	"github.com/matzehuels/gridstack/pkg/render"
)

// workspace is a layout file loaded into an engine.
type workspace struct {
	path string
	doc  layoutio.Document
	cfg  config.Config
	eng  *engine.Engine
}

// openWorkspace loads path and builds an engine from the config. A positive
// cols overrides both the config and the file.
func (c *CLI) openWorkspace(path string, cols int) (*workspace, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	doc, err := layoutio.Import(path)
	if err != nil {
		return nil, err
	}

	opts, err := cfg.EngineOptions(c.Logger)
	if err != nil {
		return nil, err
	}
	if doc.Cols > 0 {
		opts.Cols = doc.Cols
	}
	if cols > 0 {
		opts.Cols = cols
	}
	opts.Layout = doc.Layout

	eng, err := engine.New(opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &workspace{path: path, doc: doc, cfg: cfg, eng: eng}, nil
}

// cols returns the column count the engine runs with.
func (w *workspace) cols() int {
	return w.eng.Options().Cols
}

// mustItem returns an error naming id when the layout has no such item.
func (w *workspace) mustItem(id string) error {
	if _, ok := w.eng.Item(id); !ok {
		return errors.New(errors.ErrCodeNotFound, "no item %q in %s", id, w.path)
	}
	return nil
}

// save writes the engine layout to output, or back to the input file.
func (w *workspace) save(output string) (string, error) {
	if output == "" {
		output = w.path
	}
	doc := w.doc
	doc.Layout = w.eng.Layout()
	if doc.Cols > 0 || w.cols() != w.cfg.Grid.Cols {
		doc.Cols = w.cols()
	}
	if err := layoutio.Export(output, doc); err != nil {
		return "", err
	}
	return output, nil
}

// =============================================================================
// Editing
// =============================================================================

// editFlags are shared by every command that changes a layout file.
type editFlags struct {
	output string
	cols   int
	dryRun bool
	quiet  bool
}

func addEditFlags(cmd *cobra.Command, f *editFlags) {
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (default: overwrite the input)")
	cmd.Flags().IntVar(&f.cols, "cols", 0, "column count (default: from the file or config)")
	cmd.Flags().BoolVarP(&f.dryRun, "dry-run", "n", false, "print the result without writing it")
	cmd.Flags().BoolVarP(&f.quiet, "quiet", "q", false, "do not print the layout preview")
}

// runEdit opens path, applies fn and writes the result.
func (c *CLI) runEdit(path string, f editFlags, fn func(w *workspace) error) error {
	w, err := c.openWorkspace(path, f.cols)
	if err != nil {
		return err
	}
	before := w.eng.Layout()
	if err := fn(w); err != nil {
		return err
	}
	after := w.eng.Layout()
	changed := changedItems(before, after)

	if !f.quiet {
		printBlock(render.Terminal(after, w.cols()))
		printNewline()
	}
	if len(changed) == 0 {
		printWarning("Layout unchanged")
	}
	if f.dryRun {
		printInfo("Dry run, nothing written")
		printLayoutStats(len(after), grid.FiniteBottom(after), w.cols(), len(changed))
		return nil
	}

	out, err := w.save(f.output)
	if err != nil {
		return err
	}
	printSuccess("Layout written")
	printFile(out)
	printLayoutStats(len(after), grid.FiniteBottom(after), w.cols(), len(changed))
	return nil
}

// changedItems returns the ids whose geometry differs between before and
// after, including added and removed items.
func changedItems(before, after grid.Layout) []string {
	var out []string
	for _, it := range after {
		prev, ok := before.Item(it.ID)
		if !ok || prev.X != it.X || prev.Y != it.Y || prev.W != it.W || prev.H != it.H {
			out = append(out, it.ID)
		}
	}
	for _, it := range before {
		if after.Index(it.ID) < 0 {
			out = append(out, it.ID)
		}
	}
	return out
}

// intArgs parses positional integer arguments, naming the first bad one.
func intArgs(args []string, names ...string) ([]int, error) {
	out := make([]int, len(names))
	for i, name := range names {
		v, err := strconv.Atoi(args[i])
		if err != nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "%s must be an integer, got %q", name, args[i])
		}
		out[i] = v
	}
	return out, nil
}
