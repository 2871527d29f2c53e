package cli

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridstack/pkg/engine"
	"github.com/matzehuels/gridstack/pkg/errors"
	"github.com/matzehuels/gridstack/pkg/geometry"
	"github.com/matzehuels/gridstack/pkg/grid"
	"github.com/matzehuels/gridstack/pkg/render"
)

// Playground styles
var (
	playModeStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	playStatusStyle = lipgloss.NewStyle().Foreground(colorGray)
	playDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
)

// playCommand creates the interactive playground command.
func (c *CLI) playCommand() *cobra.Command {
	var cols int

	cmd := &cobra.Command{
		Use:   "play [layout]",
		Short: "Edit a layout interactively in the terminal",
		Long: `Open a layout in an interactive editor. Select an item with tab, move it
with the arrow keys (or hjkl), switch to resize mode with r, and watch the
rest of the layout make room. Press s to write the file, q to quit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := c.openWorkspace(args[0], cols)
			if err != nil {
				return err
			}

			m := newPlayModel(w.eng, func() error {
				_, err := w.save("")
				return err
			})
			final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return fmt.Errorf("run playground: %w", err)
			}
			if pm, ok := final.(playModel); ok && pm.dirty() {
				printWarning("Quit with unsaved changes")
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&cols, "cols", 0, "column count (default: from the file or config)")
	return cmd
}

// =============================================================================
// playModel - Interactive layout editing
// =============================================================================

type playMode int

const (
	modeMove playMode = iota
	modeResize
)

func (m playMode) String() string {
	if m == modeResize {
		return "RESIZE"
	}
	return "MOVE"
}

// playHistory is shared between model copies. The engine listener appends
// every replaced state, so undo restores exactly what a command changed.
type playHistory struct {
	undo    []grid.Layout
	commits int
	saved   int
}

// playModel is the bubbletea model for the playground.
type playModel struct {
	eng    *engine.Engine
	save   func() error
	hist   *playHistory
	cursor string
	mode   playMode
	status string
}

func newPlayModel(eng *engine.Engine, save func() error) playModel {
	hist := &playHistory{}
	eng.Subscribe(func(_, prev engine.State, _ engine.Context) {
		hist.undo = append(hist.undo, prev.Layout)
		hist.commits++
	})
	m := playModel{eng: eng, save: save, hist: hist}
	if l := eng.Layout(); len(l) > 0 {
		m.cursor = l[0].ID
	}
	return m
}

func (m playModel) dirty() bool { return m.hist.commits != m.hist.saved }

func (m playModel) Init() tea.Cmd {
	return nil
}

func (m playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	m.status = ""
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "tab":
		m.cursor = m.step(1)
	case "shift+tab":
		m.cursor = m.step(-1)
	case "r":
		m.mode = 1 - m.mode
	case "up", "k":
		m.nudge(0, -1)
	case "down", "j":
		m.nudge(0, 1)
	case "left", "h":
		m.nudge(-1, 0)
	case "right", "l":
		m.nudge(1, 0)
	case "c":
		m.apply(m.eng.Compact())
	case "a":
		before := m.eng.Layout()
		m.apply(m.eng.Add(grid.Item{X: -1, Y: -1, W: 2, H: 2}))
		if ids := newIDs(before, m.eng.Layout()); len(ids) > 0 {
			m.cursor = ids[0]
		}
	case "x", "delete":
		if m.cursor != "" {
			next := m.step(1)
			m.apply(m.eng.Remove(m.cursor))
			if _, ok := m.eng.Item(m.cursor); !ok {
				if next == m.cursor {
					next = ""
				}
				m.cursor = next
			}
		}
	case "u":
		m.undo()
	case "s":
		if err := m.save(); err != nil {
			m.status = "save failed: " + errors.UserMessage(err)
		} else {
			m.hist.saved = m.hist.commits
			m.status = "saved"
		}
	}
	return m, nil
}

// step returns the id d positions away from the cursor in layout order.
func (m playModel) step(d int) string {
	ids := m.eng.Layout().IDs()
	if len(ids) == 0 {
		return ""
	}
	i := slices.Index(ids, m.cursor)
	if i < 0 {
		return ids[0]
	}
	return ids[((i+d)%len(ids)+len(ids))%len(ids)]
}

// nudge moves or resizes the selected item by one cell.
func (m *playModel) nudge(dx, dy int) {
	it, ok := m.eng.Item(m.cursor)
	if !ok {
		return
	}
	cols := m.eng.Options().Cols
	if m.mode == modeResize {
		w := geometry.ClampInt(it.W+dx, 1, max(cols-it.X, 1))
		m.apply(m.eng.Resize(it.ID, w, max(it.H+dy, 1), geometry.HandleSE))
		return
	}
	x := geometry.ClampInt(it.X+dx, 0, max(cols-it.W, 0))
	m.apply(m.eng.Move(it.ID, x, max(it.Y+dy, 0)))
}

func (m *playModel) apply(_ engine.State, err error) {
	if err != nil {
		m.status = errors.UserMessage(err)
	}
}

// undo restores the state before the last command. Restoring is itself a
// commit, so its own history entry is dropped.
func (m *playModel) undo() {
	n := len(m.hist.undo)
	if n == 0 {
		m.status = "nothing to undo"
		return
	}
	prev := m.hist.undo[n-1]
	m.hist.undo = m.hist.undo[:n-1]
	if _, err := m.eng.Reflow(prev); err != nil {
		m.status = errors.UserMessage(err)
		return
	}
	m.hist.undo = m.hist.undo[:len(m.hist.undo)-1]
	if _, ok := m.eng.Item(m.cursor); !ok {
		m.cursor = m.step(0)
	}
}

func (m playModel) View() string {
	var b strings.Builder

	l := m.eng.Layout()
	cols := m.eng.Options().Cols

	b.WriteString(StyleTitle.Render("Gridstack Playground"))
	b.WriteString("  ")
	b.WriteString(playModeStyle.Render(m.mode.String()))
	b.WriteString("\n\n")
	b.WriteString(render.Terminal(l, cols, render.WithCursor(m.cursor), render.WithRows(grid.FiniteBottom(l)+2)))
	b.WriteString("\n\n")

	if it, ok := m.eng.Item(m.cursor); ok {
		b.WriteString(playStatusStyle.Render(fmt.Sprintf("%s at %d,%d size %dx%d", it.ID, it.X, it.Y, it.W, it.H)))
	} else {
		b.WriteString(playStatusStyle.Render("no selection"))
	}
	if m.dirty() {
		b.WriteString(StyleWarning.Render("  *modified"))
	}
	if m.status != "" {
		b.WriteString("  " + StyleHighlight.Render(m.status))
	}
	b.WriteString("\n\n")
	b.WriteString(playDimStyle.Render("tab select  ←↑↓→ move/resize  r mode  c compact  a add  x remove  u undo  s save  q quit"))
	return b.String()
}
