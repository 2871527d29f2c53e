package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/gridstack/pkg/grid"
)

const (
	runeEmpty   = '.'
	runeFill    = '#'
	runeOverlap = 'X'

	ownerEmpty   = -1
	ownerOverlap = -2
)

// DefaultCellWidth is the number of characters one grid column occupies.
const DefaultCellWidth = 4

var palette = []lipgloss.Color{"36", "35", "75", "220", "141", "209", "114", "176"}

var (
	styleEmpty   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	styleOverlap = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")).Background(lipgloss.Color("167"))
	styleStatic  = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("240"))
	styleHeader  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)
	styleBorder  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type TerminalOption func(*terminal)

type terminal struct {
	cellWidth int
	plain     bool
	rows      int
	cursor    string
}

// WithCellWidth sets the characters per column. Values below 1 are ignored.
func WithCellWidth(n int) TerminalOption {
	return func(t *terminal) {
		if n > 0 {
			t.cellWidth = n
		}
	}
}

// WithPlain disables colors.
func WithPlain() TerminalOption { return func(t *terminal) { t.plain = true } }

// WithRows draws at least n rows, so empty space below the layout shows.
func WithRows(n int) TerminalOption { return func(t *terminal) { t.rows = n } }

// WithCursor highlights the item with the given id.
func WithCursor(id string) TerminalOption { return func(t *terminal) { t.cursor = id } }

// Terminal renders l on a grid of cols columns.
func Terminal(l grid.Layout, cols int, opts ...TerminalOption) string {
	t := terminal{cellWidth: DefaultCellWidth}
	for _, opt := range opts {
		opt(&t)
	}
	if cols <= 0 {
		return ""
	}

	rows := max(grid.FiniteBottom(l), t.rows, 1)
	width := cols * t.cellWidth
	canvas := make([][]rune, rows)
	owner := make([][]int, rows)
	for y := range rows {
		canvas[y] = []rune(strings.Repeat(string(runeEmpty), width))
		owner[y] = make([]int, width)
		for x := range owner[y] {
			owner[y][x] = ownerEmpty
		}
	}

	for i, it := range l {
		if !grid.IsFinite(it.Y) {
			continue
		}
		for y := max(it.Y, 0); y < min(it.Bottom(), rows); y++ {
			for x := max(it.X, 0) * t.cellWidth; x < min(it.Right(), cols)*t.cellWidth; x++ {
				switch owner[y][x] {
				case ownerEmpty:
					owner[y][x] = i
					canvas[y][x] = runeFill
				default:
					owner[y][x] = ownerOverlap
					canvas[y][x] = runeOverlap
				}
			}
		}
	}
	for i, it := range l {
		writeLabel(canvas, owner, i, it, t.cellWidth, cols)
	}

	var b strings.Builder
	for y := range rows {
		if y > 0 {
			b.WriteByte('\n')
		}
		writeRow(&b, canvas[y], owner[y], l, t)
	}
	return b.String()
}

func writeLabel(canvas [][]rune, owner [][]int, i int, it grid.Item, cellWidth, cols int) {
	if it.Y < 0 || it.Y >= len(canvas) || it.X < 0 || it.X >= cols {
		return
	}
	start := it.X * cellWidth
	end := min(it.Right(), cols) * cellWidth
	for j, r := range []rune(it.ID) {
		x := start + j
		if x >= end || owner[it.Y][x] != i {
			return
		}
		canvas[it.Y][x] = r
	}
}

// writeRow emits runs of equal ownership so each item is styled once per row.
func writeRow(b *strings.Builder, row []rune, owner []int, l grid.Layout, t terminal) {
	for x := 0; x < len(row); {
		end := x + 1
		for end < len(row) && owner[end] == owner[x] {
			end++
		}
		text := string(row[x:end])
		if t.plain {
			b.WriteString(text)
		} else {
			b.WriteString(styleFor(owner[x], l, t.cursor).Render(text))
		}
		x = end
	}
}

func styleFor(owner int, l grid.Layout, cursor string) lipgloss.Style {
	switch owner {
	case ownerEmpty:
		return styleEmpty
	case ownerOverlap:
		return styleOverlap
	}
	it := l[owner]
	var s lipgloss.Style
	if it.Static {
		s = styleStatic
	} else {
		s = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(palette[owner%len(palette)])
	}
	if it.ID == cursor {
		s = s.Bold(true).Underline(true)
	}
	return s
}

// Table lists every item with its geometry and flags.
func Table(l grid.Layout) string {
	rows := make([][]string, len(l))
	for i, it := range l {
		rows[i] = []string{
			it.ID,
			coord(it.X), coord(it.Y),
			fmt.Sprint(it.W), fmt.Sprint(it.H),
			flags(it),
		}
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers("ID", "X", "Y", "W", "H", "FLAGS").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	return t.Render()
}

func coord(v int) string {
	switch {
	case v >= grid.Infinity:
		return "inf"
	case v <= -grid.Infinity:
		return "-inf"
	}
	return fmt.Sprint(v)
}

func flags(it grid.Item) string {
	var out []string
	if it.Static {
		out = append(out, "static")
	}
	if it.Draggable != nil && !*it.Draggable {
		out = append(out, "no-drag")
	}
	if it.Resizable != nil && !*it.Resizable {
		out = append(out, "no-resize")
	}
	if it.IsBounded(false) {
		out = append(out, "bounded")
	}
	if it.MinW > 0 || it.MaxW > 0 || it.MinH > 0 || it.MaxH > 0 {
		out = append(out, fmt.Sprintf("w[%d,%d] h[%d,%d]", it.MinW, it.MaxW, it.MinH, it.MaxH))
	}
	return strings.Join(out, " ")
}
