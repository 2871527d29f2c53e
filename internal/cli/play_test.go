package cli

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/gridstack/pkg/engine"
	"github.com/matzehuels/gridstack/pkg/grid"
)

func newTestPlay(t *testing.T, save func() error) playModel {
	t.Helper()
	eng, err := engine.New(engine.Options{
		Cols: 6,
		Layout: grid.Layout{
			{ID: "a", X: 0, Y: 0, W: 2, H: 1},
			{ID: "b", X: 2, Y: 0, W: 2, H: 1},
		},
	})
	if err != nil {
		t.Fatalf("engine.New() error = %v", err)
	}
	if save == nil {
		save = func() error { return nil }
	}
	return newPlayModel(eng, save)
}

func press(m playModel, keys ...string) playModel {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(playModel)
	}
	return m
}

func TestPlaySelect(t *testing.T) {
	m := newTestPlay(t, nil)
	if m.cursor != "a" {
		t.Fatalf("cursor = %q, want a", m.cursor)
	}
	if m = press(m, "tab"); m.cursor != "b" {
		t.Errorf("after tab cursor = %q, want b", m.cursor)
	}
	if m = press(m, "tab"); m.cursor != "a" {
		t.Errorf("after second tab cursor = %q, want a (wraps)", m.cursor)
	}
}

func TestPlayMoveClampsToGrid(t *testing.T) {
	m := press(newTestPlay(t, nil), "tab", "right", "right", "right")

	b, _ := m.eng.Item("b")
	if b.X != 4 {
		t.Errorf("b.X = %d, want 4 (right edge of 6 columns)", b.X)
	}
	if !m.dirty() {
		t.Error("dirty() = false after a move")
	}
}

func TestPlayResize(t *testing.T) {
	m := press(newTestPlay(t, nil), "r", "down")
	if m.mode != modeResize {
		t.Fatalf("mode = %v, want RESIZE", m.mode)
	}
	a, _ := m.eng.Item("a")
	if a.H != 2 {
		t.Errorf("a.H = %d, want 2", a.H)
	}
}

func TestPlayUndo(t *testing.T) {
	m := newTestPlay(t, nil)
	before := m.eng.Layout()

	m = press(m, "x")
	if _, ok := m.eng.Item("a"); ok {
		t.Fatal("a still present after x")
	}
	if m.cursor != "b" {
		t.Errorf("cursor = %q after remove, want b", m.cursor)
	}

	m = press(m, "u")
	if got := m.eng.Layout(); !got.Equal(before) {
		t.Errorf("layout after undo = %v, want %v", got, before)
	}
	if n := len(m.hist.undo); n != 0 {
		t.Errorf("undo history = %d entries, want 0", n)
	}
	if m = press(m, "u"); m.status != "nothing to undo" {
		t.Errorf("status = %q, want nothing to undo", m.status)
	}
}

func TestPlayAdd(t *testing.T) {
	m := press(newTestPlay(t, nil), "a")
	if m.cursor == "a" || m.cursor == "b" {
		t.Fatalf("cursor = %q, want the new item", m.cursor)
	}
	it, ok := m.eng.Item(m.cursor)
	if !ok || it.W != 2 || it.H != 2 {
		t.Errorf("new item = %+v, want 2x2", it)
	}
}

func TestPlaySave(t *testing.T) {
	saves := 0
	m := newTestPlay(t, func() error {
		saves++
		return nil
	})
	m = press(m, "c", "s")
	if saves != 1 || m.dirty() || m.status != "saved" {
		t.Errorf("saves = %d, dirty = %v, status = %q", saves, m.dirty(), m.status)
	}

	m = newTestPlay(t, func() error { return errors.New("disk full") })
	m = press(m, "c", "s")
	if !strings.HasPrefix(m.status, "save failed") || !m.dirty() {
		t.Errorf("status = %q, dirty = %v", m.status, m.dirty())
	}
}

func TestPlayQuit(t *testing.T) {
	m := newTestPlay(t, nil)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func TestPlayView(t *testing.T) {
	view := press(newTestPlay(t, nil), "tab").View()
	for _, want := range []string{"Gridstack Playground", "MOVE", "b at 2,0 size 2x1"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
}
