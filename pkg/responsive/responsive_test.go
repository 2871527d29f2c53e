package responsive

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridstack/pkg/errors"
	"github.com/matzehuels/gridstack/pkg/grid"
)

var testBreakpoints = Breakpoints{
	{Name: "sm", Width: 768, Cols: 6},
	{Name: "lg", Width: 1200, Cols: 12},
	{Name: "xs", Width: 0, Cols: 2},
	{Name: "md", Width: 996, Cols: 10},
}

func TestForWidth(t *testing.T) {
	tests := []struct {
		width float64
		want  string
	}{
		{-10, "xs"},
		{0, "xs"},
		{767, "xs"},
		{768, "sm"},
		{1000, "md"},
		{1200, "lg"},
		{5000, "lg"},
	}
	for _, tt := range tests {
		if got := BreakpointForWidth(testBreakpoints, tt.width); got != tt.want {
			t.Errorf("BreakpointForWidth(%v) = %q, want %q", tt.width, got, tt.want)
		}
	}

	below := Breakpoints{{Name: "a", Width: 500, Cols: 1}, {Name: "b", Width: 900, Cols: 2}}
	if got := below.ForWidth(100); got != "a" {
		t.Errorf("ForWidth(below all) = %q, want smallest", got)
	}
	if got := (Breakpoints{}).ForWidth(100); got != "" {
		t.Errorf("ForWidth(empty) = %q, want \"\"", got)
	}
}

func TestNamesSorted(t *testing.T) {
	got := strings.Join(testBreakpoints.Names(), ",")
	if got != "xs,sm,md,lg" {
		t.Errorf("Names() = %s, want xs,sm,md,lg", got)
	}
}

func TestCols(t *testing.T) {
	if cols, err := ColsFor(testBreakpoints, "md"); err != nil || cols != 10 {
		t.Errorf("ColsFor(md) = %d, %v, want 10", cols, err)
	}
	if _, err := ColsFor(testBreakpoints, "xl"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("ColsFor(xl) error = %v, want NOT_FOUND", err)
	}
	bad := Breakpoints{{Name: "tv", Width: 2000}}
	_, err := bad.Cols("tv")
	if !errors.Is(err, errors.ErrCodeInvalidConfig) || !strings.Contains(err.Error(), `"tv"`) {
		t.Errorf("Cols(no cols) error = %v, want INVALID_CONFIG naming tv", err)
	}
}

func TestValidate(t *testing.T) {
	if err := testBreakpoints.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	err := Breakpoints{{Name: "tv", Width: 2000}, {Name: "tv", Cols: 1}}.Validate()
	issues := errors.Issues(err)
	if len(issues) != 2 || issues[0].Path != "breakpoints.tv.cols" || issues[1].Path != "breakpoints.tv" {
		t.Errorf("Validate() issues = %v", issues)
	}
	if err := (Breakpoints{}).Validate(); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Validate(empty) = %v, want INVALID_CONFIG", err)
	}
}

func TestParseStrategy(t *testing.T) {
	for in, want := range map[string]Strategy{"": StrategyDerive, "WARN": StrategyWarn, " empty ": StrategyEmpty} {
		if got, err := ParseStrategy(in); err != nil || got != want {
			t.Errorf("ParseStrategy(%q) = %q, %v, want %q", in, got, err, want)
		}
	}
	if _, err := ParseStrategy("guess"); err == nil {
		t.Error("ParseStrategy(guess) error = nil")
	}
}

func lgLayout() grid.Layout {
	return grid.Layout{
		{ID: "a", X: 0, Y: 0, W: 4, H: 2},
		{ID: "b", X: 10, Y: 3, W: 2, H: 2},
	}
}

func TestResolveExplicit(t *testing.T) {
	layouts := Layouts{"lg": lgLayout()}
	got, err := ResolveLayout(layouts, testBreakpoints, "lg", "lg", 12, grid.Compactor{}, StrategyError)
	if err != nil {
		t.Fatalf("ResolveLayout() error: %v", err)
	}
	if !got.Equal(lgLayout()) {
		t.Errorf("ResolveLayout() = %+v, want stored layout", got)
	}
	got[0].X = 7
	if layouts["lg"][0].X != 0 {
		t.Error("ResolveLayout() returned the stored layout, not a clone")
	}
}

func TestResolveDerive(t *testing.T) {
	layouts := Layouts{"lg": lgLayout()}
	got, err := ResolveLayout(layouts, testBreakpoints, "sm", "xs", 6, grid.Compactor{}, StrategyDerive)
	if err != nil {
		t.Fatalf("ResolveLayout() error: %v", err)
	}
	b, _ := got.Item("b")
	if b.X != 4 || b.Y != 0 {
		t.Errorf("b = (%d,%d), want (4,0)", b.X, b.Y)
	}
	if _, ok := layouts["sm"]; ok {
		t.Error("ResolveLayout() stored the derived layout")
	}
}

func TestResolveDeriveFallsBackToLast(t *testing.T) {
	layouts := Layouts{"xs": {{ID: "z", X: 0, Y: 4, W: 1, H: 1}}}
	got, err := ResolveLayout(layouts, testBreakpoints, "md", "xs", 10, grid.Compactor{}, "")
	if err != nil {
		t.Fatalf("ResolveLayout() error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "z" || got[0].Y != 0 {
		t.Errorf("ResolveLayout() = %+v, want z compacted to y=0", got)
	}

	got, err = ResolveLayout(Layouts{}, testBreakpoints, "md", "xs", 10, grid.Compactor{}, "")
	if err != nil || got == nil || len(got) != 0 {
		t.Errorf("ResolveLayout(nothing stored) = %v, %v, want empty", got, err)
	}
}

func TestResolveStrategies(t *testing.T) {
	_, err := ResolveLayout(Layouts{}, testBreakpoints, "md", "lg", 10, grid.Compactor{}, StrategyError)
	if !errors.Is(err, errors.ErrCodeMissingLayout) {
		t.Errorf("error strategy = %v, want MISSING_LAYOUT", err)
	}

	got, err := ResolveLayout(Layouts{"lg": lgLayout()}, testBreakpoints, "md", "lg", 10, grid.Compactor{}, StrategyEmpty)
	if err != nil || got == nil || len(got) != 0 {
		t.Errorf("empty strategy = %v, %v, want empty layout", got, err)
	}
}

func TestResolverWarnsOnce(t *testing.T) {
	var buf bytes.Buffer
	r := NewResolver(testBreakpoints, ResolverOptions{
		Strategy: StrategyWarn,
		Logger:   log.NewWithOptions(&buf, log.Options{}),
	})
	layouts := Layouts{"lg": lgLayout()}

	for range 3 {
		if _, err := r.Resolve(layouts, "md", "lg"); err != nil {
			t.Fatalf("Resolve(md) error: %v", err)
		}
	}
	if _, err := r.Resolve(layouts, "sm", "lg"); err != nil {
		t.Fatalf("Resolve(sm) error: %v", err)
	}

	if n := strings.Count(buf.String(), "missing layout"); n != 2 {
		t.Errorf("warnings = %d, want 2:\n%s", n, buf.String())
	}
}

func TestResolverResolveWidth(t *testing.T) {
	r := NewResolver(testBreakpoints, ResolverOptions{})
	bp, l, err := r.ResolveWidth(Layouts{"lg": lgLayout()}, 800, "lg")
	if err != nil {
		t.Fatalf("ResolveWidth() error: %v", err)
	}
	if bp != "sm" || len(l) != 2 {
		t.Errorf("ResolveWidth() = %q, %d items, want sm with 2", bp, len(l))
	}
	if _, err := r.Resolve(Layouts{}, "xl", "lg"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Resolve(unknown) error = %v, want NOT_FOUND", err)
	}
}
