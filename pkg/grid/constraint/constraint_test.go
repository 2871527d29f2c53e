package constraint

import (
	"fmt"
	"testing"

	"github.com/matzehuels/gridstack/pkg/geometry"
	"github.com/matzehuels/gridstack/pkg/grid"
)

func ctx() grid.ConstraintContext {
	return grid.ConstraintContext{Params: geometry.Params{Cols: 12, MaxRows: 10}}
}

func TestGridSnap(t *testing.T) {
	tests := []struct {
		cols, rows   int
		x, y         int
		wantX, wantY int
	}{
		{2, 1, 5, 3, 6, 3},
		{2, 2, 4, 1, 4, 2},
		{3, 3, 4, 4, 3, 3},
		{0, 0, 7, 7, 7, 7},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%dx%d", tt.cols, tt.rows), func(t *testing.T) {
			x, y := GridSnap(tt.cols, tt.rows).(grid.PositionConstraint).ConstrainPosition(grid.Item{}, tt.x, tt.y, ctx())
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("ConstrainPosition(%d, %d) = (%d, %d), want (%d, %d)", tt.x, tt.y, x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestMinMaxSize(t *testing.T) {
	item := grid.Item{MinW: 2, MaxW: 4, MinH: 1}
	tests := []struct {
		w, h         int
		wantW, wantH int
	}{
		{1, 1, 2, 1},
		{6, 9, 4, 9},
		{3, 0, 3, 1},
	}
	c := MinMaxSize().(grid.SizeConstraint)
	for _, tt := range tests {
		w, h := c.ConstrainSize(item, tt.w, tt.h, geometry.HandleSE, ctx())
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("ConstrainSize(%d, %d) = (%d, %d), want (%d, %d)", tt.w, tt.h, w, h, tt.wantW, tt.wantH)
		}
	}
}

func TestAspectRatio(t *testing.T) {
	c := AspectRatio(2).(grid.SizeConstraint)

	t.Run("grid units", func(t *testing.T) {
		if w, h := c.ConstrainSize(grid.Item{}, 4, 1, geometry.HandleE, ctx()); w != 4 || h != 2 {
			t.Errorf("east = (%d, %d), want (4, 2)", w, h)
		}
		if w, h := c.ConstrainSize(grid.Item{}, 1, 3, geometry.HandleS, ctx()); w != 6 || h != 3 {
			t.Errorf("south = (%d, %d), want (6, 3)", w, h)
		}
	})

	t.Run("pixels", func(t *testing.T) {
		px := grid.ConstraintContext{Params: geometry.Params{
			Cols: 4, RowHeight: 30, ContainerWidth: 430,
			Gap: geometry.XY(10, 10), Padding: geometry.Uniform(10),
		}}
		// 2 columns render 200px wide; 100px tall is closest to 3 rows (110px).
		if w, h := c.ConstrainSize(grid.Item{}, 2, 1, geometry.HandleSE, px); w != 2 || h != 3 {
			t.Errorf("se = (%d, %d), want (2, 3)", w, h)
		}
	})

	t.Run("invalid ratio passes through", func(t *testing.T) {
		if w, h := AspectRatio(0).(grid.SizeConstraint).ConstrainSize(grid.Item{}, 3, 5, geometry.HandleSE, ctx()); w != 3 || h != 5 {
			t.Errorf("= (%d, %d), want (3, 5)", w, h)
		}
	})
}

func TestBounded(t *testing.T) {
	c := Bounded()
	item := grid.Item{X: 10, Y: 8, W: 3, H: 2}

	x, y := c.(grid.PositionConstraint).ConstrainPosition(item, 11, -2, ctx())
	if x != 9 || y != 0 {
		t.Errorf("ConstrainPosition = (%d, %d), want (9, 0)", x, y)
	}
	x, y = c.(grid.PositionConstraint).ConstrainPosition(item, 0, 20, ctx())
	if x != 0 || y != 8 {
		t.Errorf("ConstrainPosition = (%d, %d), want (0, 8)", x, y)
	}

	w, h := c.(grid.SizeConstraint).ConstrainSize(item, 5, 5, geometry.HandleSE, ctx())
	if w != 2 || h != 2 {
		t.Errorf("ConstrainSize = (%d, %d), want (2, 2)", w, h)
	}

	unbounded := grid.ConstraintContext{Params: geometry.Params{Cols: 12}}
	if _, y := c.(grid.PositionConstraint).ConstrainPosition(item, 0, 500, unbounded); y != 500 {
		t.Errorf("y without MaxRows = %d, want 500", y)
	}
}

func TestRegion(t *testing.T) {
	c := Region(2, 2, 4, 4)
	item := grid.Item{X: 2, Y: 2, W: 2, H: 2}

	x, y := c.(grid.PositionConstraint).ConstrainPosition(item, 0, 9, ctx())
	if x != 2 || y != 4 {
		t.Errorf("ConstrainPosition = (%d, %d), want (2, 4)", x, y)
	}
	w, h := c.(grid.SizeConstraint).ConstrainSize(item, 10, 1, geometry.HandleSE, ctx())
	if w != 4 || h != 1 {
		t.Errorf("ConstrainSize = (%d, %d), want (4, 1)", w, h)
	}
}

func TestApplyFoldsInOrder(t *testing.T) {
	var seen []string
	record := func(name string, dx int) grid.Constraint {
		return Func(name, func(_ grid.Item, x, y int, _ grid.ConstraintContext) (int, int) {
			seen = append(seen, fmt.Sprintf("%s:%d", name, x))
			return x + dx, y
		}, nil)
	}
	cs := []grid.Constraint{record("first", 1), MinMaxSize(), record("second", 10)}

	x, y := ApplyPosition(cs, grid.Item{}, 0, 4, ctx())
	if x != 11 || y != 4 {
		t.Errorf("ApplyPosition() = (%d, %d), want (11, 4)", x, y)
	}
	want := []string{"first:0", "second:1"}
	if fmt.Sprint(seen) != fmt.Sprint(want) {
		t.Errorf("call order = %v, want %v", seen, want)
	}

	// Func with a nil size func is a passthrough.
	if w, h := ApplySize(cs, grid.Item{}, 0, 3, geometry.HandleSE, ctx()); w != 1 || h != 3 {
		t.Errorf("ApplySize() = (%d, %d), want (1, 3)", w, h)
	}
}

func TestFor(t *testing.T) {
	gridLevel := []grid.Constraint{Bounded()}
	item := grid.Item{Constraints: []grid.Constraint{GridSnap(2, 2)}}

	got := For(gridLevel, item)
	if len(got) != 2 || got[0].Name() != "bounded" || got[1].Name() != "grid-snap" {
		t.Errorf("For() = %v", got)
	}
	if len(gridLevel) != 1 {
		t.Errorf("For() modified the grid-level slice")
	}
	if got := For(gridLevel, grid.Item{}); len(got) != 1 {
		t.Errorf("For(no item constraints) = %v", got)
	}
}

func ExampleApplyPosition() {
	cs := []grid.Constraint{GridSnap(2, 1), Bounded()}
	item := grid.Item{ID: "chart", W: 4, H: 2}
	ctx := grid.ConstraintContext{Params: geometry.Params{Cols: 12, MaxRows: 6}}

	x, y := ApplyPosition(cs, item, 9, 7, ctx)
	fmt.Println(x, y)
	// Output: 8 4
}
