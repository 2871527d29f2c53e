// Package constraint implements the position and size constraint pipeline
// and its built-in rules.
//
// A pipeline is an ordered []grid.Constraint. Each rule sees the output of
// the one before it; a rule that does not implement the relevant interface
// passes the proposal through unchanged.
//
//	cs := []grid.Constraint{constraint.GridSnap(2, 1), constraint.Bounded()}
//	x, y := constraint.ApplyPosition(cs, item, 5, 3, ctx)
package constraint

import (
	"math"

	"github.com/matzehuels/gridstack/pkg/geometry"
	"github.com/matzehuels/gridstack/pkg/grid"
)

// ApplyPosition folds cs over a proposed position.
func ApplyPosition(cs []grid.Constraint, item grid.Item, x, y int, ctx grid.ConstraintContext) (int, int) {
	for _, c := range cs {
		if pc, ok := c.(grid.PositionConstraint); ok {
			x, y = pc.ConstrainPosition(item, x, y, ctx)
		}
	}
	return x, y
}

// ApplySize folds cs over a proposed size.
func ApplySize(cs []grid.Constraint, item grid.Item, w, h int, handle geometry.Handle, ctx grid.ConstraintContext) (int, int) {
	for _, c := range cs {
		if sc, ok := c.(grid.SizeConstraint); ok {
			w, h = sc.ConstrainSize(item, w, h, handle, ctx)
		}
	}
	return w, h
}

// For returns the effective pipeline for item: the grid-level rules followed
// by the item's own.
func For(gridLevel []grid.Constraint, item grid.Item) []grid.Constraint {
	if len(item.Constraints) == 0 {
		return gridLevel
	}
	out := make([]grid.Constraint, 0, len(gridLevel)+len(item.Constraints))
	out = append(out, gridLevel...)
	return append(out, item.Constraints...)
}

// GridSnap rounds positions to multiples of cols columns and rows rows.
// Steps below 1 are treated as 1.
func GridSnap(cols, rows int) grid.Constraint {
	return gridSnap{cols: max(cols, 1), rows: max(rows, 1)}
}

type gridSnap struct{ cols, rows int }

func (gridSnap) Name() string { return "grid-snap" }

func (s gridSnap) ConstrainPosition(_ grid.Item, x, y int, _ grid.ConstraintContext) (int, int) {
	return snap(x, s.cols), snap(y, s.rows)
}

func snap(v, step int) int {
	if step <= 1 || !grid.IsFinite(v) {
		return v
	}
	return int(math.Floor(float64(v)/float64(step)+0.5)) * step
}

// MinMaxSize clamps sizes to the item's own MinW/MaxW/MinH/MaxH, and never
// below one cell.
func MinMaxSize() grid.Constraint { return minMaxSize{} }

type minMaxSize struct{}

func (minMaxSize) Name() string { return "min-max-size" }

func (minMaxSize) ConstrainSize(item grid.Item, w, h int, _ geometry.Handle, _ grid.ConstraintContext) (int, int) {
	return clampSize(w, item.MinW, item.MaxW), clampSize(h, item.MinH, item.MaxH)
}

func clampSize(v, lo, hi int) int {
	lo = max(lo, 1)
	if hi > 0 {
		v = min(v, hi)
	}
	return max(v, lo)
}

// AspectRatio locks width/height to ratio while resizing. Handles that only
// move a horizontal edge (n, s) derive the width from the height; every other
// handle derives the height from the width. When the context carries pixel
// geometry the ratio applies to rendered pixels, otherwise to grid units.
func AspectRatio(ratio float64) grid.Constraint { return aspectRatio{ratio: ratio} }

type aspectRatio struct{ ratio float64 }

func (aspectRatio) Name() string { return "aspect-ratio" }

func (a aspectRatio) ConstrainSize(_ grid.Item, w, h int, handle geometry.Handle, ctx grid.ConstraintContext) (int, int) {
	if a.ratio <= 0 || math.IsNaN(a.ratio) || math.IsInf(a.ratio, 0) {
		return w, h
	}

	colW := geometry.ColumnWidth(ctx.Params)
	rowH := ctx.RowHeight
	gapX, gapY := ctx.Gap.Left, ctx.Gap.Top
	if colW <= 0 || rowH <= 0 {
		colW, rowH, gapX, gapY = 1, 1, 0, 0
	}

	if handle == geometry.HandleN || handle == geometry.HandleS {
		px := a.ratio * geometry.UnitsToPixels(float64(h), rowH, gapY)
		return max(1, int(geometry.Round((px+gapX)/(colW+gapX)))), h
	}
	px := geometry.UnitsToPixels(float64(w), colW, gapX) / a.ratio
	return w, max(1, int(geometry.Round((px+gapY)/(rowH+gapY))))
}

// Bounded confines items to the grid: columns [0, cols) and, when MaxRows is
// set, rows [0, maxRows).
func Bounded() grid.Constraint { return bounded{} }

type bounded struct{}

func (bounded) Name() string { return "bounded" }

func (bounded) ConstrainPosition(item grid.Item, x, y int, ctx grid.ConstraintContext) (int, int) {
	return confine(x, item.W, 0, ctx.Cols), confine(y, item.H, 0, ctx.MaxRows)
}

func (bounded) ConstrainSize(item grid.Item, w, h int, _ geometry.Handle, ctx grid.ConstraintContext) (int, int) {
	if ctx.Cols > 0 {
		w = max(1, min(w, ctx.Cols-max(item.X, 0)))
	}
	if ctx.MaxRows > 0 && grid.IsFinite(item.Y) {
		h = max(1, min(h, ctx.MaxRows-max(item.Y, 0)))
	}
	return w, h
}

// confine clamps an origin so [v, v+size) stays inside [lo, lo+extent).
// A non-positive extent only enforces the lower bound.
func confine(v, size, lo, extent int) int {
	if extent <= 0 {
		return max(v, lo)
	}
	return geometry.ClampInt(v, lo, lo+extent-size)
}

// Region confines items to the w by h rectangle at (x, y).
func Region(x, y, w, h int) grid.Constraint { return region{x: x, y: y, w: w, h: h} }

type region struct{ x, y, w, h int }

func (region) Name() string { return "region" }

func (r region) ConstrainPosition(item grid.Item, x, y int, _ grid.ConstraintContext) (int, int) {
	return confine(x, item.W, r.x, r.w), confine(y, item.H, r.y, r.h)
}

func (r region) ConstrainSize(item grid.Item, w, h int, _ geometry.Handle, _ grid.ConstraintContext) (int, int) {
	if r.w > 0 {
		w = max(1, min(w, r.x+r.w-max(item.X, r.x)))
	}
	if r.h > 0 {
		h = max(1, min(h, r.y+r.h-max(item.Y, r.y)))
	}
	return w, h
}

// PositionFunc adjusts a proposed position.
type PositionFunc func(item grid.Item, x, y int, ctx grid.ConstraintContext) (int, int)

// SizeFunc adjusts a proposed size.
type SizeFunc func(item grid.Item, w, h int, handle geometry.Handle, ctx grid.ConstraintContext) (int, int)

// Func adapts plain functions into a constraint. Either may be nil.
func Func(name string, pos PositionFunc, size SizeFunc) grid.Constraint {
	return funcConstraint{name: name, pos: pos, size: size}
}

type funcConstraint struct {
	name string
	pos  PositionFunc
	size SizeFunc
}

func (f funcConstraint) Name() string { return f.name }

func (f funcConstraint) ConstrainPosition(item grid.Item, x, y int, ctx grid.ConstraintContext) (int, int) {
	if f.pos == nil {
		return x, y
	}
	return f.pos(item, x, y, ctx)
}

func (f funcConstraint) ConstrainSize(item grid.Item, w, h int, handle geometry.Handle, ctx grid.ConstraintContext) (int, int) {
	if f.size == nil {
		return w, h
	}
	return f.size(item, w, h, handle, ctx)
}

var (
	_ grid.PositionConstraint = gridSnap{}
	_ grid.SizeConstraint     = minMaxSize{}
	_ grid.SizeConstraint     = aspectRatio{}
	_ grid.PositionConstraint = bounded{}
	_ grid.SizeConstraint     = bounded{}
	_ grid.PositionConstraint = region{}
	_ grid.SizeConstraint     = region{}
	_ grid.PositionConstraint = funcConstraint{}
	_ grid.SizeConstraint     = funcConstraint{}
)
