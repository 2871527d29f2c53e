// Package geometry converts between pixel space and grid-cell space.
//
// All functions are pure. Grid coordinates are integral cell indices and
// sizes; pixel values are float64 and rounded the way a browser would round
// CSS pixels (half-up), so a rendering layer can paint the result directly.
//
// # Spacing
//
// Gap and container padding are both expressed as a four-sided [Spacing].
// For gaps, Left is the gutter between adjacent columns and Top is the gutter
// between adjacent rows; [XY] and [Uniform] fill all four sides, so either
// side may be read.
package geometry

import "math"

// Spacing is a four-sided pixel distance.
type Spacing struct {
	Top    float64 `json:"top" toml:"top"`
	Right  float64 `json:"right" toml:"right"`
	Bottom float64 `json:"bottom" toml:"bottom"`
	Left   float64 `json:"left" toml:"left"`
}

// Uniform returns a Spacing with v on every side.
func Uniform(v float64) Spacing { return Spacing{Top: v, Right: v, Bottom: v, Left: v} }

// XY returns a Spacing with x on the left/right sides and y on top/bottom.
func XY(x, y float64) Spacing { return Spacing{Top: y, Right: x, Bottom: y, Left: x} }

// Params describes the grid a layout is rendered into.
type Params struct {
	Cols            int
	MaxRows         int
	RowHeight       float64
	ContainerWidth  float64
	ContainerHeight float64
	Gap             Spacing
	Padding         Spacing
}

// Position is the pixel-space box of a grid item, plus an optional rotation.
type Position struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Deg    float64 `json:"deg"`
}

// DragState is the live pixel position of an item being dragged.
type DragState struct {
	Left float64
	Top  float64
	Deg  float64
}

// Transient carries live gesture state. At most one of Drag and Resize is
// normally set; both nil means the item is at rest.
type Transient struct {
	Drag   *DragState
	Resize *Box
}

// ColumnWidth returns the pixel width of a single column.
// Returns 0 when Cols is not positive.
func ColumnWidth(p Params) float64 {
	if p.Cols <= 0 {
		return 0
	}
	gapX := p.Gap.Left
	return (p.ContainerWidth - gapX*float64(p.Cols-1) - p.Padding.Left - p.Padding.Right) / float64(p.Cols)
}

// UnitsToPixels converts a span of grid units to pixels, including the gaps
// between the spanned cells. Non-finite units are returned unchanged so
// "infinite height" placeholders survive conversion.
func UnitsToPixels(units, cellSize, gap float64) float64 {
	if math.IsInf(units, 0) || math.IsNaN(units) {
		return units
	}
	return Round(cellSize*units + math.Max(0, units-1)*gap)
}

// ItemPosition computes the pixel box of an item at grid coordinates
// (x, y, w, h). Live gesture state in t overrides the derived values: a
// resize supplies width/height (and position), a drag supplies top/left/deg.
// When the item is at rest, width and height are corrected so the trailing
// edge lands exactly one gap before the next cell's rounded start.
func ItemPosition(p Params, x, y, w, h, deg float64, t Transient) Position {
	colWidth := ColumnWidth(p)
	gapX, gapY := p.Gap.Left, p.Gap.Top
	out := Position{Deg: deg}

	if t.Resize != nil {
		out.Width = Round(t.Resize.Width)
		out.Height = Round(t.Resize.Height)
	} else {
		out.Width = UnitsToPixels(w, colWidth, gapX)
		out.Height = UnitsToPixels(h, p.RowHeight, gapY)
	}

	switch {
	case t.Drag != nil:
		out.Top = Round(t.Drag.Top)
		out.Left = Round(t.Drag.Left)
		out.Deg = t.Drag.Deg
	case t.Resize != nil:
		out.Top = Round(t.Resize.Top)
		out.Left = Round(t.Resize.Left)
	default:
		out.Top = Round((p.RowHeight+gapY)*y + p.Padding.Top)
		out.Left = Round((colWidth+gapX)*x + p.Padding.Left)
	}

	if t.Drag == nil && t.Resize == nil {
		if isFinite(w) {
			siblingLeft := Round((colWidth+gapX)*(x+w) + p.Padding.Left)
			if actual := siblingLeft - out.Left - out.Width; actual != gapX {
				out.Width += actual - gapX
			}
		}
		if isFinite(h) {
			siblingTop := Round((p.RowHeight+gapY)*(y+h) + p.Padding.Top)
			if actual := siblingTop - out.Top - out.Height; actual != gapY {
				out.Height += actual - gapY
			}
		}
	}
	return out
}

// PixelToGridRaw maps a pixel offset to the nearest grid cell without clamping.
func PixelToGridRaw(p Params, top, left float64) (x, y int) {
	colWidth := ColumnWidth(p)
	x = cells(left-p.Padding.Left, colWidth+p.Gap.Left)
	y = cells(top-p.Padding.Top, p.RowHeight+p.Gap.Top)
	return x, y
}

// PixelToGrid maps a pixel offset to a grid cell, clamped so an item of size
// w×h stays within [0, Cols-w] × [0, MaxRows-h].
func PixelToGrid(p Params, top, left float64, w, h int) (x, y int) {
	x, y = PixelToGridRaw(p, top, left)
	x = ClampInt(x, 0, p.Cols-w)
	y = ClampInt(y, 0, p.MaxRows-h)
	return x, y
}

// PixelSizeToGridRaw maps a pixel size to the nearest whole number of grid
// units without clamping.
func PixelSizeToGridRaw(p Params, width, height float64) (w, h int) {
	colWidth := ColumnWidth(p)
	w = cells(width+p.Gap.Left, colWidth+p.Gap.Left)
	h = cells(height+p.Gap.Top, p.RowHeight+p.Gap.Top)
	return w, h
}

// Clamp limits v to [lo, hi]. When lo > hi the lower bound wins.
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

// ClampInt is Clamp for ints.
func ClampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// Round rounds half up (toward +Inf), matching CSS pixel rounding.
func Round(v float64) float64 {
	return math.Floor(v + 0.5)
}

// cells divides a pixel distance by a cell pitch, rounding to the nearest
// cell. A non-positive pitch yields 0.
func cells(px, pitch float64) int {
	if pitch <= 0 {
		return 0
	}
	return int(Round(px / pitch))
}

func isFinite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
