package compact

import "github.com/matzehuels/gridstack/pkg/grid"

type axis int

const (
	axisX axis = iota
	axisY
)

func compactVertical(l grid.Layout, cols int) grid.Layout {
	return settle(l, cols, grid.CompactVertical)
}

func compactHorizontal(l grid.Layout, cols int) grid.Layout {
	return settle(l, cols, grid.CompactHorizontal)
}

// settle runs one full compaction pass. Items are processed in the axis sort
// order; statics are obstacles from the start and each settled dynamic item
// becomes an obstacle for the ones after it.
func settle(l grid.Layout, cols int, t grid.CompactType) grid.Layout {
	out := l.Clone()

	var compareWith []*grid.Item
	hasStatics := false
	for i := range out {
		if out[i].Static {
			compareWith = append(compareWith, &out[i])
			hasStatics = true
		} else {
			fit(&out[i], cols)
		}
	}
	bottom := 0
	for _, s := range compareWith {
		bottom = max(bottom, s.Bottom())
	}

	sorted := grid.SortRefs(grid.Refs(out), t)
	for idx, it := range sorted {
		if !it.Static {
			settleItem(compareWith, it, t, cols, sorted[idx+1:], hasStatics, bottom)
			bottom = max(bottom, it.Bottom())
			compareWith = append(compareWith, it)
		}
		it.Moved = false
	}
	return out
}

func settleItem(compareWith []*grid.Item, it *grid.Item, t grid.CompactType, cols int, rest []*grid.Item, hasStatics bool, bottom int) {
	switch t {
	case grid.CompactVertical:
		it.Y = min(bottom, it.Y)
		for it.Y > 0 && first(compareWith, it) == nil {
			it.Y--
		}
	case grid.CompactHorizontal:
		if !grid.IsFinite(it.Y) {
			it.Y = bottom
		}
		for it.X > 0 && first(compareWith, it) == nil {
			it.X--
		}
	}

	for hit := first(compareWith, it); hit != nil; hit = first(compareWith, it) {
		if t == grid.CompactHorizontal {
			resolve(rest, it, hit.X+hit.W, axisX, hasStatics)
			if it.X+it.W > cols {
				it.X = cols - it.W
				it.Y++
				for it.X > 0 && first(compareWith, it) == nil {
					it.X--
				}
			}
		} else {
			resolve(rest, it, hit.Y+hit.H, axisY, hasStatics)
		}
	}

	it.X = max(it.X, 0)
	it.Y = max(it.Y, 0)
}

// resolve moves it to moveTo along ax, first pushing any later dynamic item
// it would land on so that item ends past it. The push recurses, so a whole
// chain of items shifts in one step.
func resolve(rest []*grid.Item, it *grid.Item, moveTo int, ax axis, hasStatics bool) {
	size := it.H
	if ax == axisX {
		size = it.W
	}
	shift(it, ax, get(it, ax)+1)

	for i, other := range rest {
		if other == it || other.Static {
			continue
		}
		// Sorted row-major with no statics to interleave, nothing further
		// down can reach it.
		if ax == axisY && !hasStatics && other.Y > it.Y+it.H {
			break
		}
		if grid.Collides(it, other) {
			resolve(rest[i+1:], other, moveTo+size, ax, hasStatics)
		}
	}
	shift(it, ax, moveTo)
}

// fit pulls a dynamic item inside [0, cols). An item wider than the grid is
// narrowed to the full width.
func fit(it *grid.Item, cols int) {
	if cols <= 0 {
		return
	}
	if it.W > cols {
		it.W = cols
	}
	it.X = max(0, min(it.X, cols-it.W))
}

func get(it *grid.Item, ax axis) int {
	if ax == axisX {
		return it.X
	}
	return it.Y
}

func shift(it *grid.Item, ax axis, v int) {
	if ax == axisX {
		it.X = v
	} else {
		it.Y = v
	}
}

func first(items []*grid.Item, it *grid.Item) *grid.Item {
	for _, other := range items {
		if grid.Collides(other, it) {
			return other
		}
	}
	return nil
}
