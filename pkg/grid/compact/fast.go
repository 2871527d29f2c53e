package compact

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridstack/pkg/grid"
)

// searchCeiling bounds how many rows (or columns) one item may be pushed
// past statics before the fast variants give up and force-place it.
const searchCeiling = 10_000

// compactVerticalFast keeps a tide per column: the lowest occupied row of the
// dynamic items settled so far. Each item drops to the highest tide under it,
// then steps below any static it hits.
func compactVerticalFast(l grid.Layout, cols int, logger *log.Logger) grid.Layout {
	out := l.Clone()
	if cols <= 0 {
		return out
	}
	statics := staticRefs(out)
	fitDynamic(out, cols)
	tide := make([]int, cols)

	for _, it := range grid.SortRefs(grid.Refs(out), grid.CompactVertical) {
		it.Moved = false
		if it.Static {
			continue
		}
		x0, x1 := span(it.X, it.W, cols)
		y := 0
		for x := x0; x < x1; x++ {
			y = max(y, tide[x])
		}
		it.Y = y

		start := y
		for hit := first(statics, it); hit != nil; hit = first(statics, it) {
			it.Y = hit.Y + hit.H
			if it.Y-start > searchCeiling {
				forcePlace(logger, it, tide, "vertical")
				x0, x1 = span(it.X, it.W, cols)
				break
			}
		}
		for x := x0; x < x1; x++ {
			tide[x] = max(tide[x], it.Y+it.H)
		}
	}
	return out
}

// compactHorizontalFast keeps a tide per row: the rightmost occupied column.
// Rows are sparse so tall or far-down items cost nothing extra. Items that cannot fit before the right edge move down a row. An item parked
// at the Infinity sentinel starts at the current bottom.
func compactHorizontalFast(l grid.Layout, cols int, logger *log.Logger) grid.Layout {
	out := l.Clone()
	if cols <= 0 {
		return out
	}
	statics := staticRefs(out)
	fitDynamic(out, cols)
	bottom := 0
	for _, s := range statics {
		bottom = max(bottom, s.Bottom())
	}
	tide := make(map[int]int)

	for _, it := range grid.SortRefs(grid.Refs(out), grid.CompactHorizontal) {
		it.Moved = false
		if it.Static {
			continue
		}
		it.Y = max(it.Y, 0)
		if !grid.IsFinite(it.Y) {
			it.Y = bottom
		}
		start := it.Y
		for {
			x := 0
			for row := it.Y; row < it.Y+it.H; row++ {
				x = max(x, tide[row])
			}
			it.X = x
			for hit := first(statics, it); hit != nil && it.X+it.W <= cols; hit = first(statics, it) {
				it.X = hit.X + hit.W
			}
			fits := it.X+it.W <= cols || (it.X == 0 && it.W > cols)
			if fits && first(statics, it) == nil {
				break
			}
			it.Y++
			if it.Y-start > searchCeiling {
				it.X = 0
				logger.Warn("compaction search exceeded ceiling, force-placing item",
					"compactor", "fast-horizontal", "id", it.ID, "row", it.Y)
				break
			}
		}
		bottom = max(bottom, it.Bottom())
		for row := it.Y; row < it.Y+it.H; row++ {
			tide[row] = max(tide[row], it.X+min(it.W, cols))
		}
	}
	return out
}

func forcePlace(logger *log.Logger, it *grid.Item, tide []int, compactor string) {
	bottom := 0
	for _, t := range tide {
		bottom = max(bottom, t)
	}
	logger.Warn("compaction search exceeded ceiling, force-placing item",
		"compactor", "fast-"+compactor, "id", it.ID, "row", bottom)
	it.X, it.Y = 0, bottom
}

// span clips an item's columns to the grid.
func span(x, w, cols int) (int, int) {
	x0 := max(x, 0)
	x1 := min(x0+w, cols)
	if x1 <= x0 {
		x0, x1 = 0, min(w, cols)
	}
	return x0, x1
}

func fitDynamic(l grid.Layout, cols int) {
	for i := range l {
		if !l[i].Static {
			fit(&l[i], cols)
		}
	}
}

func staticRefs(l grid.Layout) []*grid.Item {
	var out []*grid.Item
	for i := range l {
		if l[i].Static {
			out = append(out, &l[i])
		}
	}
	return out
}
