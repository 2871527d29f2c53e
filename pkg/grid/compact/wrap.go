package compact

import (
	"cmp"
	"slices"

	"github.com/matzehuels/gridstack/pkg/grid"
)

// seq flattens a cell to its reading-order index.
func seq(x, y, cols int) int { return y*cols + x }

func compactWrap(l grid.Layout, cols int) grid.Layout {
	out := l.Clone()
	if cols <= 0 {
		return out
	}

	var placed []*grid.Item
	var dynamic []*grid.Item
	for i := range out {
		out[i].Moved = false
		if out[i].Static {
			placed = append(placed, &out[i])
		} else {
			fit(&out[i], cols)
			dynamic = append(dynamic, &out[i])
		}
	}
	slices.SortStableFunc(dynamic, func(a, b *grid.Item) int {
		return cmp.Compare(seq(a.X, a.Y, cols), seq(b.X, b.Y, cols))
	})

	cursor := 0
	for _, it := range dynamic {
		pos := cursor
		for {
			x, y := pos%cols, pos/cols
			if x > 0 && x+it.W > cols {
				pos = seq(0, y+1, cols)
				continue
			}
			it.X, it.Y = x, y
			if first(placed, it) == nil {
				break
			}
			pos++
		}
		placed = append(placed, it)
		cursor = pos + it.W
	}
	return out
}

// moveWrap places item at (x, y) and shifts the dynamic items between its
// old and new sequence positions one slot toward the gap it left.
func moveWrap(l grid.Layout, item grid.Item, x, y, cols int) grid.Layout {
	out := l.Clone()
	idx := out.Index(item.ID)
	if idx < 0 || cols <= 0 {
		return out
	}
	moved := &out[idx]
	oldPos := seq(moved.X, moved.Y, cols)
	newPos := seq(x, y, cols)

	if newPos != oldPos {
		for i := range out {
			other := &out[i]
			if i == idx || other.Static {
				continue
			}
			p := seq(other.X, other.Y, cols)
			switch {
			case newPos < oldPos && p >= newPos && p < oldPos:
				p++
			case newPos > oldPos && p > oldPos && p <= newPos:
				p--
			default:
				continue
			}
			other.X, other.Y = p%cols, p/cols
		}
	}

	moved.X, moved.Y, moved.Moved = x, y, true
	return out
}
