package grid

// CorrectBounds returns a clone of l with every item pulled inside a grid of
// cols columns. An item overflowing the right edge is shifted left; one still
// past the left edge is pinned to x=0 and stretched to the full width.
// Static items that end up overlapping another item are pushed down until
// they are clear.
func CorrectBounds(l Layout, cols int) Layout {
	out := l.Clone()
	var obstacles []*Item
	for i := range out {
		if out[i].Static {
			obstacles = append(obstacles, &out[i])
		}
	}
	for i := range out {
		it := &out[i]
		if it.X+it.W > cols {
			it.X = cols - it.W
		}
		if it.X < 0 {
			it.X = 0
			it.W = cols
		}
		if !it.Static {
			obstacles = append(obstacles, it)
			continue
		}
		for firstCollision(obstacles, it) != nil {
			it.Y++
		}
	}
	return out
}
