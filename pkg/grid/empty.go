package grid

// FindEmptyPosition returns the first top-left cell, scanning rows top to
// bottom and columns left to right, where a w by h item fits on a grid of
// cols columns without overlapping anything in l. Items parked at the
// Infinity sentinel are not obstacles.
//
// When w exceeds cols or the dimensions are not positive, no in-grid slot
// can exist and the position just below the layout is returned.
func FindEmptyPosition(l Layout, w, h, cols int) (x, y int) {
	bottom := FiniteBottom(l)
	if cols <= 0 || w <= 0 || h <= 0 || w > cols {
		return 0, bottom
	}

	var obstacles []*Item
	for i := range l {
		if IsFinite(l[i].X) && IsFinite(l[i].Y) {
			obstacles = append(obstacles, &l[i])
		}
	}

	probe := Item{W: w, H: h}
	for y := 0; y <= bottom; y++ {
		for x := 0; x+w <= cols; x++ {
			probe.X, probe.Y = x, y
			if firstOverlap(obstacles, &probe) == nil {
				return x, y
			}
		}
	}
	return 0, bottom
}
