package grid

// Collides reports whether a and b overlap with positive area. An item never
// collides with itself, matched by id.
func Collides(a, b *Item) bool {
	if a.ID == b.ID {
		return false
	}
	return overlaps(a, b)
}

func overlaps(a, b *Item) bool {
	return a.X+a.W > b.X && a.X < b.X+b.W && a.Y+a.H > b.Y && a.Y < b.Y+b.H
}

// FirstCollision returns the first item in l that collides with it, or false.
func FirstCollision(l Layout, it Item) (Item, bool) {
	if p := firstCollision(l.refs(), &it); p != nil {
		return *p, true
	}
	return Item{}, false
}

// Collisions returns every item in l that collides with it, in layout order.
func Collisions(l Layout, it Item) []Item {
	var out []Item
	for _, p := range allCollisions(l.refs(), &it) {
		out = append(out, *p)
	}
	return out
}

// HasOverlaps reports whether any two items of l collide.
func HasOverlaps(l Layout) bool {
	for i := range l {
		for j := i + 1; j < len(l); j++ {
			if Collides(&l[i], &l[j]) {
				return true
			}
		}
	}
	return false
}

func firstCollision(items []*Item, it *Item) *Item {
	for _, other := range items {
		if Collides(other, it) {
			return other
		}
	}
	return nil
}

func firstOverlap(items []*Item, it *Item) *Item {
	for _, other := range items {
		if overlaps(other, it) {
			return other
		}
	}
	return nil
}

func allCollisions(items []*Item, it *Item) []*Item {
	var out []*Item
	for _, other := range items {
		if Collides(other, it) {
			out = append(out, other)
		}
	}
	return out
}

// Bottom returns the lowest occupied row boundary: the maximum y+h, or 0 for
// an empty layout.
func Bottom(l Layout) int {
	b := 0
	for i := range l {
		b = max(b, l[i].Y+l[i].H)
	}
	return b
}

// FiniteBottom is Bottom ignoring items parked at the Infinity sentinel.
func FiniteBottom(l Layout) int {
	b := 0
	for i := range l {
		if IsFinite(l[i].Y) {
			b = max(b, l[i].Y+l[i].H)
		}
	}
	return b
}

// Statics returns the static items of l in layout order.
func Statics(l Layout) Layout {
	var out Layout
	for i := range l {
		if l[i].Static {
			out = append(out, l[i])
		}
	}
	return out
}
