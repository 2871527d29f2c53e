package grid

import (
	"cmp"
	"slices"
)

// SortRowCol returns a clone of l ordered by (y, x). Ties keep statics first,
// then layout order.
func SortRowCol(l Layout) Layout {
	return derefs(sortRefs(l.Clone().refs(), CompactVertical))
}

// SortColRow returns a clone of l ordered by (x, y), statics first on ties.
func SortColRow(l Layout) Layout {
	return derefs(sortRefs(l.Clone().refs(), CompactHorizontal))
}

// SortFor returns a clone of l in the order the given compaction type
// processes items. Types without an ordering keep layout order.
func SortFor(l Layout, t CompactType) Layout {
	return derefs(sortRefs(l.Clone().refs(), t))
}

func sortRefs(items []*Item, t CompactType) []*Item {
	switch t {
	case CompactVertical, CompactWrap:
		slices.SortStableFunc(items, compareRowCol)
	case CompactHorizontal:
		slices.SortStableFunc(items, compareColRow)
	}
	return items
}

// SortRefs sorts pointer views in place for the given compaction type. It is
// exported for the compact package, which works on the same views.
func SortRefs(items []*Item, t CompactType) []*Item { return sortRefs(items, t) }

// Refs returns pointers into l in layout order. Mutating through them
// mutates l.
func Refs(l Layout) []*Item { return l.refs() }

func compareRowCol(a, b *Item) int {
	return cmp.Or(cmp.Compare(a.Y, b.Y), cmp.Compare(a.X, b.X), staticFirst(a, b))
}

func compareColRow(a, b *Item) int {
	return cmp.Or(cmp.Compare(a.X, b.X), cmp.Compare(a.Y, b.Y), staticFirst(a, b))
}

func staticFirst(a, b *Item) int {
	switch {
	case a.Static == b.Static:
		return 0
	case a.Static:
		return -1
	default:
		return 1
	}
}

func derefs(items []*Item) Layout {
	out := make(Layout, len(items))
	for i, p := range items {
		out[i] = *p
	}
	return out
}
