package grid

// CompactType names the axis a compactor pulls items toward.
type CompactType string

const (
	CompactNone       CompactType = ""
	CompactVertical   CompactType = "vertical"
	CompactHorizontal CompactType = "horizontal"
	CompactWrap       CompactType = "wrap"
)

func (t CompactType) String() string {
	if t == CompactNone {
		return "none"
	}
	return string(t)
}

// Sequential reports whether moves under t reorder a reading sequence
// instead of cascading displacement.
func (t CompactType) Sequential() bool { return t == CompactWrap }

// CompactFunc packs a layout on a grid of cols columns.
type CompactFunc func(l Layout, cols int) Layout

// MoveFunc relocates item to (x, y) inside l.
type MoveFunc func(l Layout, item Item, x, y, cols int) Layout

// Compactor is a compaction strategy. It is a plain value: derive variants by
// copying and changing fields.
//
//	c := compact.Vertical()
//	c.PreventCollision = true
type Compactor struct {
	Name string
	Type CompactType

	// AllowOverlap skips collision cascades entirely.
	AllowOverlap bool
	// PreventCollision rejects any move that would land on another item.
	PreventCollision bool

	CompactFn CompactFunc
	MoveFn    MoveFunc
}

// IsZero reports whether c is the zero value, which callers treat as
// "use the default".
func (c Compactor) IsZero() bool {
	return c.Name == "" && c.Type == CompactNone && c.CompactFn == nil && c.MoveFn == nil &&
		!c.AllowOverlap && !c.PreventCollision
}

// Compact packs l. A compactor without a CompactFn returns an unchanged clone.
func (c Compactor) Compact(l Layout, cols int) Layout {
	if c.CompactFn == nil {
		return l.Clone()
	}
	return c.CompactFn(l, cols)
}

// OnMove relocates item. Without a MoveFn the item is placed at (x, y)
// directly, with no cascade.
func (c Compactor) OnMove(l Layout, item Item, x, y, cols int) Layout {
	if c.MoveFn != nil {
		return c.MoveFn(l, item, x, y, cols)
	}
	out := l.Clone()
	if p := out.find(item.ID); p != nil {
		p.X, p.Y, p.Moved = x, y, true
	}
	return out
}

func (c Compactor) String() string {
	if c.Name != "" {
		return c.Name
	}
	return c.Type.String()
}
