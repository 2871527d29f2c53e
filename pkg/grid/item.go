package grid

import (
	"encoding/json"
	"math"
	"slices"

	"github.com/matzehuels/gridstack/pkg/geometry"
)

// Infinity is the sentinel coordinate for "below everything". Moving an item
// to y=Infinity and compacting places it at the very bottom. It is small
// enough that Infinity+h never overflows an int.
const Infinity = 1 << 30

// IsFinite reports whether v is a real coordinate rather than the sentinel.
func IsFinite(v int) bool { return v > -Infinity && v < Infinity }

// Item is one grid-resident rectangle.
//
// Min/max bounds use zero for "unset". Draggable, Resizable and Bounded are
// tri-state: nil inherits the grid-level setting. Moved is transient and only
// meaningful during a single operation. Constraints carry behavior and do not
// survive serialization; re-attach them after decoding.
type Item struct {
	ID string `json:"id" bson:"id" toml:"id"`
	X  int    `json:"x" bson:"x" toml:"x"`
	Y  int    `json:"y" bson:"y" toml:"y"`
	W  int    `json:"w" bson:"w" toml:"w"`
	H  int    `json:"h" bson:"h" toml:"h"`

	MinW int `json:"minW,omitempty" bson:"min_w,omitempty" toml:"min_w,omitempty"`
	MaxW int `json:"maxW,omitempty" bson:"max_w,omitempty" toml:"max_w,omitempty"`
	MinH int `json:"minH,omitempty" bson:"min_h,omitempty" toml:"min_h,omitempty"`
	MaxH int `json:"maxH,omitempty" bson:"max_h,omitempty" toml:"max_h,omitempty"`

	Static        bool              `json:"static,omitempty" bson:"static,omitempty" toml:"static,omitempty"`
	Draggable     *bool             `json:"draggable,omitempty" bson:"draggable,omitempty" toml:"draggable,omitempty"`
	Resizable     *bool             `json:"resizable,omitempty" bson:"resizable,omitempty" toml:"resizable,omitempty"`
	Bounded       *bool             `json:"bounded,omitempty" bson:"bounded,omitempty" toml:"bounded,omitempty"`
	ResizeHandles []geometry.Handle `json:"resizeHandles,omitempty" bson:"resize_handles,omitempty" toml:"resize_handles,omitempty"`

	Moved bool `json:"moved,omitempty" bson:"-" toml:"-"`

	Constraints []Constraint    `json:"-" bson:"-" toml:"-"`
	Data        json.RawMessage `json:"data,omitempty" bson:"data,omitempty" toml:"-"`
}

// Clone returns a deep copy of the item. Constraint values are behavior and
// are shared; the slice holding them is not.
func (it Item) Clone() Item {
	out := it
	out.Draggable = cloneBool(it.Draggable)
	out.Resizable = cloneBool(it.Resizable)
	out.Bounded = cloneBool(it.Bounded)
	out.ResizeHandles = slices.Clone(it.ResizeHandles)
	out.Constraints = slices.Clone(it.Constraints)
	if it.Data != nil {
		out.Data = slices.Clone(it.Data)
	}
	return out
}

// IsDraggable resolves the tri-state Draggable flag. Static items are not
// draggable unless Draggable is explicitly true.
func (it Item) IsDraggable(def bool) bool {
	if it.Draggable != nil {
		return *it.Draggable
	}
	return def && !it.Static
}

// IsResizable resolves the tri-state Resizable flag like IsDraggable.
func (it Item) IsResizable(def bool) bool {
	if it.Resizable != nil {
		return *it.Resizable
	}
	return def && !it.Static
}

// IsBounded resolves the tri-state Bounded flag.
func (it Item) IsBounded(def bool) bool {
	if it.Bounded != nil {
		return *it.Bounded
	}
	return def
}

// Right returns the exclusive right edge.
func (it Item) Right() int { return it.X + it.W }

// Bottom returns the exclusive bottom edge.
func (it Item) Bottom() int { return it.Y + it.H }

// Bool returns a pointer to b, for setting tri-state flags.
func Bool(b bool) *bool { return &b }

func cloneBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}

// Layout is an ordered collection of items with unique ids.
type Layout []Item

// Clone returns a deep copy of the layout. The result shares no item, slice
// or pointer with l. A nil layout clones to an empty, non-nil layout.
func (l Layout) Clone() Layout {
	out := make(Layout, len(l))
	for i := range l {
		out[i] = l[i].Clone()
	}
	return out
}

// Item returns the item with the given id.
func (l Layout) Item(id string) (Item, bool) {
	if p := l.find(id); p != nil {
		return *p, true
	}
	return Item{}, false
}

// Index returns the position of the item with the given id, or -1.
func (l Layout) Index(id string) int {
	return slices.IndexFunc(l, func(it Item) bool { return it.ID == id })
}

// IDs returns the item ids in layout order.
func (l Layout) IDs() []string {
	ids := make([]string, len(l))
	for i := range l {
		ids[i] = l[i].ID
	}
	return ids
}

// Normalize returns a clone with every transient Moved flag cleared.
func (l Layout) Normalize() Layout {
	out := l.Clone()
	out.resetMoved()
	return out
}

// Equal reports whether two layouts hold the same items, in the same order,
// with the same geometry and flags. Constraints are compared by count only.
func (l Layout) Equal(other Layout) bool {
	if len(l) != len(other) {
		return false
	}
	for i := range l {
		if !itemsEqual(&l[i], &other[i]) {
			return false
		}
	}
	return true
}

func itemsEqual(a, b *Item) bool {
	return a.ID == b.ID && a.X == b.X && a.Y == b.Y && a.W == b.W && a.H == b.H &&
		a.MinW == b.MinW && a.MaxW == b.MaxW && a.MinH == b.MinH && a.MaxH == b.MaxH &&
		a.Static == b.Static && a.Moved == b.Moved &&
		boolPtrEqual(a.Draggable, b.Draggable) && boolPtrEqual(a.Resizable, b.Resizable) &&
		boolPtrEqual(a.Bounded, b.Bounded) &&
		slices.Equal(a.ResizeHandles, b.ResizeHandles) &&
		len(a.Constraints) == len(b.Constraints) &&
		string(a.Data) == string(b.Data)
}

func boolPtrEqual(a, b *bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// refs returns pointers into l in layout order.
func (l Layout) refs() []*Item {
	out := make([]*Item, len(l))
	for i := range l {
		out[i] = &l[i]
	}
	return out
}

func (l Layout) find(id string) *Item {
	for i := range l {
		if l[i].ID == id {
			return &l[i]
		}
	}
	return nil
}

func (l Layout) resetMoved() {
	for i := range l {
		l[i].Moved = false
	}
}

// RoundCoord normalizes a fractional drag coordinate to a grid index.
// Non-finite values map to the Infinity sentinel with their sign.
func RoundCoord(v float64) int {
	switch {
	case math.IsNaN(v):
		return 0
	case v >= Infinity:
		return Infinity
	case v <= -Infinity:
		return -Infinity
	}
	return int(math.Floor(v + 0.5))
}
