package grid

import "github.com/matzehuels/gridstack/pkg/geometry"

// ConstraintContext is the read-only view a constraint sees.
type ConstraintContext struct {
	geometry.Params
	Layout Layout
}

// Constraint is a named, pure rule that adjusts a proposed position or size.
// A constraint implements PositionConstraint, SizeConstraint, or both.
type Constraint interface {
	Name() string
}

// PositionConstraint adjusts a proposed (x, y) for item.
type PositionConstraint interface {
	Constraint
	ConstrainPosition(item Item, x, y int, ctx ConstraintContext) (int, int)
}

// SizeConstraint adjusts a proposed (w, h) for item resized from handle.
type SizeConstraint interface {
	Constraint
	ConstrainSize(item Item, w, h int, handle geometry.Handle, ctx ConstraintContext) (int, int)
}
