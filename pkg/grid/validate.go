package grid

import (
	"fmt"

	"github.com/matzehuels/gridstack/pkg/errors"
)

// Validate checks the structural rules every layout must satisfy: non-empty
// unique ids, positive sizes, consistent min/max bounds, and known resize
// handles. Positions are not checked here; out-of-range positions are
// repairable with CorrectBounds.
//
// The returned error is an *errors.ValidationError listing every issue.
func Validate(l Layout) error {
	v := errors.NewValidator(errors.ErrCodeInvalidLayout)
	seen := make(map[string]int, len(l))
	for i := range l {
		validateItem(v, fmt.Sprintf("layout[%d]", i), &l[i])
		if l[i].ID == "" {
			continue
		}
		if first, dup := seen[l[i].ID]; dup {
			v.Addf(fmt.Sprintf("layout[%d].id", i), "duplicate id %q (first at layout[%d])", l[i].ID, first)
			continue
		}
		seen[l[i].ID] = i
	}
	return v.Err()
}

// ValidateItem checks a single item in isolation.
func ValidateItem(it Item) error {
	v := errors.NewValidator(errors.ErrCodeInvalidLayout)
	validateItem(v, "item", &it)
	return v.Err()
}

func validateItem(v *errors.Validator, path string, it *Item) {
	v.Check(it.ID != "", path+".id", "must not be empty")
	v.Check(it.W > 0, path+".w", "must be positive, got %d", it.W)
	v.Check(it.H > 0, path+".h", "must be positive, got %d", it.H)
	v.Check(it.MinW >= 0, path+".minW", "must not be negative, got %d", it.MinW)
	v.Check(it.MinH >= 0, path+".minH", "must not be negative, got %d", it.MinH)
	v.Check(it.MaxW >= 0, path+".maxW", "must not be negative, got %d", it.MaxW)
	v.Check(it.MaxH >= 0, path+".maxH", "must not be negative, got %d", it.MaxH)
	if it.MinW > 0 && it.MaxW > 0 {
		v.Check(it.MinW <= it.MaxW, path+".minW", "exceeds maxW (%d > %d)", it.MinW, it.MaxW)
	}
	if it.MinH > 0 && it.MaxH > 0 {
		v.Check(it.MinH <= it.MaxH, path+".minH", "exceeds maxH (%d > %d)", it.MinH, it.MaxH)
	}
	for j, h := range it.ResizeHandles {
		v.Check(h.Valid(), fmt.Sprintf("%s.resizeHandles[%d]", path, j), "unknown handle %q", h)
	}
}

// CheckCommitted verifies the invariants of a layout produced by a committed
// operation: coordinates are non-negative and, unless overlap is allowed, no
// two items collide.
func CheckCommitted(l Layout, allowOverlap bool) error {
	v := errors.NewValidator(errors.ErrCodeInternal)
	for i := range l {
		path := fmt.Sprintf("layout[%d]", i)
		v.Check(l[i].X >= 0, path+".x", "must not be negative, got %d", l[i].X)
		v.Check(l[i].Y >= 0, path+".y", "must not be negative, got %d", l[i].Y)
	}
	if !allowOverlap {
		for i := range l {
			for j := i + 1; j < len(l); j++ {
				v.Check(!Collides(&l[i], &l[j]), fmt.Sprintf("layout[%d]", j), "overlaps %q", l[i].ID)
			}
		}
	}
	return v.Err()
}
