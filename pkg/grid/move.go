package grid

import "slices"

// MoveElement moves item to (x, y) and cascades displacement onto every item
// it lands on. The result is a fresh layout with Moved set on each item the
// cascade touched.
//
// isUserAction enables the "smart" relocation of the first displaced item:
// instead of nudging it one cell along the compaction axis, the cascade first
// tries the slot directly before the dragged item. Only the first level of the
// cascade is treated as a user action.
//
// Static items are immovable unless their Draggable flag is explicitly true.
// A static item that is hit pushes the mover away; with PreventCollision set on
// c, any move that would produce a collision is reverted. With AllowOverlap set
// the item is placed and nothing else moves.
func MoveElement(l Layout, item Item, x, y int, isUserAction bool, c Compactor, cols int) Layout {
	out := l.Clone()
	out.resetMoved()
	target := out.find(item.ID)
	if target == nil {
		return out
	}
	m := mover{layout: out, compactType: c.Type}
	m.move(target, &x, &y, isUserAction, c.PreventCollision, c.AllowOverlap)
	return out
}

type mover struct {
	layout      Layout
	compactType CompactType
}

// move relocates it. A nil coordinate leaves that axis unchanged; the no-op
// short circuit only applies when both are given.
func (m *mover) move(it *Item, x, y *int, isUserAction, preventCollision, allowOverlap bool) {
	if it.Static && !isTrue(it.Draggable) {
		return
	}
	if x != nil && y != nil && it.X == *x && it.Y == *y {
		return
	}

	oldX, oldY := it.X, it.Y
	if x != nil {
		it.X = *x
	}
	if y != nil {
		it.Y = *y
	}
	it.Moved = true

	sorted := sortRefs(m.layout.refs(), m.compactType)
	var movingBack bool
	switch {
	case m.compactType == CompactVertical && y != nil:
		movingBack = oldY >= *y
	case m.compactType == CompactHorizontal && x != nil:
		movingBack = oldX >= *x
	}
	// Moving toward the compaction origin resolves the nearest collisions
	// first, so walk the sort order backwards.
	if movingBack {
		slices.Reverse(sorted)
	}

	collisions := allCollisions(sorted, it)
	if len(collisions) > 0 && allowOverlap {
		return
	}
	if len(collisions) > 0 && preventCollision {
		it.X, it.Y = oldX, oldY
		it.Moved = false
		return
	}

	for _, other := range collisions {
		if other.Moved {
			continue
		}
		if other.Static {
			m.moveAway(other, it, isUserAction)
		} else {
			m.moveAway(it, other, isUserAction)
		}
	}
}

// moveAway displaces itemToMove out of collidesWith.
func (m *mover) moveAway(collidesWith, itemToMove *Item, isUserAction bool) {
	compactH := m.compactType == CompactHorizontal
	compactV := m.compactType == CompactVertical
	preventCollision := collidesWith.Static

	if isUserAction {
		isUserAction = false

		// Candidate slot just before collidesWith on the compaction axis.
		fake := Item{X: itemToMove.X, Y: itemToMove.Y, W: itemToMove.W, H: itemToMove.H}
		if compactH {
			fake.X = max(collidesWith.X-itemToMove.W, 0)
		}
		if compactV {
			fake.Y = max(collidesWith.Y-itemToMove.H, 0)
		}

		first := firstOverlap(m.layout.refs(), &fake)
		collisionNorth := first != nil && first.Y+first.H > collidesWith.Y
		collisionWest := first != nil && collidesWith.X+collidesWith.W > first.X

		switch {
		case first == nil:
			m.move(itemToMove, axisX(compactH, fake.X), axisY(compactV, fake.Y), isUserAction, preventCollision, false)
			return
		case collisionNorth && compactV:
			y := collidesWith.Y + 1
			m.move(itemToMove, nil, &y, isUserAction, preventCollision, false)
			return
		case collisionNorth && m.compactType == CompactNone:
			collidesWith.Y = itemToMove.Y
			itemToMove.Y += itemToMove.H
			return
		case collisionWest && compactH:
			x := itemToMove.X
			m.move(collidesWith, &x, nil, isUserAction, preventCollision, false)
			return
		}
	}

	if !compactH && !compactV {
		return
	}
	m.move(itemToMove, axisX(compactH, itemToMove.X+1), axisY(compactV, itemToMove.Y+1), isUserAction, preventCollision, false)
}

func axisX(ok bool, v int) *int {
	if !ok {
		return nil
	}
	return &v
}

func axisY(ok bool, v int) *int { return axisX(ok, v) }

func isTrue(b *bool) bool { return b != nil && *b }
