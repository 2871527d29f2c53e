// Package grid is the data model and core algorithms of the layout engine.
//
// A [Layout] is an ordered slice of [Item] rectangles placed on an integer
// grid. Order is insertion order and is preserved by every function in this
// package and its subpackages, so callers can match items before and after an
// operation by index.
//
// # Ownership
//
// Functions that return a Layout always return a fresh clone, even when
// nothing changed. Internally the algorithms mutate that clone in place
// (sorting pointer views over it, cascading moves through it), which keeps
// the recursive cascade simple without leaking mutation to callers.
//
// # Collisions
//
// Two items collide when their rectangles overlap with positive area and
// their ids differ. Touching edges do not collide:
//
//	a := grid.Item{ID: "a", X: 0, Y: 0, W: 2, H: 2}
//	b := grid.Item{ID: "b", X: 2, Y: 0, W: 2, H: 2}
//	grid.Collides(&a, &b) // false
//
// # Moving
//
// [MoveElement] relocates one item and cascades displacement onto the items
// it lands on, biased by the active [Compactor]'s axis. Static items win
// every collision; dynamic items yield. Compaction strategies live in
// [github.com/matzehuels/gridstack/pkg/grid/compact] and constraint rules in
// [github.com/matzehuels/gridstack/pkg/grid/constraint].
package grid
