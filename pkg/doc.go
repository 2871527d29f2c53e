// Package pkg provides the libraries behind gridstack, a grid layout engine.
//
// # Overview
//
// A layout is a list of rectangular items on a grid with a fixed number of
// columns and unbounded rows. Items are moved and resized by user actions;
// after each change the layout is compacted so items settle toward the top
// (or the left), colliding items are pushed out of the way, and static items
// never move. The pkg directory is organized as:
//
//  1. [geometry] - Grid/pixel conversion, spacing and resize handles
//  2. [grid] - Items, layouts, collisions, moves and the compactor contract
//  3. [grid/compact] - Vertical, horizontal, wrap and fast compactors
//  4. [grid/constraint] - Position and size constraints
//  5. [engine] - The state machine that applies commands to a layout
//  6. [responsive] - Breakpoints and per-breakpoint layout resolution
//  7. [io], [store], [render] - Layout files, snapshot storage and previews
//
// # Architecture
//
// The data flow for one command:
//
//	Command (move, resize, add, remove, compact, reflow)
//	         ↓
//	    [engine] validates the command against the current state
//	         ↓
//	    [grid] moves the item and resolves collisions
//	         ↓
//	    [grid/compact] settles the layout
//	         ↓
//	    new State, delivered to subscribers
//
// # Quick Start
//
//	eng, _ := engine.New(engine.Options{
//	    Cols: 12,
//	    Layout: grid.Layout{
//	        {ID: "a", X: 0, Y: 0, W: 4, H: 2},
//	        {ID: "b", X: 4, Y: 0, W: 4, H: 2},
//	    },
//	})
//	state, err := eng.Move("a", 4, 0)
//
// # Supporting packages
//
//   - [config]: TOML configuration
//   - [errors]: Structured errors with codes and validation issues
//   - [observability]: Hooks for command and store events
//   - [buildinfo]: Version information
package pkg
