// Package render draws grid layouts for humans.
//
// # Overview
//
// Two previews are provided:
//
//   - [Terminal] paints the layout as a character grid, one block of
//     characters per cell, with each item in its own color (lipgloss).
//   - [SVG] places every item at its pixel box, as computed by
//     [geometry.ItemPosition], and renders the result with Graphviz.
//
// [Table] lists item geometry and flags as a bordered table.
//
// # Terminal Preview
//
//	fmt.Println(render.Terminal(layout, 12))
//	fmt.Println(render.Terminal(layout, 12, render.WithPlain(), render.WithCellWidth(3)))
//
// Empty cells print as '.', item cells as '#' with the item id written into
// its top-left corner, and cells claimed by more than one item as 'X'.
// Items parked at the [grid.Infinity] sentinel are not drawn.
//
// # SVG Preview
//
//	dot := render.ToDOT(layout, params)
//	svg, err := render.RenderSVG(ctx, dot)
//
// Nodes are pinned with neato so Graphviz draws the boxes where the grid
// puts them instead of laying them out itself. When params has no container
// width, [DefaultContainerWidth] is used.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering and [github.com/charmbracelet/lipgloss] for terminal styling.
package render
