package geometry

import "fmt"

// Handle is one of the eight compass resize grips.
type Handle string

const (
	HandleN  Handle = "n"
	HandleNE Handle = "ne"
	HandleE  Handle = "e"
	HandleSE Handle = "se"
	HandleS  Handle = "s"
	HandleSW Handle = "sw"
	HandleW  Handle = "w"
	HandleNW Handle = "nw"
)

// Handles lists every valid handle in clockwise order starting at north.
var Handles = []Handle{HandleN, HandleNE, HandleE, HandleSE, HandleS, HandleSW, HandleW, HandleNW}

// ParseHandle validates a handle name. The empty string maps to the default
// south-east grip.
func ParseHandle(s string) (Handle, error) {
	if s == "" {
		return HandleSE, nil
	}
	h := Handle(s)
	if !h.Valid() {
		return "", fmt.Errorf("invalid resize handle %q (must be one of n, ne, e, se, s, sw, w, nw)", s)
	}
	return h, nil
}

// Valid reports whether h is one of the eight handles.
func (h Handle) Valid() bool {
	switch h {
	case HandleN, HandleNE, HandleE, HandleSE, HandleS, HandleSW, HandleW, HandleNW:
		return true
	}
	return false
}

// MovesWest reports whether resizing from h shifts the item's left edge.
func (h Handle) MovesWest() bool { return h == HandleW || h == HandleNW || h == HandleSW }

// MovesNorth reports whether resizing from h shifts the item's top edge.
func (h Handle) MovesNorth() bool { return h == HandleN || h == HandleNE || h == HandleNW }

// Box is an axis-aligned pixel rectangle.
type Box struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ResizeInDirection applies the anchor rules of handle h to a candidate box
// produced by a resize gesture. current is the box before the gesture step.
//
// East growth that would cross containerWidth keeps the current width. West
// growth keeps the east edge fixed; if that would push left past 0, the box
// is pinned to left=0 with its east edge unchanged. North growth keeps the
// south edge fixed and is rejected when top would go negative. South growth
// is unbounded. Diagonal handles apply the east/west rule first, then the
// north/south rule.
func ResizeInDirection(h Handle, current, candidate Box, containerWidth float64) Box {
	switch h {
	case HandleN:
		return resizeNorth(current, candidate)
	case HandleE:
		return resizeEast(current, candidate, containerWidth)
	case HandleS:
		return resizeSouth(current, candidate)
	case HandleW:
		return resizeWest(current, candidate, containerWidth)
	case HandleNE:
		return resizeNorth(current, resizeEast(current, candidate, containerWidth))
	case HandleNW:
		return resizeNorth(current, resizeWest(current, candidate, containerWidth))
	case HandleSE:
		return resizeSouth(current, resizeEast(current, candidate, containerWidth))
	case HandleSW:
		return resizeSouth(current, resizeWest(current, candidate, containerWidth))
	default:
		return candidate
	}
}

func resizeNorth(current, c Box) Box {
	top := current.Top - (c.Height - current.Height)
	height := c.Height
	if top < 0 {
		height = current.Height
	}
	return Box{Left: c.Left, Width: c.Width, Height: height, Top: max(0, top)}
}

func resizeEast(current, c Box, containerWidth float64) Box {
	return Box{
		Top:    c.Top,
		Height: c.Height,
		Width:  constrainWidth(current.Left, current.Width, c.Width, containerWidth),
		Left:   max(0, c.Left),
	}
}

func resizeWest(current, c Box, containerWidth float64) Box {
	left := current.Left - (c.Width - current.Width)
	width := c.Width
	if left < 0 {
		// Pin to the container edge, east edge stays where it was.
		width = current.Left + current.Width
		left = 0
	}
	return Box{
		Top:    max(0, c.Top),
		Height: c.Height,
		Width:  constrainWidth(left, current.Width, width, containerWidth),
		Left:   left,
	}
}

func resizeSouth(current, c Box) Box {
	height := c.Height
	if c.Top < 0 {
		height = current.Height
	}
	return Box{Left: c.Left, Width: c.Width, Height: height, Top: max(0, c.Top)}
}

func constrainWidth(left, currentWidth, width, containerWidth float64) float64 {
	if containerWidth > 0 && left+width > containerWidth {
		return currentWidth
	}
	return width
}
