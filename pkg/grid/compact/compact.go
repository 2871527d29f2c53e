// Package compact provides the built-in compaction strategies.
//
// Every constructor returns a [grid.Compactor] value. Variants are derived by
// copying and flipping fields, or with [For]:
//
//	c := compact.Vertical()
//	c.PreventCollision = true
//
//	c, err := compact.ByName("horizontal-overlap")
//
// Vertical and horizontal settle a layout by pulling each item toward the
// origin and cascading it past whatever it hits. Wrap treats the grid as one
// reading-order sequence of cells. None leaves items where they are. The
// overlap variants keep their axis but never rearrange on compaction. The fast
// variants trade the recursive cascade for a per-column (or per-row) tide.
package compact

import (
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridstack/pkg/errors"
	"github.com/matzehuels/gridstack/pkg/grid"
)

// Option configures a compactor when it is built.
type Option func(*settings)

type settings struct {
	logger *log.Logger
}

// WithLogger directs compaction diagnostics to l. Only the fast variants log,
// when their search ceiling forces an item into place. A nil l is ignored.
func WithLogger(l *log.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

func newSettings(opts []Option) settings {
	s := settings{logger: log.NewWithOptions(io.Discard, log.Options{})}
	for _, o := range opts {
		o(&s)
	}
	return s
}

// Vertical pulls items upward, row-major.
func Vertical() grid.Compactor {
	return grid.Compactor{Name: "vertical", Type: grid.CompactVertical, CompactFn: compactVertical}
}

// Horizontal pulls items leftward, column-major, wrapping to the next row
// when an item would overflow the right edge.
func Horizontal() grid.Compactor {
	return grid.Compactor{Name: "horizontal", Type: grid.CompactHorizontal, CompactFn: compactHorizontal}
}

// Wrap packs items in reading order, flowing to the next row at the edge.
// Moving an item shifts the others along the sequence instead of cascading.
func Wrap() grid.Compactor {
	return grid.Compactor{Name: "wrap", Type: grid.CompactWrap, CompactFn: compactWrap, MoveFn: moveWrap}
}

// None never rearranges. Moves place the item directly.
func None() grid.Compactor {
	return grid.Compactor{Name: "none", Type: grid.CompactNone}
}

// VerticalOverlap keeps the vertical axis but allows items to overlap.
func VerticalOverlap() grid.Compactor { return overlap(Vertical()) }

// HorizontalOverlap keeps the horizontal axis but allows items to overlap.
func HorizontalOverlap() grid.Compactor { return overlap(Horizontal()) }

// WrapOverlap keeps wrap move semantics but never packs.
func WrapOverlap() grid.Compactor { return overlap(Wrap()) }

// NoneOverlap is None with overlap explicitly allowed.
func NoneOverlap() grid.Compactor { return overlap(None()) }

// FastVertical is Vertical implemented with a per-column tide.
func FastVertical(opts ...Option) grid.Compactor {
	s := newSettings(opts)
	return grid.Compactor{Name: "fast-vertical", Type: grid.CompactVertical, CompactFn: func(l grid.Layout, cols int) grid.Layout {
		return compactVerticalFast(l, cols, s.logger)
	}}
}

// FastHorizontal is Horizontal implemented with a per-row tide.
func FastHorizontal(opts ...Option) grid.Compactor {
	s := newSettings(opts)
	return grid.Compactor{Name: "fast-horizontal", Type: grid.CompactHorizontal, CompactFn: func(l grid.Layout, cols int) grid.Layout {
		return compactHorizontalFast(l, cols, s.logger)
	}}
}

func overlap(c grid.Compactor) grid.Compactor {
	c.Name += "-overlap"
	c.AllowOverlap = true
	c.CompactFn = nil
	return c
}

// For returns the standard compactor for t with the given flags applied.
func For(t grid.CompactType, allowOverlap, preventCollision bool) grid.Compactor {
	var c grid.Compactor
	switch t {
	case grid.CompactVertical:
		c = Vertical()
	case grid.CompactHorizontal:
		c = Horizontal()
	case grid.CompactWrap:
		c = Wrap()
	default:
		c = None()
	}
	if allowOverlap {
		c = overlap(c)
	}
	c.PreventCollision = preventCollision
	return c
}

var registry = map[string]func(...Option) grid.Compactor{
	"vertical":           plain(Vertical),
	"horizontal":         plain(Horizontal),
	"wrap":               plain(Wrap),
	"none":               plain(None),
	"vertical-overlap":   plain(VerticalOverlap),
	"horizontal-overlap": plain(HorizontalOverlap),
	"wrap-overlap":       plain(WrapOverlap),
	"none-overlap":       plain(NoneOverlap),
	"fast-vertical":      FastVertical,
	"fast-horizontal":    FastHorizontal,
}

// plain adapts a constructor that takes no options.
func plain(ctor func() grid.Compactor) func(...Option) grid.Compactor {
	return func(...Option) grid.Compactor { return ctor() }
}

// Names returns every registered compactor name, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ByName returns the compactor registered as name, built with opts. Matching
// ignores case and surrounding whitespace; the empty string selects vertical.
func ByName(name string, opts ...Option) (grid.Compactor, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return Vertical(), nil
	}
	ctor, ok := registry[key]
	if !ok {
		return grid.Compactor{}, errors.New(errors.ErrCodeInvalidOptions,
			"unknown compactor %q (must be one of %s)", name, strings.Join(Names(), ", "))
	}
	return ctor(opts...), nil
}
