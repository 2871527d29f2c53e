// Package responsive maps a container width to a breakpoint and resolves the
// layout to show at that breakpoint.
//
// Breakpoints are named pixel thresholds, each with its own column count. When
// no layout is stored for the active breakpoint, a [Strategy] decides what to
// do: derive one from the nearest larger breakpoint (the default), derive and
// log a warning, fail, or start empty.
//
//	bps := responsive.Breakpoints{
//	    {Name: "lg", Width: 1200, Cols: 12},
//	    {Name: "md", Width: 996, Cols: 10},
//	    {Name: "sm", Width: 768, Cols: 6},
//	}
//	bp := bps.ForWidth(1000) // "md"
//	l, err := responsive.NewResolver(bps, responsive.ResolverOptions{}).Resolve(layouts, bp, "lg")
package responsive

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridstack/pkg/errors"
	"github.com/matzehuels/gridstack/pkg/grid"
	"github.com/matzehuels/gridstack/pkg/grid/compact"
)

// Breakpoint is a named container-width threshold.
type Breakpoint struct {
	Name  string  `json:"name" toml:"name"`
	Width float64 `json:"width" toml:"width"`
	Cols  int     `json:"cols" toml:"cols"`
}

// Breakpoints is a set of breakpoints in any order.
type Breakpoints []Breakpoint

// Sorted returns a copy ordered ascending by width.
func (b Breakpoints) Sorted() Breakpoints {
	out := slices.Clone(b)
	slices.SortStableFunc(out, func(x, y Breakpoint) int { return cmp.Compare(x.Width, y.Width) })
	return out
}

// Names returns breakpoint names ascending by width.
func (b Breakpoints) Names() []string {
	sorted := b.Sorted()
	names := make([]string, len(sorted))
	for i, bp := range sorted {
		names[i] = bp.Name
	}
	return names
}

// Validate rejects an empty set, unnamed or duplicate breakpoints, and any
// breakpoint without a positive column count.
func (b Breakpoints) Validate() error {
	v := errors.NewValidator(errors.ErrCodeInvalidConfig)
	v.Check(len(b) > 0, "breakpoints", "at least one breakpoint is required")
	seen := make(map[string]bool, len(b))
	for i, bp := range b {
		path := fmt.Sprintf("breakpoints[%d]", i)
		if bp.Name == "" {
			v.Addf(path+".name", "must not be empty")
		} else {
			path = fmt.Sprintf("breakpoints.%s", bp.Name)
			v.Check(!seen[bp.Name], path, "duplicate breakpoint")
			seen[bp.Name] = true
		}
		v.Check(bp.Cols > 0, path+".cols", "missing column count")
		v.Check(bp.Width >= 0, path+".width", "must not be negative, got %v", bp.Width)
	}
	return v.Err()
}

// ForWidth returns the largest breakpoint whose threshold is at most width,
// or the smallest breakpoint when width is below every threshold. It returns
// "" for an empty set.
func (b Breakpoints) ForWidth(width float64) string {
	sorted := b.Sorted()
	if len(sorted) == 0 {
		return ""
	}
	name := sorted[0].Name
	for _, bp := range sorted[1:] {
		if bp.Width <= width {
			name = bp.Name
		}
	}
	return name
}

// Cols returns the column count of the named breakpoint.
func (b Breakpoints) Cols(name string) (int, error) {
	for _, bp := range b {
		if bp.Name == name {
			if bp.Cols <= 0 {
				return 0, errors.New(errors.ErrCodeInvalidConfig, "breakpoint %q: missing column count", name)
			}
			return bp.Cols, nil
		}
	}
	return 0, errors.New(errors.ErrCodeNotFound, "unknown breakpoint %q", name)
}

// BreakpointForWidth is b.ForWidth(width).
func BreakpointForWidth(b Breakpoints, width float64) string { return b.ForWidth(width) }

// ColsFor is b.Cols(name).
func ColsFor(b Breakpoints, name string) (int, error) { return b.Cols(name) }

// =============================================================================
// Missing Layout Strategies
// =============================================================================

// Strategy decides what to do when no layout is stored for a breakpoint.
type Strategy string

const (
	StrategyDerive Strategy = "derive"
	StrategyWarn   Strategy = "warn"
	StrategyError  Strategy = "error"
	StrategyEmpty  Strategy = "empty"
)

// ParseStrategy parses a strategy name. The empty string selects derive.
func ParseStrategy(s string) (Strategy, error) {
	switch st := Strategy(strings.ToLower(strings.TrimSpace(s))); st {
	case "":
		return StrategyDerive, nil
	case StrategyDerive, StrategyWarn, StrategyError, StrategyEmpty:
		return st, nil
	}
	return "", errors.New(errors.ErrCodeInvalidConfig, "unknown missing-layout strategy %q (must be derive, warn, error or empty)", s)
}

// Layouts holds one layout per breakpoint name.
type Layouts map[string]grid.Layout

// ResolveLayout returns the layout to show at breakpoint bp on a grid of cols
// columns. An explicit layout for bp is returned as a clone. Otherwise the
// strategy applies; derive walks from bp toward larger breakpoints for the
// nearest stored layout, falls back to last's, then bounds-corrects and
// compacts the result for cols. A zero compactor means vertical.
//
// ResolveLayout does not remember warnings; use a Resolver for warn-once
// behavior.
func ResolveLayout(layouts Layouts, b Breakpoints, bp, last string, cols int, c grid.Compactor, s Strategy) (grid.Layout, error) {
	return resolve(layouts, b, bp, last, cols, c, s, func(string) {})
}

func resolve(layouts Layouts, b Breakpoints, bp, last string, cols int, c grid.Compactor, s Strategy, warn func(bp string)) (grid.Layout, error) {
	if l, ok := layouts[bp]; ok {
		return l.Clone(), nil
	}

	switch s {
	case StrategyError:
		return nil, errors.New(errors.ErrCodeMissingLayout, "no layout for breakpoint %q", bp)
	case StrategyEmpty:
		return grid.Layout{}, nil
	case StrategyWarn:
		warn(bp)
	}

	if cols <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "breakpoint %q: missing column count", bp)
	}
	src := derivationSource(layouts, b, bp, last)
	if c.IsZero() {
		c = compact.Vertical()
	}
	return c.Compact(grid.CorrectBounds(src, cols), cols), nil
}

// derivationSource finds the nearest stored layout at or above bp.
func derivationSource(layouts Layouts, b Breakpoints, bp, last string) grid.Layout {
	sorted := b.Sorted()
	start := slices.IndexFunc(sorted, func(x Breakpoint) bool { return x.Name == bp })
	if start >= 0 {
		for _, above := range sorted[start:] {
			if l, ok := layouts[above.Name]; ok {
				return l
			}
		}
	}
	if l, ok := layouts[last]; ok {
		return l
	}
	return grid.Layout{}
}

// =============================================================================
// Resolver
// =============================================================================

// ResolverOptions configures a Resolver.
type ResolverOptions struct {
	// Compactor settles derived layouts. The zero value means vertical.
	Compactor grid.Compactor
	// Strategy applies when a breakpoint has no stored layout. Empty means derive.
	Strategy Strategy
	// Logger receives the warn strategy's diagnostics.
	Logger *log.Logger
}

// Resolver resolves layouts for a fixed breakpoint set and remembers which
// breakpoints it already warned about. It is safe for concurrent use.
type Resolver struct {
	breakpoints Breakpoints
	opts        ResolverOptions

	mu     sync.Mutex
	warned map[string]bool
}

// NewResolver creates a resolver for b.
func NewResolver(b Breakpoints, opts ResolverOptions) *Resolver {
	if opts.Strategy == "" {
		opts.Strategy = StrategyDerive
	}
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Resolver{breakpoints: b.Sorted(), opts: opts, warned: make(map[string]bool)}
}

// Breakpoints returns the resolver's breakpoints ascending by width.
func (r *Resolver) Breakpoints() Breakpoints { return slices.Clone(r.breakpoints) }

// ForWidth returns the breakpoint active at width.
func (r *Resolver) ForWidth(width float64) string { return r.breakpoints.ForWidth(width) }

// Resolve returns the layout for bp using that breakpoint's column count.
func (r *Resolver) Resolve(layouts Layouts, bp, last string) (grid.Layout, error) {
	cols, err := r.breakpoints.Cols(bp)
	if err != nil {
		return nil, err
	}
	return resolve(layouts, r.breakpoints, bp, last, cols, r.opts.Compactor, r.opts.Strategy, r.warnOnce)
}

// ResolveWidth resolves the layout for the breakpoint active at width.
func (r *Resolver) ResolveWidth(layouts Layouts, width float64, last string) (string, grid.Layout, error) {
	bp := r.ForWidth(width)
	l, err := r.Resolve(layouts, bp, last)
	return bp, l, err
}

func (r *Resolver) warnOnce(bp string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.warned[bp] {
		return
	}
	r.warned[bp] = true
	r.opts.Logger.Warn("missing layout, deriving from a larger breakpoint", "breakpoint", bp)
}
