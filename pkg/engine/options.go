package engine

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridstack/pkg/errors"
	"github.com/matzehuels/gridstack/pkg/geometry"
	"github.com/matzehuels/gridstack/pkg/grid"
	"github.com/matzehuels/gridstack/pkg/grid/compact"
	"github.com/matzehuels/gridstack/pkg/grid/constraint"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultCols is the number of grid columns.
	DefaultCols = 12

	// DefaultRowHeight is the pixel height of one row.
	DefaultRowHeight = 150.0

	// DefaultGap is the pixel gutter between cells on both axes.
	DefaultGap = 10.0

	// EnvMode names the environment variable that selects the runtime mode.
	// The value "production" turns command validation off by default.
	EnvMode = "GRIDSTACK_ENV"
)

// DefaultCompactor returns the compactor used when Options.Compactor is unset.
func DefaultCompactor() grid.Compactor { return compact.Vertical() }

// DefaultConstraints returns the pipeline used when Options.Constraints is
// nil: each item's own min/max size, then the grid bounds.
func DefaultConstraints() []grid.Constraint {
	return []grid.Constraint{constraint.MinMaxSize(), constraint.Bounded()}
}

// =============================================================================
// Options
// =============================================================================

// Options configures an Engine: grid geometry, policy, and integration points.
type Options struct {
	Cols            int
	MaxRows         int // 0 means unbounded
	RowHeight       float64
	Gap             *geometry.Spacing // nil selects DefaultGap
	Padding         *geometry.Spacing // nil selects Gap
	ContainerWidth  float64
	ContainerHeight float64

	// Compactor settles the layout after every mutation. The zero value
	// selects DefaultCompactor.
	Compactor grid.Compactor

	// Constraints are grid-level rules applied before each item's own.
	// Nil selects DefaultConstraints; an empty non-nil slice disables them.
	Constraints []grid.Constraint

	// Bounded appends the bounds rule to Constraints unless an item
	// overrides it. Only useful when Constraints replaces the defaults.
	Bounded bool

	// Layout is the initial layout in uncontrolled mode.
	Layout grid.Layout

	// State, when non-nil, puts the engine in controlled mode: the caller
	// owns the state, the engine reads *State and never writes to it.
	// OnStateChange is the caller's chance to apply each committed state.
	State *State

	// OnStateChange is invoked with every committed state, in either mode.
	OnStateChange func(next State)

	Plugins []Plugin

	// Validation forces command and state validation on or off. When nil it
	// is on unless GRIDSTACK_ENV=production.
	Validation *bool

	Logger *log.Logger

	validated bool
}

// ValidateAndSetDefaults checks the options and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetDefaults()
	if err := o.Validate(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetDefaults fills every unset field.
func (o *Options) SetDefaults() {
	if o.Cols == 0 {
		o.Cols = DefaultCols
	}
	if o.RowHeight == 0 {
		o.RowHeight = DefaultRowHeight
	}
	if o.Gap == nil {
		o.Gap = new(geometry.Spacing)
		*o.Gap = geometry.Uniform(DefaultGap)
	}
	if o.Padding == nil {
		o.Padding = new(geometry.Spacing)
		*o.Padding = *o.Gap
	}
	if o.Compactor.IsZero() {
		o.Compactor = DefaultCompactor()
	}
	if o.Constraints == nil {
		o.Constraints = DefaultConstraints()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate reports every invalid field at once.
func (o *Options) Validate() error {
	v := errors.NewValidator(errors.ErrCodeInvalidOptions)
	v.Check(o.Cols > 0, "cols", "must be positive, got %d", o.Cols)
	v.Check(o.MaxRows >= 0, "maxRows", "must not be negative, got %d", o.MaxRows)
	v.Check(o.RowHeight > 0, "rowHeight", "must be positive, got %v", o.RowHeight)
	v.Check(o.ContainerWidth >= 0, "containerWidth", "must not be negative, got %v", o.ContainerWidth)
	v.Check(o.ContainerHeight >= 0, "containerHeight", "must not be negative, got %v", o.ContainerHeight)

	seen := make(map[string]bool, len(o.Plugins))
	for i, p := range o.Plugins {
		path := fmt.Sprintf("plugins[%d].name", i)
		if p.Name == "" {
			v.Addf(path, "must not be empty")
			continue
		}
		v.Check(!seen[p.Name], path, "duplicate plugin %q", p.Name)
		seen[p.Name] = true
	}

	if o.ValidationEnabled() {
		if o.State != nil {
			v.Merge("state", grid.Validate(o.State.Layout))
		} else {
			v.Merge("", grid.Validate(o.Layout))
		}
	}
	return v.Err()
}

// ValidationEnabled resolves the Validation toggle against the runtime mode.
func (o *Options) ValidationEnabled() bool {
	if o.Validation != nil {
		return *o.Validation
	}
	return !strings.EqualFold(os.Getenv(EnvMode), "production")
}

// Controlled reports whether the caller owns the state.
func (o *Options) Controlled() bool { return o.State != nil }

// Params returns the grid geometry.
func (o *Options) Params() geometry.Params {
	p := geometry.Params{
		Cols:            o.Cols,
		MaxRows:         o.MaxRows,
		RowHeight:       o.RowHeight,
		ContainerWidth:  o.ContainerWidth,
		ContainerHeight: o.ContainerHeight,
	}
	if o.Gap != nil {
		p.Gap = *o.Gap
	}
	if o.Padding != nil {
		p.Padding = *o.Padding
	}
	return p
}
