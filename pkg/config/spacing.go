package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/gridstack/pkg/geometry"
)

// Spacing decodes a gap or padding value. A number applies to every side; a
// table sets either {x, y} or {top, right, bottom, left}. Arrays are rejected.
//
// Decoding never fails on a bad shape; the problem is kept and reported by
// Config.Validate under the parameter's path.
type Spacing struct {
	geometry.Spacing
	set bool
	err error
}

// UnmarshalTOML implements toml.Unmarshaler.
func (s *Spacing) UnmarshalTOML(v any) error {
	*s = Spacing{set: true}
	switch v := v.(type) {
	case int64:
		s.Spacing = geometry.Uniform(float64(v))
	case float64:
		s.Spacing = geometry.Uniform(v)
	case map[string]any:
		s.Spacing, s.err = spacingTable(v)
	case []any:
		s.err = fmt.Errorf("arrays are not accepted; use a number or a table")
	default:
		s.err = fmt.Errorf("must be a number or a table, got %T", v)
	}
	if s.err == nil {
		s.err = checkNonNegative(s.Spacing)
	}
	return nil
}

func spacingTable(m map[string]any) (geometry.Spacing, error) {
	keys := make([]string, 0, len(m))
	vals := make(map[string]float64, len(m))
	for k, raw := range m {
		f, ok := number(raw)
		if !ok {
			return geometry.Spacing{}, fmt.Errorf("%s must be a number, got %T", k, raw)
		}
		keys = append(keys, k)
		vals[k] = f
	}
	slices.Sort(keys)

	axis := []string{"x", "y"}
	sides := []string{"bottom", "left", "right", "top"}
	switch {
	case subset(keys, axis):
		return geometry.XY(vals["x"], vals["y"]), nil
	case subset(keys, sides):
		return geometry.Spacing{Top: vals["top"], Right: vals["right"], Bottom: vals["bottom"], Left: vals["left"]}, nil
	}
	return geometry.Spacing{}, fmt.Errorf("unknown keys %s; use x/y or top/right/bottom/left", strings.Join(keys, ", "))
}

func subset(keys, allowed []string) bool {
	for _, k := range keys {
		if !slices.Contains(allowed, k) {
			return false
		}
	}
	return true
}

func number(v any) (float64, bool) {
	switch v := v.(type) {
	case int64:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}

func checkNonNegative(s geometry.Spacing) error {
	if s.Top < 0 || s.Right < 0 || s.Bottom < 0 || s.Left < 0 {
		return fmt.Errorf("must not be negative")
	}
	return nil
}
