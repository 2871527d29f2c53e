// Package config loads gridstack configuration from TOML.
//
// A configuration file describes the grid, the compaction policy, the
// responsive breakpoints and where layout snapshots are stored:
//
//	[grid]
//	cols = 12
//	row_height = 30
//	gap = 10                  # or { x = 10, y = 5 } or { top = 1, right = 2, bottom = 3, left = 4 }
//	bounded = true
//
//	[compactor]
//	name = "vertical"
//	prevent_collision = false
//
//	[breakpoints.lg]
//	width = 1200
//	cols = 12
//
//	[breakpoints.sm]
//	width = 768
//	cols = 6
//
//	[responsive]
//	strategy = "warn"
//
//	[store]
//	backend = "file"
//	dir = "~/.cache/gridstack"
//
// [Load] applies defaults and validates everything at once; the returned
// error lists every offending parameter by its dotted path.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridstack/pkg/engine"
	"github.com/matzehuels/gridstack/pkg/errors"
	"github.com/matzehuels/gridstack/pkg/geometry"
	"github.com/matzehuels/gridstack/pkg/grid"
	"github.com/matzehuels/gridstack/pkg/grid/compact"
	"github.com/matzehuels/gridstack/pkg/responsive"
	"github.com/matzehuels/gridstack/pkg/store"
)

// FileName is the configuration file looked up in the working directory.
const FileName = "gridstack.toml"

// Config is the full configuration.
type Config struct {
	Grid        Grid                  `toml:"grid"`
	Compactor   Compactor             `toml:"compactor"`
	Breakpoints map[string]Breakpoint `toml:"breakpoints"`
	Responsive  Responsive            `toml:"responsive"`
	Store       Store                 `toml:"store"`
}

// Grid holds the grid geometry.
type Grid struct {
	Cols            int     `toml:"cols"`
	MaxRows         int     `toml:"max_rows"`
	RowHeight       float64 `toml:"row_height"`
	Gap             Spacing `toml:"gap"`
	Padding         Spacing `toml:"padding"`
	ContainerWidth  float64 `toml:"container_width"`
	ContainerHeight float64 `toml:"container_height"`
	Bounded         bool    `toml:"bounded"`
	Validation      *bool   `toml:"validation"`
}

// Compactor selects a registered compactor.
type Compactor struct {
	Name             string `toml:"name"`
	AllowOverlap     bool   `toml:"allow_overlap"`
	PreventCollision bool   `toml:"prevent_collision"`
}

// Breakpoint is one responsive threshold.
type Breakpoint struct {
	Width float64 `toml:"width"`
	Cols  int     `toml:"cols"`
}

// Responsive configures missing-layout handling.
type Responsive struct {
	Strategy string `toml:"strategy"`
}

// Store selects and configures the snapshot backend.
type Store struct {
	Backend         string        `toml:"backend"`
	Dir             string        `toml:"dir"`
	RedisURL        string        `toml:"redis_url"`
	MongoURI        string        `toml:"mongo_uri"`
	MongoDatabase   string        `toml:"mongo_database"`
	MongoCollection string        `toml:"mongo_collection"`
	Scope           string        `toml:"scope"`
	TTL             time.Duration `toml:"ttl"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	var c Config
	c.SetDefaults()
	return c
}

// Load reads, defaults and validates the TOML file at path.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	c, err := Decode(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Decode reads, defaults and validates TOML from r. Unknown keys are errors.
func Decode(r io.Reader) (Config, error) {
	var c Config
	md, err := toml.NewDecoder(r).Decode(&c)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}

	c.SetDefaults()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// SetDefaults fills unset values.
func (c *Config) SetDefaults() {
	if c.Grid.Cols == 0 {
		c.Grid.Cols = engine.DefaultCols
	}
	if c.Grid.RowHeight == 0 {
		c.Grid.RowHeight = engine.DefaultRowHeight
	}
	if !c.Grid.Gap.set {
		c.Grid.Gap = Spacing{Spacing: geometry.Uniform(engine.DefaultGap), set: true}
	}
	if !c.Grid.Padding.set {
		c.Grid.Padding = Spacing{Spacing: c.Grid.Gap.Spacing, set: true}
	}
	if c.Compactor.Name == "" {
		c.Compactor.Name = "vertical"
	}
	if c.Responsive.Strategy == "" {
		c.Responsive.Strategy = string(responsive.StrategyDerive)
	}
	if c.Store.Backend == "" {
		c.Store.Backend = store.BackendFile
	}
	if c.Store.Dir == "" {
		c.Store.Dir = DefaultStoreDir()
	}
}

// Validate reports every invalid parameter at once.
func (c *Config) Validate() error {
	v := errors.NewValidator(errors.ErrCodeInvalidConfig)
	v.Check(c.Grid.Cols > 0, "grid.cols", "must be positive, got %d", c.Grid.Cols)
	v.Check(c.Grid.MaxRows >= 0, "grid.max_rows", "must not be negative, got %d", c.Grid.MaxRows)
	v.Check(c.Grid.RowHeight > 0, "grid.row_height", "must be positive, got %v", c.Grid.RowHeight)
	v.Check(c.Grid.Gap.err == nil, "grid.gap", "%v", c.Grid.Gap.err)
	v.Check(c.Grid.Padding.err == nil, "grid.padding", "%v", c.Grid.Padding.err)
	v.Check(c.Grid.ContainerWidth >= 0, "grid.container_width", "must not be negative, got %v", c.Grid.ContainerWidth)
	v.Check(c.Grid.ContainerHeight >= 0, "grid.container_height", "must not be negative, got %v", c.Grid.ContainerHeight)

	if _, err := compact.ByName(c.Compactor.Name); err != nil {
		v.Addf("compactor.name", "%s", errors.UserMessage(err))
	}
	if len(c.Breakpoints) > 0 {
		v.Merge("", c.ResponsiveBreakpoints().Validate())
	}
	if _, err := responsive.ParseStrategy(c.Responsive.Strategy); err != nil {
		v.Addf("responsive.strategy", "%s", errors.UserMessage(err))
	}
	v.Check(slices.Contains(store.Backends(), c.Store.Backend), "store.backend",
		"unknown backend %q (must be one of %s)", c.Store.Backend, strings.Join(store.Backends(), ", "))
	v.Check(c.Store.TTL >= 0, "store.ttl", "must not be negative, got %v", c.Store.TTL)
	return v.Err()
}

// =============================================================================
// Conversions
// =============================================================================

// CompactorValue builds the configured compactor.
func (c *Config) CompactorValue(opts ...compact.Option) (grid.Compactor, error) {
	comp, err := compact.ByName(c.Compactor.Name, opts...)
	if err != nil {
		return grid.Compactor{}, err
	}
	if c.Compactor.AllowOverlap && !comp.AllowOverlap {
		comp = compact.For(comp.Type, true, c.Compactor.PreventCollision)
	}
	comp.PreventCollision = c.Compactor.PreventCollision
	return comp, nil
}

// EngineOptions builds engine options from the grid and compactor sections.
func (c *Config) EngineOptions(logger *log.Logger) (engine.Options, error) {
	comp, err := c.CompactorValue(compact.WithLogger(logger))
	if err != nil {
		return engine.Options{}, err
	}
	gap, padding := c.Grid.Gap.Spacing, c.Grid.Padding.Spacing
	return engine.Options{
		Cols:            c.Grid.Cols,
		MaxRows:         c.Grid.MaxRows,
		RowHeight:       c.Grid.RowHeight,
		Gap:             &gap,
		Padding:         &padding,
		ContainerWidth:  c.Grid.ContainerWidth,
		ContainerHeight: c.Grid.ContainerHeight,
		Compactor:       comp,
		Bounded:         c.Grid.Bounded,
		Validation:      c.Grid.Validation,
		Logger:          logger,
	}, nil
}

// ResponsiveBreakpoints converts the breakpoint table.
func (c *Config) ResponsiveBreakpoints() responsive.Breakpoints {
	out := make(responsive.Breakpoints, 0, len(c.Breakpoints))
	for name, bp := range c.Breakpoints {
		out = append(out, responsive.Breakpoint{Name: name, Width: bp.Width, Cols: bp.Cols})
	}
	return out.Sorted()
}

// Resolver builds a responsive resolver for the configured breakpoints.
func (c *Config) Resolver(logger *log.Logger) (*responsive.Resolver, error) {
	if len(c.Breakpoints) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "no breakpoints configured")
	}
	comp, err := c.CompactorValue(compact.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	strategy, err := responsive.ParseStrategy(c.Responsive.Strategy)
	if err != nil {
		return nil, err
	}
	return responsive.NewResolver(c.ResponsiveBreakpoints(), responsive.ResolverOptions{
		Compactor: comp,
		Strategy:  strategy,
		Logger:    logger,
	}), nil
}

// StoreOptions converts the store section.
func (c *Config) StoreOptions() store.Options {
	return store.Options{
		Backend:         c.Store.Backend,
		Dir:             expandHome(c.Store.Dir),
		RedisURL:        c.Store.RedisURL,
		MongoURI:        c.Store.MongoURI,
		MongoDatabase:   c.Store.MongoDatabase,
		MongoCollection: c.Store.MongoCollection,
		Scope:           c.Store.Scope,
		TTL:             c.Store.TTL,
	}
}

// DefaultStoreDir returns the file store directory under the user cache dir.
func DefaultStoreDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "gridstack")
	}
	return filepath.Join(dir, "gridstack")
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
