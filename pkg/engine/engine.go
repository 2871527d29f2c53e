// Package engine is the stateful layout processor.
//
// An [Engine] owns one [State] and transforms it through commands: move,
// resize, compact, resolveCollisions, reflow, add and remove. Every command
// clones the current layout, runs the constraint pipeline and the move/resize
// core on the clone, settles it with the active compactor, and commits the
// result through a single path that validates it, hands it to the
// OnStateChange callback, stores it (uncontrolled mode only), and notifies
// listeners and plugins.
//
// # Usage
//
//	e, err := engine.New(engine.Options{
//	    Cols:   12,
//	    Layout: grid.Layout{{ID: "a", W: 2, H: 2}, {ID: "b", X: 2, W: 2, H: 2}},
//	})
//	if err != nil {
//	    return err
//	}
//	unsubscribe := e.Subscribe(func(next, prev engine.State, _ engine.Context) { redraw(next) })
//	defer unsubscribe()
//
//	state, err := e.Move("a", 4, 0)
//
// # Errors
//
// A command returns the committed state and a nil error, or the unchanged
// current state and an error; nothing is committed on error. Commands that
// target a missing item, a static item, or an item whose flags forbid the
// operation are silent no-ops that return the current state. Invalid payloads
// fail with an errors.ErrCodeInvalidCommand validation error when validation
// is enabled.
//
// # Concurrency
//
// An Engine is not safe for concurrent use. Hooks run synchronously inside
// the command that triggered them and must not issue commands themselves.
package engine

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/gridstack/pkg/errors"
	"github.com/matzehuels/gridstack/pkg/geometry"
	"github.com/matzehuels/gridstack/pkg/grid"
	"github.com/matzehuels/gridstack/pkg/grid/constraint"
	"github.com/matzehuels/gridstack/pkg/observability"
)

// Engine processes layout commands. Create one with New.
type Engine struct {
	opts      Options
	state     State
	validate  bool
	listeners []*listener
}

type listener struct{ fn Listener }

// New validates opts, applies defaults, and fires OnInit for every plugin.
func New(opts Options) (*Engine, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	e := &Engine{opts: opts, validate: opts.ValidationEnabled()}
	if !opts.Controlled() {
		e.state = State{Layout: opts.Layout.Clone()}
	}

	ctx := e.context()
	for _, p := range e.opts.Plugins {
		if p.OnInit != nil {
			p.OnInit(ctx)
		}
	}
	e.opts.Logger.Debug("engine ready", "cols", e.opts.Cols, "compactor", e.opts.Compactor, "items", len(e.current().Layout), "controlled", e.opts.Controlled())
	return e, nil
}

// =============================================================================
// Selectors
// =============================================================================

// State returns a snapshot of the current state.
func (e *Engine) State() State { return e.current().Clone() }

// Layout returns a snapshot of the current layout.
func (e *Engine) Layout() grid.Layout { return e.current().Layout.Clone() }

// Item returns a copy of the item with the given id.
func (e *Engine) Item(id string) (grid.Item, bool) {
	it, ok := e.current().Layout.Item(id)
	if !ok {
		return grid.Item{}, false
	}
	return it.Clone(), true
}

// Options returns a copy of the active options, suitable for editing and
// passing back to SetOptions.
func (e *Engine) Options() Options {
	o := e.opts
	o.Constraints = slices.Clone(o.Constraints)
	o.Plugins = slices.Clone(o.Plugins)
	o.validated = false
	return o
}

// Subscribe registers fn for every committed state change. Call the returned
// function to unsubscribe.
func (e *Engine) Subscribe(fn Listener) (unsubscribe func()) {
	l := &listener{fn: fn}
	e.listeners = append(e.listeners, l)
	return func() {
		e.listeners = slices.DeleteFunc(e.listeners, func(x *listener) bool { return x == l })
	}
}

// =============================================================================
// Options
// =============================================================================

// SetOptions replaces the engine options. Switching from controlled to
// uncontrolled mode keeps the last controlled state as the internal state.
// Plugins are matched by name: new names get OnInit, and every current plugin
// gets OnOptionsChange.
func (e *Engine) SetOptions(next Options) error {
	if err := next.ValidateAndSetDefaults(); err != nil {
		return err
	}
	prev := e.opts
	if prev.Controlled() && !next.Controlled() {
		e.state = prev.State.Clone()
	}

	registered := make(map[string]bool, len(prev.Plugins))
	for _, p := range prev.Plugins {
		registered[p.Name] = true
	}

	e.opts = next
	e.validate = next.ValidationEnabled()

	ctx := e.context()
	for _, p := range next.Plugins {
		if !registered[p.Name] && p.OnInit != nil {
			p.OnInit(ctx)
		}
	}
	prevCopy := prev
	prevCopy.validated = false
	for _, p := range next.Plugins {
		if p.OnOptionsChange != nil {
			p.OnOptionsChange(e.Options(), prevCopy, ctx)
		}
	}
	e.opts.Logger.Debug("options updated", "cols", next.Cols, "compactor", next.Compactor, "plugins", len(next.Plugins))
	return nil
}

// =============================================================================
// Commands
// =============================================================================

// Move relocates item id to (x, y) as a user drag, then compacts.
func (e *Engine) Move(id string, x, y int) (State, error) {
	return e.Dispatch(Move{ID: id, X: x, Y: y, IsUserAction: true})
}

// Resize resizes item id from handle. An empty handle means se.
func (e *Engine) Resize(id string, w, h int, handle geometry.Handle) (State, error) {
	return e.Dispatch(Resize{ID: id, W: w, H: h, Handle: handle})
}

// Compact re-settles the current layout with the active compactor.
func (e *Engine) Compact() (State, error) { return e.Dispatch(Compact{}) }

// ResolveCollisions moves item id as a user drag without compacting.
func (e *Engine) ResolveCollisions(id string, x, y int) (State, error) {
	return e.Dispatch(ResolveCollisions{ID: id, X: x, Y: y, IsUserAction: true})
}

// Reflow bounds-corrects and compacts l, or the current layout when l is nil.
func (e *Engine) Reflow(l grid.Layout) (State, error) { return e.Dispatch(Reflow{Layout: l}) }

// Add inserts item.
func (e *Engine) Add(item grid.Item) (State, error) { return e.Dispatch(Add{Item: item}) }

// Remove deletes item id.
func (e *Engine) Remove(id string) (State, error) { return e.Dispatch(Remove{ID: id}) }

// Dispatch runs one command.
func (e *Engine) Dispatch(cmd Command) (State, error) {
	start := time.Now()
	kind := "<nil>"
	if cmd != nil {
		kind = string(cmd.Kind())
	}
	observability.Engine().OnCommandStart(kind, targetID(cmd))

	state, err := e.dispatch(cmd)

	observability.Engine().OnCommandComplete(kind, len(state.Layout), time.Since(start), err)
	if err != nil {
		e.opts.Logger.Debug("command failed", "command", String(cmd), "err", err)
	} else {
		e.opts.Logger.Debug("command", "command", String(cmd), "items", len(state.Layout), "duration", time.Since(start))
	}
	return state, err
}

func (e *Engine) dispatch(cmd Command) (State, error) {
	if e.validate || cmd == nil {
		if err := ValidateCommand(cmd); err != nil {
			return e.State(), err
		}
	}

	ctx := e.context()
	for _, p := range e.opts.Plugins {
		if p.OnCommand != nil {
			p.OnCommand(cmd, ctx)
		}
	}

	switch c := cmd.(type) {
	case Move:
		return e.move(c.ID, c.X, c.Y, c.IsUserAction, true)
	case ResolveCollisions:
		return e.move(c.ID, c.X, c.Y, c.IsUserAction, false)
	case Resize:
		return e.resize(c)
	case Compact:
		return e.compactCmd(c)
	case Reflow:
		return e.reflow(c)
	case Add:
		return e.add(c)
	case Remove:
		return e.remove(c)
	default:
		return e.State(), errors.New(errors.ErrCodeUnsupported, "unsupported command %T", cmd)
	}
}

func (e *Engine) move(id string, x, y int, isUserAction, settle bool) (State, error) {
	cur := e.current().Layout
	it, ok := cur.Item(id)
	if !ok || !it.IsDraggable(true) {
		return e.State(), nil
	}

	x, y = constraint.ApplyPosition(e.constraintsFor(it), it, x, y, e.constraintContext(cur))
	x, y = max(x, 0), max(y, 0)

	c := e.opts.Compactor
	var next grid.Layout
	if c.Type.Sequential() {
		next = c.OnMove(cur, it, x, y, e.opts.Cols)
	} else {
		next = grid.MoveElement(cur, it, x, y, isUserAction, c, e.opts.Cols)
	}
	if settle && !c.AllowOverlap {
		next = e.compact(next, c, e.opts.Cols)
	}
	return e.commit(next)
}

func (e *Engine) resize(cmd Resize) (State, error) {
	cur := e.current().Layout
	idx := cur.Index(cmd.ID)
	if idx < 0 {
		return e.State(), nil
	}
	it := cur[idx]
	handle := cmd.Handle
	if handle == "" {
		handle = geometry.HandleSE
	}
	if !it.IsResizable(true) || (len(it.ResizeHandles) > 0 && !slices.Contains(it.ResizeHandles, handle)) {
		return e.State(), nil
	}

	w, h := constraint.ApplySize(e.constraintsFor(it), it, cmd.W, cmd.H, handle, e.constraintContext(cur))
	w, h = max(w, 1), max(h, 1)

	// West and north handles keep the opposite edge fixed. An origin that
	// would go negative keeps the original size on that axis instead.
	x, y := it.X, it.Y
	if handle.MovesWest() {
		if nx := it.X + it.W - w; nx < 0 {
			w = it.W
		} else {
			x = nx
		}
	}
	if handle.MovesNorth() {
		if ny := it.Y + it.H - h; ny < 0 {
			h = it.H
		} else {
			y = ny
		}
	}

	c := e.opts.Compactor
	next := cur.Clone()
	next[idx].W, next[idx].H = w, h

	if c.PreventCollision {
		probe := next[idx]
		probe.X, probe.Y = x, y
		if _, hit := grid.FirstCollision(next, probe); hit {
			return e.State(), nil
		}
	}
	if x != it.X || y != it.Y {
		next = grid.MoveElement(next, next[idx], x, y, false, c, e.opts.Cols)
	}
	if !c.AllowOverlap {
		next = e.compact(next, c, e.opts.Cols)
	}
	return e.commit(next)
}

func (e *Engine) compactCmd(cmd Compact) (State, error) {
	cols := cmd.Cols
	if cols == 0 {
		cols = e.opts.Cols
	}
	c := e.opts.Compactor
	if cmd.Compactor != nil {
		c = *cmd.Compactor
	}
	next := e.current().Layout
	if !c.AllowOverlap {
		next = grid.CorrectBounds(next, cols)
	}
	return e.commit(e.compact(next, c, cols))
}

func (e *Engine) reflow(cmd Reflow) (State, error) {
	l := cmd.Layout
	if l == nil {
		l = e.current().Layout
	}
	next := grid.CorrectBounds(l, e.opts.Cols)
	return e.commit(e.compact(next, e.opts.Compactor, e.opts.Cols))
}

func (e *Engine) add(cmd Add) (State, error) {
	cur := e.current().Layout
	it := cmd.Item.Clone()
	if it.ID == "" {
		it.ID = uuid.NewString()
	}
	if cur.Index(it.ID) >= 0 {
		return e.State(), errors.New(errors.ErrCodeInvalidCommand, "add: duplicate id %q", it.ID)
	}
	if it.X < 0 || it.Y < 0 {
		it.X, it.Y = grid.FindEmptyPosition(cur, it.W, it.H, e.opts.Cols)
	}

	next := append(cur.Clone(), it)
	if c := e.opts.Compactor; !c.AllowOverlap {
		next = e.compact(next, c, e.opts.Cols)
	}
	return e.commit(next)
}

func (e *Engine) remove(cmd Remove) (State, error) {
	cur := e.current().Layout
	idx := cur.Index(cmd.ID)
	if idx < 0 {
		return e.State(), nil
	}
	next := slices.Delete(cur.Clone(), idx, idx+1)
	if c := e.opts.Compactor; !c.AllowOverlap {
		next = e.compact(next, c, e.opts.Cols)
	}
	return e.commit(next)
}

// =============================================================================
// Commit
// =============================================================================

// commit is the only path that changes state.
func (e *Engine) commit(next grid.Layout) (State, error) {
	next = next.Normalize()
	if e.validate {
		v := errors.NewValidator(errors.ErrCodeInvalidLayout)
		v.Merge("", grid.Validate(next))
		v.Merge("", grid.CheckCommitted(next, true))
		if err := v.Err(); err != nil {
			return e.State(), err
		}
	}

	prev := e.current()
	state := State{Layout: next}

	if e.opts.OnStateChange != nil {
		e.opts.OnStateChange(state.Clone())
	}
	if !e.opts.Controlled() {
		e.state = state
	}

	ctx := e.context()
	for _, l := range slices.Clone(e.listeners) {
		l.fn(state.Clone(), prev.Clone(), ctx)
	}
	for _, p := range e.opts.Plugins {
		if p.OnStateChange != nil {
			p.OnStateChange(state.Clone(), prev.Clone(), ctx)
		}
	}
	return state.Clone(), nil
}

func (e *Engine) compact(l grid.Layout, c grid.Compactor, cols int) grid.Layout {
	start := time.Now()
	out := c.Compact(l, cols)
	observability.Engine().OnCompact(c.String(), len(out), time.Since(start))
	return out
}

// =============================================================================
// Helpers
// =============================================================================

func (e *Engine) current() State {
	if e.opts.State != nil {
		return *e.opts.State
	}
	return e.state
}

func (e *Engine) context() Context {
	return Context{Options: e.Options(), State: e.State(), Logger: e.opts.Logger}
}

func (e *Engine) constraintsFor(it grid.Item) []grid.Constraint {
	cs := constraint.For(e.opts.Constraints, it)
	if it.IsBounded(e.opts.Bounded) {
		cs = append(slices.Clip(cs), constraint.Bounded())
	}
	return cs
}

func (e *Engine) constraintContext(l grid.Layout) grid.ConstraintContext {
	return grid.ConstraintContext{Params: e.opts.Params(), Layout: l}
}
