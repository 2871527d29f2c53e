package engine

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridstack/pkg/grid"
)

// State is the engine's single piece of mutable data.
type State struct {
	Layout grid.Layout `json:"layout" bson:"layout" toml:"layout"`
}

// Clone returns a deep copy of s.
func (s State) Clone() State { return State{Layout: s.Layout.Clone()} }

// Context is the read-only view handed to plugins.
type Context struct {
	Options Options
	State   State
	Logger  *log.Logger
}

// Plugin observes the engine. Every hook is optional. Hooks must treat the
// engine as read-only; issuing commands from inside a hook is not supported.
//
// Plugins are identified by Name. SetOptions fires OnInit only for plugins
// whose name was not registered before.
type Plugin struct {
	Name            string
	OnInit          func(ctx Context)
	OnCommand       func(cmd Command, ctx Context)
	OnStateChange   func(next, prev State, ctx Context)
	OnOptionsChange func(next, prev Options, ctx Context)
}

// Listener is notified after every committed state change, with the same
// context plugins receive.
type Listener func(next, prev State, ctx Context)
