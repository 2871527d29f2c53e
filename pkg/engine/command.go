package engine

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/gridstack/pkg/errors"
	"github.com/matzehuels/gridstack/pkg/geometry"
	"github.com/matzehuels/gridstack/pkg/grid"
	"github.com/matzehuels/gridstack/pkg/grid/compact"
)

// Kind identifies a command.
type Kind string

const (
	KindMove              Kind = "move"
	KindResize            Kind = "resize"
	KindCompact           Kind = "compact"
	KindResolveCollisions Kind = "resolveCollisions"
	KindReflow            Kind = "reflow"
	KindAdd               Kind = "add"
	KindRemove            Kind = "remove"
)

// Command is a request to transform the engine state.
type Command interface {
	Kind() Kind
}

// Move relocates an item and compacts.
type Move struct {
	ID           string `json:"id"`
	X            int    `json:"x"`
	Y            int    `json:"y"`
	IsUserAction bool   `json:"isUserAction"`
}

// Resize changes an item's size from one handle. An empty handle means se.
type Resize struct {
	ID     string          `json:"id"`
	W      int             `json:"w"`
	H      int             `json:"h"`
	Handle geometry.Handle `json:"handle,omitempty"`
}

// Compact re-settles the layout. Zero Cols and nil Compactor use the engine's.
type Compact struct {
	Cols      int             `json:"cols,omitempty"`
	Compactor *grid.Compactor `json:"-"`
}

// ResolveCollisions moves an item and cascades, without a full compaction.
// Drag previews use it on every pointer event.
type ResolveCollisions struct {
	ID           string `json:"id"`
	X            int    `json:"x"`
	Y            int    `json:"y"`
	IsUserAction bool   `json:"isUserAction"`
}

// Reflow bounds-corrects and compacts Layout, or the current layout when
// Layout is nil.
type Reflow struct {
	Layout grid.Layout `json:"layout,omitempty"`
}

// Add inserts an item. An empty ID is replaced with a random UUID; a
// negative X or Y places the item at the first empty slot that fits.
type Add struct {
	Item grid.Item `json:"item"`
}

// Remove deletes an item by id.
type Remove struct {
	ID string `json:"id"`
}

func (Move) Kind() Kind              { return KindMove }
func (Resize) Kind() Kind            { return KindResize }
func (Compact) Kind() Kind           { return KindCompact }
func (ResolveCollisions) Kind() Kind { return KindResolveCollisions }
func (Reflow) Kind() Kind            { return KindReflow }
func (Add) Kind() Kind               { return KindAdd }
func (Remove) Kind() Kind            { return KindRemove }

// targetID returns the item a command is about, or "".
func targetID(cmd Command) string {
	switch c := cmd.(type) {
	case Move:
		return c.ID
	case Resize:
		return c.ID
	case ResolveCollisions:
		return c.ID
	case Add:
		return c.Item.ID
	case Remove:
		return c.ID
	}
	return ""
}

// ValidateCommand checks a command payload. Every offending field is
// reported under the "command" path.
func ValidateCommand(cmd Command) error {
	v := errors.NewValidator(errors.ErrCodeInvalidCommand)
	switch c := cmd.(type) {
	case Move:
		checkTarget(v, c.ID, c.X, c.Y)
	case ResolveCollisions:
		checkTarget(v, c.ID, c.X, c.Y)
	case Resize:
		v.Check(c.ID != "", "command.id", "must not be empty")
		v.Check(c.W > 0, "command.w", "must be positive, got %d", c.W)
		v.Check(c.H > 0, "command.h", "must be positive, got %d", c.H)
		v.Check(c.Handle == "" || c.Handle.Valid(), "command.handle", "unknown handle %q", c.Handle)
	case Compact:
		v.Check(c.Cols >= 0, "command.cols", "must not be negative, got %d", c.Cols)
	case Reflow:
		if c.Layout != nil {
			v.Merge("command", grid.Validate(c.Layout))
		}
	case Add:
		it := c.Item
		if it.ID == "" {
			it.ID = "pending"
		}
		if err := grid.ValidateItem(it); err != nil {
			v.Merge("command", err)
		}
	case Remove:
		v.Check(c.ID != "", "command.id", "must not be empty")
	case nil:
		v.Addf("command", "must not be nil")
	default:
		v.Addf("command.type", "unsupported command %T", cmd)
	}
	return v.Err()
}

func checkTarget(v *errors.Validator, id string, x, y int) {
	v.Check(id != "", "command.id", "must not be empty")
	v.Check(x >= 0, "command.x", "must not be negative, got %d", x)
	v.Check(y >= 0, "command.y", "must not be negative, got %d", y)
}

// wireCommand is the JSON payload shape: {"type": "move", "id": ..., ...}.
type wireCommand struct {
	Type         Kind            `json:"type"`
	ID           string          `json:"id"`
	X            *int            `json:"x"`
	Y            *int            `json:"y"`
	W            int             `json:"w"`
	H            int             `json:"h"`
	Handle       geometry.Handle `json:"handle"`
	IsUserAction *bool           `json:"isUserAction"`
	Cols         int             `json:"cols"`
	Compactor    string          `json:"compactor"`
	Layout       grid.Layout     `json:"layout"`
	Item         *grid.Item      `json:"item"`
}

// DecodeCommand parses a JSON command payload. isUserAction defaults to
// true; a compactor is selected by name.
func DecodeCommand(data []byte) (Command, error) {
	var w wireCommand
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidCommand, err, "decode command")
	}
	user := w.IsUserAction == nil || *w.IsUserAction
	switch w.Type {
	case KindMove:
		x, y, err := coords(w)
		if err != nil {
			return nil, err
		}
		return Move{ID: w.ID, X: x, Y: y, IsUserAction: user}, nil
	case KindResolveCollisions:
		x, y, err := coords(w)
		if err != nil {
			return nil, err
		}
		return ResolveCollisions{ID: w.ID, X: x, Y: y, IsUserAction: user}, nil
	case KindResize:
		return Resize{ID: w.ID, W: w.W, H: w.H, Handle: w.Handle}, nil
	case KindCompact:
		cmd := Compact{Cols: w.Cols}
		if w.Compactor != "" {
			c, err := compact.ByName(w.Compactor)
			if err != nil {
				return nil, err
			}
			cmd.Compactor = &c
		}
		return cmd, nil
	case KindReflow:
		return Reflow{Layout: w.Layout}, nil
	case KindAdd:
		if w.Item == nil {
			return nil, errors.New(errors.ErrCodeInvalidCommand, "add: missing item")
		}
		return Add{Item: *w.Item}, nil
	case KindRemove:
		return Remove{ID: w.ID}, nil
	case "":
		return nil, errors.New(errors.ErrCodeInvalidCommand, "missing command type")
	default:
		return nil, errors.New(errors.ErrCodeInvalidCommand, "unknown command type %q", w.Type)
	}
}

func coords(w wireCommand) (int, int, error) {
	if w.X == nil || w.Y == nil {
		return 0, 0, errors.New(errors.ErrCodeInvalidCommand, "%s: x and y are required", w.Type)
	}
	return *w.X, *w.Y, nil
}

// String renders a command for logs.
func String(cmd Command) string {
	if cmd == nil {
		return "<nil>"
	}
	if id := targetID(cmd); id != "" {
		return fmt.Sprintf("%s(%s)", cmd.Kind(), id)
	}
	return string(cmd.Kind())
}
