// Package store persists named layout snapshots.
//
// A [Snapshot] is everything needed to restore a grid: its column count, the
// primary layout and any per-breakpoint layouts. Backends:
//
//   - [NullStore]: stores nothing, for tests and dry runs
//   - [MemoryStore]: process-local, for tests and the playground
//   - [FileStore]: one JSON file per snapshot, for the CLI
//   - [RedisStore]: shared snapshots with optional expiry
//   - [MongoStore]: snapshots as documents, layouts stored natively as BSON
//
// Keys are built by a [Keyer]; wrap it in a [ScopedKeyer] to keep several
// tenants or projects apart in one backend.
//
// Every backend reports loads, misses and saves to observability.Store().
package store

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/matzehuels/gridstack/pkg/grid"
	"github.com/matzehuels/gridstack/pkg/observability"
)

// Snapshot is a named, persisted grid.
type Snapshot struct {
	Name    string                 `json:"name" bson:"name"`
	Cols    int                    `json:"cols,omitempty" bson:"cols,omitempty"`
	Layout  grid.Layout            `json:"layout" bson:"layout"`
	Layouts map[string]grid.Layout `json:"layouts,omitempty" bson:"layouts,omitempty"`
	SavedAt time.Time              `json:"saved_at" bson:"saved_at"`
}

// Store persists snapshots by name.
type Store interface {
	// Load returns the snapshot saved as name. ok is false on a miss.
	Load(ctx context.Context, name string) (snap Snapshot, ok bool, err error)

	// Save writes snap under snap.Name, replacing any previous version.
	Save(ctx context.Context, snap Snapshot) error

	// Delete removes a snapshot. Deleting a missing name is not an error.
	Delete(ctx context.Context, name string) error

	// List returns every stored snapshot name, sorted.
	List(ctx context.Context) ([]string, error)

	// Close releases the backend's resources.
	Close() error
}

// Backend names.
const (
	BackendNull   = "null"
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

// Backends returns every backend name.
func Backends() []string {
	return []string{BackendNull, BackendMemory, BackendFile, BackendRedis, BackendMongo}
}

// Options selects and configures a backend for Open.
type Options struct {
	Backend string

	// Dir is the FileStore root.
	Dir string

	RedisURL string

	MongoURI        string
	MongoDatabase   string
	MongoCollection string

	// Scope prefixes every key, see ScopedKeyer.
	Scope string

	// TTL expires snapshots after they are saved. Zero keeps them forever.
	TTL time.Duration
}

// Open connects to the backend named in opts.
func Open(ctx context.Context, opts Options) (Store, error) {
	keyer := NewDefaultKeyer()
	if opts.Scope != "" {
		keyer = NewScopedKeyer(keyer, opts.Scope+":")
	}
	switch strings.ToLower(opts.Backend) {
	case BackendNull:
		return NewNullStore(), nil
	case BackendMemory:
		return NewMemoryStore(keyer, opts.TTL), nil
	case "", BackendFile:
		return NewFileStore(opts.Dir, keyer, opts.TTL)
	case BackendRedis:
		return NewRedisStore(ctx, opts.RedisURL, keyer, opts.TTL)
	case BackendMongo:
		return NewMongoStore(ctx, MongoOptions{
			URI:        opts.MongoURI,
			Database:   opts.MongoDatabase,
			Collection: opts.MongoCollection,
			Keyer:      keyer,
			TTL:        opts.TTL,
		})
	}
	return nil, fmt.Errorf("unknown store backend %q (must be one of %s)", opts.Backend, strings.Join(Backends(), ", "))
}

func validName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("snapshot name must not be empty")
	}
	return nil
}

// prepare clears transient state and stamps the save time.
func prepare(snap Snapshot) Snapshot {
	out := Snapshot{Name: snap.Name, Cols: snap.Cols, Layout: snap.Layout.Normalize(), SavedAt: time.Now().UTC()}
	if len(snap.Layouts) > 0 {
		out.Layouts = make(map[string]grid.Layout, len(snap.Layouts))
		for bp, l := range snap.Layouts {
			out.Layouts[bp] = l.Normalize()
		}
	}
	return out
}

func expiry(ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return time.Now().Add(ttl)
}

func expired(at time.Time) bool {
	return !at.IsZero() && time.Now().After(at)
}

func sortedNames(names []string) []string {
	slices.Sort(names)
	return slices.Compact(names)
}

func reportLoad(ctx context.Context, backend, key string, ok bool) {
	if ok {
		observability.Store().OnLoad(ctx, backend, key)
	} else {
		observability.Store().OnMiss(ctx, backend, key)
	}
}

func reportSave(ctx context.Context, backend, key string, items int) {
	observability.Store().OnSave(ctx, backend, key, items)
}
