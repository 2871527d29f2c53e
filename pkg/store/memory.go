package store

import (
	"context"
	"sync"
	"time"

	"github.com/matzehuels/gridstack/pkg/grid"
)

// MemoryStore keeps snapshots in process memory. It is safe for concurrent use.
type MemoryStore struct {
	keyer Keyer
	ttl   time.Duration

	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	snap      Snapshot
	expiresAt time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(keyer Keyer, ttl time.Duration) *MemoryStore {
	if keyer == nil {
		keyer = NewDefaultKeyer()
	}
	return &MemoryStore{keyer: keyer, ttl: ttl, entries: make(map[string]memoryEntry)}
}

// Load implements Store.
func (s *MemoryStore) Load(ctx context.Context, name string) (Snapshot, bool, error) {
	key := s.keyer.Key(name)
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()

	if ok && expired(e.expiresAt) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		ok = false
	}
	reportLoad(ctx, BackendMemory, key, ok)
	if !ok {
		return Snapshot{}, false, nil
	}
	return cloneSnapshot(e.snap), true, nil
}

// Save implements Store.
func (s *MemoryStore) Save(ctx context.Context, snap Snapshot) error {
	if err := validName(snap.Name); err != nil {
		return err
	}
	key := s.keyer.Key(snap.Name)
	snap = prepare(snap)

	s.mu.Lock()
	s.entries[key] = memoryEntry{snap: snap, expiresAt: expiry(s.ttl)}
	s.mu.Unlock()

	reportSave(ctx, BackendMemory, key, len(snap.Layout))
	return nil
}

// Delete implements Store.
func (s *MemoryStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, s.keyer.Key(name))
	return nil
}

// List implements Store.
func (s *MemoryStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.entries))
	for key, e := range s.entries {
		if expired(e.expiresAt) {
			continue
		}
		if name, ok := s.keyer.Name(key); ok {
			names = append(names, name)
		}
	}
	return sortedNames(names), nil
}

// Close implements Store.
func (s *MemoryStore) Close() error { return nil }

func cloneSnapshot(s Snapshot) Snapshot {
	out := s
	out.Layout = s.Layout.Clone()
	if s.Layouts != nil {
		out.Layouts = make(map[string]grid.Layout, len(s.Layouts))
		for bp, l := range s.Layouts {
			out.Layouts[bp] = l.Clone()
		}
	}
	return out
}

var _ Store = (*MemoryStore)(nil)
