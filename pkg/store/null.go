package store

import "context"

// NullStore is a no-op store that never keeps anything.
type NullStore struct{}

// NewNullStore creates a null store.
func NewNullStore() Store { return &NullStore{} }

// Load always misses.
func (s *NullStore) Load(ctx context.Context, name string) (Snapshot, bool, error) {
	reportLoad(ctx, BackendNull, name, false)
	return Snapshot{}, false, nil
}

// Save does nothing.
func (s *NullStore) Save(ctx context.Context, snap Snapshot) error { return validName(snap.Name) }

// Delete does nothing.
func (s *NullStore) Delete(ctx context.Context, name string) error { return nil }

// List returns no names.
func (s *NullStore) List(ctx context.Context) ([]string, error) { return []string{}, nil }

// Close does nothing.
func (s *NullStore) Close() error { return nil }

var _ Store = (*NullStore)(nil)
