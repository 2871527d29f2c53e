package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// FileStore keeps one JSON file per snapshot under a directory.
// Files are spread over subdirectories named by the first two characters of
// the key's hash.
type FileStore struct {
	dir   string
	keyer Keyer
	ttl   time.Duration
}

// NewFileStore creates a file store in dir, creating it if needed.
func NewFileStore(dir string, keyer Keyer, ttl time.Duration) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("file store: directory must not be empty")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("file store: %w", err)
	}
	if keyer == nil {
		keyer = NewDefaultKeyer()
	}
	return &FileStore{dir: dir, keyer: keyer, ttl: ttl}, nil
}

// fileEntry wraps a snapshot with its key and expiry.
type fileEntry struct {
	Key       string    `json:"key"`
	Snapshot  Snapshot  `json:"snapshot"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Load implements Store.
func (s *FileStore) Load(ctx context.Context, name string) (Snapshot, bool, error) {
	key := s.keyer.Key(name)
	entry, ok, err := s.read(s.path(key))
	if err != nil {
		return Snapshot{}, false, err
	}
	reportLoad(ctx, BackendFile, key, ok)
	if !ok {
		return Snapshot{}, false, nil
	}
	return entry.Snapshot, true, nil
}

// read returns the entry at path. Corrupt and expired entries are removed
// and reported as misses.
func (s *FileStore) read(path string) (fileEntry, bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fileEntry{}, false, nil
	}
	if err != nil {
		return fileEntry{}, false, err
	}

	var entry fileEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		_ = os.Remove(path)
		return fileEntry{}, false, nil
	}
	if expired(entry.ExpiresAt) {
		_ = os.Remove(path)
		return fileEntry{}, false, nil
	}
	return entry, true, nil
}

// Save implements Store.
func (s *FileStore) Save(ctx context.Context, snap Snapshot) error {
	if err := validName(snap.Name); err != nil {
		return err
	}
	key := s.keyer.Key(snap.Name)
	entry := fileEntry{Key: key, Snapshot: prepare(snap), ExpiresAt: expiry(s.ttl)}

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	path := s.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		return err
	}
	reportSave(ctx, BackendFile, key, len(snap.Layout))
	return nil
}

// Delete implements Store.
func (s *FileStore) Delete(ctx context.Context, name string) error {
	err := os.Remove(s.path(s.keyer.Key(name)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// List implements Store.
func (s *FileStore) List(ctx context.Context) ([]string, error) {
	var names []string
	err := filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		entry, ok, err := s.read(path)
		if err != nil || !ok {
			return err
		}
		if name, ok := s.keyer.Name(entry.Key); ok {
			names = append(names, name)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.dir, err)
	}
	return sortedNames(names), nil
}

// Close does nothing for file store.
func (s *FileStore) Close() error { return nil }

// Dir returns the store root.
func (s *FileStore) Dir() string { return s.dir }

// path converts a key to a file path.
func (s *FileStore) path(key string) string {
	hash := Hash([]byte(key))
	return filepath.Join(s.dir, hash[:2], hash[2:]+".json")
}

var _ Store = (*FileStore)(nil)
