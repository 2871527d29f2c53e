package store

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Keyer maps snapshot names to backend keys and back.
type Keyer interface {
	// Key returns the backend key for name.
	Key(name string) string
	// Name reverses Key. ok is false for keys this keyer did not produce.
	Name(key string) (name string, ok bool)
}

const keyPrefix = "layout:"

// DefaultKeyer prefixes names with "layout:".
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// Key implements Keyer.
func (DefaultKeyer) Key(name string) string { return keyPrefix + name }

// Name implements Keyer.
func (DefaultKeyer) Name(key string) (string, bool) { return strings.CutPrefix(key, keyPrefix) }

// ScopedKeyer wraps a Keyer with a prefix so several projects or tenants can
// share one backend:
//
//	team := NewScopedKeyer(NewDefaultKeyer(), "team:analytics:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer means the
// default keyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// Key implements Keyer.
func (k *ScopedKeyer) Key(name string) string { return k.prefix + k.inner.Key(name) }

// Name implements Keyer.
func (k *ScopedKeyer) Name(key string) (string, bool) {
	rest, ok := strings.CutPrefix(key, k.prefix)
	if !ok {
		return "", false
	}
	return k.inner.Name(rest)
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
