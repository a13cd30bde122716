// Package store provides the in-memory key-value store for KeyWire.
package store

import (
	"github.com/yndnr/keywire-go/pkg/cmap"
)

// DefaultShards is the default shard count for the backing map.
const DefaultShards = 16

// Store is a concurrent-safe mapping of string keys to string values.
type Store struct {
	data *cmap.Map[string]
}

// Option configures the Store.
type Option func(*options)

type options struct {
	shards int
}

// WithShards sets the shard count of the backing map.
// The count must be a power of 2; invalid counts fall back to the default.
func WithShards(n int) Option {
	return func(o *options) {
		o.shards = n
	}
}

// New creates an empty store.
func New(opts ...Option) *Store {
	o := &options{shards: DefaultShards}
	for _, opt := range opts {
		opt(o)
	}

	return &Store{
		data: cmap.NewWithShards[string](o.shards),
	}
}

// Get retrieves the value for key. ok is false when the key is absent.
func (s *Store) Get(key string) (value string, ok bool) {
	return s.data.Get(key)
}

// Set stores value under key, overwriting any existing value.
func (s *Store) Set(key, value string) {
	s.data.Set(key, value)
}

// Delete removes key and reports whether it was present.
func (s *Store) Delete(key string) bool {
	return s.data.Delete(key)
}

// Len returns the number of stored keys.
func (s *Store) Len() int {
	return s.data.Count()
}

// Shards returns the shard count of the backing map.
func (s *Store) Shards() int {
	return s.data.ShardCount()
}

// Snapshot returns a point-in-time copy of the store contents.
//
// The copy is assembled shard by shard; concurrent writes may or may not
// be reflected. Intended for diagnostics, not coordination.
func (s *Store) Snapshot() map[string]string {
	return s.data.Snapshot()
}

// LoadSeed bulk-loads the given pairs, overwriting existing keys.
// Used to pre-populate demo data from configuration at start-up.
func (s *Store) LoadSeed(seed map[string]string) {
	for k, v := range seed {
		s.data.Set(k, v)
	}
}
