// Package store provides the in-memory key-value store for KeyWire.
//
// It holds string keys mapped to string values using a concurrent-safe
// sharded map, so connection goroutines can read and write in parallel
// without a global lock.
//
// Semantics:
//
//   - Set overwrites unconditionally; the last write wins
//   - Get of an absent key is a normal miss, not an error
//   - Delete reports whether the key was present
//
// Values are stored verbatim. The store never interprets content.
package store
