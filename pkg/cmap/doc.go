// Package cmap provides a concurrent map implementation for KeyWire.
//
// This package implements a sharded concurrent map optimized for
// high-throughput key-value storage with the following features:
//
//   - Sharding: Configurable shard count for parallelism
//   - Fine-grained Locking: Per-shard RWMutex for minimal contention
//   - Presence Reporting: Delete and Pop report whether the key existed
//   - Iteration: Safe iteration while holding read locks
//
// Usage:
//
//	m := cmap.New[string]()
//	m.Set("key", "value")
//	val, ok := m.Get("key")
//
// Thread Safety:
//
// All operations are thread-safe. Read operations (Get, Has) use RLock,
// write operations (Set, Delete) use Lock.
package cmap
