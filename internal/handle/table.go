// Package handle provides the registry that maps opaque native handles to
// the objects behind them.
package handle

import (
	"sync"
	"sync/atomic"
)

// Table maps non-zero handles to values of type T.
//
// Handles are never reused, so a released handle stays invalid for the
// lifetime of the table. Safe for concurrent use.
type Table[T any] struct {
	mu    sync.RWMutex
	items map[uint64]T
	next  atomic.Uint64
}

// NewTable creates an empty table.
func NewTable[T any]() *Table[T] {
	return &Table[T]{items: make(map[uint64]T)}
}

// Put stores v and returns its new handle.
func (t *Table[T]) Put(v T) uint64 {
	id := t.next.Add(1)

	t.mu.Lock()
	t.items[id] = v
	t.mu.Unlock()

	return id
}

// Get returns the value for id.
func (t *Table[T]) Get(id uint64) (T, bool) {
	t.mu.RLock()
	v, ok := t.items[id]
	t.mu.RUnlock()

	return v, ok
}

// Release removes id from the table and returns its value.
// It reports false if id was never issued or was already released.
func (t *Table[T]) Release(id uint64) (T, bool) {
	t.mu.Lock()
	v, ok := t.items[id]
	if ok {
		delete(t.items, id)
	}
	t.mu.Unlock()

	return v, ok
}

// Len returns the number of live handles.
func (t *Table[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.items)
}
