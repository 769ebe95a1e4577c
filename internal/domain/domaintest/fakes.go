// Package domaintest provides in-memory collaborators for domain service tests:
// a transaction manager with rollback, a generic table and an image store.
package domaintest

import (
	"context"
	"sync"

	"dastarkhan/internal/core/id"
)

// Snapshotter captures state and returns a function restoring it.
type Snapshotter interface {
	Snapshot() (restore func())
}

type txKey struct{}

// TxManager serializes transactions with a mutex and restores every tracked
// table when the function fails.
type TxManager struct {
	mu     sync.Mutex
	tables []Snapshotter

	// CommitErr, when set, makes the next commit fail after fn succeeded.
	CommitErr error

	Commits   int
	Rollbacks int
	Locks     []string
}

// NewTxManager creates a manager tracking tables.
func NewTxManager(tables ...Snapshotter) *TxManager {
	return &TxManager{tables: tables}
}

// Track adds tables restored on rollback.
func (m *TxManager) Track(tables ...Snapshotter) {
	m.tables = append(m.tables, tables...)
}

// InTx reports whether ctx carries a fake transaction.
func InTx(ctx context.Context) bool {
	return ctx.Value(txKey{}) != nil
}

// RunInTransaction implements tx.Manager.
func (m *TxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if InTx(ctx) {
		return fn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	restores := make([]func(), 0, len(m.tables))
	for _, t := range m.tables {
		restores = append(restores, t.Snapshot())
	}

	err := fn(context.WithValue(ctx, txKey{}, true))
	if err == nil && m.CommitErr != nil {
		err = m.CommitErr
		m.CommitErr = nil
	}
	if err != nil {
		for i := len(restores) - 1; i >= 0; i-- {
			restores[i]()
		}
		m.Rollbacks++
		return err
	}
	m.Commits++
	return nil
}

// Lock implements tx.Locker. Transactions are already serialized, so it only records the key.
func (m *TxManager) Lock(_ context.Context, resource string) error {
	m.Locks = append(m.Locks, resource)
	return nil
}

// Table is an insertion-ordered map of rows keyed by id.
type Table[T any] struct {
	mu    sync.Mutex
	rows  map[id.ID]T
	order []id.ID
}

// NewTable creates an empty table.
func NewTable[T any]() *Table[T] {
	return &Table[T]{rows: make(map[id.ID]T)}
}

// Put inserts or replaces a row.
func (t *Table[T]) Put(k id.ID, v T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[k]; !ok {
		t.order = append(t.order, k)
	}
	t.rows[k] = v
}

// Get returns a row.
func (t *Table[T]) Get(k id.ID) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	v, ok := t.rows[k]
	return v, ok
}

// Delete removes a row and reports whether it existed.
func (t *Table[T]) Delete(k id.ID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[k]; !ok {
		return false
	}
	delete(t.rows, k)
	for i, o := range t.order {
		if o == k {
			t.order = append(t.order[:i:i], t.order[i+1:]...)
			break
		}
	}
	return true
}

// All returns rows in insertion order.
func (t *Table[T]) All() []T {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]T, 0, len(t.order))
	for _, k := range t.order {
		out = append(out, t.rows[k])
	}
	return out
}

// Find returns the first row matching pred.
func (t *Table[T]) Find(pred func(T) bool) (T, bool) {
	for _, v := range t.All() {
		if pred(v) {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Count returns the number of rows matching pred.
func (t *Table[T]) Count(pred func(T) bool) int {
	n := 0
	for _, v := range t.All() {
		if pred(v) {
			n++
		}
	}
	return n
}

// UpdateWhere rewrites every row for which fn returns true.
func (t *Table[T]) UpdateWhere(fn func(v T) (T, bool)) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for k, v := range t.rows {
		if nv, ok := fn(v); ok {
			t.rows[k] = nv
			n++
		}
	}
	return n
}

// Len returns the row count.
func (t *Table[T]) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.rows)
}

// Snapshot implements Snapshotter.
func (t *Table[T]) Snapshot() func() {
	t.mu.Lock()
	rows := make(map[id.ID]T, len(t.rows))
	for k, v := range t.rows {
		rows[k] = v
	}
	order := append([]id.ID(nil), t.order...)
	t.mu.Unlock()

	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		t.rows = rows
		t.order = order
	}
}

// ImageStore records saved and deleted references.
type ImageStore struct {
	mu      sync.Mutex
	Files   map[string][]byte
	Deleted []string
	SaveErr error
}

// NewImageStore creates an empty store.
func NewImageStore() *ImageStore {
	return &ImageStore{Files: make(map[string][]byte)}
}

// Save implements images.Store.
func (s *ImageStore) Save(_ context.Context, ref string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.Files[ref] = data
	return nil
}

// Delete implements images.Store.
func (s *ImageStore) Delete(_ context.Context, ref string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.Files, ref)
	s.Deleted = append(s.Deleted, ref)
	return nil
}

// DeletedRefs returns a copy of the deletion log.
func (s *ImageStore) DeletedRefs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.Deleted...)
}
