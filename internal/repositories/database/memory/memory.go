// Package memory provides an in-process Store for tests, demos and single-user deployments.
package memory

import (
	"context"
	"sort"
	"sync"

	portsrepo "github.com/SscSPs/property_ledger/internal/core/ports/repositories"
)

// Store keeps every collection in memory. Writers are serialized by a mutex;
// readers always receive copies.
type Store struct {
	mu        sync.RWMutex
	data      state
	observers []portsrepo.ChangeObserver
}

// New creates an empty store. Observers are told about every committed write.
func New(observers ...portsrepo.ChangeObserver) *Store {
	return &Store{observers: observers}
}

var _ portsrepo.TxStore = (*Store)(nil)

// WithTx runs fn while holding the write lock. State is snapshotted first and
// restored if fn fails, so a failed unit of work leaves no trace.
func (m *Store) WithTx(ctx context.Context, fn func(store portsrepo.Store) error) error {
	m.mu.Lock()
	snap := m.data.clone()
	v := newView(&m.data)

	if err := fn(v); err != nil {
		m.data = snap
		m.mu.Unlock()
		return err
	}
	m.mu.Unlock()

	m.notify(ctx, v.changed)
	return nil
}

func (m *Store) read(fn func(v *view) error) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return fn(newView(&m.data))
}

func (m *Store) write(ctx context.Context, fn func(v *view) error) error {
	m.mu.Lock()
	v := newView(&m.data)
	err := fn(v)
	m.mu.Unlock()

	if err == nil {
		m.notify(ctx, v.changed)
	}
	return err
}

func (m *Store) notify(ctx context.Context, changed map[string]bool) {
	if len(changed) == 0 || len(m.observers) == 0 {
		return
	}
	collections := make([]string, 0, len(changed))
	for c := range changed {
		collections = append(collections, c)
	}
	sort.Strings(collections)
	for _, c := range collections {
		for _, o := range m.observers {
			o.OnChange(ctx, c)
		}
	}
}
