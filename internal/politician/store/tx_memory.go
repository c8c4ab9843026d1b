package store

import (
	"context"
	"sync"
)

// InMemoryTx provides a transactional boundary over the in-memory store for
// tests and local development. It mirrors the all-or-nothing semantics of the
// Postgres adapter: when fn returns an error, every write from the run is
// rolled back.
type InMemoryTx struct {
	mu    sync.Mutex
	store *InMemoryStore
}

// NewInMemoryTx constructs a transactional boundary over st.
func NewInMemoryTx(st *InMemoryStore) *InMemoryTx {
	return &InMemoryTx{store: st}
}

// RunInTx executes fn against the store, restoring the pre-run state when fn
// fails. Runs are serialized, so the store's view is consistent for the whole
// run.
func (t *InMemoryTx) RunInTx(ctx context.Context, fn func(st Store) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	snap := t.store.snapshot()
	if err := fn(t.store); err != nil {
		t.store.restore(snap)
		return err
	}
	return nil
}
