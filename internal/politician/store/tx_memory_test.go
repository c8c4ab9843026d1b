package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryTxCommitsOnSuccess(t *testing.T) {
	st := NewInMemory()
	tx := NewInMemoryTx(st)
	ctx := context.Background()

	err := tx.RunInTx(ctx, func(s Store) error {
		return s.Create(ctx, newTestPolitician("Jane Doe", "CA"))
	})
	require.NoError(t, err)

	all, err := st.List(ctx, Filter{}, 0, 10)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestInMemoryTxRollsBackOnError(t *testing.T) {
	st := NewInMemory()
	tx := NewInMemoryTx(st)
	ctx := context.Background()

	seeded := newTestPolitician("Jane Doe", "CA")
	require.NoError(t, st.Create(ctx, seeded))

	boom := errors.New("boom")
	err := tx.RunInTx(ctx, func(s Store) error {
		if err := s.Create(ctx, newTestPolitician("John Roe", "NY")); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	// The write inside the failed run must not survive.
	all, err := st.List(ctx, Filter{}, 0, 10)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, seeded.ID, all[0].ID)

	// nextID rewinds with the rollback so ids stay dense.
	next := newTestPolitician("Alice Poe", "TX")
	require.NoError(t, st.Create(ctx, next))
	assert.Equal(t, seeded.ID+1, next.ID)
}

func TestInMemoryTxCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := NewInMemoryTx(NewInMemory()).RunInTx(ctx, func(Store) error {
		called = true
		return nil
	})
	require.Error(t, err)
	assert.False(t, called)
}
