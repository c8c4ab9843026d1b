package main

import (
	"context"
	"database/sql"

	"integrityindex/internal/politician/store"
)

// rosterPostgresTx scopes one reconciliation run to a single database
// transaction: either every record's effect commits or none do.
type rosterPostgresTx struct {
	db *sql.DB
}

func newRosterPostgresTx(db *sql.DB) *rosterPostgresTx {
	return &rosterPostgresTx{db: db}
}

func (t *rosterPostgresTx) RunInTx(ctx context.Context, fn func(st store.Store) error) error {
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(store.NewPostgresTx(tx)); err != nil {
		return err
	}

	return tx.Commit()
}
