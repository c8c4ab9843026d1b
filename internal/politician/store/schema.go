package store

import (
	"context"
	"database/sql"
	"fmt"
)

// schema creates the politicians table with uniqueness constraints on the
// external identifier columns and lookup indexes on the filterable fields.
const schema = `
CREATE TABLE IF NOT EXISTS politicians (
	id                BIGSERIAL PRIMARY KEY,
	name              TEXT NOT NULL,
	state             TEXT NOT NULL,
	office_type       TEXT NOT NULL,
	party             TEXT NOT NULL,
	term_start        DATE NOT NULL,
	term_end          DATE NOT NULL,
	govtrack_id       VARCHAR(50) UNIQUE,
	opensecrets_id    VARCHAR(50) UNIQUE,
	followthemoney_id VARCHAR(100) UNIQUE
);

CREATE INDEX IF NOT EXISTS idx_politicians_name  ON politicians (name);
CREATE INDEX IF NOT EXISTS idx_politicians_state ON politicians (state);
`

// EnsureSchema creates the politicians table and its indexes if absent. Both
// entrypoints call it on startup so either can run against a fresh database.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure politicians schema: %w", err)
	}
	return nil
}
