package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"integrityindex/internal/politician/models"
	"integrityindex/pkg/platform/sentinel"
)

// Querier is the subset of database/sql satisfied by both *sql.DB and *sql.Tx,
// so the same store code serves the API path and the batch transaction.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// PostgresStore persists politicians in PostgreSQL.
type PostgresStore struct {
	q Querier
}

// NewPostgres constructs a PostgreSQL-backed politician store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{q: db}
}

// NewPostgresTx constructs a store bound to an open transaction.
func NewPostgresTx(tx *sql.Tx) *PostgresStore {
	return &PostgresStore{q: tx}
}

const politicianColumns = `id, name, state, office_type, party, term_start, term_end, govtrack_id, opensecrets_id, followthemoney_id`

func (s *PostgresStore) Create(ctx context.Context, p *models.Politician) error {
	query := `
		INSERT INTO politicians (name, state, office_type, party, term_start, term_end, govtrack_id, opensecrets_id, followthemoney_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	err := s.q.QueryRowContext(ctx, query,
		p.Name, p.State, string(p.OfficeType), p.Party, p.TermStart, p.TermEnd,
		nullIfEmpty(p.GovtrackID), nullIfEmpty(p.OpensecretsID), nullIfEmpty(p.FollowTheMoneyID),
	).Scan(&p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%s: %w", uniqueViolationDetail(err), sentinel.ErrConflict)
		}
		return fmt.Errorf("create politician: %w", err)
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, p *models.Politician) error {
	query := `
		UPDATE politicians
		SET name = $2, state = $3, office_type = $4, party = $5, term_start = $6, term_end = $7,
			govtrack_id = $8, opensecrets_id = $9, followthemoney_id = $10
		WHERE id = $1
	`
	res, err := s.q.ExecContext(ctx, query,
		p.ID, p.Name, p.State, string(p.OfficeType), p.Party, p.TermStart, p.TermEnd,
		nullIfEmpty(p.GovtrackID), nullIfEmpty(p.OpensecretsID), nullIfEmpty(p.FollowTheMoneyID),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%s: %w", uniqueViolationDetail(err), sentinel.ErrConflict)
		}
		return fmt.Errorf("update politician: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update politician: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("politician %d: %w", p.ID, sentinel.ErrNotFound)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id int64) (*models.Politician, error) {
	row := s.q.QueryRowContext(ctx, `SELECT `+politicianColumns+` FROM politicians WHERE id = $1`, id)
	p, err := scanPolitician(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("politician %d: %w", id, sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("get politician: %w", err)
	}
	return p, nil
}

func (s *PostgresStore) FindByExternalID(ctx context.Context, kind ExternalIDKind, value string) (*models.Politician, error) {
	column, ok := externalIDColumn(kind)
	if !ok {
		return nil, fmt.Errorf("unknown external id kind %q", kind)
	}
	row := s.q.QueryRowContext(ctx, `SELECT `+politicianColumns+` FROM politicians WHERE `+column+` = $1`, value)
	p, err := scanPolitician(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s %q: %w", kind, value, sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find politician by %s: %w", kind, err)
	}
	return p, nil
}

func (s *PostgresStore) List(ctx context.Context, filter Filter, skip, limit int) ([]*models.Politician, error) {
	query := `SELECT ` + politicianColumns + ` FROM politicians WHERE 1=1`
	args := make([]any, 0, 5)
	if filter.State != "" {
		args = append(args, filter.State)
		query += fmt.Sprintf(" AND state = $%d", len(args))
	}
	if filter.OfficeType != "" {
		args = append(args, filter.OfficeType)
		query += fmt.Sprintf(" AND office_type = $%d", len(args))
	}
	if filter.Party != "" {
		args = append(args, filter.Party)
		query += fmt.Sprintf(" AND party = $%d", len(args))
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY id ASC LIMIT $%d", len(args))
	args = append(args, skip)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list politicians: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := []*models.Politician{}
	for rows.Next() {
		p, err := scanPolitician(rows)
		if err != nil {
			return nil, fmt.Errorf("list politicians: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list politicians: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPolitician(row rowScanner) (*models.Politician, error) {
	var p models.Politician
	var officeType string
	var govtrack, opensecrets, followthemoney sql.NullString
	err := row.Scan(
		&p.ID, &p.Name, &p.State, &officeType, &p.Party, &p.TermStart, &p.TermEnd,
		&govtrack, &opensecrets, &followthemoney,
	)
	if err != nil {
		return nil, err
	}
	p.OfficeType = models.OfficeType(officeType)
	p.GovtrackID = govtrack.String
	p.OpensecretsID = opensecrets.String
	p.FollowTheMoneyID = followthemoney.String
	return &p, nil
}

func externalIDColumn(kind ExternalIDKind) (string, bool) {
	switch kind {
	case KindGovtrack, KindOpensecrets, KindFollowTheMoney:
		return string(kind), true
	}
	return "", false
}

func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// isUniqueViolation reports whether err is a Postgres unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func uniqueViolationDetail(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Detail != "" {
			return pqErr.Detail
		}
		return pqErr.Message
	}
	return err.Error()
}
