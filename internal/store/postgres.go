package store

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/oratio-tech/competitor-cli/internal/model"
)

// Pool is the subset of pgxpool.Pool the store uses; pgxmock satisfies it
// in tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Close()
}

// PostgresStore implements Store using pgxpool, with the same ordered
// JSON-record scheme as the SQLite driver.
type PostgresStore struct {
	pool Pool
}

// NewPostgresStore connects a pool to the given database URL.
func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: connect")
	}
	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS candidates (
	position BIGINT PRIMARY KEY,
	record   JSONB NOT NULL
);

CREATE TABLE IF NOT EXISTS profiles (
	position BIGINT PRIMARY KEY,
	record   JSONB NOT NULL
);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) LoadCandidates(ctx context.Context) ([]model.Candidate, error) {
	records, err := s.loadRecords(ctx, "candidates")
	if err != nil {
		return nil, err
	}

	candidates := make([]model.Candidate, len(records))
	for i, record := range records {
		if err := json.Unmarshal(record, &candidates[i]); err != nil {
			return nil, eris.Wrap(err, "postgres: parse candidate")
		}
	}
	return candidates, nil
}

func (s *PostgresStore) SaveCandidates(ctx context.Context, candidates []model.Candidate) error {
	records := make([][]byte, len(candidates))
	for i, c := range candidates {
		data, err := json.Marshal(c)
		if err != nil {
			return eris.Wrap(err, "postgres: marshal candidate")
		}
		records[i] = data
	}
	return s.saveRecords(ctx, "candidates", records)
}

func (s *PostgresStore) LoadProfiles(ctx context.Context) ([]model.Profile, error) {
	records, err := s.loadRecords(ctx, "profiles")
	if err != nil {
		return nil, err
	}

	profiles := make([]model.Profile, len(records))
	for i, record := range records {
		if err := json.Unmarshal(record, &profiles[i]); err != nil {
			return nil, eris.Wrap(err, "postgres: parse profile")
		}
	}
	return profiles, nil
}

func (s *PostgresStore) SaveProfiles(ctx context.Context, profiles []model.Profile) error {
	records := make([][]byte, len(profiles))
	for i, p := range profiles {
		data, err := json.Marshal(p)
		if err != nil {
			return eris.Wrap(err, "postgres: marshal profile")
		}
		records[i] = data
	}
	return s.saveRecords(ctx, "profiles", records)
}

func (s *PostgresStore) loadRecords(ctx context.Context, table string) ([][]byte, error) {
	rows, err := s.pool.Query(ctx, "SELECT record FROM "+table+" ORDER BY position")
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: query %s", table)
	}
	defer rows.Close()

	var records [][]byte
	for rows.Next() {
		var record []byte
		if err := rows.Scan(&record); err != nil {
			return nil, eris.Wrapf(err, "postgres: scan %s", table)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrapf(err, "postgres: iterate %s", table)
	}

	if len(records) == 0 {
		return nil, ErrNotFound
	}
	return records, nil
}

func (s *PostgresStore) saveRecords(ctx context.Context, table string, records [][]byte) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return eris.Wrap(err, "postgres: begin tx")
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, "DELETE FROM "+table); err != nil {
		return eris.Wrapf(err, "postgres: clear %s", table)
	}
	for i, record := range records {
		if _, err := tx.Exec(ctx,
			"INSERT INTO "+table+" (position, record) VALUES ($1, $2)", i, record); err != nil {
			return eris.Wrapf(err, "postgres: insert %s", table)
		}
	}

	return eris.Wrap(tx.Commit(ctx), "postgres: commit")
}
