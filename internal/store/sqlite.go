package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/oratio-tech/competitor-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite. Each collection is
// stored as ordered rows of the same JSON records the JSON driver writes.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the research database under dir.
func NewSQLiteStore(dir string) (*SQLiteStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, eris.Wrap(err, "sqlite: create data dir")
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, "research.db"))
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}

	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS candidates (
	position INTEGER PRIMARY KEY,
	record   TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS profiles (
	position INTEGER PRIMARY KEY,
	record   TEXT NOT NULL
);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) LoadCandidates(ctx context.Context) ([]model.Candidate, error) {
	rows, err := s.loadRecords(ctx, "candidates")
	if err != nil {
		return nil, err
	}

	candidates := make([]model.Candidate, len(rows))
	for i, record := range rows {
		if err := json.Unmarshal(record, &candidates[i]); err != nil {
			return nil, eris.Wrap(err, "sqlite: parse candidate")
		}
	}
	return candidates, nil
}

func (s *SQLiteStore) SaveCandidates(ctx context.Context, candidates []model.Candidate) error {
	records := make([][]byte, len(candidates))
	for i, c := range candidates {
		data, err := json.Marshal(c)
		if err != nil {
			return eris.Wrap(err, "sqlite: marshal candidate")
		}
		records[i] = data
	}
	return s.saveRecords(ctx, "candidates", records)
}

func (s *SQLiteStore) LoadProfiles(ctx context.Context) ([]model.Profile, error) {
	rows, err := s.loadRecords(ctx, "profiles")
	if err != nil {
		return nil, err
	}

	profiles := make([]model.Profile, len(rows))
	for i, record := range rows {
		if err := json.Unmarshal(record, &profiles[i]); err != nil {
			return nil, eris.Wrap(err, "sqlite: parse profile")
		}
	}
	return profiles, nil
}

func (s *SQLiteStore) SaveProfiles(ctx context.Context, profiles []model.Profile) error {
	records := make([][]byte, len(profiles))
	for i, p := range profiles {
		data, err := json.Marshal(p)
		if err != nil {
			return eris.Wrap(err, "sqlite: marshal profile")
		}
		records[i] = data
	}
	return s.saveRecords(ctx, "profiles", records)
}

func (s *SQLiteStore) loadRecords(ctx context.Context, table string) ([][]byte, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT record FROM "+table+" ORDER BY position")
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: query %s", table)
	}
	defer rows.Close() //nolint:errcheck

	var records [][]byte
	for rows.Next() {
		var record []byte
		if err := rows.Scan(&record); err != nil {
			return nil, eris.Wrapf(err, "sqlite: scan %s", table)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrapf(err, "sqlite: iterate %s", table)
	}

	if len(records) == 0 {
		return nil, ErrNotFound
	}
	return records, nil
}

// saveRecords replaces a table's content with the given ordered records in
// one transaction.
func (s *SQLiteStore) saveRecords(ctx context.Context, table string, records [][]byte) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin tx")
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return eris.Wrapf(err, "sqlite: clear %s", table)
	}
	for i, record := range records {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO "+table+" (position, record) VALUES (?, ?)", i, record); err != nil {
			return eris.Wrapf(err, "sqlite: insert %s", table)
		}
	}

	return eris.Wrap(tx.Commit(), "sqlite: commit")
}
