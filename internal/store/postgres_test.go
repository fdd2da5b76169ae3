package store

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oratio-tech/competitor-cli/internal/model"
)

// newMockPostgresStore creates a PostgresStore backed by pgxmock.
func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return &PostgresStore{pool: mock}, mock
}

func TestPostgresMigrate(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS candidates`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, s.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSaveCandidates(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	candidates := testCandidates()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM candidates`).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	for i := range candidates {
		mock.ExpectExec(`INSERT INTO candidates`).
			WithArgs(i, pgxmock.AnyArg()).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}
	mock.ExpectCommit()

	require.NoError(t, s.SaveCandidates(context.Background(), candidates))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresLoadCandidates(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	candidates := testCandidates()

	rows := pgxmock.NewRows([]string{"record"})
	for _, c := range candidates {
		data, err := json.Marshal(c)
		require.NoError(t, err)
		rows.AddRow(data)
	}
	mock.ExpectQuery(`SELECT record FROM candidates ORDER BY position`).
		WillReturnRows(rows)

	got, err := s.LoadCandidates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, candidates, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresLoadEmptyIsNotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT record FROM profiles ORDER BY position`).
		WillReturnRows(pgxmock.NewRows([]string{"record"}))

	_, err := s.LoadProfiles(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSaveProfilesRollsBackOnInsertFailure(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM profiles`).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec(`INSERT INTO profiles`).
		WithArgs(0, pgxmock.AnyArg()).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := s.SaveProfiles(context.Background(), []model.Profile{{Competitor: "Harvey AI"}})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
