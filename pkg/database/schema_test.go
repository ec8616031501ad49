package database

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSchemaMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	return sqlxDB, mock, func() {
		sqlxDB.Close()
		db.Close()
	}
}

func TestEnsureSchemaRunsEveryStatement(t *testing.T) {
	db, mock, cleanup := newSchemaMock(t)
	defer cleanup()

	for range schemaStatements {
		mock.ExpectExec("CREATE").WillReturnResult(sqlmock.NewResult(0, 0))
	}

	require.NoError(t, EnsureSchema(db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchemaCoversEveryTable(t *testing.T) {
	joined := ""
	for _, stmt := range schemaStatements {
		joined += stmt + "\n"
	}
	for _, table := range []string{"reports", "costs", "occupancy", "maintenance_issues", "arrears", "income"} {
		assert.Contains(t, joined, "CREATE TABLE IF NOT EXISTS "+table)
	}
	assert.Contains(t, joined, "compliance_right_to_rent BOOLEAN NOT NULL DEFAULT TRUE")
	assert.Contains(t, joined, "total_maintenance NUMERIC(12,2)")
}

func TestEnsureSchemaStopsOnFirstError(t *testing.T) {
	db, mock, cleanup := newSchemaMock(t)
	defer cleanup()

	mock.ExpectExec("CREATE").WillReturnError(errors.New("permission denied"))

	err := EnsureSchema(db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ensure schema")
	assert.NoError(t, mock.ExpectationsWereMet())
}
