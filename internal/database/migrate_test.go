package database

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"law-quiz/internal/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return sqlx.NewDb(mockDB, DriverOracle), mock
}

func TestRunMigrations_Oracle(t *testing.T) {
	db, mock := setupTestDB(t)

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE law_quiz_batches")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("CREATE INDEX idx_law_quiz_batches_created")).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, RunMigrations(context.Background(), db, config.StoreDriverOracle))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMigrations_OracleAlreadyApplied(t *testing.T) {
	db, mock := setupTestDB(t)

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE law_quiz_batches")).
		WillReturnError(errors.New("ORA-00955: name is already used by an existing object"))
	mock.ExpectExec(regexp.QuoteMeta("CREATE INDEX idx_law_quiz_batches_created")).
		WillReturnError(errors.New("ORA-00955: name is already used by an existing object"))

	require.NoError(t, RunMigrations(context.Background(), db, config.StoreDriverOracle))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMigrations_OracleFailure(t *testing.T) {
	db, mock := setupTestDB(t)

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE law_quiz_batches")).
		WillReturnError(errors.New("ORA-01031: insufficient privileges"))

	err := RunMigrations(context.Background(), db, config.StoreDriverOracle)
	assert.ErrorContains(t, err, "001_create_law_quiz_batches.up.sql")
}

func TestRunMigrations_UnknownDriver(t *testing.T) {
	db, _ := setupTestDB(t)
	assert.Error(t, RunMigrations(context.Background(), db, config.StoreDriverFirestore))
}

func TestDriverName(t *testing.T) {
	name, err := DriverName(config.StoreDriverOracle)
	assert.NoError(t, err)
	assert.Equal(t, DriverOracle, name)

	name, err = DriverName(config.StoreDriverPostgres)
	assert.NoError(t, err)
	assert.Equal(t, DriverPgx, name)

	_, err = DriverName(config.StoreDriverRedis)
	assert.Error(t, err)
}

func TestBindDriver_Oracle(t *testing.T) {
	db, _ := setupTestDB(t)
	assert.Equal(t, "SELECT 1 FROM dual WHERE a = :arg1 AND b = :arg2", db.Rebind("SELECT 1 FROM dual WHERE a = ? AND b = ?"))
}
