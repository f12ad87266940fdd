package db_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/alexanderramin/agrismart/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openUoW(t *testing.T) (*sql.DB, *db.SQLiteUnitOfWork) {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database, db.NewSQLiteUnitOfWork(database)
}

func insertAccount(ctx context.Context, tx db.DBTX, mobile string) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO accounts
		(mobile, name, country, state, district, tashil, password_hash, created_at)
		VALUES (?, 'Test Farmer', 'India', 'Maharashtra', 'Pune', 'Haveli', 'x', '2026-01-01T00:00:00Z')`, mobile)
	return err
}

func countAccounts(t *testing.T, database *sql.DB, mobile string) int {
	t.Helper()
	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM accounts WHERE mobile = ?`, mobile).Scan(&n))
	return n
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	database, uow := openUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertAccount(ctx, tx, "9000000001"); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `UPDATE active_user SET mobile = ? WHERE id = 'default'`, "9000000001")
		return err
	})
	require.NoError(t, err)

	assert.Equal(t, 1, countAccounts(t, database, "9000000001"))
	var active string
	require.NoError(t, database.QueryRow(`SELECT mobile FROM active_user WHERE id = 'default'`).Scan(&active))
	assert.Equal(t, "9000000001", active)
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	database, uow := openUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertAccount(ctx, tx, "9000000002"); err != nil {
			return err
		}
		return errors.New("deliberate failure")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deliberate failure")

	assert.Equal(t, 0, countAccounts(t, database, "9000000002"))
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	database, uow := openUoW(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = insertAccount(ctx, tx, "9000000003")
			panic("boom")
		})
	})

	assert.Equal(t, 0, countAccounts(t, database, "9000000003"))
}
