package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/agrismart/internal/db"
)

// SQLiteActiveUserRepo implements ActiveUserRepo over the single 'default'
// row of active_user.
type SQLiteActiveUserRepo struct {
	db db.DBTX
}

func NewSQLiteActiveUserRepo(conn db.DBTX) *SQLiteActiveUserRepo {
	return &SQLiteActiveUserRepo{db: conn}
}

func (r *SQLiteActiveUserRepo) Get(ctx context.Context) (string, error) {
	var mobile sql.NullString
	err := r.db.QueryRowContext(ctx, `SELECT mobile FROM active_user WHERE id = 'default'`).Scan(&mobile)
	if err != nil && err != sql.ErrNoRows {
		return "", fmt.Errorf("reading active user: %w", err)
	}
	if !mobile.Valid || mobile.String == "" {
		return "", fmt.Errorf("active user: %w", ErrNotFound)
	}
	return mobile.String, nil
}

func (r *SQLiteActiveUserRepo) Set(ctx context.Context, mobile string) error {
	query := `INSERT OR REPLACE INTO active_user (id, mobile, updated_at) VALUES ('default', ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, mobile, nowUTC()); err != nil {
		return fmt.Errorf("setting active user: %w", err)
	}
	return nil
}

func (r *SQLiteActiveUserRepo) Clear(ctx context.Context) error {
	query := `UPDATE active_user SET mobile = NULL, updated_at = ? WHERE id = 'default'`
	if _, err := r.db.ExecContext(ctx, query, nowUTC()); err != nil {
		return fmt.Errorf("clearing active user: %w", err)
	}
	return nil
}
