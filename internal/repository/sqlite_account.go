package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/agrismart/internal/db"
	"github.com/alexanderramin/agrismart/internal/domain"
)

// SQLiteAccountRepo implements AccountRepo using a SQLite database.
type SQLiteAccountRepo struct {
	db db.DBTX
}

// NewSQLiteAccountRepo creates a new SQLiteAccountRepo.
func NewSQLiteAccountRepo(conn db.DBTX) *SQLiteAccountRepo {
	return &SQLiteAccountRepo{db: conn}
}

const accountColumns = `mobile, name, email, country, state, district, tashil, password_hash, created_at`

func (r *SQLiteAccountRepo) Create(ctx context.Context, a *domain.Account) error {
	query := `INSERT INTO accounts (` + accountColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		a.Mobile,
		a.Name,
		a.Email,
		a.Country,
		a.State,
		a.District,
		a.Tashil,
		a.PasswordHash,
		formatTime(a.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("account %s: %w", a.Mobile, ErrDuplicate)
		}
		return fmt.Errorf("inserting account: %w", err)
	}
	return nil
}

func (r *SQLiteAccountRepo) GetByMobile(ctx context.Context, mobile string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE mobile = ?`
	a, err := scanAccount(r.db.QueryRowContext(ctx, query, mobile))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("account: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning account: %w", err)
	}
	return a, nil
}

func (r *SQLiteAccountRepo) List(ctx context.Context) ([]*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY created_at, mobile`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*domain.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning account row: %w", err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating accounts: %w", err)
	}
	return accounts, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*domain.Account, error) {
	var a domain.Account
	var createdAt string
	if err := row.Scan(
		&a.Mobile, &a.Name, &a.Email, &a.Country, &a.State, &a.District, &a.Tashil,
		&a.PasswordHash, &createdAt,
	); err != nil {
		return nil, err
	}
	t, err := parseTime(createdAt, "created_at")
	if err != nil {
		return nil, err
	}
	a.CreatedAt = t
	return &a, nil
}
