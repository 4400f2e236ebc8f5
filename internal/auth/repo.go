package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Operator is a back-office account allowed to use the admin API.
type Operator struct {
	ID           string
	Email        string
	DisplayName  string
	PasswordHash string
	TokenVersion int
	CreatedAt    time.Time
}

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

func (r *Repo) CreateOperator(ctx context.Context, op Operator) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO operators (id, email, display_name, password_hash)
		VALUES (?, ?, ?, ?)
	`, op.ID, strings.ToLower(strings.TrimSpace(op.Email)), op.DisplayName, op.PasswordHash)

	if err != nil {
		return fmt.Errorf("create operator: %w", err)
	}
	return nil
}

func (r *Repo) GetByEmail(ctx context.Context, email string) (*Operator, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, email, display_name, password_hash, token_version, created_at
		FROM operators
		WHERE LOWER(email) = ?
	`, email)
	return scanOperator(row, "get by email")
}

func (r *Repo) GetByID(ctx context.Context, id string) (*Operator, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, email, display_name, password_hash, token_version, created_at
		FROM operators
		WHERE id = ?
	`, id)
	return scanOperator(row, "get by id")
}

func scanOperator(row *sql.Row, op string) (*Operator, error) {
	var o Operator
	if err := row.Scan(&o.ID, &o.Email, &o.DisplayName, &o.PasswordHash, &o.TokenVersion, &o.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &o, nil
}

// GetTokenVersion returns -1 for an unknown operator so no token matches it.
func (r *Repo) GetTokenVersion(ctx context.Context, id string) (int, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT token_version
		FROM operators
		WHERE id = ?
	`, id)

	var version int
	if err := row.Scan(&version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return -1, nil
		}
		return 0, fmt.Errorf("get token version: %w", err)
	}
	return version, nil
}

func (r *Repo) BumpTokenVersion(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE operators
		SET token_version = token_version + 1
		WHERE id = ?
	`, id)
	if err != nil {
		return fmt.Errorf("bump token version: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("bump token version rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("bump token version: operator not found")
	}
	return nil
}
