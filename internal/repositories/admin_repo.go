package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	intconfig "javaterra/internal/config"
	intdb "javaterra/internal/db"
	"javaterra/internal/domain"
	"javaterra/internal/domain/models"
)

type AdminRepo struct {
	DB *sql.DB
}

func (r AdminRepo) db() (*sql.DB, error) {
	if r.DB != nil {
		return r.DB, nil
	}
	if intconfig.DB != nil {
		return intconfig.DB, nil
	}
	return nil, fmt.Errorf("database not connected")
}

func (r AdminRepo) FindByUsername(ctx context.Context, username string) (models.Admin, error) {
	db, err := r.db()
	if err != nil {
		return models.Admin{}, err
	}

	var (
		a         models.Admin
		createdAt intdb.Text
	)
	err = db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, created_at
		FROM admins
		WHERE username = ?
		LIMIT 1`, username).Scan(&a.ID, &a.Username, &a.PasswordHash, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Admin{}, domain.NotFoundError{Resource: "admin", Err: err}
		}
		return models.Admin{}, err
	}
	a.CreatedAt = createdAt.String()
	return a, nil
}

// Upsert creates the admin or replaces its password hash.
func (r AdminRepo) Upsert(ctx context.Context, username, passwordHash string) error {
	db, err := r.db()
	if err != nil {
		return err
	}

	res, err := db.ExecContext(ctx, `UPDATE admins SET password_hash = ? WHERE username = ?`, passwordHash, username)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}

	_, err = db.ExecContext(ctx, `INSERT INTO admins (username, password_hash) VALUES (?, ?)`, username, passwordHash)
	if intdb.IsUniqueViolation(err) {
		// mysql reports 0 affected rows when the hash did not change
		return nil
	}
	return err
}

func (r AdminRepo) Count(ctx context.Context) (int64, error) {
	db, err := r.db()
	if err != nil {
		return 0, err
	}
	var n int64
	err = db.QueryRowContext(ctx, `SELECT COUNT(*) FROM admins`).Scan(&n)
	return n, err
}
