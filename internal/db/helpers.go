package db

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

const (
	dialectSQLite = "sqlite"
	dialectMySQL  = "mysql"
)

type QueryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// HasTable reports whether table exists in the current database.
func HasTable(ctx context.Context, q QueryRower, dialect, table string) bool {
	query := `SELECT name FROM sqlite_master WHERE type = 'table' AND name = ? LIMIT 1`
	if dialect == dialectMySQL {
		query = `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		LIMIT 1`
	}

	var name sql.NullString
	if err := q.QueryRowContext(ctx, query, table).Scan(&name); err != nil {
		return false
	}
	return name.Valid && name.String != ""
}

// IsUniqueViolation detects duplicate-key errors from either driver.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "constraint failed: UNIQUE")
}

// LikeEscapeChar is the ESCAPE character used with ContainsPattern.
const LikeEscapeChar = "!"

// ContainsPattern builds a LIKE pattern matching s anywhere, with LIKE
// wildcards in s taken literally. Use with ESCAPE '!'.
func ContainsPattern(s string) string {
	r := strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")
	return "%" + r.Replace(s) + "%"
}
