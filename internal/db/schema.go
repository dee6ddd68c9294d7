package db

import (
	"context"
	"database/sql"
	"fmt"
)

var sqliteSchema = []string{`
CREATE TABLE IF NOT EXISTS bookings (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	booking_id TEXT UNIQUE NOT NULL,
	departure TEXT NOT NULL,
	destination TEXT NOT NULL,
	date TEXT NOT NULL,
	time TEXT NOT NULL,
	bus_type TEXT NOT NULL,
	quantity INTEGER NOT NULL,
	total_price TEXT NOT NULL,
	username TEXT NOT NULL,
	birth_date TEXT NOT NULL,
	email TEXT NOT NULL,
	address TEXT NOT NULL,
	phone TEXT NOT NULL,
	payment_status TEXT DEFAULT 'not_paid',
	booking_status TEXT DEFAULT 'pending',
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`, `
CREATE TABLE IF NOT EXISTS admins (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT UNIQUE NOT NULL,
	password_hash TEXT NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`,
}

var mysqlSchema = []string{`
CREATE TABLE IF NOT EXISTS bookings (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	booking_id VARCHAR(32) NOT NULL,
	departure VARCHAR(255) NOT NULL,
	destination VARCHAR(255) NOT NULL,
	date VARCHAR(64) NOT NULL,
	time VARCHAR(64) NOT NULL,
	bus_type VARCHAR(100) NOT NULL,
	quantity INT NOT NULL,
	total_price VARCHAR(100) NOT NULL,
	username VARCHAR(255) NOT NULL,
	birth_date VARCHAR(64) NOT NULL,
	email VARCHAR(255) NOT NULL,
	address TEXT NOT NULL,
	phone VARCHAR(100) NOT NULL,
	payment_status VARCHAR(64) DEFAULT 'not_paid',
	booking_status VARCHAR(64) DEFAULT 'pending',
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_booking_id (booking_id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`, `
CREATE TABLE IF NOT EXISTS admins (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	username VARCHAR(100) NOT NULL,
	password_hash VARCHAR(255) NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_admin_username (username)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`,
}

// EnsureSchema creates the service tables when they are missing.
func EnsureSchema(ctx context.Context, db *sql.DB, dialect string) error {
	var stmts []string
	switch dialect {
	case dialectSQLite, "":
		stmts = sqliteSchema
	case dialectMySQL:
		stmts = mysqlSchema
	default:
		return fmt.Errorf("unknown dialect %q", dialect)
	}

	for _, ddl := range stmts {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return err
		}
	}
	return nil
}
