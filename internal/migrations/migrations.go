package migrations

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// Run creates the database schema required by the backend. Statements are
// idempotent so Run is safe on every start.
func Run(db *sqlx.DB) error {
	serial := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if db.DriverName() != "sqlite" {
		serial = "SERIAL PRIMARY KEY"
	}

	schema := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id {{serial}},
			username TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			role TEXT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS catalog_items (
			id {{serial}},
			code TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			category TEXT,
			rate DOUBLE PRECISION NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS orders (
			id TEXT PRIMARY KEY,
			kind TEXT NOT NULL,
			header TEXT NOT NULL,
			patient TEXT,
			discount_type TEXT NOT NULL,
			discount_value DOUBLE PRECISION NOT NULL DEFAULT 0,
			sub_total DOUBLE PRECISION NOT NULL,
			discount_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
			grand_total DOUBLE PRECISION NOT NULL,
			paid_amount DOUBLE PRECISION DEFAULT 0,
			due_amount DOUBLE PRECISION DEFAULT 0,
			change_returned DOUBLE PRECISION DEFAULT 0,
			created_by INTEGER REFERENCES users(id),
			created_at TIMESTAMP NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS order_items (
			id {{serial}},
			order_id TEXT NOT NULL REFERENCES orders(id),
			line_no INTEGER NOT NULL,
			name TEXT NOT NULL,
			rate DOUBLE PRECISION NOT NULL,
			quantity INTEGER NOT NULL,
			discount_absolute DOUBLE PRECISION NOT NULL DEFAULT 0,
			discount_percent DOUBLE PRECISION NOT NULL DEFAULT 0,
			amount DOUBLE PRECISION NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS appointments (
			id INTEGER PRIMARY KEY,
			patient TEXT NOT NULL,
			doctor TEXT NOT NULL,
			department TEXT NOT NULL,
			at TIMESTAMP NOT NULL,
			status TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS opd_visits (
			opd_no INTEGER PRIMARY KEY,
			patient TEXT NOT NULL,
			age INTEGER NOT NULL,
			gender TEXT NOT NULL,
			doctor TEXT NOT NULL,
			visited_at TIMESTAMP NOT NULL,
			fee DOUBLE PRECISION NOT NULL,
			status TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS roles (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT,
			users INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS discard_items (
			id INTEGER PRIMARY KEY,
			item TEXT NOT NULL,
			batch TEXT NOT NULL,
			quantity INTEGER NOT NULL,
			reason TEXT,
			discarded_on TIMESTAMP NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS requisitions (
			req_no INTEGER PRIMARY KEY,
			department TEXT NOT NULL,
			item_count INTEGER NOT NULL,
			requested_on TIMESTAMP NOT NULL,
			status TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS item_returns (
			return_no INTEGER PRIMARY KEY,
			patient TEXT NOT NULL,
			amount DOUBLE PRECISION NOT NULL,
			returned_on TIMESTAMP NOT NULL,
			status TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id);`,
	}

	for _, stmt := range schema {
		stmt = strings.ReplaceAll(stmt, "{{serial}}", serial)
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}
