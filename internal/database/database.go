package database

import (
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Connect opens a database for driver ("sqlite" or "pgx") using dsn.
func Connect(driver, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", driver, err)
	}
	if driver == "sqlite" {
		// A single connection keeps :memory: databases shared.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
	}
	return db, nil
}
