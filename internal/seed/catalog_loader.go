package seed

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
)

// LoadCatalog ingests a code,name,category,rate CSV into catalog_items,
// ignoring codes that already exist. It returns the number of rows inserted.
func LoadCatalog(ctx context.Context, db *sqlx.DB, csvPath string, logger zerolog.Logger) (int, error) {
	file, err := os.Open(csvPath)
	if err != nil {
		return 0, fmt.Errorf("open catalog %s: %w", csvPath, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	// Skip header
	if _, err := reader.Read(); err != nil {
		return 0, fmt.Errorf("read catalog header: %w", err)
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin catalog transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, tx.Rebind(
		`INSERT INTO catalog_items (code, name, category, rate) VALUES (?, ?, ?, ?) ON CONFLICT (code) DO NOTHING`))
	if err != nil {
		return 0, fmt.Errorf("prepare catalog insert: %w", err)
	}
	defer stmt.Close()

	rows := 0
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			logger.Warn().Err(err).Int("line", line).Msg("skipping unreadable catalog row")
			continue
		}
		if len(record) < 4 {
			continue
		}
		code := strings.TrimSpace(record[0])
		name := strings.TrimSpace(record[1])
		category := strings.TrimSpace(record[2])
		rate, err := strconv.ParseFloat(strings.TrimSpace(record[3]), 64)
		if code == "" || name == "" || err != nil || rate <= 0 {
			logger.Warn().Int("line", line).Str("code", code).Msg("skipping invalid catalog row")
			continue
		}

		res, err := stmt.ExecContext(ctx, code, name, category, rate)
		if err != nil {
			return rows, fmt.Errorf("insert catalog item %s: %w", code, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			rows++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit catalog seed: %w", err)
	}
	logger.Info().Int("rows", rows).Str("path", csvPath).Msg("seeded catalog")
	return rows, nil
}
