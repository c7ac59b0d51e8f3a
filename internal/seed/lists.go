package seed

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"hmis/m/internal/datasource"
)

// LoadLists fills the list tables with n generated records each. Records
// are keyed by their position, so running it twice with the same seed
// inserts nothing new.
func LoadLists(ctx context.Context, db *sqlx.DB, seed int64, n int, logger zerolog.Logger) error {
	m := datasource.NewMock(seed)

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin list seed: %w", err)
	}
	defer tx.Rollback()

	inserts := []struct {
		table string
		query string
		args  []any
	}{
		{"appointments", `INSERT INTO appointments (id, patient, doctor, department, at, status)
			VALUES (:id, :patient, :doctor, :department, :at, :status) ON CONFLICT (id) DO NOTHING`, toArgs(m.Appointments(n))},
		{"opd_visits", `INSERT INTO opd_visits (opd_no, patient, age, gender, doctor, visited_at, fee, status)
			VALUES (:opd_no, :patient, :age, :gender, :doctor, :visited_at, :fee, :status) ON CONFLICT (opd_no) DO NOTHING`, toArgs(m.OPDVisits(n))},
		{"roles", `INSERT INTO roles (id, name, description, users)
			VALUES (:id, :name, :description, :users) ON CONFLICT (id) DO NOTHING`, toArgs(m.Roles(n))},
		{"discard_items", `INSERT INTO discard_items (id, item, batch, quantity, reason, discarded_on)
			VALUES (:id, :item, :batch, :quantity, :reason, :discarded_on) ON CONFLICT (id) DO NOTHING`, toArgs(m.DiscardItems(n))},
		{"requisitions", `INSERT INTO requisitions (req_no, department, item_count, requested_on, status)
			VALUES (:req_no, :department, :item_count, :requested_on, :status) ON CONFLICT (req_no) DO NOTHING`, toArgs(m.Requisitions(n))},
		{"item_returns", `INSERT INTO item_returns (return_no, patient, amount, returned_on, status)
			VALUES (:return_no, :patient, :amount, :returned_on, :status) ON CONFLICT (return_no) DO NOTHING`, toArgs(m.Returns(n))},
	}

	for _, in := range inserts {
		inserted := int64(0)
		for _, arg := range in.args {
			res, err := tx.NamedExecContext(ctx, in.query, arg)
			if err != nil {
				return fmt.Errorf("seed %s: %w", in.table, err)
			}
			if c, _ := res.RowsAffected(); c > 0 {
				inserted += c
			}
		}
		logger.Info().Str("table", in.table).Int64("rows", inserted).Msg("seeded list table")
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit list seed: %w", err)
	}
	return nil
}

func toArgs[T any](items []T) []any {
	out := make([]any, len(items))
	for i := range items {
		out[i] = items[i]
	}
	return out
}
