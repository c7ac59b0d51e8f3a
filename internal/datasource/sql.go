package datasource

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"hmis/m/domain"
	"hmis/m/internal/listing"
)

// TableSource selects records of type T with query and renders them as
// rows, so SQL-backed lists format exactly like generated ones.
func TableSource[T Rower](db *sqlx.DB, query string) Source {
	return SourceFunc(func(ctx context.Context) ([]listing.Row, error) {
		var items []T
		if err := db.SelectContext(ctx, &items, query); err != nil {
			return nil, fmt.Errorf("select: %w", err)
		}
		return RowsOf(items), nil
	})
}

// QuerySource scans whatever columns query returns into rows.
func QuerySource(db *sqlx.DB, query string, args ...any) Source {
	return SourceFunc(func(ctx context.Context) ([]listing.Row, error) {
		rs, err := db.QueryxContext(ctx, db.Rebind(query), args...)
		if err != nil {
			return nil, fmt.Errorf("query: %w", err)
		}
		defer rs.Close()

		var rows []listing.Row
		for rs.Next() {
			m := make(map[string]any)
			if err := rs.MapScan(m); err != nil {
				return nil, fmt.Errorf("scan: %w", err)
			}
			for k, v := range m {
				m[k] = normalize(v)
			}
			rows = append(rows, listing.Row(m))
		}
		return rows, rs.Err()
	})
}

func normalize(v any) any {
	switch t := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(t)
	case time.Time:
		return t.Format(domain.DateTimeLayout)
	}
	return v
}

// SQLSources reads every list from its table.
func SQLSources(db *sqlx.DB) map[string]Source {
	return map[string]Source{
		"appointments": TableSource[domain.Appointment](db,
			`SELECT id, patient, doctor, department, at, status FROM appointments`),
		"opd-visits": TableSource[domain.OPDVisit](db,
			`SELECT opd_no, patient, age, gender, doctor, visited_at, fee, status FROM opd_visits`),
		"roles": TableSource[domain.RoleEntry](db,
			`SELECT id, name, COALESCE(description, '') AS description, users FROM roles`),
		"discard-items": TableSource[domain.DiscardItem](db,
			`SELECT id, item, batch, quantity, COALESCE(reason, '') AS reason, discarded_on FROM discard_items`),
		"requisitions": TableSource[domain.Requisition](db,
			`SELECT req_no, department, item_count, requested_on, status FROM requisitions`),
		"returns": TableSource[domain.ItemReturn](db,
			`SELECT return_no, patient, amount, returned_on, status FROM item_returns`),
	}
}

// OrdersSource lists orders persisted by the SQL sink.
func OrdersSource(db *sqlx.DB) Source {
	return QuerySource(db, `SELECT id, kind, COALESCE(patient, '') AS patient, grand_total, created_at FROM orders`)
}
