package submission

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"hmis/m/domain"
)

// SQLSink stores orders and their line items in one transaction.
type SQLSink struct {
	db *sqlx.DB
}

func NewSQLSink(db *sqlx.DB) *SQLSink {
	return &SQLSink{db: db}
}

func (s *SQLSink) Submit(ctx context.Context, o *domain.Order) error {
	header, err := json.Marshal(o.Header)
	if err != nil {
		return fmt.Errorf("marshal header: %w", err)
	}
	var settle domain.Settlement
	if o.Settlement != nil {
		settle = *o.Settlement
	}
	var createdBy any
	if o.CreatedBy != nil {
		createdBy = *o.CreatedBy
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin order: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, tx.Rebind(`INSERT INTO orders (id, kind, header, patient, discount_type, discount_value,
		sub_total, discount_amount, grand_total, paid_amount, due_amount, change_returned, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		o.ID, string(o.Kind), string(header), nullIfEmpty(o.Header["patient"]), o.DiscountType, o.DiscountValue,
		o.Totals.SubTotal, o.Totals.DiscountAmount, o.Totals.GrandTotal,
		settle.PaidAmount, settle.DueAmount, settle.ChangeReturned, createdBy, o.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	insertItem := tx.Rebind(`INSERT INTO order_items (order_id, line_no, name, rate, quantity, discount_absolute, discount_percent, amount)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	for i, it := range o.Items {
		if _, err := tx.ExecContext(ctx, insertItem,
			o.ID, i+1, it.Name, it.Rate, it.Quantity, it.DiscountAbsolute, it.DiscountPercent, it.Amount); err != nil {
			return fmt.Errorf("insert order item %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit order: %w", err)
	}
	return nil
}

// Items loads the stored line items of an order in submission order.
func (s *SQLSink) Items(ctx context.Context, orderID string) ([]domain.LineItem, error) {
	var items []domain.LineItem
	err := s.db.SelectContext(ctx, &items, s.db.Rebind(`SELECT name, rate, quantity, discount_absolute, discount_percent, amount
		FROM order_items WHERE order_id = ? ORDER BY line_no`), orderID)
	if err != nil {
		return nil, fmt.Errorf("select order items: %w", err)
	}
	return items, nil
}

func nullIfEmpty(val string) any {
	if val == "" {
		return nil
	}
	return val
}
