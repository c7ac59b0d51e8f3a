// Package submission forwards completed orders to their destination.
package submission

import (
	"context"

	"github.com/rs/zerolog"

	"hmis/m/domain"
)

// Sink receives submitted orders.
type Sink interface {
	Submit(ctx context.Context, o *domain.Order) error
}

// LogSink writes each order as a structured log line.
type LogSink struct {
	logger zerolog.Logger
}

func NewLogSink(logger zerolog.Logger) *LogSink {
	return &LogSink{logger: logger.With().Str("sink", "log").Logger()}
}

func (s *LogSink) Submit(_ context.Context, o *domain.Order) error {
	s.logger.Info().
		Str("order_id", o.ID).
		Str("kind", string(o.Kind)).
		Interface("header", o.Header).
		Interface("items", o.Items).
		Str("discount_type", o.DiscountType).
		Float64("discount_value", o.DiscountValue).
		Float64("sub_total", o.Totals.SubTotal).
		Float64("discount_amount", o.Totals.DiscountAmount).
		Float64("grand_total", o.Totals.GrandTotal).
		Msg("order submitted")
	return nil
}
