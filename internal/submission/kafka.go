package submission

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"hmis/m/domain"
)

// messageWriter abstracts kafka.Writer for testability.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaSink publishes orders as JSON keyed by order id.
type KafkaSink struct {
	writer messageWriter
}

func NewKafkaSink(brokers []string, topic string) *KafkaSink {
	return &KafkaSink{writer: &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
	}}
}

func (k *KafkaSink) Submit(ctx context.Context, o *domain.Order) error {
	b, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("marshal order: %w", err)
	}
	if err := k.writer.WriteMessages(ctx, kafka.Message{Key: []byte(o.ID), Value: b}); err != nil {
		return fmt.Errorf("publish order %s: %w", o.ID, err)
	}
	return nil
}

func (k *KafkaSink) Close() error {
	return k.writer.Close()
}
