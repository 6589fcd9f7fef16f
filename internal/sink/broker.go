package sink

import (
	"context"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/logtide/logtide/internal/config"
	"github.com/logtide/logtide/internal/record"
)

// Broker publishes records to a Kafka topic. Messages carry no key;
// the pipeline requires no per-record deduplication.
type Broker struct {
	writer *kafka.Writer
}

// NewBroker creates a broker sink from configuration. A zero write
// timeout keeps the driver default and waits for acknowledgment.
func NewBroker(cfg config.BrokerConfig) *Broker {
	return &Broker{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Address),
			Topic:        cfg.Topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireAll,
			WriteTimeout: cfg.WriteTimeout,
			BatchSize:    1,
			BatchTimeout: 10 * time.Millisecond,
		},
	}
}

func (b *Broker) Name() string { return "broker" }

// Write publishes one record as a single message.
func (b *Broker) Write(ctx context.Context, rec record.Record) error {
	payload, err := record.Encode(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}

	if err := b.writer.WriteMessages(ctx, kafka.Message{Value: payload}); err != nil {
		return fmt.Errorf("publish to %s: %w", b.writer.Topic, err)
	}
	return nil
}

// Close flushes pending messages and closes the writer.
func (b *Broker) Close() error {
	return b.writer.Close()
}
