package sink

import (
	"context"

	"github.com/logtide/logtide/internal/record"
)

// Sink writes one record to an output destination.
type Sink interface {
	// Name returns a short identifier used in logs and metrics.
	Name() string

	// Write delivers a single record. A non-nil error means the record
	// was not delivered; it is not retried.
	Write(ctx context.Context, rec record.Record) error

	// Close releases resources held by the sink.
	Close() error
}
