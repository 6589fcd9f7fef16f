package sink

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/logtide/logtide/internal/logging"
	"github.com/logtide/logtide/internal/monitoring"
	"github.com/logtide/logtide/internal/record"
)

// Dispatcher performs the dual write for each matched record. The two
// sink writes are issued concurrently and fail independently; the
// dispatcher waits for both before returning so records keep their
// source order within each sink.
type Dispatcher struct {
	sinks   []Sink
	logger  *logging.Logger
	metrics *monitoring.Metrics
}

// NewDispatcher creates a dispatcher over the given sinks.
func NewDispatcher(logger *logging.Logger, metrics *monitoring.Metrics, sinks ...Sink) *Dispatcher {
	return &Dispatcher{
		sinks:   sinks,
		logger:  logger,
		metrics: metrics,
	}
}

// Dispatch writes rec to every sink. Failures are logged and counted,
// never returned: per-record sink errors must not reach the run's
// completion status.
func (d *Dispatcher) Dispatch(ctx context.Context, rec record.Record) {
	var wg sync.WaitGroup
	wg.Add(len(d.sinks))
	for _, s := range d.sinks {
		go func(s Sink) {
			defer wg.Done()
			d.write(ctx, s, rec)
		}(s)
	}
	wg.Wait()
}

// Close closes every sink, keeping the first error.
func (d *Dispatcher) Close() error {
	var first error
	for _, s := range d.sinks {
		if err := s.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (d *Dispatcher) write(ctx context.Context, s Sink, rec record.Record) {
	start := time.Now()
	err := s.Write(ctx, rec)
	elapsed := time.Since(start)

	if err != nil {
		d.logger.Warn("sink write failed, record dropped for this sink",
			zap.String("sink", s.Name()),
			zap.String("source", rec.Source),
			zap.Time("record_timestamp", rec.Timestamp),
			zap.Error(err),
		)
		d.metrics.RecordSinkWrite(s.Name(), "error", elapsed)
		return
	}
	d.metrics.RecordSinkWrite(s.Name(), "ok", elapsed)
}
