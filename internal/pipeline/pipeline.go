package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/logtide/logtide/internal/fanout"
	"github.com/logtide/logtide/internal/logging"
	"github.com/logtide/logtide/internal/monitoring"
	"github.com/logtide/logtide/internal/record"
	"github.com/logtide/logtide/internal/sink"
	"github.com/logtide/logtide/internal/source"
	"github.com/logtide/logtide/internal/window"
)

// ErrSourceUnavailable is returned by Run when the log stream cannot
// be opened. It is the only run-terminating error in the taxonomy; all
// per-record failures are isolated and non-fatal.
var ErrSourceUnavailable = source.ErrUnavailable

// Pipeline binds one source to the dual-sink dispatcher and the live
// fan-out hub. A Pipeline hosts one run.
type Pipeline struct {
	source     source.Source
	dispatcher *sink.Dispatcher
	hub        *fanout.Hub
	logger     *logging.Logger
	metrics    *monitoring.Metrics
}

// New creates a pipeline. The fan-out hub starts empty; subscribers
// may attach before or during the run.
func New(src source.Source, d *sink.Dispatcher, logger *logging.Logger, metrics *monitoring.Metrics) *Pipeline {
	return &Pipeline{
		source:     src,
		dispatcher: d,
		hub:        fanout.New(),
		logger:     logger,
		metrics:    metrics,
	}
}

// Subscribe attaches a live subscriber to the filtered record stream.
// Subscribers are optional and best-effort: a full buffer drops
// records for that subscriber instead of stalling the run.
func (p *Pipeline) Subscribe(buffer int) *fanout.Subscription {
	return p.hub.Subscribe(buffer)
}

// Run tails the identified source and routes every record inside win
// to both sinks, in source order, until the stream ends or ctx is
// canceled. Callers start Run on its own goroutine and do not wait.
func (p *Pipeline) Run(ctx context.Context, sourceID string, win window.Window) error {
	log := p.logger.With(
		zap.String("run_id", uuid.NewString()),
		zap.String("source", sourceID),
		zap.Time("window_start", win.Start),
		zap.Time("window_end", win.End),
	)

	lines, err := p.source.Open(ctx, sourceID)
	if err != nil {
		log.Error("failed to open log source", zap.Error(err))
		return fmt.Errorf("open source %q: %w", sourceID, err)
	}

	p.metrics.RunStarted()
	defer p.metrics.RunFinished()
	defer p.hub.Close()

	log.Info("pipeline run started")

	for {
		select {
		case <-ctx.Done():
			log.Info("pipeline run canceled")
			return ctx.Err()

		case line, ok := <-lines:
			if !ok {
				log.Info("log stream ended")
				return nil
			}
			p.process(ctx, log, sourceID, win, line)
		}
	}
}

// process handles one line: decode, filter, dispatch, fan out. All
// failures here are per-line and leave the run going.
func (p *Pipeline) process(ctx context.Context, log *zap.Logger, sourceID string, win window.Window, line source.Line) {
	if line.Err != nil {
		log.Warn("log read error", zap.Error(line.Err))
		p.metrics.RecordReadError(sourceID)
		return
	}

	p.metrics.RecordLine(sourceID)

	rec, err := record.Decode(sourceID, line.Text)
	if err != nil {
		log.Warn("malformed log line skipped", zap.Error(err))
		p.metrics.RecordMalformedLine(sourceID)
		return
	}

	if !win.Contains(rec.Timestamp) {
		return
	}

	p.metrics.RecordMatch(sourceID)
	p.dispatcher.Dispatch(ctx, rec)

	if dropped := p.hub.Publish(rec); dropped > 0 {
		p.metrics.RecordFanoutDrop(sourceID)
	}
}
