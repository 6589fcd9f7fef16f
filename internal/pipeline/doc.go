/*
Package pipeline wires the log routing loop together.

# Overview

One Run tails one source inside one time window:

	source → decode → window filter → {broker, store} + live fan-out

Each run is an independent goroutine started by the caller; runs share
nothing but the store connection pool. Records flow through in source
order. Only a failure to open the source terminates a run — malformed
lines, read errors and sink failures are reported and skipped.

# Usage

	p := pipeline.New(src, dispatcher, logger, metrics)
	sub := p.Subscribe(256) // optional live view
	go func() {
		if err := p.Run(ctx, "container-id", win); err != nil {
			logger.Error("run failed", zap.Error(err))
		}
	}()
*/
package pipeline
