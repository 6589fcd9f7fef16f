// Package server provides HTTP setup for the log routing service.
//
// This package wires the components together:
//   - HTTP routing with Gin (CORS, recovery, metrics middleware)
//   - Docker log source and the shared ClickHouse pool
//   - Per-request pipeline construction (broker + store sinks)
//
// Routes:
//   - GET /              usage
//   - GET /health        liveness
//   - GET /metrics       Prometheus metrics
//   - GET /logs          start a pipeline run, respond 202
//   - GET /logs/stream   WebSocket live tail of a run
//
// Starting a run acknowledges immediately; the caller never waits for
// completion and per-record failures are reported via logs and
// metrics, not the response.
package server
