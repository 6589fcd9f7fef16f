// Package main is the entry point for the log routing service.
//
// The service tails container log streams, filters them to a
// caller-provided time window and routes every matched record to a
// Kafka topic and a ClickHouse table, with an optional WebSocket live
// tail.
//
// Configuration:
//   - Environment variables (12-factor), see internal/config
//   - Defaults suitable for local development
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
