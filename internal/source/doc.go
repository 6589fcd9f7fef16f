// Package source reads raw log lines from a running workload.
//
// A Source opens a live, append-only stream of the workload's combined
// stdout/stderr channel and yields discrete lines in order until the
// stream ends or the context is canceled. Streams are not restartable:
// reopening a source yields only lines emitted after that point.
//
// The Docker implementation tails a container's log endpoint in follow
// mode with daemon-side timestamps, which produces exactly the
// "<RFC3339 timestamp> <body>" wire shape the decoder expects.
package source
