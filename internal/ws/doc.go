// Package ws streams filtered log records to WebSocket clients.
//
// Each connection gets its own pipeline run with a fan-out
// subscription attached before the run starts. Frames carry the same
// JSON wire encoding the broker sink publishes. The subscription is
// best-effort: a client that cannot keep up misses records instead of
// stalling the pipeline, and closing the connection cancels the run.
package ws
