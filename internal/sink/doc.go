/*
Package sink routes matched log records to their downstream systems.

# Overview

Two sinks back every pipeline run: a Kafka topic for real-time
consumers and a ClickHouse table for historical querying. The
Dispatcher issues both writes concurrently for each record and keeps
their failures isolated: a broker failure never blocks or cancels the
store write, and neither stops the run.

Delivery is at-most-once per sink. A failed write is logged and
counted, the record is dropped for that sink, and the pipeline moves
on. Nothing is queued for a sink that later recovers.

# Sinks

  - Broker: one message per record on a fixed logical topic, empty
    key, JSON payload from the record wire codec.
  - Store: one row per record in the configured table, inserted on a
    connection drawn from the shared pool and released on all paths.
*/
package sink
