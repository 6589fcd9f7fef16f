/*
Package monitoring provides Prometheus metrics for the log pipeline.

# Overview

Tracks HTTP traffic on the edge, per-source pipeline progress (lines
read, malformed lines, matched records) and per-sink delivery outcomes.
Per-record sink failures are surfaced here and in the logs, never via a
run's completion status.

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))

	metrics.RecordLine("web-1")
	metrics.RecordSinkWrite("broker", "ok", elapsed)

Tests should use NewMetricsWith with a private registry to avoid
duplicate registration panics:

	metrics := monitoring.NewMetricsWith(prometheus.NewRegistry())

# Metrics Endpoint

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
*/
package monitoring
