// Package vm provides a VictoriaMetrics-based implementation of the
// MetricsCollector interface.
//
// This package uses github.com/VictoriaMetrics/metrics for lightweight,
// high-performance Prometheus-compatible metrics collection.
//
// # Basic Usage
//
// Create a collector with default prefix "casstcl":
//
//	collector := vm.New()
//	client, _ := casstcl.NewClient(session,
//	    casstcl.WithMetrics(collector),
//	)
//
// # Custom Prefix
//
// Use WithPrefix to customize the metric name prefix:
//
//	collector := vm.New(vm.WithPrefix("myapp"))
//
// This produces metrics like:
//   - myapp_query_total{kind="exec"}
//   - myapp_query_duration_seconds{kind="select"}
//
// # Exposing Metrics
//
// Use the Handler method to expose metrics via HTTP:
//
//	http.HandleFunc("/metrics", collector.Handler)
//	http.ListenAndServe(":8080", nil)
//
// Or use WritePrometheus to write metrics to a custom writer:
//
//	collector.WritePrometheus(w)
//
// # Metrics Provided
//
// Query execution:
//   - {prefix}_query_total{kind} - Counter of executions per kind
//   - {prefix}_query_errors_total{kind} - Counter of failed executions
//   - {prefix}_query_duration_seconds{kind} - Histogram of latencies
//
// Row streaming:
//   - {prefix}_pages_fetched_total - Counter of fetched result pages
//   - {prefix}_rows_delivered_total - Counter of rows handed to handlers
//
// Type registry:
//   - {prefix}_type_cache_hits_total - Counter of cache hits
//   - {prefix}_type_cache_misses_total - Counter of cache misses
//
// Async bridge:
//   - {prefix}_async_submitted_total - Counter of async submissions
//   - {prefix}_async_delivered_total - Counter of delivered completions
//
// # Performance Notes
//
// This implementation pre-creates all metrics at initialization time
// using the NewXXX pattern (instead of GetOrCreateXXX) for optimal
// performance in hot paths, as recommended by the VictoriaMetrics
// documentation.
//
// The metrics are registered with a dedicated Set that is registered
// globally, allowing standard Prometheus scraping.
package vm
