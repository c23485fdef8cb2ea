// Package vm provides a VictoriaMetrics-based implementation of the MetricsCollector interface.
//
// This package uses github.com/VictoriaMetrics/metrics for lightweight,
// high-performance Prometheus-compatible metrics collection.
//
// # Basic Usage
//
// Create a collector with default prefix "cqlbridge":
//
//	collector := vm.New()
//	session := cqlbridge.NewSession(driver, cqlbridge.WithMetrics(collector))
//
// # Custom Prefix
//
// Use WithPrefix to customize the metric name prefix:
//
//	collector := vm.New(vm.WithPrefix("myapp"))
//
// This produces metrics like:
//   - myapp_operations_submitted_total{op="execute"}
//   - myapp_future_wait_seconds{op="connect"}
//
// # Exposing Metrics
//
// Use the Handler method to expose metrics via HTTP:
//
//	http.HandleFunc("/metrics", collector.Handler)
//	http.ListenAndServe(":8080", nil)
//
// # Metrics Provided
//
// Operations (op is one of connect, close, prepare, execute, batch):
//   - {prefix}_operations_submitted_total{op} - Counter of operations handed to the driver
//   - {prefix}_operations_completed_total{op} - Counter of futures that resolved successfully
//   - {prefix}_operations_failed_total{op} - Counter of futures that resolved with an error
//   - {prefix}_operations_rejected_total{op} - Counter of operations refused before submission
//   - {prefix}_operations_discarded_total{op} - Counter of futures released without reading the outcome
//   - {prefix}_future_wait_seconds{op} - Histogram of time spent blocked in Wait
//   - {prefix}_futures_pending - Gauge of submitted operations not yet resolved
//
// Resources:
//   - {prefix}_resources_released_total{kind} - Counter of native handles released
//
// Wrapper errors:
//   - {prefix}_encoding_errors_total - Counter of inputs rejected before reaching the driver
//
// # Performance Notes
//
// This implementation pre-creates all metrics at initialization time
// using the NewXXX pattern (instead of GetOrCreateXXX) for optimal
// performance in hot paths, as recommended by the VictoriaMetrics documentation.
package vm
