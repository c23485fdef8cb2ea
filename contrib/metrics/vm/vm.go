package vm

import (
	"fmt"
	"io"
	"net/http"
	"sync/atomic"

	"github.com/VictoriaMetrics/metrics"

	"github.com/arloliu/cqlbridge/types"
)

// Option configures a Collector.
type Option func(*Collector)

// WithPrefix sets the metric name prefix.
//
// Default: "cqlbridge"
//
// Parameters:
//   - prefix: The prefix to use for all metric names
//
// Returns:
//   - Option: A configuration option
func WithPrefix(prefix string) Option {
	return func(c *Collector) {
		c.prefix = prefix
	}
}

// WithMetricsSet sets the metrics set to use.
//
// If provided, the collector will register metrics with this set instead of
// creating a new one. The caller is responsible for exposing this set
// (e.g., via metrics.WritePrometheus or a custom handler).
//
// Parameters:
//   - set: The metrics set to use
//
// Returns:
//   - Option: A configuration option
func WithMetricsSet(set *metrics.Set) Option {
	return func(c *Collector) {
		c.set = set
	}
}

// opMetrics holds the metrics of one operation.
type opMetrics struct {
	submitted *metrics.Counter
	completed *metrics.Counter
	failed    *metrics.Counter
	rejected  *metrics.Counter
	discarded *metrics.Counter
	wait      *metrics.Histogram
}

// Collector implements types.MetricsCollector using VictoriaMetrics.
//
// All metrics are pre-created at initialization time for optimal performance.
// Thread-safe for concurrent use.
type Collector struct {
	set    *metrics.Set
	prefix string

	ops      map[types.Operation]*opMetrics
	released map[types.ResourceKind]*metrics.Counter

	encodingErrors *metrics.Counter

	// submitted minus resolved, across all operations
	pending atomic.Int64
}

var _ types.MetricsCollector = (*Collector)(nil)

// New creates a new VictoriaMetrics-based metrics collector.
//
// The collector creates its own metrics.Set and registers it globally.
// All metrics are pre-created at initialization for optimal performance.
//
// Parameters:
//   - opts: Configuration options (e.g., WithPrefix)
//
// Returns:
//   - *Collector: A new metrics collector ready for use
//
// Example:
//
//	collector := vm.New(vm.WithPrefix("myapp"))
//	session := cqlbridge.NewSession(driver, cqlbridge.WithMetrics(collector))
func New(opts ...Option) *Collector {
	c := &Collector{
		prefix: "cqlbridge",
	}

	for _, opt := range opts {
		opt(c)
	}

	// If no set is provided, create a new one and register it globally.
	// If a set is provided, we assume the caller manages it.
	if c.set == nil {
		c.set = metrics.NewSet()
		metrics.RegisterSet(c.set)
	}

	c.initMetrics()

	return c
}

// initMetrics pre-creates all metrics with the configured prefix.
func (c *Collector) initMetrics() {
	p := c.prefix

	c.ops = make(map[types.Operation]*opMetrics, len(types.Operations()))
	for _, op := range types.Operations() {
		c.ops[op] = &opMetrics{
			submitted: c.set.NewCounter(fmt.Sprintf(`%s_operations_submitted_total{op="%s"}`, p, op)),
			completed: c.set.NewCounter(fmt.Sprintf(`%s_operations_completed_total{op="%s"}`, p, op)),
			failed:    c.set.NewCounter(fmt.Sprintf(`%s_operations_failed_total{op="%s"}`, p, op)),
			rejected:  c.set.NewCounter(fmt.Sprintf(`%s_operations_rejected_total{op="%s"}`, p, op)),
			discarded: c.set.NewCounter(fmt.Sprintf(`%s_operations_discarded_total{op="%s"}`, p, op)),
			wait:      c.set.NewHistogram(fmt.Sprintf(`%s_future_wait_seconds{op="%s"}`, p, op)),
		}
	}

	c.released = make(map[types.ResourceKind]*metrics.Counter, len(types.ResourceKinds()))
	for _, kind := range types.ResourceKinds() {
		c.released[kind] = c.set.NewCounter(fmt.Sprintf(`%s_resources_released_total{kind="%s"}`, p, kind))
	}

	c.encodingErrors = c.set.NewCounter(fmt.Sprintf(`%s_encoding_errors_total`, p))

	c.set.NewGauge(fmt.Sprintf(`%s_futures_pending`, p), func() float64 {
		return float64(c.pending.Load())
	})
}

// Set returns the metrics set the collector registers with.
func (c *Collector) Set() *metrics.Set {
	return c.set
}

// Handler returns an HTTP handler that exposes metrics in Prometheus format.
//
// Example:
//
//	http.HandleFunc("/metrics", collector.Handler)
func (c *Collector) Handler(w http.ResponseWriter, _ *http.Request) {
	c.set.WritePrometheus(w)
}

// WritePrometheus writes all metrics in Prometheus format to the given writer.
//
// Parameters:
//   - w: The writer to write metrics to
func (c *Collector) WritePrometheus(w io.Writer) {
	c.set.WritePrometheus(w)
}

// ----------------------
// Operations
// ----------------------

// IncSubmitted increments the submitted counter of op.
func (c *Collector) IncSubmitted(op types.Operation) {
	if m, ok := c.ops[op]; ok {
		m.submitted.Inc()
		c.pending.Add(1)
	}
}

// IncCompleted increments the completed counter of op.
func (c *Collector) IncCompleted(op types.Operation) {
	if m, ok := c.ops[op]; ok {
		m.completed.Inc()
		c.pending.Add(-1)
	}
}

// IncFailed increments the failed counter of op.
func (c *Collector) IncFailed(op types.Operation) {
	if m, ok := c.ops[op]; ok {
		m.failed.Inc()
		c.pending.Add(-1)
	}
}

// IncRejected increments the rejected counter of op. Rejected operations
// were never submitted, so the pending gauge is left alone.
func (c *Collector) IncRejected(op types.Operation) {
	if m, ok := c.ops[op]; ok {
		m.rejected.Inc()
	}
}

// IncDiscarded increments the discarded counter of op.
func (c *Collector) IncDiscarded(op types.Operation) {
	if m, ok := c.ops[op]; ok {
		m.discarded.Inc()
		c.pending.Add(-1)
	}
}

// ObserveWaitDuration records how long a Wait on op blocked.
func (c *Collector) ObserveWaitDuration(op types.Operation, seconds float64) {
	if m, ok := c.ops[op]; ok {
		m.wait.Update(seconds)
	}
}

// ----------------------
// Resources
// ----------------------

// IncReleased increments the release counter of kind.
func (c *Collector) IncReleased(kind types.ResourceKind) {
	if counter, ok := c.released[kind]; ok {
		counter.Inc()
	}
}

// ----------------------
// Wrapper errors
// ----------------------

// IncEncodingError increments the encoding error counter.
func (c *Collector) IncEncodingError() {
	c.encodingErrors.Inc()
}
