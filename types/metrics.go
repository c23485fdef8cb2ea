package types

// MetricsCollector defines methods for collecting operational metrics.
//
// Implementations should be thread-safe as methods may be called concurrently
// from every goroutine that issues or waits on operations.
//
// Example usage with VictoriaMetrics (via contrib/metrics/vm):
//
//	import vmmetrics "github.com/arloliu/cqlbridge/contrib/metrics/vm"
//
//	collector := vmmetrics.New(vmmetrics.WithPrefix("myapp"))
//	session := cqlbridge.NewSession(driver, cqlbridge.WithMetrics(collector))
//
//	// Expose metrics via HTTP
//	http.HandleFunc("/metrics", collector.Handler)
type MetricsCollector interface {
	// ----------------------
	// Operations
	// ----------------------

	// IncSubmitted increments the counter of operations handed to the native driver.
	IncSubmitted(op Operation)

	// IncCompleted increments the counter of futures that resolved successfully.
	IncCompleted(op Operation)

	// IncFailed increments the counter of futures that resolved with an error.
	IncFailed(op Operation)

	// IncRejected increments the counter of operations refused by the
	// wrapper before reaching the native driver. Rejected operations are
	// never counted as submitted.
	IncRejected(op Operation)

	// IncDiscarded increments the counter of submitted futures released
	// without their outcome being read.
	IncDiscarded(op Operation)

	// ObserveWaitDuration records how long Wait blocked, in seconds.
	ObserveWaitDuration(op Operation, seconds float64)

	// ----------------------
	// Resources
	// ----------------------

	// IncReleased increments the counter of native resources released.
	IncReleased(kind ResourceKind)

	// ----------------------
	// Wrapper errors
	// ----------------------

	// IncEncodingError increments the counter of inputs rejected before
	// reaching the native driver.
	IncEncodingError()
}
