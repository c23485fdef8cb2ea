package testutil

import (
	"sync"
	"sync/atomic"

	"github.com/arloliu/cqlbridge/types"
)

// TestMetricsCollector is a test implementation of types.MetricsCollector
// that tracks method calls for assertion in tests.
type TestMetricsCollector struct {
	mu sync.RWMutex

	// Operations
	Submitted    map[types.Operation]int64
	Completed    map[types.Operation]int64
	Failed       map[types.Operation]int64
	Rejected     map[types.Operation]int64
	Discarded    map[types.Operation]int64
	WaitDuration map[types.Operation][]float64

	// Resources
	Released map[types.ResourceKind]int64

	// Atomic counters for quick access
	encodingErrors atomic.Int64
}

// Compile-time assertion that TestMetricsCollector implements types.MetricsCollector.
var _ types.MetricsCollector = (*TestMetricsCollector)(nil)

// NewTestMetricsCollector creates a new test metrics collector.
func NewTestMetricsCollector() *TestMetricsCollector {
	m := &TestMetricsCollector{}
	m.Reset()

	return m
}

// ----------------------
// Operations
// ----------------------

func (m *TestMetricsCollector) IncSubmitted(op types.Operation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Submitted[op]++
}

func (m *TestMetricsCollector) IncCompleted(op types.Operation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Completed[op]++
}

func (m *TestMetricsCollector) IncFailed(op types.Operation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Failed[op]++
}

func (m *TestMetricsCollector) IncRejected(op types.Operation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Rejected[op]++
}

func (m *TestMetricsCollector) IncDiscarded(op types.Operation) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Discarded[op]++
}

func (m *TestMetricsCollector) ObserveWaitDuration(op types.Operation, seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.WaitDuration[op] = append(m.WaitDuration[op], seconds)
}

// ----------------------
// Resources
// ----------------------

func (m *TestMetricsCollector) IncReleased(kind types.ResourceKind) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Released[kind]++
}

func (m *TestMetricsCollector) IncEncodingError() {
	m.encodingErrors.Add(1)
}

// ----------------------
// Accessors
// ----------------------

// GetSubmitted returns the submitted count for op.
func (m *TestMetricsCollector) GetSubmitted(op types.Operation) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.Submitted[op]
}

// GetCompleted returns the completed count for op.
func (m *TestMetricsCollector) GetCompleted(op types.Operation) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.Completed[op]
}

// GetFailed returns the failed count for op.
func (m *TestMetricsCollector) GetFailed(op types.Operation) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.Failed[op]
}

// GetRejected returns the rejected count for op.
func (m *TestMetricsCollector) GetRejected(op types.Operation) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.Rejected[op]
}

// GetDiscarded returns the discarded count for op.
func (m *TestMetricsCollector) GetDiscarded(op types.Operation) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.Discarded[op]
}

// GetReleased returns the release count for kind.
func (m *TestMetricsCollector) GetReleased(kind types.ResourceKind) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.Released[kind]
}

// GetEncodingErrors returns the number of rejected inputs.
func (m *TestMetricsCollector) GetEncodingErrors() int64 {
	return m.encodingErrors.Load()
}

// Reset clears all recorded metrics.
func (m *TestMetricsCollector) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Submitted = make(map[types.Operation]int64)
	m.Completed = make(map[types.Operation]int64)
	m.Failed = make(map[types.Operation]int64)
	m.Rejected = make(map[types.Operation]int64)
	m.Discarded = make(map[types.Operation]int64)
	m.WaitDuration = make(map[types.Operation][]float64)
	m.Released = make(map[types.ResourceKind]int64)
	m.encodingErrors.Store(0)
}
