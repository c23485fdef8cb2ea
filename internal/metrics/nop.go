// Package metrics provides internal metrics utilities for cqlbridge.
package metrics

import "github.com/arloliu/cqlbridge/types"

// NopMetrics is a no-op metrics collector that discards all metrics.
//
// This is used as the default metrics collector when no collector is configured,
// avoiding nil checks throughout the codebase.
type NopMetrics struct{}

// Compile-time assertion that NopMetrics implements types.MetricsCollector.
var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNopMetrics creates a new no-op metrics collector.
func NewNopMetrics() *NopMetrics {
	return &NopMetrics{}
}

// IncSubmitted discards the metric.
func (m *NopMetrics) IncSubmitted(_ types.Operation) {}

// IncCompleted discards the metric.
func (m *NopMetrics) IncCompleted(_ types.Operation) {}

// IncFailed discards the metric.
func (m *NopMetrics) IncFailed(_ types.Operation) {}

// IncRejected discards the metric.
func (m *NopMetrics) IncRejected(_ types.Operation) {}

// IncDiscarded discards the metric.
func (m *NopMetrics) IncDiscarded(_ types.Operation) {}

// ObserveWaitDuration discards the metric.
func (m *NopMetrics) ObserveWaitDuration(_ types.Operation, _ float64) {}

// IncReleased discards the metric.
func (m *NopMetrics) IncReleased(_ types.ResourceKind) {}

// IncEncodingError discards the metric.
func (m *NopMetrics) IncEncodingError() {}
