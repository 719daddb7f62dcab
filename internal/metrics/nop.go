// Package metrics provides internal metrics utilities for casstcl.
package metrics

import "github.com/gahr/casstcl/types"

// NopMetrics is a no-op metrics collector that discards all metrics.
//
// This is used as the default metrics collector when no collector is
// configured, avoiding nil checks throughout the codebase.
type NopMetrics struct{}

// Compile-time assertion that NopMetrics implements types.MetricsCollector.
var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNopMetrics creates a new no-op metrics collector.
//
// Returns:
//   - *NopMetrics: A collector that discards all metrics
func NewNopMetrics() *NopMetrics {
	return &NopMetrics{}
}

// IncQueryTotal discards the metric.
func (m *NopMetrics) IncQueryTotal(_ types.QueryKind) {}

// IncQueryError discards the metric.
func (m *NopMetrics) IncQueryError(_ types.QueryKind) {}

// ObserveQueryDuration discards the metric.
func (m *NopMetrics) ObserveQueryDuration(_ types.QueryKind, _ float64) {}

// IncPagesFetched discards the metric.
func (m *NopMetrics) IncPagesFetched() {}

// IncRowsDelivered discards the metric.
func (m *NopMetrics) IncRowsDelivered(_ int) {}

// IncTypeCacheHit discards the metric.
func (m *NopMetrics) IncTypeCacheHit() {}

// IncTypeCacheMiss discards the metric.
func (m *NopMetrics) IncTypeCacheMiss() {}

// IncAsyncSubmitted discards the metric.
func (m *NopMetrics) IncAsyncSubmitted() {}

// IncAsyncDelivered discards the metric.
func (m *NopMetrics) IncAsyncDelivered() {}
