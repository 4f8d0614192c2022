// Copyright (c) 2026 The project developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import "sync"

var (
	metricsMu sync.RWMutex
	metrics   Metrics = defaultNoopMetrics()
)

// InitializePrometheusMetrics switches every subsequent accessor call
// onto a prometheus-backed implementation. Call once at process
// startup; before this is called all accessors are no-ops.
func InitializePrometheusMetrics() {
	metricsMu.Lock()
	defer metricsMu.Unlock()
	metrics = newPromMetrics()
}

func current() Metrics {
	metricsMu.RLock()
	defer metricsMu.RUnlock()
	return metrics
}

// Counter returns the named monotonic counter, creating it on first use.
func Counter(name string) CountMeter { return current().Counter(name) }

// CounterVec returns the named labeled counter family.
func CounterVec(name string, labels []string) CountVecMeter { return current().CounterVec(name, labels) }

// Gauge returns the named gauge, creating it on first use.
func Gauge(name string) GaugeMeter { return current().Gauge(name) }

// GaugeVec returns the named labeled gauge family.
func GaugeVec(name string, labels []string) GaugeVecMeter { return current().GaugeVec(name, labels) }

// Histogram returns the named histogram, creating it with buckets
// (or the default buckets, if nil) on first use.
func Histogram(name string, buckets []float64) HistogramMeter { return current().Histogram(name, buckets) }

// HistogramVec returns the named labeled histogram family.
func HistogramVec(name string, labels []string, buckets []float64) HistogramVecMeter {
	return current().HistogramVec(name, labels, buckets)
}

// LazyLoadCounter returns a thunk resolving to the named counter at
// call time, so code that captures a meter reference before
// InitializePrometheusMetrics runs still picks up the real backend.
func LazyLoadCounter(name string) func() CountMeter {
	return func() CountMeter { return Counter(name) }
}

// LazyLoadCounterVec is LazyLoadCounter for a labeled counter family.
func LazyLoadCounterVec(name string, labels []string) func() CountVecMeter {
	return func() CountVecMeter { return CounterVec(name, labels) }
}

// LazyLoadGauge is LazyLoadCounter for a gauge.
func LazyLoadGauge(name string) func() GaugeMeter {
	return func() GaugeMeter { return Gauge(name) }
}

// LazyLoadGaugeVec is LazyLoadCounter for a labeled gauge family.
func LazyLoadGaugeVec(name string, labels []string) func() GaugeVecMeter {
	return func() GaugeVecMeter { return GaugeVec(name, labels) }
}

// LazyLoadHistogram is LazyLoadCounter for a histogram.
func LazyLoadHistogram(name string, buckets []float64) func() HistogramMeter {
	return func() HistogramMeter { return Histogram(name, buckets) }
}

// LazyLoadHistogramVec is LazyLoadCounter for a labeled histogram family.
func LazyLoadHistogramVec(name string, labels []string, buckets []float64) func() HistogramVecMeter {
	return func() HistogramVecMeter { return HistogramVec(name, labels, buckets) }
}
