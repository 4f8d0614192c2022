// Copyright (c) 2026 The project developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package metrics is a small facade over prometheus counters, gauges,
// and histograms. Callers obtain a named meter through package-level
// accessors (Counter, Gauge, Histogram, and their vector variants)
// without caring whether metrics collection is enabled; before
// InitializePrometheusMetrics is called every accessor returns a
// no-op meter so instrumented code never needs a nil check.
package metrics

// namePrefix namespaces every metric this subsystem registers.
const namePrefix = "stakerelay_"

// CountMeter accumulates a monotonic count.
type CountMeter interface {
	Add(int64)
}

// CountVecMeter accumulates a monotonic count per label set.
type CountVecMeter interface {
	AddWithLabel(int64, map[string]string)
}

// GaugeMeter tracks a value that can move up or down.
type GaugeMeter interface {
	Add(int64)
}

// GaugeVecMeter tracks a value that can move up or down, per label set.
type GaugeVecMeter interface {
	AddWithLabel(int64, map[string]string)
}

// HistogramMeter records observations into buckets.
type HistogramMeter interface {
	Observe(int64)
}

// HistogramVecMeter records observations into buckets, per label set.
type HistogramVecMeter interface {
	ObserveWithLabels(int64, map[string]string)
}

// Metrics is the backend a package-level accessor delegates to.
type Metrics interface {
	Counter(name string) CountMeter
	CounterVec(name string, labels []string) CountVecMeter
	Gauge(name string) GaugeMeter
	GaugeVec(name string, labels []string) GaugeVecMeter
	Histogram(name string, buckets []float64) HistogramMeter
	HistogramVec(name string, labels []string, buckets []float64) HistogramVecMeter
}

// noopMeters satisfies every meter interface above with no-ops; it is
// the single type every accessor returns before a real backend is
// installed.
type noopMeters struct{}

func (*noopMeters) Add(int64)                                  {}
func (*noopMeters) AddWithLabel(int64, map[string]string)      {}
func (*noopMeters) Observe(int64)                              {}
func (*noopMeters) ObserveWithLabels(int64, map[string]string) {}

var noopSingleton = &noopMeters{}

type noopMetrics struct{}

func defaultNoopMetrics() Metrics { return noopMetrics{} }

func (noopMetrics) Counter(string) CountMeter                           { return noopSingleton }
func (noopMetrics) CounterVec(string, []string) CountVecMeter           { return noopSingleton }
func (noopMetrics) Gauge(string) GaugeMeter                             { return noopSingleton }
func (noopMetrics) GaugeVec(string, []string) GaugeVecMeter             { return noopSingleton }
func (noopMetrics) Histogram(string, []float64) HistogramMeter          { return noopSingleton }
func (noopMetrics) HistogramVec(string, []string, []float64) HistogramVecMeter {
	return noopSingleton
}
