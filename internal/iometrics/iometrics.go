// Package iometrics collects batch statistics and exports them in
// Prometheus text format for the node exporter textfile collector.
package iometrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics keeps counters of one batch run. Methods are safe for
// concurrent use.
type Metrics struct {
	registry *prometheus.Registry
	built    prometheus.Counter
	failed   *prometheus.CounterVec
	duration prometheus.Histogram
	params   prometheus.Histogram
}

// New creates metrics registered in their own registry.
func New() *Metrics {
	res := &Metrics{
		registry: prometheus.NewRegistry(),
		built: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "gelato_models_built_total",
				Help: "Number of spectra with successfully built models.",
			},
		),
		failed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gelato_models_failed_total",
				Help: "Number of spectra that failed, by reason.",
			},
			[]string{"reason"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "gelato_model_build_seconds",
				Help:    "Time taken to read a spectrum and build its model.",
				Buckets: prometheus.DefBuckets,
			},
		),
		params: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "gelato_model_parameters",
				Help:    "Size of parameter vectors of built models.",
				Buckets: prometheus.ExponentialBuckets(4, 2, 8),
			},
		),
	}
	res.registry.MustRegister(res.built, res.failed, res.duration, res.params)
	return res
}

// Built records a successfully built model.
func (m *Metrics) Built(d time.Duration, nParams int) {
	m.built.Inc()
	m.duration.Observe(d.Seconds())
	m.params.Observe(float64(nParams))
}

// Failed records a failed spectrum. Reason is a short label such as
// "read", "model" or "save".
func (m *Metrics) Failed(reason string) {
	m.failed.WithLabelValues(reason).Inc()
}

// Registry returns the registry with all batch metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes metrics to path atomically.
func (m *Metrics) WriteTextfile(path string) error {
	err := prometheus.WriteToTextfile(path, m.registry)
	if err != nil {
		return WriteError(path, err)
	}
	return nil
}
