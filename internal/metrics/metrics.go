// Package metrics records what a step run fetched from Vault. The values
// can be written as a Prometheus textfile for a node exporter to collect
// once the job finishes.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder holds the step metrics in its own registry.
type Recorder struct {
	registry *prometheus.Registry

	secretsExported *prometheus.CounterVec
	fetchErrors     *prometheus.CounterVec
	fetchDuration   *prometheus.HistogramVec
	tokenExported   prometheus.Counter
}

// NewRecorder creates a Recorder with all metrics registered.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		secretsExported: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vaultstep_secrets_exported_total",
				Help: "Total number of secret values exported to the pipeline",
			},
			[]string{"kv_version", "kind"},
		),
		fetchErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vaultstep_fetch_errors_total",
				Help: "Total number of failed secret reads",
			},
			[]string{"kv_version", "reason"},
		),
		fetchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "vaultstep_fetch_duration_seconds",
				Help:    "Duration of Vault reads in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 30},
			},
			[]string{"kv_version"},
		),
		tokenExported: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "vaultstep_token_exported_total",
				Help: "Number of times the Vault token was exported",
			},
		),
	}
}

// RecordFetch records the duration of one Vault read.
func (r *Recorder) RecordFetch(kvVersion string, d time.Duration) {
	if r == nil {
		return
	}
	r.fetchDuration.WithLabelValues(kvVersion).Observe(d.Seconds())
}

// RecordExport counts an exported secret. kind is "field" or "whole".
func (r *Recorder) RecordExport(kvVersion, kind string) {
	if r == nil {
		return
	}
	r.secretsExported.WithLabelValues(kvVersion, kind).Inc()
}

// RecordError counts a failed read. reason is "fetch", "response" or "export".
func (r *Recorder) RecordError(kvVersion, reason string) {
	if r == nil {
		return
	}
	r.fetchErrors.WithLabelValues(kvVersion, reason).Inc()
}

// RecordTokenExport counts an export of the Vault token.
func (r *Recorder) RecordTokenExport() {
	if r == nil {
		return
	}
	r.tokenExported.Inc()
}

// WriteTextfile writes all metrics to path in the text exposition format.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
