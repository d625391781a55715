// Package metrics records the outcome of a bootstrap run in a Prometheus
// registry and exports it as a node_exporter textfile.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "deep_archive"
	subsystem = "setup"
)

// Recorder holds the metrics for a single run.
type Recorder struct {
	registry *prometheus.Registry

	runSuccess          prometheus.Gauge
	runDuration         prometheus.Gauge
	lastRun             prometheus.Gauge
	stage               *prometheus.GaugeVec
	artifacts           *prometheus.GaugeVec
	dependenciesMissing prometheus.Gauge
	warnings            prometheus.Gauge
}

// NewRecorder creates a recorder with its own registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		runSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "run_success",
			Help:      "Whether the last bootstrap run reached Done (1) or aborted (0)",
		}),
		runDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "run_duration_seconds",
			Help:      "Wall-clock duration of the last bootstrap run in seconds",
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time at which the last bootstrap run finished",
		}),
		stage: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "stage",
			Help:      "Final stage of the last bootstrap run; the reached stage is 1",
		}, []string{"stage"}),
		artifacts: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "artifacts",
			Help:      "Number of artifacts by result (downloaded or satisfied)",
		}, []string{"result"}),
		dependenciesMissing: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "dependencies_missing",
			Help:      "Number of required executables not found in PATH",
		}),
		warnings: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "warnings",
			Help:      "Number of warnings emitted by the last bootstrap run",
		}),
	}

	r.registry.MustRegister(
		r.runSuccess,
		r.runDuration,
		r.lastRun,
		r.stage,
		r.artifacts,
		r.dependenciesMissing,
		r.warnings,
	)
	return r
}

// RecordRun records the final stage, outcome and duration of a run.
func (r *Recorder) RecordRun(stage string, succeeded bool, duration time.Duration, finished time.Time) {
	r.stage.Reset()
	r.stage.WithLabelValues(stage).Set(1)
	if succeeded {
		r.runSuccess.Set(1)
	} else {
		r.runSuccess.Set(0)
	}
	r.runDuration.Set(duration.Seconds())
	r.lastRun.Set(float64(finished.Unix()))
}

// RecordArtifacts records how many artifacts were downloaded and how many were already present.
func (r *Recorder) RecordArtifacts(downloaded, satisfied int) {
	r.artifacts.WithLabelValues("downloaded").Set(float64(downloaded))
	r.artifacts.WithLabelValues("satisfied").Set(float64(satisfied))
}

// RecordDependencies records the number of missing executables.
func (r *Recorder) RecordDependencies(missing int) {
	r.dependenciesMissing.Set(float64(missing))
}

// RecordWarnings records the number of warnings.
func (r *Recorder) RecordWarnings(n int) {
	r.warnings.Set(float64(n))
}

// WriteTextfile writes all metrics to path in the text exposition format.
// The file is replaced atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile %s: %w", path, err)
	}
	return nil
}
