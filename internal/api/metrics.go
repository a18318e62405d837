package api

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"absim/domain/experiment"
)

// Metrics counts API runs. Each server owns its registry so several
// servers can live in one process.
type Metrics struct {
	Registry *prometheus.Registry

	RunsTotal        *prometheus.CounterVec
	RunDuration      *prometheus.HistogramVec
	UndefinedResults *prometheus.CounterVec
}

// NewMetrics creates the run metrics on a fresh registry
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		RunsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "absim_runs_total",
			Help: "Simulation runs served, by kind and outcome",
		}, []string{"kind", "outcome"}),
		RunDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "absim_run_duration_seconds",
			Help:    "Wall time of simulation runs",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
		}, []string{"kind"}),
		UndefinedResults: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "absim_undefined_results_total",
			Help: "Significance tests that returned no p-value, by metric and test",
		}, []string{"metric", "test"}),
	}
}

// ObserveRun records one run
func (m *Metrics) ObserveRun(kind string, started time.Time, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.RunsTotal.WithLabelValues(kind, outcome).Inc()
	m.RunDuration.WithLabelValues(kind).Observe(time.Since(started).Seconds())
}

// ObserveEvaluation counts the undefined cells of an evaluation table
func (m *Metrics) ObserveEvaluation(table experiment.EvaluationTable) {
	if m == nil {
		return
	}
	for _, row := range table {
		for _, res := range row.Results() {
			if !res.Defined {
				m.UndefinedResults.WithLabelValues(string(row.Metric), string(res.Test)).Inc()
			}
		}
	}
}
