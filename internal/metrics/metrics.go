// Package metrics registers the Prometheus collectors for the selection
// service. All collectors are registered on the default registry and
// exposed through promhttp in cmd/server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SolvesTotal counts finished solve jobs by algorithm and terminal
	// status (completed, failed, cancelled).
	SolvesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "docket_solves_total",
		Help: "Finished solve jobs by algorithm and terminal status.",
	}, []string{"algorithm", "status"})

	// SolveDuration observes wall-clock solve time per algorithm.
	SolveDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "docket_solve_duration_seconds",
		Help:    "Wall-clock solve duration by algorithm.",
		Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
	}, []string{"algorithm"})

	// JobsInflight tracks currently running solve jobs.
	JobsInflight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "docket_jobs_inflight",
		Help: "Solve jobs currently running.",
	})

	// SelectedCases observes the selection size of completed solves.
	SelectedCases = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "docket_selected_cases",
		Help:    "Number of cases selected by completed solves.",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10),
	}, []string{"algorithm"})
)
