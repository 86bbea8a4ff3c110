package obs

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "meetpoint"

var (
	// SolverIterations tracks how many Weiszfeld iterations each median took.
	SolverIterations = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "solver_iterations",
		Help:      "Iterations used by the geometric median solver",
		Buckets:   []float64{1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
	})

	// SolverNonConverged counts medians that hit the iteration cap.
	SolverNonConverged = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "solver_nonconverged_total",
		Help:      "Geometric median computations that hit the iteration cap",
	})

	UpstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of timed operations (external APIs, caches)",
		Buckets:   prometheus.DefBuckets,
	}, []string{"op", "outcome"})

	// CacheLookups counts cache hits and misses per cache.
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_lookups_total",
		Help:      "Cache lookups by cache and result",
	}, []string{"cache", "result"})
)

// ObserveSolver records the outcome of a median computation.
func ObserveSolver(iterations int, converged bool) {
	SolverIterations.Observe(float64(iterations))
	if !converged {
		SolverNonConverged.Inc()
	}
}
