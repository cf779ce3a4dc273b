package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeLabel = "outcome"
	ResultLabel  = "result"

	Sat      = "sat"
	Unsat    = "unsat"
	Unknown  = "unknown"
	Found    = "found"
	NotFound = "not_found"
	Failed   = "failed"
)

// To add new metrics:
// 1. Register new metrics in Register() below.
// 2. Add an Emit function and call it where the event happens.
var (
	satQueries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bvmc_sat_queries_total",
			Help: "Monotonic count of satisfiability queries by outcome",
		},
		[]string{OutcomeLabel},
	)

	satQueryDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bvmc_sat_query_duration_seconds",
			Help:    "The duration of a single satisfiability query",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 10),
		},
	)

	framesUnrolled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bvmc_frames_unrolled_total",
			Help: "Monotonic count of frames added to unrolled transition systems",
		},
	)

	propertiesReached = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bvmc_properties_reached_total",
			Help: "Monotonic count of bad state properties found reachable",
		},
	)

	searchDuration = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "bvmc_search_duration_seconds",
			Help:       "The duration of a bounded search",
			Objectives: map[float64]float64{0.95: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{ResultLabel},
	)
)

var registerOnce sync.Once

// Register adds the collectors to the default prometheus registry. It
// is safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(satQueries)
		prometheus.MustRegister(satQueryDuration)
		prometheus.MustRegister(framesUnrolled)
		prometheus.MustRegister(propertiesReached)
		prometheus.MustRegister(searchDuration)
	})
}

// EmitQuery records a satisfiability query; outcome follows the sat
// package convention of 1, -1 and 0.
func EmitQuery(outcome int, d time.Duration) {
	label := Unknown
	switch outcome {
	case 1:
		label = Sat
	case -1:
		label = Unsat
	}
	satQueries.WithLabelValues(label).Inc()
	satQueryDuration.Observe(d.Seconds())
}

func EmitFrame() {
	framesUnrolled.Inc()
}

func EmitReached(n int) {
	propertiesReached.Add(float64(n))
}

func EmitSearch(result string, d time.Duration) {
	searchDuration.WithLabelValues(result).Observe(d.Seconds())
}
