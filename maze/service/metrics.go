package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Result label values for search metrics
const (
	ResultFound    = "found"
	ResultNotFound = "not_found"
	ResultError    = "error"
)

// Metrics holds the Prometheus collectors the service updates
type Metrics struct {
	// searchTotal counts searches by mode and result
	searchTotal *prometheus.CounterVec
	// searchDuration tracks search latency by mode
	searchDuration *prometheus.HistogramVec
	// pathLength tracks found path lengths by mode
	pathLength *prometheus.HistogramVec
	// expanded tracks adjacency expansions per search by mode
	expanded *prometheus.HistogramVec
	// mazesCreated counts generated or loaded mazes
	mazesCreated prometheus.Counter
}

// NewMetrics registers the service collectors with reg. A nil reg gets a
// private registry so repeated construction never collides.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &Metrics{
		searchTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mazepath_search_total",
			Help: "Total searches by mode and result",
		}, []string{"mode", "result"}),
		searchDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mazepath_search_duration_seconds",
			Help:    "Search duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.00001, 2, 16), // 10µs to ~330ms
		}, []string{"mode"}),
		pathLength: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mazepath_path_length",
			Help:    "Length of found paths, endpoints excluded",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100, 250, 500},
		}, []string{"mode"}),
		expanded: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mazepath_search_expanded_cells",
			Help:    "Adjacency expansions per search",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}, []string{"mode"}),
		mazesCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "mazepath_mazes_created_total",
			Help: "Total mazes created",
		}),
	}
}

func (m *Metrics) observeSearch(mode, result string, seconds float64, expanded, pathLength int) {
	m.searchTotal.WithLabelValues(mode, result).Inc()
	m.searchDuration.WithLabelValues(mode).Observe(seconds)
	m.expanded.WithLabelValues(mode).Observe(float64(expanded))
	if result == ResultFound {
		m.pathLength.WithLabelValues(mode).Observe(float64(pathLength))
	}
}
