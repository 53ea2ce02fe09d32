package searcher

import (
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	searchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "connectn_searches_total",
		Help: "Completed root searches by pruning mode",
	}, []string{"pruning"})

	searchNodes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "connectn_search_nodes_total",
		Help: "Game tree nodes visited",
	})

	searchCutoffs = promauto.NewCounter(prometheus.CounterOpts{
		Name: "connectn_search_cutoffs_total",
		Help: "Alpha-beta cutoffs taken",
	})

	searchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "connectn_search_duration_seconds",
		Help:    "Wall time of a root search",
		Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1, 10, 60},
	})
)

type SearchMetrics struct {
	StartTime time.Time
	Duration  time.Duration
	Depth     int
	Pruning   bool
	Nodes     int64
	Leaves    int64
	Cutoffs   int64

	// Tree search only
	Goroutines   int
	Episodes     int64
	FullPlayouts int64
}

type MetricsCollector interface {
	Start(depth int, pruning bool)
	AddNode()
	AddLeaf()
	AddCutoff()
	Complete() SearchMetrics
}

type metricsCollector struct {
	startTime time.Time
	depth     int
	pruning   bool
	nodes     atomic.Int64
	leaves    atomic.Int64
	cutoffs   atomic.Int64
}

// NewMetricsCollector returns a collector that counts search work and reports it to
// Prometheus when the search completes.
func NewMetricsCollector() MetricsCollector {
	return &metricsCollector{}
}

func (m *metricsCollector) Start(depth int, pruning bool) {
	m.startTime = time.Now()
	m.depth = depth
	m.pruning = pruning
}

func (m *metricsCollector) AddNode() {
	m.nodes.Add(1)
}

func (m *metricsCollector) AddLeaf() {
	m.leaves.Add(1)
}

func (m *metricsCollector) AddCutoff() {
	m.cutoffs.Add(1)
}

func (m *metricsCollector) Complete() SearchMetrics {
	metrics := SearchMetrics{
		StartTime: m.startTime,
		Duration:  time.Since(m.startTime),
		Depth:     m.depth,
		Pruning:   m.pruning,
		Nodes:     m.nodes.Load(),
		Leaves:    m.leaves.Load(),
		Cutoffs:   m.cutoffs.Load(),
	}

	searchesTotal.WithLabelValues(strconv.FormatBool(metrics.Pruning)).Inc()
	searchNodes.Add(float64(metrics.Nodes))
	searchCutoffs.Add(float64(metrics.Cutoffs))
	searchDuration.Observe(metrics.Duration.Seconds())

	return metrics
}

type noMetricsCollector struct{}

func NewNoMetricsCollector() MetricsCollector {
	return &noMetricsCollector{}
}

func (m *noMetricsCollector) Start(depth int, pruning bool) {}
func (m *noMetricsCollector) AddNode()                      {}
func (m *noMetricsCollector) AddLeaf()                      {}
func (m *noMetricsCollector) AddCutoff()                    {}
func (m *noMetricsCollector) Complete() SearchMetrics       { return SearchMetrics{} }
