package mcts

import (
	"sync/atomic"
	"time"

	"connectn/searcher"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	episodesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "connectn_mcts_episodes_total",
		Help: "MCTS episodes simulated",
	})

	fullPlayoutsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "connectn_mcts_full_playouts_total",
		Help: "MCTS playouts that reached the end of the game",
	})
)

type MetricsCollector interface {
	Start(goroutines, cutoff int)
	AddNode()
	AddFullPlayout()
	AddEpisode()
	Complete() searcher.SearchMetrics
}

type metricsCollector struct {
	goroutines   int
	cutoff       int
	startTime    time.Time
	nodes        atomic.Int64
	episodes     atomic.Int64
	fullPlayouts atomic.Int64
}

func NewMetricsCollector() MetricsCollector {
	return &metricsCollector{}
}

func (m *metricsCollector) Start(goroutines, cutoff int) {
	m.startTime = time.Now()
	m.goroutines = goroutines
	m.cutoff = cutoff
}

func (m *metricsCollector) AddNode() {
	m.nodes.Add(1)
}

func (m *metricsCollector) AddFullPlayout() {
	m.fullPlayouts.Add(1)
}

func (m *metricsCollector) AddEpisode() {
	m.episodes.Add(1)
}

// Complete reports the search. Depth holds the playout cutoff, Leaves the episodes and Cutoffs
// the playouts stopped by the cutoff.
func (m *metricsCollector) Complete() searcher.SearchMetrics {
	episodes := m.episodes.Load()
	fullPlayouts := m.fullPlayouts.Load()

	episodesTotal.Add(float64(episodes))
	fullPlayoutsTotal.Add(float64(fullPlayouts))

	return searcher.SearchMetrics{
		StartTime:    m.startTime,
		Duration:     time.Since(m.startTime),
		Depth:        m.cutoff,
		Nodes:        m.nodes.Load(),
		Leaves:       episodes,
		Cutoffs:      episodes - fullPlayouts,
		Goroutines:   m.goroutines,
		Episodes:     episodes,
		FullPlayouts: fullPlayouts,
	}
}

type noMetricsCollector struct{}

func NewNoMetricsCollector() MetricsCollector {
	return &noMetricsCollector{}
}

func (m *noMetricsCollector) Start(goroutines, cutoff int)     {}
func (m *noMetricsCollector) AddNode()                         {}
func (m *noMetricsCollector) AddFullPlayout()                  {}
func (m *noMetricsCollector) AddEpisode()                      {}
func (m *noMetricsCollector) Complete() searcher.SearchMetrics { return searcher.SearchMetrics{} }
