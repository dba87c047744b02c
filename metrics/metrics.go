// Package metrics exposes Prometheus collectors for knitting pipeline runs.
//
// Every collector lives on a private registry, so several pipelines (or
// tests) can record side by side without clashing on the default one.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/katalvlaran/knitnet/core"
)

// Status label values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Registry holds all pipeline metrics.
type Registry struct {
	// Run metrics
	RunsTotal     *prometheus.CounterVec
	StageDuration *prometheus.HistogramVec
	StagesTotal   *prometheus.CounterVec

	// Graph metrics
	GraphNodes *prometheus.GaugeVec
	GraphEdges *prometheus.GaugeVec

	// Chain metrics
	ChainsTotal    *prometheus.CounterVec
	AnomaliesTotal *prometheus.CounterVec

	registry *prometheus.Registry
}

var (
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the process-wide registry.
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a registry with all collectors initialized.
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}
	r.initRunMetrics()
	r.initGraphMetrics()
	r.initChainMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying registry for exposition.
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}

func (r *Registry) initRunMetrics() {
	r.RunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "knitnet_runs_total",
			Help: "Total number of pipeline runs",
		},
		[]string{"status"},
	)

	r.StageDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "knitnet_stage_duration_seconds",
			Help:    "Pipeline stage duration in seconds",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1.0, 10.0},
		},
		[]string{"stage"},
	)

	r.StagesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "knitnet_stages_total",
			Help: "Total number of executed pipeline stages",
		},
		[]string{"stage", "status"},
	)
}

func (r *Registry) initGraphMetrics() {
	r.GraphNodes = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "knitnet_graph_nodes",
			Help: "Node count of the last built graph by kind",
		},
		[]string{"graph", "kind"},
	)

	r.GraphEdges = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "knitnet_graph_edges",
			Help: "Edge count of the last built graph by role",
		},
		[]string{"graph", "role"},
	)
}

func (r *Registry) initChainMetrics() {
	r.ChainsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "knitnet_chains_total",
			Help: "Total number of traced chains",
		},
		[]string{"kind", "state"},
	)

	r.AnomaliesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "knitnet_anomalies_total",
			Help: "Total number of soft topology anomalies",
		},
		[]string{"kind"},
	)
}

// RecordRun counts a finished pipeline run.
func (r *Registry) RecordRun(err error) {
	r.RunsTotal.WithLabelValues(status(err)).Inc()
}

// RecordStage records one stage execution with its duration.
func (r *Registry) RecordStage(stage string, duration time.Duration, err error) {
	r.StagesTotal.WithLabelValues(stage, status(err)).Inc()
	r.StageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// UpdateGraph sets the node and edge gauges of graph ("knit" or "mapping").
func (r *Registry) UpdateGraph(graph string, s core.GraphStats) {
	r.GraphNodes.WithLabelValues(graph, "all").Set(float64(s.Nodes))
	r.GraphNodes.WithLabelValues(graph, "leaf").Set(float64(s.Leaves))
	r.GraphNodes.WithLabelValues(graph, "end").Set(float64(s.Ends))

	r.GraphEdges.WithLabelValues(graph, core.RoleContour.String()).Set(float64(s.Contours))
	r.GraphEdges.WithLabelValues(graph, core.RoleWeft.String()).Set(float64(s.Weft))
	r.GraphEdges.WithLabelValues(graph, core.RoleWarp.String()).Set(float64(s.Warp))
	r.GraphEdges.WithLabelValues(graph, core.RoleSegment.String()).Set(float64(s.Segments))
}

// RecordChains counts the chains of one kind ("source" or "target").
func (r *Registry) RecordChains(kind string, terminated, dangling int) {
	r.ChainsTotal.WithLabelValues(kind, "terminated").Add(float64(terminated))
	r.ChainsTotal.WithLabelValues(kind, "dangling").Add(float64(dangling))
}

// RecordAnomalies counts n anomalies of one kind.
func (r *Registry) RecordAnomalies(kind string, n int) {
	if n > 0 {
		r.AnomaliesTotal.WithLabelValues(kind).Add(float64(n))
	}
}

func status(err error) string {
	if err != nil {
		return StatusError
	}
	return StatusSuccess
}
