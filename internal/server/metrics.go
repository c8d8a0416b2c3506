package server

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/matzehuels/warehousemap/pkg/buildinfo"
	"github.com/matzehuels/warehousemap/pkg/observability"
)

// Metrics records dashboard activity as Prometheus metrics. It implements
// both observability.PipelineHooks and observability.HTTPHooks.
type Metrics struct {
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	requestsInFlight prometheus.Gauge
	recomputesTotal  *prometheus.CounterVec
	recomputeTime    *prometheus.HistogramVec
	layoutTime       *prometheus.HistogramVec
	graphNodes       *prometheus.GaugeVec
	graphEdges       *prometheus.GaugeVec
	buildErrors      *prometheus.CounterVec
}

// NewMetrics creates the dashboard metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	info := f.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "warehousemap_build_info",
			Help: "Build information of the running dashboard",
		},
		[]string{"version", "commit"},
	)
	bi := buildinfo.Get()
	info.WithLabelValues(bi.Version, bi.Commit).Set(1)

	return &Metrics{
		requestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "warehousemap_http_requests_total",
				Help: "Total number of HTTP requests by method, route, and status",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "warehousemap_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		requestsInFlight: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "warehousemap_http_requests_in_flight",
				Help: "Number of HTTP requests currently being served",
			},
		),
		recomputesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "warehousemap_recomputes_total",
				Help: "Total number of table view recomputes by outcome",
			},
			[]string{"outcome"},
		),
		recomputeTime: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "warehousemap_recompute_duration_seconds",
				Help:    "Duration of table view recomputes in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"outcome"},
		),
		layoutTime: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "warehousemap_layout_duration_seconds",
				Help:    "Duration of layout computations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"engine"},
		),
		graphNodes: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "warehousemap_graph_nodes",
				Help: "Node count of the most recently built graph by scope",
			},
			[]string{"scope"},
		),
		graphEdges: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "warehousemap_graph_edges",
				Help: "Edge count of the most recently built graph by scope",
			},
			[]string{"scope"},
		),
		buildErrors: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "warehousemap_graph_build_errors_total",
				Help: "Total number of graph builds that skipped invalid records by scope",
			},
			[]string{"scope"},
		),
	}
}

// OnBuildStart implements observability.PipelineHooks.
func (m *Metrics) OnBuildStart(context.Context, string) {}

// OnBuildComplete implements observability.PipelineHooks.
func (m *Metrics) OnBuildComplete(_ context.Context, scope string, nodes, edges int, _ time.Duration, err error) {
	if err != nil {
		m.buildErrors.WithLabelValues(scope).Inc()
	}
	m.graphNodes.WithLabelValues(scope).Set(float64(nodes))
	m.graphEdges.WithLabelValues(scope).Set(float64(edges))
}

// OnLayoutStart implements observability.PipelineHooks.
func (m *Metrics) OnLayoutStart(context.Context, string, int) {}

// OnLayoutComplete implements observability.PipelineHooks.
func (m *Metrics) OnLayoutComplete(_ context.Context, engine string, d time.Duration) {
	m.layoutTime.WithLabelValues(engine).Observe(d.Seconds())
}

// OnRecompute implements observability.PipelineHooks.
func (m *Metrics) OnRecompute(_ context.Context, _ string, outcome string, d time.Duration) {
	m.recomputesTotal.WithLabelValues(outcome).Inc()
	m.recomputeTime.WithLabelValues(outcome).Observe(d.Seconds())
}

// OnRequest implements observability.HTTPHooks.
func (m *Metrics) OnRequest(context.Context, string) {
	m.requestsInFlight.Inc()
}

// OnResponse implements observability.HTTPHooks.
func (m *Metrics) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	m.requestsInFlight.Dec()
	m.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

var (
	_ observability.PipelineHooks = (*Metrics)(nil)
	_ observability.HTTPHooks     = (*Metrics)(nil)
)
