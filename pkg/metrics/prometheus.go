// Package metrics provides a Prometheus-backed Observer for the flowchain
// engine.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mkarvo/flowchain/pkg/api"
)

// PrometheusObserver implements api.Observer by exporting flow and node
// lifecycle counters plus a node-duration histogram.
type PrometheusObserver struct {
	api.NoopObserver

	flowsStarted   *prometheus.CounterVec
	flowsCompleted *prometheus.CounterVec
	flowsFailed    *prometheus.CounterVec
	nodeFailures   *prometheus.CounterVec
	nodeDuration   *prometheus.HistogramVec
}

// NewPrometheusObserver creates a PrometheusObserver and registers its
// collectors with reg. If reg is nil, prometheus.DefaultRegisterer is used.
func NewPrometheusObserver(reg prometheus.Registerer) *PrometheusObserver {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	o := &PrometheusObserver{
		flowsStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "flowchain_flows_started_total",
			Help: "Number of flow runs started.",
		}, []string{"flow"}),
		flowsCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "flowchain_flows_completed_total",
			Help: "Number of flow runs that completed successfully.",
		}, []string{"flow"}),
		flowsFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "flowchain_flows_failed_total",
			Help: "Number of flow runs that failed.",
		}, []string{"flow"}),
		nodeFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "flowchain_node_failures_total",
			Help: "Number of node executions that returned an error.",
		}, []string{"flow", "node"}),
		nodeDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "flowchain_node_duration_seconds",
			Help:    "Wall-clock duration of node executions.",
			Buckets: prometheus.DefBuckets,
		}, []string{"flow", "node"}),
	}

	reg.MustRegister(
		o.flowsStarted,
		o.flowsCompleted,
		o.flowsFailed,
		o.nodeFailures,
		o.nodeDuration,
	)
	return o
}

func (o *PrometheusObserver) OnFlowStart(ctx context.Context, rep *api.RunReport) {
	o.flowsStarted.WithLabelValues(rep.Flow).Inc()
}

func (o *PrometheusObserver) OnFlowCompleted(ctx context.Context, rep *api.RunReport) {
	o.flowsCompleted.WithLabelValues(rep.Flow).Inc()
}

func (o *PrometheusObserver) OnFlowFailed(ctx context.Context, rep *api.RunReport, err error) {
	o.flowsFailed.WithLabelValues(rep.Flow).Inc()
}

func (o *PrometheusObserver) OnNodeCompleted(ctx context.Context, rep *api.RunReport, node string, step int, value string, err error, d time.Duration) {
	if err != nil {
		o.nodeFailures.WithLabelValues(rep.Flow, node).Inc()
		return
	}
	o.nodeDuration.WithLabelValues(rep.Flow, node).Observe(d.Seconds())
}
