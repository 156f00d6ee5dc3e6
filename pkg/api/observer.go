package api

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// Observer receives callbacks from the flow engine for logging and metrics.
//
// Implementations should be fast and non-blocking; heavy work should be done
// asynchronously so as not to delay flow execution.
type Observer interface {
	// OnFlowStart is called once when a flow run begins, before the first
	// node is executed.
	OnFlowStart(ctx context.Context, rep *RunReport)

	// OnFlowCompleted is called when a run reaches StatusCompleted.
	OnFlowCompleted(ctx context.Context, rep *RunReport)

	// OnFlowFailed is called when a run transitions to StatusFailed.
	OnFlowFailed(ctx context.Context, rep *RunReport, err error)

	// OnNodeStart is called before executing a node. step is the 0-based
	// count of nodes executed so far in this run.
	OnNodeStart(ctx context.Context, rep *RunReport, node string, step int)

	// OnNodeCompleted is called after a node's action returns, for both
	// successes and failures (err != nil). value is the routing value the
	// node produced.
	OnNodeCompleted(ctx context.Context, rep *RunReport, node string, step int, value string, err error, duration time.Duration)
}

// NoopObserver is an Observer that does nothing.
// It is used as the default when no observer is configured.
type NoopObserver struct{}

func (NoopObserver) OnFlowStart(ctx context.Context, rep *RunReport)                {}
func (NoopObserver) OnFlowCompleted(ctx context.Context, rep *RunReport)            {}
func (NoopObserver) OnFlowFailed(ctx context.Context, rep *RunReport, err error)    {}
func (NoopObserver) OnNodeStart(ctx context.Context, rep *RunReport, node string, step int) {
}
func (NoopObserver) OnNodeCompleted(ctx context.Context, rep *RunReport, node string, step int, value string, err error, d time.Duration) {
}

// CompositeObserver fans out events to multiple observers.
type CompositeObserver struct {
	observers []Observer
}

// NewCompositeObserver creates an Observer that forwards events to each
// non-nil observer in obs.
func NewCompositeObserver(obs ...Observer) Observer {
	filtered := make([]Observer, 0, len(obs))
	for _, o := range obs {
		if o != nil {
			filtered = append(filtered, o)
		}
	}
	if len(filtered) == 0 {
		return NoopObserver{}
	}
	if len(filtered) == 1 {
		return filtered[0]
	}
	return &CompositeObserver{observers: filtered}
}

func (c *CompositeObserver) OnFlowStart(ctx context.Context, rep *RunReport) {
	for _, o := range c.observers {
		o.OnFlowStart(ctx, rep)
	}
}

func (c *CompositeObserver) OnFlowCompleted(ctx context.Context, rep *RunReport) {
	for _, o := range c.observers {
		o.OnFlowCompleted(ctx, rep)
	}
}

func (c *CompositeObserver) OnFlowFailed(ctx context.Context, rep *RunReport, err error) {
	for _, o := range c.observers {
		o.OnFlowFailed(ctx, rep, err)
	}
}

func (c *CompositeObserver) OnNodeStart(ctx context.Context, rep *RunReport, node string, step int) {
	for _, o := range c.observers {
		o.OnNodeStart(ctx, rep, node, step)
	}
}

func (c *CompositeObserver) OnNodeCompleted(ctx context.Context, rep *RunReport, node string, step int, value string, err error, d time.Duration) {
	for _, o := range c.observers {
		o.OnNodeCompleted(ctx, rep, node, step, value, err, d)
	}
}

// LoggingObserver writes structured logs using log/slog.
type LoggingObserver struct {
	Logger *slog.Logger
}

// NewLoggingObserver creates an Observer that logs flow / node lifecycle
// events using the provided slog.Logger. If logger is nil, slog.Default()
// is used.
func NewLoggingObserver(logger *slog.Logger) Observer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingObserver{Logger: logger}
}

func (o *LoggingObserver) OnFlowStart(ctx context.Context, rep *RunReport) {
	o.Logger.InfoContext(ctx, "flow_start",
		slog.String("flow", rep.Flow),
		slog.String("run_id", rep.ID),
	)
}

func (o *LoggingObserver) OnFlowCompleted(ctx context.Context, rep *RunReport) {
	o.Logger.InfoContext(ctx, "flow_completed",
		slog.String("flow", rep.Flow),
		slog.String("run_id", rep.ID),
		slog.Int("steps", rep.Steps),
	)
}

func (o *LoggingObserver) OnFlowFailed(ctx context.Context, rep *RunReport, err error) {
	o.Logger.ErrorContext(ctx, "flow_failed",
		slog.String("flow", rep.Flow),
		slog.String("run_id", rep.ID),
		slog.Int("steps", rep.Steps),
		slog.Any("error", err),
	)
}

func (o *LoggingObserver) OnNodeStart(ctx context.Context, rep *RunReport, node string, step int) {
	o.Logger.DebugContext(ctx, "node_start",
		slog.String("flow", rep.Flow),
		slog.String("run_id", rep.ID),
		slog.String("node", node),
		slog.Int("step", step),
	)
}

func (o *LoggingObserver) OnNodeCompleted(ctx context.Context, rep *RunReport, node string, step int, value string, err error, d time.Duration) {
	level := slog.LevelDebug
	if err != nil {
		level = slog.LevelError
	}
	o.Logger.Log(ctx, level, "node_completed",
		slog.String("flow", rep.Flow),
		slog.String("run_id", rep.ID),
		slog.String("node", node),
		slog.Int("step", step),
		slog.String("value", value),
		slog.Duration("duration", d),
		slog.Any("error", err),
	)
}

// BasicMetrics collects simple counters and aggregate node durations.
// It implements Observer, and can be combined with LoggingObserver via
// NewCompositeObserver.
type BasicMetrics struct {
	NoopObserver

	flowsStarted      atomic.Int64
	flowsCompleted    atomic.Int64
	flowsFailed       atomic.Int64
	nodesCompleted    atomic.Int64
	totalNodeDuration atomic.Int64 // nanoseconds
}

// BasicMetricsSnapshot is an immutable snapshot of BasicMetrics.
type BasicMetricsSnapshot struct {
	FlowsStarted   int64
	FlowsCompleted int64
	FlowsFailed    int64
	PendingFlows   int64

	NodesCompleted  int64
	AvgNodeDuration time.Duration
}

func (m *BasicMetrics) OnFlowStart(ctx context.Context, rep *RunReport) {
	m.flowsStarted.Add(1)
}

func (m *BasicMetrics) OnFlowCompleted(ctx context.Context, rep *RunReport) {
	m.flowsCompleted.Add(1)
}

func (m *BasicMetrics) OnFlowFailed(ctx context.Context, rep *RunReport, err error) {
	m.flowsFailed.Add(1)
}

func (m *BasicMetrics) OnNodeCompleted(ctx context.Context, rep *RunReport, node string, step int, value string, err error, d time.Duration) {
	// Only count successful nodes for average duration.
	if err == nil {
		m.nodesCompleted.Add(1)
		m.totalNodeDuration.Add(d.Nanoseconds())
	}
}

// Snapshot returns a snapshot of the current metrics.
func (m *BasicMetrics) Snapshot() BasicMetricsSnapshot {
	started := m.flowsStarted.Load()
	completed := m.flowsCompleted.Load()
	failed := m.flowsFailed.Load()
	nodes := m.nodesCompleted.Load()
	totalNs := m.totalNodeDuration.Load()

	var avg time.Duration
	if nodes > 0 {
		avg = time.Duration(totalNs / nodes)
	}

	return BasicMetricsSnapshot{
		FlowsStarted:   started,
		FlowsCompleted: completed,
		FlowsFailed:    failed,
		PendingFlows:   started - completed - failed,
		NodesCompleted: nodes,
		AvgNodeDuration: avg,
	}
}
