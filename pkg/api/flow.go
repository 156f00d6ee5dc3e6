package api

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle state of a flow run.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusRunning   Status = "RUNNING"
	StatusCompleted Status = "COMPLETED"
	StatusFailed    Status = "FAILED"
)

// RunReport records the outcome of one flow run.
type RunReport struct {
	// ID uniquely identifies the run.
	ID string

	// Flow is the name of the flow that was run.
	Flow string

	// Status is the run's final (or current) lifecycle state.
	Status Status

	// Steps counts the nodes executed, sentinels excluded.
	Steps int

	// State is the shared state as left behind by the run.
	State State

	// Err is the failure that ended the run, if any.
	Err error
}

// ReportListOptions controls how run reports are listed.
// Zero values mean "no filter" for that field.
type ReportListOptions struct {
	// FlowName, if non-empty, limits results to runs of the given flow.
	FlowName string

	// Status, if non-empty, limits results to runs with the given status.
	Status Status
}

// Flow is one runnable graph, anchored at a Start node.
//
// Traversal is strictly sequential: one node is current at a time, and
// concurrency only occurs inside a single node's execution when that node
// wraps a parallel combinator. There is no loop detection unless MaxSteps
// is set; a graph with a cycle runs until something external stops it.
type Flow struct {
	name     string
	start    *Node
	maxSteps int
	observer Observer
}

// NewFlow creates a flow anchored at the given Start sentinel.
func NewFlow(name string, start *Node) *Flow {
	if name == "" {
		panic("flowchain: flow name must not be empty")
	}
	if start == nil || !start.IsStart() {
		panic("flowchain: flow must be anchored at a start node")
	}
	return &Flow{name: name, start: start, observer: NoopObserver{}}
}

// Name returns the flow's name.
func (f *Flow) Name() string { return f.name }

// Start returns the flow's Start sentinel. Read-only accessor for graph
// consumers such as diagram generators.
func (f *Flow) Start() *Node { return f.start }

// WithMaxSteps caps how many nodes a single run may execute. Zero or
// negative means unlimited (the default).
func (f *Flow) WithMaxSteps(max int) *Flow {
	f.maxSteps = max
	return f
}

// WithObserver sets the observer notified of this flow's lifecycle events.
func (f *Flow) WithObserver(obs Observer) *Flow {
	if obs == nil {
		obs = NoopObserver{}
	}
	f.observer = obs
	return f
}

// Run executes the flow against the given shared state and returns the
// (mutated) state. A nil state starts empty. The state is returned even on
// failure so callers can inspect partial results.
func (f *Flow) Run(ctx context.Context, state State) (State, error) {
	rep := f.RunWith(ctx, state, f.observer)
	return rep.State, rep.Err
}

// RunWith executes the flow with an explicit observer and returns the full
// run report. Engine implementations use it to attach their own observer;
// most callers want Run.
func (f *Flow) RunWith(ctx context.Context, state State, obs Observer) *RunReport {
	if state == nil {
		state = State{}
	}
	if obs == nil {
		obs = NoopObserver{}
	}

	rep := &RunReport{
		ID:     uuid.NewString(),
		Flow:   f.name,
		Status: StatusRunning,
		State:  state,
	}

	err := f.run(ctx, rep, obs)
	rep.Err = err
	if err != nil {
		rep.Status = StatusFailed
		obs.OnFlowFailed(ctx, rep, err)
	} else {
		rep.Status = StatusCompleted
		obs.OnFlowCompleted(ctx, rep)
	}
	return rep
}

func (f *Flow) run(ctx context.Context, rep *RunReport, obs Observer) error {
	obs.OnFlowStart(ctx, rep)

	// The start sentinel is a routing anchor, not an executable node.
	if f.start.defaultEdge == nil {
		return ErrNoEntryEdge
	}
	current := f.start.defaultEdge

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if current.IsEnd() {
			return nil
		}
		if f.maxSteps > 0 && rep.Steps >= f.maxSteps {
			return fmt.Errorf("%w: %d", ErrMaxStepsExceeded, f.maxSteps)
		}

		obs.OnNodeStart(ctx, rep, current.Name(), rep.Steps)
		began := time.Now()
		value, err := current.action.Execute(ctx, rep.State)
		obs.OnNodeCompleted(ctx, rep, current.Name(), rep.Steps, value, err, time.Since(began))
		rep.Steps++

		if err != nil {
			return &ActionError{Node: current.Name(), Err: err}
		}

		next, ok := current.Resolve(value)
		if !ok {
			return &DeadEndError{Node: current.Name(), Value: value}
		}
		current = next
	}
}
