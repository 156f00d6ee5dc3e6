package api

import (
	"errors"
	"fmt"
)

var (
	// ErrFlowNotFound is returned by Engine.Run for an unregistered flow name.
	ErrFlowNotFound = errors.New("flow not found")

	// ErrReportNotFound is returned when a run report is not found.
	ErrReportNotFound = errors.New("run report not found")

	// ErrNoEntryEdge is returned when a flow's start node has no default
	// edge, leaving the traversal nowhere to begin.
	ErrNoEntryEdge = errors.New("start node has no outgoing edge")

	// ErrMaxStepsExceeded is returned when a flow configured with MaxSteps
	// executes more nodes than allowed. It is the only loop guard the
	// engine offers; cycle safety is otherwise the graph author's
	// responsibility.
	ErrMaxStepsExceeded = errors.New("max steps exceeded")
)

// DeadEndError reports a routing dead end: a non-terminal node produced a
// value with neither a matching conditional edge nor a default edge. It is
// a graph-authoring error and is never retried.
type DeadEndError struct {
	Node  string
	Value string
}

func (e *DeadEndError) Error() string {
	return fmt.Sprintf("routing dead end at node %q for value %q", e.Node, e.Value)
}

// ActionError wraps a failure raised by a node's action, recording which
// node failed.
type ActionError struct {
	Node string
	Err  error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("node %q: %v", e.Node, e.Err)
}

func (e *ActionError) Unwrap() error { return e.Err }
