// Package flowchain provides a small, embeddable workflow-chaining engine
// for Go.
//
// A flow is a graph of named actions connected by default and conditional
// transitions, executed against one piece of mutable shared state. Nodes
// return a routing value; the engine resolves the next node from that value
// and loops until it reaches a terminal node or a dead end.
//
// # Core Concepts
//
// The flowchain programming model is intentionally small:
//
//  1. Action
//  2. Node graph
//  3. Flow
//  4. Parallel combinator
//  5. Engine
//
// # Action
//
// An Action is the fundamental executable unit:
//
//	type Action interface {
//	    Execute(ctx context.Context, state State) (string, error)
//	}
//
// It receives the run's shared State (a map[string]any passed by reference
// for the whole run) and returns a routing value. Data flows through the
// State; routing values only pick edges.
//
// # Node graph
//
// Nodes wrap actions and carry two kinds of outgoing edges. Then registers
// a default edge and returns the target so links chain left to right; On
// registers a conditional edge keyed by an exact routing value. A matching
// conditional edge always wins over the default edge. Graphs are anchored
// at a Start sentinel and terminate at End sentinels:
//
//	start := flowchain.NewStart()
//	check := flowchain.NewNode(checkOrder)
//	start.Then(check)
//	check.On("expedite", flowchain.NewNode(rush).Then(end)).Then(end)
//
// # Flow
//
// A Flow drives the traversal: execute the current node, resolve the next
// one from its routing value, repeat. Traversal is strictly sequential at
// the graph level. A non-terminal node whose value matches no edge is a
// routing dead end and fails the run. There is no loop detection unless
// WithMaxSteps is set; cycle safety is the graph author's responsibility.
//
// # Parallel combinator
//
// Parallel builds a composite action that runs several child actions
// concurrently against the same shared state and aggregates their routing
// values under one state key, each child keyed by its name plus its
// declaration position. The combinator waits for every child to settle,
// preserves completed results, and marks failed children with an explicit
// ChildFailure entry. A failing child does not cancel its siblings and
// there is no timeout; the fan-out is intended for I/O-bound children
// only, not CPU-bound parallelism. Children under the combinator must
// not write the shared state map; they publish results through their
// routing values.
//
// # Engine
//
// The Engine registers flows by name, runs them with a configured
// Observer, and keeps run reports — in memory, or in SQLite for
// single-file durability. LoadStateFile and SaveStateFile move shared
// state through JSON or YAML files at the boundaries.
//
// For examples, see the /examples directory or the project README.
package flowchain
