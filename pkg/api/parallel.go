package api

import (
	"context"
	"fmt"
	"sync"
)

// DefaultParallelKey is the state key a parallel combinator aggregates its
// children's results under when no key is configured.
const DefaultParallelKey = "parallel"

// ChildFailure is the explicit marker stored in a parallel combinator's
// aggregate for a child that failed. Completed siblings keep their results;
// a failed child is never silently omitted.
type ChildFailure struct {
	Err string `json:"error"`
}

func (f ChildFailure) String() string {
	return "child failed: " + f.Err
}

// ParallelAction runs an ordered list of child actions concurrently against
// the same shared state and aggregates their routing values under a single
// state key, so the whole fan-out routes like one node.
//
// Children are launched in declaration order but may complete in any order.
// Each child's result is stored under "<name>_<index>", where index is the
// child's declaration position, so duplicate child identities never collide
// and the aggregate's keys are deterministic regardless of completion
// timing.
//
// Failure policy: the combinator always waits for every child to settle; a
// failing child does not cancel its siblings, and there is no timeout.
// Completed results are preserved, failed children are marked with a
// ChildFailure entry, and the aggregate is written to state even when the
// combinator itself fails. The combinator's error is the first failure in
// declaration order.
//
// Children share the state reference without copy or locking. Go maps are
// unsafe under any concurrent write, so children running under this
// combinator must not write the shared state at all; they publish results
// through their routing values, which are collected race-free into the
// aggregate. Reading state seeded before the fan-out is safe. Intended for
// I/O-bound children; it buys nothing for CPU-bound work.
type ParallelAction struct {
	key      string
	children []Action
}

// Parallel builds a parallel combinator over the given children. An empty
// key means DefaultParallelKey.
func Parallel(key string, children ...Action) *ParallelAction {
	if key == "" {
		key = DefaultParallelKey
	}
	for i, child := range children {
		if child == nil {
			panic(fmt.Sprintf("flowchain: parallel child %d must not be nil", i))
		}
	}
	return &ParallelAction{key: key, children: children}
}

// Name returns the combinator's aggregation key, which doubles as its node
// identity.
func (p *ParallelAction) Name() string { return p.key }

// Key returns the state key the aggregate is written under.
func (p *ParallelAction) Key() string { return p.key }

// Children returns the combinator's children in declaration order.
func (p *ParallelAction) Children() []Action {
	out := make([]Action, len(p.children))
	copy(out, p.children)
	return out
}

// Execute runs all children, joins on them, writes the aggregate into the
// state, and returns the default routing value on success.
func (p *ParallelAction) Execute(ctx context.Context, state State) (string, error) {
	results := make([]string, len(p.children))
	errs := make([]error, len(p.children))

	var wg sync.WaitGroup
	for i, child := range p.children {
		wg.Add(1)
		go func(i int, child Action) {
			defer wg.Done()
			results[i], errs[i] = child.Execute(ctx, state)
		}(i, child)
	}
	wg.Wait()

	aggregate := make(map[string]any, len(p.children))
	var firstErr error
	var firstKey string
	for i, child := range p.children {
		key := fmt.Sprintf("%s_%d", ActionName(child), i)
		if errs[i] != nil {
			aggregate[key] = ChildFailure{Err: errs[i].Error()}
			if firstErr == nil {
				firstErr = errs[i]
				firstKey = key
			}
			continue
		}
		aggregate[key] = results[i]
	}
	state[p.key] = aggregate

	if firstErr != nil {
		return "", fmt.Errorf("parallel child %s: %w", firstKey, firstErr)
	}
	return ActionDefault, nil
}
