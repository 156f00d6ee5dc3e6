package api

import (
	"context"
	"errors"
	"testing"
)

func TestFlow_SequentialTraversal(t *testing.T) {
	var order []string
	record := func(name string) Action {
		return NewAction(name, func(ctx context.Context, state State) (string, error) {
			order = append(order, name)
			return ActionDefault, nil
		})
	}

	start := NewStart()
	end := NewEnd()
	start.Then(NewNode(record("a"))).Then(NewNode(record("b"))).Then(end)

	state, err := NewFlow("sequential", start).Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state == nil {
		t.Fatalf("expected non-nil state for nil input")
	}
	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Fatalf("unexpected execution order: %v", order)
	}
}

func TestFlow_ConditionalBeatsDefault(t *testing.T) {
	start := NewStart()
	end := NewEnd()

	a := NewNode(constAction("a", "ok"))
	b := NewNode(NewAction("b", func(ctx context.Context, state State) (string, error) {
		state["visited"] = "b"
		return ActionDefault, nil
	}))
	c := NewNode(NewAction("c", func(ctx context.Context, state State) (string, error) {
		state["visited"] = "c"
		return ActionDefault, nil
	}))

	// a returns "ok"; conditional edge "ok" -> b must win over default -> c.
	start.Then(a)
	a.On("ok", b).Then(c)
	b.Then(end)
	c.Then(end)

	state, err := NewFlow("conditional", start).Run(context.Background(), State{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, _ := state.GetString("visited"); v != "b" {
		t.Fatalf("expected conditional branch to b, state visited=%q", v)
	}
}

func TestFlow_RoutingDeadEnd(t *testing.T) {
	start := NewStart()
	a := NewNode(constAction("a", "nowhere"))
	start.Then(a)

	_, err := NewFlow("dead-end", start).Run(context.Background(), State{})

	var deadEnd *DeadEndError
	if !errors.As(err, &deadEnd) {
		t.Fatalf("expected DeadEndError, got %v", err)
	}
	if deadEnd.Node != "a" || deadEnd.Value != "nowhere" {
		t.Fatalf("unexpected dead end details: %+v", deadEnd)
	}
}

func TestFlow_ActionFailureAborts(t *testing.T) {
	sentinel := errors.New("boom")

	var ranSecond bool
	start := NewStart()
	end := NewEnd()
	failing := NewNode(NewAction("failing", func(ctx context.Context, state State) (string, error) {
		return "", sentinel
	}))
	second := NewNode(NewAction("second", func(ctx context.Context, state State) (string, error) {
		ranSecond = true
		return ActionDefault, nil
	}))
	start.Then(failing).Then(second).Then(end)

	state, err := NewFlow("failing", start).Run(context.Background(), State{"k": "v"})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped sentinel, got %v", err)
	}

	var actionErr *ActionError
	if !errors.As(err, &actionErr) || actionErr.Node != "failing" {
		t.Fatalf("expected ActionError naming the node, got %v", err)
	}
	if ranSecond {
		t.Fatalf("node after a failure must not run")
	}
	// The mutated state is still returned for inspection.
	if _, ok := state["k"]; !ok {
		t.Fatalf("state should be returned on failure")
	}
}

func TestFlow_NoEntryEdge(t *testing.T) {
	_, err := NewFlow("empty", NewStart()).Run(context.Background(), State{})
	if !errors.Is(err, ErrNoEntryEdge) {
		t.Fatalf("expected ErrNoEntryEdge, got %v", err)
	}
}

func TestFlow_MaxStepsGuardsCycles(t *testing.T) {
	start := NewStart()
	a := NewNode(constAction("a", ActionDefault))
	start.Then(a)
	a.Then(a) // deliberate cycle

	_, err := NewFlow("cycle", start).WithMaxSteps(10).Run(context.Background(), State{})
	if !errors.Is(err, ErrMaxStepsExceeded) {
		t.Fatalf("expected ErrMaxStepsExceeded, got %v", err)
	}
}

func TestFlow_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	start := NewStart()
	a := NewNode(NewAction("canceller", func(ctx context.Context, state State) (string, error) {
		cancel() // cancel mid-run; the loop must stop before the next node
		return ActionDefault, nil
	}))
	start.Then(a)
	a.Then(a)

	_, err := NewFlow("cancelled", start).Run(ctx, State{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestFlow_ReportCarriesIdentityAndSteps(t *testing.T) {
	start := NewStart()
	end := NewEnd()
	start.Then(NewNode(constAction("only", ActionDefault))).Then(end)

	f := NewFlow("report", start)
	rep := f.RunWith(context.Background(), State{}, nil)

	if rep.ID == "" {
		t.Fatalf("expected a run ID")
	}
	if rep.Flow != "report" {
		t.Fatalf("unexpected flow name %q", rep.Flow)
	}
	if rep.Status != StatusCompleted {
		t.Fatalf("unexpected status %s", rep.Status)
	}
	if rep.Steps != 1 {
		t.Fatalf("expected 1 executed node, got %d", rep.Steps)
	}
}

func TestNewFlow_Validation(t *testing.T) {
	assertPanics(t, func() { NewFlow("", NewStart()) })
	assertPanics(t, func() { NewFlow("x", nil) })
	assertPanics(t, func() { NewFlow("x", NewNode(constAction("a", ActionDefault))) })
}
