package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mkarvo/flowchain/pkg/api"
)

func greetFlow(name string) *api.Flow {
	start := api.NewStart()
	end := api.NewEnd()
	greet := api.NewNode(api.NewAction("greet", func(ctx context.Context, state api.State) (string, error) {
		who, _ := state.GetString("who")
		state["greeting"] = "hello " + who
		return api.ActionDefault, nil
	}))
	start.Then(greet).Then(end)
	return api.NewFlow(name, start)
}

func failingFlow(name string, err error) *api.Flow {
	start := api.NewStart()
	start.Then(api.NewNode(api.NewAction("bad", func(ctx context.Context, state api.State) (string, error) {
		return "", err
	})))
	return api.NewFlow(name, start)
}

func TestEngine_RegisterAndRun(t *testing.T) {
	eng := NewInMemoryEngine()
	ctx := context.Background()

	require.NoError(t, eng.RegisterFlow(greetFlow("greet")))

	rep, err := eng.Run(ctx, "greet", api.State{"who": "gopher"})
	require.NoError(t, err)
	require.Equal(t, api.StatusCompleted, rep.Status)
	require.Equal(t, "hello gopher", rep.State["greeting"])
	require.NotEmpty(t, rep.ID)

	got, err := eng.GetReport(ctx, rep.ID)
	require.NoError(t, err)
	require.Equal(t, rep.ID, got.ID)
	require.Equal(t, "greet", got.Flow)
}

func TestEngine_DuplicateRegistration(t *testing.T) {
	eng := NewInMemoryEngine()

	require.NoError(t, eng.RegisterFlow(greetFlow("dup")))
	require.Error(t, eng.RegisterFlow(greetFlow("dup")))
}

func TestEngine_RunUnknownFlow(t *testing.T) {
	eng := NewInMemoryEngine()

	_, err := eng.Run(context.Background(), "missing", nil)
	require.ErrorIs(t, err, api.ErrFlowNotFound)
}

func TestEngine_FailedRunIsReportedAndPersisted(t *testing.T) {
	eng := NewInMemoryEngine()
	ctx := context.Background()

	sentinel := errors.New("boom")
	require.NoError(t, eng.RegisterFlow(failingFlow("exploding", sentinel)))

	rep, err := eng.Run(ctx, "exploding", nil)
	require.ErrorIs(t, err, sentinel)
	require.NotNil(t, rep, "report must be returned alongside the failure")
	require.Equal(t, api.StatusFailed, rep.Status)

	failed, err := eng.ListReports(ctx, api.ReportListOptions{Status: api.StatusFailed})
	require.NoError(t, err)
	require.Len(t, failed, 1)
	require.Equal(t, rep.ID, failed[0].ID)
}

func TestEngine_ObserverReceivesEvents(t *testing.T) {
	metrics := &api.BasicMetrics{}
	eng := NewInMemoryEngineWithObserver(metrics)
	ctx := context.Background()

	require.NoError(t, eng.RegisterFlow(greetFlow("observed")))

	_, err := eng.Run(ctx, "observed", api.State{"who": "x"})
	require.NoError(t, err)

	snap := metrics.Snapshot()
	require.EqualValues(t, 1, snap.FlowsStarted)
	require.EqualValues(t, 1, snap.FlowsCompleted)
	require.EqualValues(t, 1, snap.NodesCompleted)
}
