package flowchain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetAction_WritesAndRoutesDefault(t *testing.T) {
	s := State{}
	v, err := SetAction("put", "k", 42).Execute(context.Background(), s)
	require.NoError(t, err)
	require.Equal(t, ActionDefault, v)
	require.Equal(t, 42, s["k"])
}

func TestRouteAction_RoutesOnStateValue(t *testing.T) {
	ctx := context.Background()
	act := RouteAction("route", "signal")

	v, err := act.Execute(ctx, State{"signal": "left"})
	require.NoError(t, err)
	require.Equal(t, "left", v)

	// Missing key falls back to the default edge.
	v, err = act.Execute(ctx, State{})
	require.NoError(t, err)
	require.Equal(t, ActionDefault, v)

	// Non-string values do too.
	v, err = act.Execute(ctx, State{"signal": 7})
	require.NoError(t, err)
	require.Equal(t, ActionDefault, v)
}
