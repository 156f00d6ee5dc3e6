package flowchain

import (
	"context"
	"time"
)

// SetAction returns a named action that writes value under key in the
// shared state and routes through the default edge.
func SetAction(name, key string, value any) Action {
	return NewAction(name, func(ctx context.Context, state State) (string, error) {
		state[key] = value
		return ActionDefault, nil
	})
}

// SleepAction returns an action that sleeps for the given duration and
// routes through the default edge. It is context-aware: a cancelled
// context fails the node with ctx.Err.
func SleepAction(name string, d time.Duration) Action {
	return NewAction(name, func(ctx context.Context, state State) (string, error) {
		if d <= 0 {
			return ActionDefault, nil
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(d):
			return ActionDefault, nil
		}
	})
}

// RouteAction returns an action that routes on the string found under key
// in the shared state. A missing or non-string value routes through the
// default edge.
func RouteAction(name, key string) Action {
	return NewAction(name, func(ctx context.Context, state State) (string, error) {
		if v, ok := state.GetString(key); ok {
			return v, nil
		}
		return ActionDefault, nil
	})
}
