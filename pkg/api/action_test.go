package api

import (
	"context"
	"testing"
)

type Echo struct {
	Value string
}

func (e *Echo) Execute(ctx context.Context, state State) (string, error) {
	return e.Value, nil
}

type HTTPFetch struct{}

func (HTTPFetch) Execute(ctx context.Context, state State) (string, error) {
	return ActionDefault, nil
}

func TestActionName_DerivedFromType(t *testing.T) {
	cases := []struct {
		action Action
		want   string
	}{
		{&Echo{Value: "a"}, "echo"},
		{HTTPFetch{}, "http_fetch"},
		{NewAction("custom", func(ctx context.Context, state State) (string, error) {
			return ActionDefault, nil
		}), "custom"},
	}

	for _, tc := range cases {
		if got := ActionName(tc.action); got != tc.want {
			t.Fatalf("ActionName(%T) = %q, want %q", tc.action, got, tc.want)
		}
	}
}

func TestSnakeCase(t *testing.T) {
	cases := map[string]string{
		"Echo":      "echo",
		"FetchUser": "fetch_user",
		"HTTPFetch": "http_fetch",
		"ParseJSON": "parse_json",
		"already":   "already",
		"AB":        "ab",
	}
	for in, want := range cases {
		if got := snakeCase(in); got != want {
			t.Fatalf("snakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNewAction_Validation(t *testing.T) {
	assertPanics(t, func() {
		NewAction("", func(ctx context.Context, state State) (string, error) {
			return ActionDefault, nil
		})
	})
	assertPanics(t, func() { NewAction("named", nil) })
}
