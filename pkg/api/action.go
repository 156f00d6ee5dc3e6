package api

import (
	"context"
	"reflect"
	"strings"
	"unicode"
)

// ActionDefault is the routing value actions return to signal ordinary
// completion. It carries no special meaning for edge resolution: like any
// other value, it follows a matching conditional edge first and the default
// edge otherwise. Returning it is simply the conventional "keep going".
const ActionDefault = "default"

// Action is the unit of executable work participating in a flow graph.
//
// Execute receives the run's shared State and returns a routing value. The
// routing value is used solely to select the next edge; any data an action
// produces for later nodes belongs in the State, not the routing value.
// A non-nil error aborts the enclosing run.
type Action interface {
	Execute(ctx context.Context, state State) (string, error)
}

// NamedAction is optionally implemented by actions that want an explicit
// identity. Actions without it are named after their concrete type
// (see ActionName).
type NamedAction interface {
	Action
	Name() string
}

type actionFunc struct {
	name string
	fn   func(ctx context.Context, state State) (string, error)
}

func (a *actionFunc) Name() string { return a.name }

func (a *actionFunc) Execute(ctx context.Context, state State) (string, error) {
	return a.fn(ctx, state)
}

// NewAction wraps a function as a named Action.
func NewAction(name string, fn func(ctx context.Context, state State) (string, error)) Action {
	if name == "" {
		panic("flowchain: action name must not be empty")
	}
	if fn == nil {
		panic("flowchain: action " + name + " has nil function")
	}
	return &actionFunc{name: name, fn: fn}
}

// ActionName returns the stable identity of an action: the explicit name if
// the action implements NamedAction, otherwise the snake_case form of its
// concrete type name (an *EchoAction becomes "echo_action").
func ActionName(a Action) string {
	if na, ok := a.(NamedAction); ok {
		if name := na.Name(); name != "" {
			return name
		}
	}

	t := reflect.TypeOf(a)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Name() == "" {
		return "action"
	}
	return snakeCase(t.Name())
}

// snakeCase converts a Go type name into snake_case. Runs of upper-case
// letters are treated as a single word, so "HTTPFetch" becomes "http_fetch".
func snakeCase(name string) string {
	var b strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			prevLower := i > 0 && unicode.IsLower(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if i > 0 && (prevLower || nextLower) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
