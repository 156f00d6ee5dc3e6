package api

// State is the single mutable mapping threaded through an entire flow run.
//
// It is created by the caller, passed by reference to every executed node,
// and mutated in place. There is no snapshotting and no per-node isolation:
// whatever one node writes, every subsequently executed node sees. Under a
// parallel combinator, concurrently running children share the same State
// reference; concurrent writes to the same key are a last-write-wins race.
// Callers are expected to avoid shared mutable writes across concurrent
// children rather than rely on the engine to enforce isolation.
type State map[string]any

// GetString returns the value under key if it is a string.
func (s State) GetString(key string) (string, bool) {
	v, ok := s[key].(string)
	return v, ok
}

// GetInt returns the value under key as an int. Numeric values that arrive
// via JSON or YAML decoding (float64, int64) are converted.
func (s State) GetInt(key string) (int, bool) {
	switch v := s[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

// GetBool returns the value under key if it is a bool.
func (s State) GetBool(key string) (bool, bool) {
	v, ok := s[key].(bool)
	return v, ok
}

// GetMap returns the value under key if it is a map[string]any.
func (s State) GetMap(key string) (map[string]any, bool) {
	v, ok := s[key].(map[string]any)
	return v, ok
}

// Clone returns a shallow copy of the state. Values are shared with the
// original; only the top-level mapping is copied.
func (s State) Clone() State {
	if s == nil {
		return nil
	}
	out := make(State, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
