package persistence

import (
	"encoding/json"

	"github.com/mkarvo/flowchain/pkg/api"
)

// State snapshots are stored as JSON rather than a Go-specific encoding so
// the same payloads round-trip through the file-based loader and stay
// readable with ordinary database tooling. Callers must keep their state
// values JSON-encodable.

// EncodeState serializes a shared-state mapping.
func EncodeState(state api.State) ([]byte, error) {
	if state == nil {
		return nil, nil
	}
	return json.Marshal(state)
}

// DecodeState deserializes a shared-state mapping. Empty input decodes to
// nil.
func DecodeState(data []byte) (api.State, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var state api.State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return state, nil
}
