package persistence

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mkarvo/flowchain/pkg/api"
)

// ErrUnsupportedFormat is returned for state files whose extension is
// neither JSON nor YAML.
var ErrUnsupportedFormat = errors.New("unsupported state file format")

// LoadStateFile reads a shared-state mapping from a JSON (.json) or YAML
// (.yaml, .yml) file. The format is chosen by extension; anything else
// fails with ErrUnsupportedFormat.
func LoadStateFile(path string) (api.State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var state api.State
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(data, &state); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &state); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	if state == nil {
		state = api.State{}
	}
	return state, nil
}

// SaveStateFile writes a shared-state mapping to a JSON or YAML file,
// chosen by extension, creating parent directories as needed.
func SaveStateFile(path string, state api.State) error {
	var data []byte
	var err error

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		data, err = json.MarshalIndent(state, "", "  ")
	case ".yaml", ".yml":
		data, err = yaml.Marshal(state)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
