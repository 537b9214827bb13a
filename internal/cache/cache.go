// pattern: Imperative Shell

// Package cache persists a scan result between runs so the report can be
// re-rendered without inspecting every project again (--dev).
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gitahead/internal/status"
)

const filePerm = 0o644

// Load reads a cached aggregate. The bool is false when no cache exists.
// The returned aggregate is frozen.
func Load(path string) (*status.Aggregate, bool, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- path comes from config or flags
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read cache: %w", err)
	}

	var agg status.Aggregate
	if err := json.Unmarshal(data, &agg); err != nil {
		return nil, false, fmt.Errorf("failed to parse cache %s: %w", path, err)
	}
	agg.Freeze()
	return &agg, true, nil
}

// Save writes agg to path, replacing any previous cache atomically.
func Save(path string, agg *status.Aggregate) error {
	data, err := json.MarshalIndent(agg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode cache: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create cache dir: %w", err)
		}
	}
	return atomicWrite(path, append(data, '\n'))
}

func atomicWrite(path string, data []byte) error {
	tmpPath := path + ".tmp"
	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, filePerm) //#nosec G304 -- derived from path
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write data: %w", err)
	}

	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to sync file: %w", err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename file: %w", err)
	}
	return nil
}
