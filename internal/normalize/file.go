package normalize

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"datenight/internal/restaurant"
)

// LoadFile reads a JSON array of raw restaurant objects.
func LoadFile(path string) ([]map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return raw, nil
}

// LoadRestaurants reads and normalizes a data file in one step.
func LoadRestaurants(path string, opts Options) ([]*restaurant.Restaurant, error) {
	raw, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return Run(raw, opts).Records, nil
}

// WriteFile writes records as indented JSON. The file is replaced atomically
// so a crash never leaves a half-written data file behind.
func WriteFile(path string, records []*restaurant.Restaurant) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode records: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(path), ".restaurants-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
