package data

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"inventory-twin/internal/model"
)

// LoadEIAJSON reads a saved EIA response from disk.
func LoadEIAJSON(path string) (*model.EIAResponse, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read EIA file: %w", err)
	}
	var resp model.EIAResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse EIA file: %w", err)
	}
	return &resp, nil
}

// SaveEIAJSON writes a response to disk, creating the parent directory.
func SaveEIAJSON(path string, resp *model.EIAResponse) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	raw, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal EIA response: %w", err)
	}

	if err := os.WriteFile(path, raw, 0644); err != nil {
		return fmt.Errorf("failed to write EIA file: %w", err)
	}
	return nil
}
