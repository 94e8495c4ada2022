package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// WriteTranscript writes result as indented JSON to path, creating parent directories.
// It is only called on an explicit user request; nothing is persisted otherwise.
func WriteTranscript(path string, result *Result) error {
	if result == nil {
		return fmt.Errorf("no interview result to write")
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal transcript: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create transcript directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write transcript %s: %w", path, err)
	}
	return nil
}
