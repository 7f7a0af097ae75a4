package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// WriteJSON writes r to path atomically.
func WriteJSON(path string, r *Report) error {
	if err := atomicWriteJSON(path, r); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// ReadJSON reads a report written by WriteJSON.
func ReadJSON(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse report: %w", err)
	}
	return &r, nil
}

// atomicWriteJSON writes JSON to a file atomically.
// It writes to a temp file first, then renames to the target path,
// so readers never see partial writes.
func atomicWriteJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	return atomicWriteFile(path, data, 0644)
}

// atomicWriteFile writes data to a file atomically.
func atomicWriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, perm); err != nil {
		return err
	}

	// On Windows, rename fails if target exists
	if runtime.GOOS == "windows" {
		os.Remove(path)
	}

	return os.Rename(tmpPath, path)
}
