package report

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a report file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is a user-supplied report path
	if err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}
	return Parse(data)
}

// Parse parses report content.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing report YAML: %w", err)
	}
	return &f, nil
}

// Save writes the report to disk.
func Save(path string, f *File) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil { //nolint:gosec // reports are meant to be shared
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
