package car

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFile reads a list of cars from a JSON or YAML file.
// Every record is validated and the file order is kept.
func LoadFile(filename string) ([]Car, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read car file: %w", err)
	}

	var raw []Car

	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse car file: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse YAML car file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported car file extension %q", ext)
	}

	cars := make([]Car, 0, len(raw))

	for i, r := range raw {
		c, err := New(r.Manufacturer, r.Price, r.Year)
		if err != nil {
			return nil, fmt.Errorf("car %d in %s: %w", i, filename, err)
		}

		cars = append(cars, c)
	}

	return cars, nil
}

// FileSource is a Source backed by a car list file.
type FileSource struct {
	Path string
}

// Cars loads the file on every call.
func (s FileSource) Cars(ctx context.Context) ([]Car, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return LoadFile(s.Path)
}
