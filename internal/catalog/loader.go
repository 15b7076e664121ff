package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/linkforge/linkforge/internal/domain"
)

// platformEntry is the YAML schema for one platform override entry.
type platformEntry struct {
	Name               string  `yaml:"name"`
	BaseURL            string  `yaml:"base_url"`
	Authority          int     `yaml:"authority"`
	SuccessProbability float64 `yaml:"success_probability"`
}

// LoadFile reads a platform table from a YAML file.
// An empty path returns the built-in defaults.
func LoadFile(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read platform file: %w", err)
	}

	var entries []platformEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse platform yaml: %w", err)
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("platform file %s contains no entries", path)
	}

	platforms := make([]domain.Platform, 0, len(entries))
	for i, e := range entries {
		if e.Name == "" || e.BaseURL == "" {
			return nil, fmt.Errorf("platform entry %d: name and base_url are required", i)
		}
		if e.Authority <= 0 {
			return nil, fmt.Errorf("platform %s: authority must be > 0, got %d", e.Name, e.Authority)
		}
		if e.SuccessProbability <= 0 || e.SuccessProbability > 1 {
			return nil, fmt.Errorf("platform %s: success_probability must be in (0,1], got %v",
				e.Name, e.SuccessProbability)
		}
		platforms = append(platforms, domain.Platform{
			Name:               e.Name,
			BaseURL:            e.BaseURL,
			Authority:          e.Authority,
			SuccessProbability: e.SuccessProbability,
		})
	}

	return New(platforms), nil
}
