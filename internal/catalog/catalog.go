// Package catalog loads the ordered requirement catalog checked on
// every audit run. The catalog is read-only configuration; its order
// determines report row order and graph node order.
package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/veritas-labs/driftscope/internal/model"
)

type catalogFile struct {
	Requirements []model.Requirement `yaml:"requirements"`
}

// Load reads a requirement catalog from a YAML file and validates it.
func Load(path string) ([]model.Requirement, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	if err := Validate(file.Requirements); err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}

	return file.Requirements, nil
}

// Validate checks catalog invariants: at least one requirement,
// non-empty fields, unique categories.
func Validate(requirements []model.Requirement) error {
	if len(requirements) == 0 {
		return fmt.Errorf("catalog is empty")
	}

	seen := make(map[string]bool, len(requirements))
	for i, req := range requirements {
		if req.Category == "" {
			return fmt.Errorf("requirement %d has empty category", i)
		}
		if req.Text == "" {
			return fmt.Errorf("category %q has empty requirement text", req.Category)
		}
		if seen[req.Category] {
			return fmt.Errorf("duplicate category %q", req.Category)
		}
		seen[req.Category] = true
	}

	return nil
}

// Default returns the built-in SEBI BRSR Principle 6 catalog.
func Default() []model.Requirement {
	return []model.Requirement{
		{Category: "Emissions", Text: "Report Scope 1 & 2 GHG emissions (Metric Tonnes CO2e)."},
		{Category: "Water", Text: "Disclose total water consumption and intensity/turnover."},
		{Category: "Waste", Text: "Report total waste (Hazardous/Non-Hazardous) & Recycling %."},
	}
}
