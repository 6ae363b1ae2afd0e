package ingest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadClaims reads a category -> claim map from a JSON or YAML file.
// The engine tolerates missing categories, so the file may cover any
// subset of the catalog. No schema beyond "string per category".
func LoadClaims(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read claims: %w", err)
	}

	claims := make(map[string]string)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &claims); err != nil {
			return nil, fmt.Errorf("parse claims YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &claims); err != nil {
			return nil, fmt.Errorf("parse claims JSON: %w", err)
		}
	}

	return claims, nil
}
