package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/veritas-labs/driftscope/internal/model"
)

func TestDefault(t *testing.T) {
	reqs := Default()

	if err := Validate(reqs); err != nil {
		t.Fatalf("built-in catalog must be valid: %v", err)
	}

	want := []string{"Emissions", "Water", "Waste"}
	if len(reqs) != len(want) {
		t.Fatalf("expected %d requirements, got %d", len(want), len(reqs))
	}
	for i, category := range want {
		if reqs[i].Category != category {
			t.Errorf("requirement %d: got category %q, want %q", i, reqs[i].Category, category)
		}
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	content := `requirements:
  - category: Emissions
    text: Report Scope 1 & 2 GHG emissions.
  - category: Water
    text: Disclose total water consumption.
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	reqs, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(reqs) != 2 {
		t.Fatalf("expected 2 requirements, got %d", len(reqs))
	}
	if reqs[0].Category != "Emissions" || reqs[1].Category != "Water" {
		t.Errorf("catalog order not preserved: %+v", reqs)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		reqs    []model.Requirement
		wantErr bool
	}{
		{"valid", Default(), false},
		{"empty catalog", nil, true},
		{"empty category", []model.Requirement{{Category: "", Text: "x"}}, true},
		{"empty text", []model.Requirement{{Category: "Water", Text: ""}}, true},
		{
			"duplicate category",
			[]model.Requirement{
				{Category: "Water", Text: "a"},
				{Category: "Water", Text: "b"},
			},
			true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.reqs)
			if tc.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
