package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadDocument_PlainText(t *testing.T) {
	path := writeTemp(t, "report.txt", "Scope 1 emissions: 120.5 tonnes\fpage two")

	text, err := LoadDocument(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(text, "120.5") {
		t.Errorf("content lost: %q", text)
	}
	if !strings.Contains(text, "\f") {
		t.Error("form feeds must survive plain-text loading")
	}
}

func TestLoadDocument_HTML(t *testing.T) {
	path := writeTemp(t, "report.html", `<html><head>
<script>var tracking = true;</script>
<style>body { color: red; }</style>
</head><body>
<h1>Sustainability Report</h1>
<p>Scope 1 emissions were 120.5 tonnes CO2e.</p>
<noscript>enable javascript</noscript>
</body></html>`)

	text, err := LoadDocument(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(text, "Sustainability Report") || !strings.Contains(text, "120.5 tonnes") {
		t.Errorf("visible text missing: %q", text)
	}
	if strings.Contains(text, "tracking") || strings.Contains(text, "color: red") {
		t.Errorf("script/style content leaked: %q", text)
	}
	if strings.Contains(text, "enable javascript") {
		t.Errorf("noscript content leaked: %q", text)
	}
}

func TestLoadDocument_Missing(t *testing.T) {
	if _, err := LoadDocument(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadClaims_JSON(t *testing.T) {
	path := writeTemp(t, "claims.json", `{"Emissions": "Scope 1: 120.5", "Water": "Total: 1000"}`)

	claims, err := LoadClaims(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims["Emissions"] != "Scope 1: 120.5" || claims["Water"] != "Total: 1000" {
		t.Errorf("unexpected claims: %v", claims)
	}
}

func TestLoadClaims_YAML(t *testing.T) {
	path := writeTemp(t, "claims.yaml", "Emissions: \"Scope 1: 120.5\"\nWaste: Not Found\n")

	claims, err := LoadClaims(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims["Emissions"] != "Scope 1: 120.5" || claims["Waste"] != "Not Found" {
		t.Errorf("unexpected claims: %v", claims)
	}
}

func TestLoadClaims_Malformed(t *testing.T) {
	path := writeTemp(t, "claims.json", `{"Emissions": `)
	if _, err := LoadClaims(path); err == nil {
		t.Error("expected error for malformed JSON")
	}
}
