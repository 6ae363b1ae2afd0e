package audit

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/veritas-labs/driftscope/internal/drift"
	"github.com/veritas-labs/driftscope/internal/model"
)

// scriptedClassifier scores by inspecting the claim text, so tests can
// drive every drift tier without a live capability.
type scriptedClassifier struct {
	failCategory string // claims containing this substring error out
}

func (c *scriptedClassifier) Name() string { return "scripted" }

func (c *scriptedClassifier) IsAvailable(ctx context.Context) bool { return true }

func (c *scriptedClassifier) Classify(ctx context.Context, evidence, claim string) (model.Distribution, error) {
	if c.failCategory != "" && strings.Contains(claim, c.failCategory) {
		return model.Distribution{}, errors.New("scripted failure")
	}

	switch {
	case claim == model.MissingClaimText || claim == "":
		// Absent disclosures are never rewarded.
		return model.Distribution{0.2, 0.1, 0.7}, nil
	case strings.Contains(evidence, claimNumber(claim)):
		return model.Distribution{0.05, 0.9, 0.05}, nil
	default:
		return model.Distribution{0.7, 0.1, 0.2}, nil
	}
}

// claimNumber pulls the first numeric token out of a claim.
func claimNumber(claim string) string {
	for _, field := range strings.Fields(claim) {
		trimmed := strings.Trim(field, ",:")
		if len(trimmed) > 0 && trimmed[0] >= '0' && trimmed[0] <= '9' {
			return trimmed
		}
	}
	return claim
}

// lengthEmbedder produces deterministic vectors from text shape.
type lengthEmbedder struct{}

func (e *lengthEmbedder) Name() string { return "length" }

func (e *lengthEmbedder) IsAvailable(ctx context.Context) bool { return true }

func (e *lengthEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return []float32{float32(len(text)%7) + 1, float32(len(text)%3) + 1}, nil
}

func newTestRunner(classifier *scriptedClassifier, workers int) *Runner {
	return NewRunnerWith(
		drift.NewEvaluator(classifier, 0),
		drift.NewRelevanceEvaluator(&lengthEmbedder{}),
		nil,
		workers,
	)
}

func TestRunner_EndToEndEntailment(t *testing.T) {
	runner := newTestRunner(&scriptedClassifier{}, 1)

	requirements := []model.Requirement{
		{Category: "Emissions", Text: "Report Scope 1 & 2 GHG emissions."},
	}
	claims := map[string]string{
		"Emissions": "Scope 1: 120.5, Scope 2: 500.0",
	}
	evidence := map[string]string{
		"Emissions": "The company emitted 120.5 tonnes Scope 1 and 500 tonnes Scope 2 CO2e.",
	}

	report, err := runner.Run(context.Background(), requirements, claims, evidence)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(report.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(report.Rows))
	}

	row := report.Rows[0]
	if row.Drift.DriftScore != 0 {
		t.Errorf("expected drift 0, got %d", row.Drift.DriftScore)
	}
	if row.Drift.Label != model.LabelEntailment {
		t.Errorf("expected entailment label, got %s", row.Drift.Label)
	}
	if report.RunID == "" {
		t.Error("expected run ID to be set")
	}
}

func TestRunner_MissingClaimSubstitution(t *testing.T) {
	runner := newTestRunner(&scriptedClassifier{}, 2)

	requirements := []model.Requirement{
		{Category: "Emissions", Text: "Report Scope 1 & 2 GHG emissions."},
		{Category: "Water", Text: "Disclose total water consumption."},
	}
	claims := map[string]string{
		"Emissions": "Scope 1: 120.5, Scope 2: 500.0",
	}
	evidence := map[string]string{
		"Emissions": "Emitted 120.5 tonnes Scope 1.",
	}

	report, err := runner.Run(context.Background(), requirements, claims, evidence)
	if err != nil {
		t.Fatalf("missing claims must not error: %v", err)
	}

	waterRow := report.Rows[1]
	if waterRow.Claim.Text != model.MissingClaimText {
		t.Errorf("expected %q substitution, got %q", model.MissingClaimText, waterRow.Claim.Text)
	}

	// Absence of disclosure is never a perfect score.
	if waterRow.Drift.DriftScore != 2 && waterRow.Drift.DriftScore != 3 {
		t.Errorf("expected drift 2 or 3 for missing claim, got %d", waterRow.Drift.DriftScore)
	}
	if waterRow.Drift.DriftScore == 0 {
		t.Error("missing disclosure must never score 0")
	}
}

func TestRunner_CatalogOrderWithConcurrency(t *testing.T) {
	runner := newTestRunner(&scriptedClassifier{}, 8)

	var requirements []model.Requirement
	claims := make(map[string]string)
	for i := 0; i < 20; i++ {
		category := fmt.Sprintf("Cat%02d", i)
		requirements = append(requirements, model.Requirement{
			Category: category,
			Text:     "Requirement for " + category,
		})
		claims[category] = fmt.Sprintf("Value %d reported", i)
	}

	first, err := runner.Run(context.Background(), requirements, claims, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, row := range first.Rows {
		if row.Requirement.Category != requirements[i].Category {
			t.Fatalf("row %d out of catalog order: got %s", i, row.Requirement.Category)
		}
	}

	second, err := runner.Run(context.Background(), requirements, claims, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Graph output must be byte-identical across runs.
	if !reflect.DeepEqual(first.Graph, second.Graph) {
		t.Error("graph differs between identical runs")
	}
}

func TestRunner_GraphShape(t *testing.T) {
	runner := newTestRunner(&scriptedClassifier{}, 4)

	requirements := []model.Requirement{
		{Category: "Emissions", Text: "Report emissions."},
		{Category: "Water", Text: "Report water."},
		{Category: "Waste", Text: "Report waste."},
	}

	report, err := runner.Run(context.Background(), requirements, map[string]string{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// All three claims collapse to the shared "Not Found" disclosure node.
	wantNodes := 3 + 1 + 4
	if len(report.Graph.Nodes) != wantNodes {
		t.Errorf("expected %d nodes, got %d: %v", wantNodes, len(report.Graph.Nodes), report.Graph.Nodes)
	}
	if len(report.Graph.Edges) != 6 {
		t.Errorf("expected 6 edges, got %d", len(report.Graph.Edges))
	}
}

func TestRunner_EvaluationFailureFailsRun(t *testing.T) {
	runner := newTestRunner(&scriptedClassifier{failCategory: "poison"}, 4)

	requirements := []model.Requirement{
		{Category: "Emissions", Text: "Report emissions."},
		{Category: "Water", Text: "Report water."},
	}
	claims := map[string]string{
		"Emissions": "Value 1 reported",
		"Water":     "poison claim",
	}

	_, err := runner.Run(context.Background(), requirements, claims, nil)
	if err == nil {
		t.Fatal("expected run to fail when an evaluation fails")
	}

	var capErr *model.CapabilityError
	if !errors.As(err, &capErr) {
		t.Fatalf("expected CapabilityError, got %T: %v", err, err)
	}
	if capErr.Category != "Water" {
		t.Errorf("expected failing category identified, got %q", capErr.Category)
	}
}
