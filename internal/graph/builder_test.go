package graph

import (
	"reflect"
	"strings"
	"testing"

	"github.com/veritas-labs/driftscope/internal/model"
)

func makeTriple(category, claimText string, score int) Triple {
	return Triple{
		Requirement: model.Requirement{Category: category, Text: "req " + category},
		Claim:       model.Claim{Category: category, Text: claimText},
		Result:      model.DriftResult{Category: category, DriftScore: score},
	}
}

func TestBuild_NodeAndEdgeCounts(t *testing.T) {
	triples := []Triple{
		makeTriple("Emissions", "Scope 1: 120.5, Scope 2: 500.0", 0),
		makeTriple("Water", "Total: 1000.0, Intensity: 0.5", 2),
		makeTriple("Waste", "Not Found", 3),
	}

	g := NewBuilder().Build(triples)

	// N requirement nodes + <=N disclosure nodes + exactly 4 drift nodes
	wantNodes := 3 + 3 + 4
	if len(g.Nodes) != wantNodes {
		t.Errorf("expected %d nodes, got %d: %v", wantNodes, len(g.Nodes), g.Nodes)
	}

	// exactly 2N edges
	if len(g.Edges) != 6 {
		t.Errorf("expected 6 edges, got %d", len(g.Edges))
	}

	for i, e := range g.Edges {
		if e.Source < 0 || e.Source >= len(g.Nodes) || e.Target < 0 || e.Target >= len(g.Nodes) {
			t.Errorf("edge %d references out-of-range node: %+v", i, e)
		}
		if e.Weight != 1 {
			t.Errorf("edge %d weight = %d, want 1", i, e.Weight)
		}
	}
}

func TestBuild_InsertionOrder(t *testing.T) {
	triples := []Triple{
		makeTriple("Emissions", "claim A text goes here and more", 0),
		makeTriple("Water", "claim B text goes here and more", 2),
	}

	g := NewBuilder().Build(triples)

	want := []string{
		"Req:Emissions",
		"Req:Water",
		"Disc:claim A text goes he...",
		"Disc:claim B text goes he...",
		"Drift:0",
		"Drift:1",
		"Drift:2",
		"Drift:3",
	}
	if !reflect.DeepEqual(g.Nodes, want) {
		t.Errorf("node order mismatch:\n got %v\nwant %v", g.Nodes, want)
	}
}

func TestBuild_AllDriftNodesAlwaysPresent(t *testing.T) {
	g := NewBuilder().Build([]Triple{makeTriple("Emissions", "x", 0)})

	for score := 0; score <= 3; score++ {
		found := false
		for _, n := range g.Nodes {
			if n == DriftLabel(score) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("drift node for score %d missing even though unused", score)
		}
	}
}

func TestBuild_Deterministic(t *testing.T) {
	triples := []Triple{
		makeTriple("Emissions", "Scope 1: 120.5, Scope 2: 500.0", 0),
		makeTriple("Water", "Not Found", 2),
		makeTriple("Waste", "Not Found", 3),
	}

	first := NewBuilder().Build(triples)
	second := NewBuilder().Build(triples)

	if !reflect.DeepEqual(first, second) {
		t.Error("two builds over the same input differ")
	}
}

func TestBuild_TruncationCollision(t *testing.T) {
	// Two claims sharing a 20-rune prefix collapse into one disclosure
	// node under different categories. Documented lossy aggregation.
	shared := "Total emissions were 120.5 tonnes"
	other := "Total emissions were 999.9 tonnes"

	triples := []Triple{
		makeTriple("Emissions", shared, 0),
		makeTriple("Water", other, 2),
	}

	g := NewBuilder().Build(triples)

	// 2 requirement + 1 collapsed disclosure + 4 drift
	if len(g.Nodes) != 7 {
		t.Errorf("expected 7 nodes after collision, got %d: %v", len(g.Nodes), g.Nodes)
	}
	if len(g.Edges) != 4 {
		t.Errorf("parallel edges must be preserved: expected 4, got %d", len(g.Edges))
	}
}

func TestDisclosureLabel(t *testing.T) {
	cases := []struct {
		name  string
		claim string
		want  string
	}{
		{"long claim truncated", "Scope 1: 120.5, Scope 2: 500.0", "Disc:Scope 1: 120.5, Scop..."},
		{"short claim kept whole", "Not Found", "Disc:Not Found..."},
		{"empty claim", "", "Disc:..."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DisclosureLabel(tc.claim); got != tc.want {
				t.Errorf("DisclosureLabel(%q) = %q, want %q", tc.claim, got, tc.want)
			}
		})
	}

	// Truncation counts runes, not bytes.
	got := DisclosureLabel(strings.Repeat("é", 30))
	want := "Disc:" + strings.Repeat("é", 20) + "..."
	if got != want {
		t.Errorf("rune truncation mismatch: %q", got)
	}
}
