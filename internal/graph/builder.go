// Package graph builds the three-tier evidence-flow graph
// (Requirement -> Disclosure -> Drift tier) used for audit
// visualization and traceability.
package graph

import (
	"strconv"

	"github.com/veritas-labs/driftscope/internal/model"
)

// disclosurePrefixLen is the fixed truncation length for disclosure
// node labels. Truncation keeps the diagram readable; two claims that
// share a prefix collapse into one node. Documented lossy aggregation.
const disclosurePrefixLen = 20

// Triple is one audited (requirement, claim, result) row.
type Triple struct {
	Requirement model.Requirement
	Claim       model.Claim
	Result      model.DriftResult
}

// Builder constructs evidence-flow graphs.
type Builder struct{}

// NewBuilder creates a new graph builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Build constructs the graph from the run's triples. Output is
// deterministic: requirement nodes in catalog order, then distinct
// disclosure nodes in first-seen order, then the four drift-tier nodes
// in ascending score order. Every node is inserted before any edge
// that references it; parallel edges are preserved, weight 1 each.
func (b *Builder) Build(triples []Triple) model.EvidenceFlowGraph {
	nodes := make([]string, 0, 2*len(triples)+4)
	index := make(map[string]int)

	add := func(label string) int {
		if i, ok := index[label]; ok {
			return i
		}
		index[label] = len(nodes)
		nodes = append(nodes, label)
		return index[label]
	}

	// Tier 1: requirement nodes, catalog order.
	for _, t := range triples {
		add(RequirementLabel(t.Requirement.Category))
	}

	// Tier 2: disclosure nodes, first-seen order. Identical prefixes
	// collapse here.
	for _, t := range triples {
		add(DisclosureLabel(t.Claim.Text))
	}

	// Tier 3: all four drift nodes, ascending, whether used or not.
	for score := 0; score <= 3; score++ {
		add(DriftLabel(score))
	}

	edges := make([]model.FlowEdge, 0, 2*len(triples))
	for _, t := range triples {
		reqIdx := index[RequirementLabel(t.Requirement.Category)]
		disIdx := index[DisclosureLabel(t.Claim.Text)]
		driftIdx := index[DriftLabel(t.Result.DriftScore)]

		edges = append(edges,
			model.FlowEdge{Source: reqIdx, Target: disIdx, Weight: 1},
			model.FlowEdge{Source: disIdx, Target: driftIdx, Weight: 1},
		)
	}

	return model.EvidenceFlowGraph{Nodes: nodes, Edges: edges}
}

// RequirementLabel is the tier-1 node label for a category.
func RequirementLabel(category string) string {
	return "Req:" + category
}

// DisclosureLabel is the tier-2 node label: a fixed 20-rune prefix of
// the claim text. The truncation must be exact; node identity depends
// on it.
func DisclosureLabel(claimText string) string {
	runes := []rune(claimText)
	if len(runes) > disclosurePrefixLen {
		runes = runes[:disclosurePrefixLen]
	}
	return "Disc:" + string(runes) + "..."
}

// DriftLabel is the tier-3 node label for a score.
func DriftLabel(score int) string {
	return "Drift:" + strconv.Itoa(score)
}
