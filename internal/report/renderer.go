// Package report renders audit reports. File formats are a
// collaborator concern: the engine only guarantees a serializable
// report, and this package turns it into JSON, a Markdown drift
// dashboard, and a Mermaid rendering of the evidence-flow graph.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/veritas-labs/driftscope/internal/model"
)

// Renderer renders audit reports to files and the terminal.
type Renderer struct {
	includeFooter bool
	relevanceWarn float64
}

// NewRenderer creates a renderer with the given report policy.
func NewRenderer(cfg model.ReportConfig) *Renderer {
	return &Renderer{
		includeFooter: cfg.IncludeFooter,
		relevanceWarn: cfg.RelevanceWarn,
	}
}

// RenderJSON writes the full report as indented JSON.
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}

// RenderMarkdown writes the drift dashboard and evidence-flow diagram.
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	var buf strings.Builder

	buf.WriteString("# Faithfulness Audit Report\n\n")
	if report.Company != "" {
		fmt.Fprintf(&buf, "Target: %s\n\n", report.Company)
	}
	fmt.Fprintf(&buf, "Run: `%s` at %s\n\n", report.RunID, report.GeneratedAt.Format("2006-01-02 15:04 UTC"))

	buf.WriteString("## Drift Dashboard\n\n")
	buf.WriteString("| Category | Requirement | Disclosure | Justification | Drift | Relevance |\n")
	buf.WriteString("|---|---|---|---|---|---|\n")

	for _, row := range report.Rows {
		relevance := fmt.Sprintf("%.2f", row.Relevance)
		if row.Drift.Label == model.LabelEntailment && row.Relevance < r.relevanceWarn {
			// Entailment with low topical relevance deserves a second look.
			relevance += " ⚠"
		}

		fmt.Fprintf(&buf, "| %s | %s | %s | %s | %d (%s) | %s |\n",
			escapeCell(row.Requirement.Category),
			escapeCell(row.Requirement.Text),
			escapeCell(row.Claim.Text),
			escapeCell(row.Drift.Justification),
			row.Drift.DriftScore,
			row.Drift.Label,
			relevance,
		)
	}

	buf.WriteString("\n*Drift key: 0 = faithful, 3 = drift/hallucination. ⚠ = entailment label with low requirement relevance.*\n")

	buf.WriteString("\n## Evidence Flow\n\n")
	buf.WriteString(RenderMermaid(report.Graph))

	if r.includeFooter {
		buf.WriteString("\n---\n")
		buf.WriteString("Generated by DriftScope. Scores measure evidence support, not truth.\n")
	}

	if err := os.WriteFile(path, []byte(buf.String()), 0o644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}

	return nil
}

// RenderSummary prints a terminal summary of the run.
func (r *Renderer) RenderSummary(report *model.Report) {
	fmt.Println()
	fmt.Println("Drift Audit Summary")
	fmt.Println("===================")

	worst := 0
	for _, row := range report.Rows {
		marker := ""
		if row.Drift.Label == model.LabelEntailment && row.Relevance < r.relevanceWarn {
			marker = "  (low relevance)"
		}
		fmt.Printf("  %-12s drift %d (%s)%s\n", row.Requirement.Category, row.Drift.DriftScore, row.Drift.Label, marker)
		if row.Drift.DriftScore > worst {
			worst = row.Drift.DriftScore
		}
	}

	fmt.Printf("\nCategories: %d, worst drift: %d, graph: %d nodes / %d edges\n",
		len(report.Rows), worst, len(report.Graph.Nodes), len(report.Graph.Edges))
}

// RenderMermaid renders the evidence-flow graph as a Mermaid flowchart.
// Node order follows the graph's node sequence so the diagram is
// stable across runs.
func RenderMermaid(g model.EvidenceFlowGraph) string {
	var buf strings.Builder

	buf.WriteString("```mermaid\nflowchart LR\n")
	for i, label := range g.Nodes {
		fmt.Fprintf(&buf, "    n%d[\"%s\"]\n", i, strings.ReplaceAll(label, "\"", "'"))
	}
	for _, e := range g.Edges {
		fmt.Fprintf(&buf, "    n%d --> n%d\n", e.Source, e.Target)
	}
	buf.WriteString("```\n")

	return buf.String()
}

// escapeCell keeps table cells on one line and pipe-safe.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
