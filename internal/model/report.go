package model

import "time"

// Report represents the complete DriftScope faithfulness audit report.
type Report struct {
	RunID       string    `json:"run_id"`
	Company     string    `json:"company,omitempty"` // audited entity, if known
	GeneratedAt time.Time `json:"generated_at"`

	Rows  []AuditRow        `json:"rows"`  // one per catalog requirement, catalog order
	Graph EvidenceFlowGraph `json:"graph"` // Requirement -> Disclosure -> Drift tier

	Principles Principles `json:"principles"`
}

// AuditRow is one requirement's audited outcome: the normative text,
// the disclosure that was checked, the drift result, and the auxiliary
// relevance signal.
type AuditRow struct {
	Requirement Requirement `json:"requirement"`
	Claim       Claim       `json:"claim"`
	Drift       DriftResult `json:"drift"`

	// Relevance is the cosine similarity between requirement and
	// disclosure in [-1, 1]. The engine exposes the raw value; the
	// disagreement policy (e.g. entailment with low relevance) belongs
	// to the report layer.
	Relevance float64 `json:"relevance"`
}

// Principles is a static declaration of the scoring contract, stamped
// into every report. The booleans assert policy the engine guarantees
// by construction; they are not measured per run. A report produced by
// a build of this engine always carries all three.
type Principles struct {
	Deterministic bool `json:"deterministic"` // same inputs, same scores and graph
	FailClosed    bool `json:"fail_closed"`   // capability failure never defaults to a low score
	Transparent   bool `json:"transparent"`   // raw distributions exposed alongside tiers
}

// DefaultPrinciples returns the standard DriftScope principles.
func DefaultPrinciples() Principles {
	return Principles{
		Deterministic: true,
		FailClosed:    true,
		Transparent:   true,
	}
}
