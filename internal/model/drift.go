package model

import (
	"fmt"
	"math"
)

// Label is the 3-way entailment classification of an (evidence, claim) pair.
type Label string

const (
	LabelContradiction Label = "contradiction"
	LabelEntailment    Label = "entailment"
	LabelNeutral       Label = "neutral"
)

// Fixed index-to-label contract for classifier distributions.
// Any conforming 3-class NLI scorer must return its probabilities in
// this order; the assumption is validated and tested, never implicit.
const (
	IndexContradiction = 0
	IndexEntailment    = 1
	IndexNeutral       = 2
)

// DistributionTolerance is how far the component sum may deviate from 1.
const DistributionTolerance = 0.01

// Distribution is a categorical distribution over the three entailment
// labels in the fixed order (contradiction, entailment, neutral).
// The array type enforces the 3-component arity at compile time.
type Distribution [3]float64

// P returns the probability mass assigned to a label.
func (d Distribution) P(label Label) float64 {
	switch label {
	case LabelContradiction:
		return d[IndexContradiction]
	case LabelEntailment:
		return d[IndexEntailment]
	case LabelNeutral:
		return d[IndexNeutral]
	default:
		return 0
	}
}

// Validate checks that the distribution is well formed: no NaN or
// negative components, and the components sum to 1 within tolerance.
// A violation is never coerced or renormalized.
func (d Distribution) Validate() error {
	sum := 0.0
	for i, p := range d {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return fmt.Errorf("component %d is not finite: %v", i, p)
		}
		if p < 0 {
			return fmt.Errorf("component %d is negative: %v", i, p)
		}
		sum += p
	}
	if math.Abs(sum-1.0) > DistributionTolerance {
		return fmt.Errorf("components sum to %.4f, expected 1.0 ±%.2f", sum, DistributionTolerance)
	}
	return nil
}

// Drift score tiers. 0 = faithful, 3 = contradictory/hallucinated.
const (
	ScoreVerbatim      = 0 // claim is verbatim/accurate relative to evidence
	ScoreParaphrased   = 1 // entailed, but below the confidence threshold
	ScoreAbstract      = 2 // claim present but not clearly grounded
	ScoreHallucination = 3 // claim conflicts with evidence
)

// DriftResult is the outcome of evaluating one (requirement, claim) pair.
// Immutable after creation; consumed directly by the report/graph layer.
type DriftResult struct {
	Category        string       `json:"category"`
	DriftScore      int          `json:"drift_score"` // ordinal, 0-3
	Label           Label        `json:"label"`
	RawDistribution Distribution `json:"raw_distribution"`
	Justification   string       `json:"justification"`
}
