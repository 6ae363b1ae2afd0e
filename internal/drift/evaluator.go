// Package drift implements the deterministic decision policy that
// turns entailment classifier output into an ordinal drift score
// (0 = faithful, 3 = contradictory/hallucinated) with a fixed
// per-tier justification.
package drift

import (
	"context"
	"fmt"

	"github.com/veritas-labs/driftscope/internal/model"
	"github.com/veritas-labs/driftscope/internal/nli"
)

// labelPriority is the deterministic tie-break order: under an
// ambiguous (tied) distribution the more conservative classification
// wins. Explicit policy choice, not an artifact.
var labelPriority = []model.Label{
	model.LabelContradiction,
	model.LabelNeutral,
	model.LabelEntailment,
}

// Evaluator applies the drift decision policy on top of an injected
// entailment classifier.
type Evaluator struct {
	classifier nli.Classifier

	// entailmentThreshold optionally splits tier 0 vs 1: predicted
	// entailment below this probability scores 1 (paraphrased).
	// 0 disables the split.
	entailmentThreshold float64
}

// NewEvaluator creates a new drift evaluator.
func NewEvaluator(classifier nli.Classifier, entailmentThreshold float64) *Evaluator {
	return &Evaluator{
		classifier:          classifier,
		entailmentThreshold: entailmentThreshold,
	}
}

// Evaluate scores one (claim, evidence) pair. Both strings may be
// empty; missing disclosures are valid input and route toward the
// worst drift tiers through the classifier, never through a default.
// A classifier failure fails closed: an error, not a score.
func (e *Evaluator) Evaluate(ctx context.Context, category, claimText, evidenceText string) (model.DriftResult, error) {
	// Protocol: evidence first, claim second. Entailment is directional.
	dist, err := e.classifier.Classify(ctx, evidenceText, claimText)
	if err != nil {
		return model.DriftResult{}, &model.CapabilityError{
			Capability: "nli",
			Category:   category,
			Err:        err,
		}
	}

	if err := dist.Validate(); err != nil {
		return model.DriftResult{}, &model.MalformedOutputError{
			Capability: "nli",
			Category:   category,
			Reason:     err,
		}
	}

	label := PredictLabel(dist)
	score := e.scoreFor(label, dist)

	return model.DriftResult{
		Category:        category,
		DriftScore:      score,
		Label:           label,
		RawDistribution: dist,
		Justification:   Justification(score, claimText),
	}, nil
}

// PredictLabel returns the argmax label of a distribution. Ties are
// broken by fixed priority: contradiction > neutral > entailment.
// The scan replaces only on strictly greater probability, so the
// result is stable under any iteration order of the input.
func PredictLabel(dist model.Distribution) model.Label {
	best := labelPriority[0]
	for _, label := range labelPriority[1:] {
		if dist.P(label) > dist.P(best) {
			best = label
		}
	}
	return best
}

// scoreFor maps a predicted label to its drift tier.
func (e *Evaluator) scoreFor(label model.Label, dist model.Distribution) int {
	switch label {
	case model.LabelEntailment:
		if e.entailmentThreshold > 0 && dist.P(model.LabelEntailment) < e.entailmentThreshold {
			return model.ScoreParaphrased
		}
		return model.ScoreVerbatim
	case model.LabelNeutral:
		return model.ScoreAbstract
	default:
		return model.ScoreHallucination
	}
}

// Justification builds the fixed per-tier justification text.
// Deterministic given the tier; never model-generated.
func Justification(score int, claimText string) string {
	switch score {
	case model.ScoreVerbatim:
		return fmt.Sprintf(
			"STRONG EVIDENCE: Disclosure explicitly cites quantitative data (e.g., %s...) matching the requirement unit.",
			prefix(claimText, 15))
	case model.ScoreParaphrased:
		return "PARAPHRASED: Disclosure is entailed by the evidence but restates it without verbatim grounding."
	case model.ScoreAbstract:
		return "PARTIAL EVIDENCE: Data reported but may lack specific granularity or unit alignment."
	default:
		return "WEAK/MISSING: No clear evidence found supporting this requirement."
	}
}

// prefix returns the first n runes of s.
func prefix(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
