package drift

import (
	"context"
	"math"

	"github.com/veritas-labs/driftscope/internal/embed"
	"github.com/veritas-labs/driftscope/internal/model"
)

// RelevanceEvaluator computes the auxiliary requirement-vs-disclosure
// relevance signal: cosine similarity over embeddings, in [-1, 1].
// The engine exposes the raw score; the disagreement policy (e.g. low
// relevance despite an entailment label) belongs to the report layer.
type RelevanceEvaluator struct {
	embedder embed.Embedder
}

// NewRelevanceEvaluator creates a new relevance evaluator.
func NewRelevanceEvaluator(embedder embed.Embedder) *RelevanceEvaluator {
	return &RelevanceEvaluator{embedder: embedder}
}

// Relevance returns the cosine similarity between the requirement and
// disclosure texts. Pure and deterministic given the embedding model.
func (r *RelevanceEvaluator) Relevance(ctx context.Context, requirementText, disclosureText string) (float64, error) {
	reqVec, err := r.embedder.Embed(ctx, requirementText)
	if err != nil {
		return 0, &model.CapabilityError{Capability: "embed", Err: err}
	}

	disVec, err := r.embedder.Embed(ctx, disclosureText)
	if err != nil {
		return 0, &model.CapabilityError{Capability: "embed", Err: err}
	}

	return Cosine(reqVec, disVec), nil
}

// Cosine computes cosine similarity between two vectors. Mismatched
// lengths or a zero-norm vector yield 0 (orthogonal by convention).
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
