// Package embed provides the similarity capability: sentence
// embeddings for requirement-vs-disclosure relevance checks.
package embed

import "context"

// Embedder produces a dense vector for a text string. Implementations
// must be safe for concurrent use and deterministic given the same
// embedding model.
type Embedder interface {
	// Name returns the provider name.
	Name() string

	// Embed returns the embedding vector for the text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// IsAvailable checks if the provider is properly configured and accessible.
	IsAvailable(ctx context.Context) bool
}
