package embed

import (
	"fmt"
	"strings"

	"github.com/veritas-labs/driftscope/internal/cache"
	"github.com/veritas-labs/driftscope/internal/model"
)

// NewEmbedder creates an embedder based on configuration. Constructed
// once at process start and injected into the relevance evaluator.
func NewEmbedder(config model.CapabilityConfig) (Embedder, error) {
	switch strings.ToLower(config.Provider) {
	case "openai":
		return NewOpenAIEmbedder(config)

	case "ollama":
		return NewOllamaEmbedder(config)

	case "":
		return nil, fmt.Errorf("%w: no embedding provider configured", model.ErrCapabilityUnavailable)

	default:
		return nil, fmt.Errorf("unknown embedding provider: %s (supported: openai, ollama)", config.Provider)
	}
}

// WithCache wraps an embedder with result caching. A nil cache returns
// the embedder unchanged.
func WithCache(e Embedder, store cache.Cache, modelName string) Embedder {
	if store == nil {
		return e
	}
	return &Cached{inner: e, store: store, model: modelName}
}
