package nli

import (
	"fmt"
	"strings"

	"github.com/veritas-labs/driftscope/internal/cache"
	"github.com/veritas-labs/driftscope/internal/model"
)

// NewClassifier creates a classifier based on configuration. The
// capability is constructed once at process start and injected into
// the evaluator; there is no lazy global state.
func NewClassifier(config model.CapabilityConfig) (Classifier, error) {
	switch strings.ToLower(config.Provider) {
	case "openai":
		return NewOpenAIClassifier(config)

	case "ollama":
		return NewOllamaClassifier(config)

	case "":
		return nil, fmt.Errorf("%w: no NLI provider configured", model.ErrCapabilityUnavailable)

	default:
		return nil, fmt.Errorf("unknown NLI provider: %s (supported: openai, ollama)", config.Provider)
	}
}

// WithCache wraps a classifier with result caching. A nil cache
// returns the classifier unchanged.
func WithCache(c Classifier, store cache.Cache, modelName string) Classifier {
	if store == nil {
		return c
	}
	return &Cached{inner: c, store: store, model: modelName}
}
