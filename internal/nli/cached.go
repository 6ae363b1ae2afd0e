package nli

import (
	"context"
	"encoding/json"

	"github.com/veritas-labs/driftscope/internal/cache"
	"github.com/veritas-labs/driftscope/internal/model"
)

// Cached wraps a Classifier with result caching so repeat runs over
// the same report do not repeat capability calls. Cache failures are
// never fatal; the call falls through to the inner classifier.
type Cached struct {
	inner Classifier
	store cache.Cache
	model string
}

// Name returns the inner provider name.
func (c *Cached) Name() string {
	return c.inner.Name()
}

// IsAvailable defers to the inner classifier.
func (c *Cached) IsAvailable(ctx context.Context) bool {
	return c.inner.IsAvailable(ctx)
}

// Classify returns a cached distribution when present, otherwise
// classifies and stores the result.
func (c *Cached) Classify(ctx context.Context, evidence, claim string) (model.Distribution, error) {
	key := cache.Key("nli", c.inner.Name(), c.model, evidence, claim)

	if data, found := c.store.Get(key); found {
		var dist model.Distribution
		if err := json.Unmarshal(data, &dist); err == nil {
			return dist, nil
		}
		// Corrupt entry: drop it and re-classify.
		_ = c.store.Delete(key)
	}

	dist, err := c.inner.Classify(ctx, evidence, claim)
	if err != nil {
		return dist, err
	}

	if data, err := json.Marshal(dist); err == nil {
		_ = c.store.Set(key, data, 0)
	}

	return dist, nil
}
