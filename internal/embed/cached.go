package embed

import (
	"context"
	"encoding/json"

	"github.com/veritas-labs/driftscope/internal/cache"
)

// Cached wraps an Embedder with result caching. Requirement texts are
// embedded once per catalog regardless of how many runs reuse them.
type Cached struct {
	inner Embedder
	store cache.Cache
	model string
}

// Name returns the inner provider name.
func (c *Cached) Name() string {
	return c.inner.Name()
}

// IsAvailable defers to the inner embedder.
func (c *Cached) IsAvailable(ctx context.Context) bool {
	return c.inner.IsAvailable(ctx)
}

// Embed returns a cached vector when present, otherwise embeds and
// stores the result. Cache failures fall through to the capability.
func (c *Cached) Embed(ctx context.Context, text string) ([]float32, error) {
	key := cache.Key("embed", c.inner.Name(), c.model, text)

	if data, found := c.store.Get(key); found {
		var vec []float32
		if err := json.Unmarshal(data, &vec); err == nil && len(vec) > 0 {
			return vec, nil
		}
		_ = c.store.Delete(key)
	}

	vec, err := c.inner.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(vec); err == nil {
		_ = c.store.Set(key, data, 0)
	}

	return vec, nil
}
