package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/veritas-labs/driftscope/internal/model"
)

// Cache defines the interface for capability-result caching.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a cache key from a capability call's identifying parts
// (capability name, provider, model, inputs). Inputs are hashed so keys
// stay filename-safe regardless of disclosure text content.
func Key(parts ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(parts, "\x1f")))
	return "driftscope:v1:" + hex.EncodeToString(hash[:])
}

// FromConfig builds a cache from configuration. Returns nil when
// caching is disabled; callers treat a nil cache as a pass-through.
func FromConfig(cfg model.CacheConfig) Cache {
	if !cfg.Enabled {
		return nil
	}
	if cfg.Dir == "" {
		return NewMemoryCache(cfg.TTL, 10*time.Minute)
	}
	return NewLayeredCache(cfg.TTL, cfg.Dir, cfg.TTL)
}
