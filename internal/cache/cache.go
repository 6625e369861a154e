// Package cache stores service responses keyed by article URL, mirroring
// the service's own by-URL article cache on the client side.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/opbop/opbop/internal/model"
)

// Backend is a byte-level cache layer.
type Backend interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
}

// Key generates the cache key for an article URL. URLs are lowercased first
// so the key matches however the tab happened to capitalize the address.
func Key(articleURL string) string {
	hash := sha256.Sum256([]byte(strings.ToLower(articleURL)))
	return "opbop:v1:" + hex.EncodeToString(hash[:])
}

// ResponseCache caches decoded service responses. Display decisions are
// never cached; they are recomputed from live preferences on every render.
type ResponseCache struct {
	backend Backend
	ttl     time.Duration
}

// NewResponseCache builds the layered memory+disk response cache from
// configuration. Returns nil when caching is disabled; a nil ResponseCache
// is safe to use and always misses.
func NewResponseCache(cfg model.CacheConfig) *ResponseCache {
	if !cfg.Enabled {
		return nil
	}
	return &ResponseCache{
		backend: NewLayered(cfg.MemoryTTL, cfg.Dir, cfg.DiskTTL),
		ttl:     cfg.DiskTTL,
	}
}

// Lookup returns the cached response for an article URL, if any. An entry
// that no longer decodes is dropped and treated as a miss.
func (c *ResponseCache) Lookup(articleURL string) (*model.ResponsePayload, bool) {
	if c == nil {
		return nil, false
	}

	key := Key(articleURL)
	data, found := c.backend.Get(key)
	if !found {
		return nil, false
	}

	var resp model.ResponsePayload
	if err := json.Unmarshal(data, &resp); err != nil {
		_ = c.backend.Delete(key)
		return nil, false
	}
	return &resp, true
}

// Store caches the response for an article URL. Best-effort; failures are
// swallowed.
func (c *ResponseCache) Store(articleURL string, resp *model.ResponsePayload) {
	if c == nil || resp == nil {
		return
	}

	data, err := json.Marshal(resp)
	if err != nil {
		return
	}
	_ = c.backend.Set(Key(articleURL), data, c.ttl)
}
