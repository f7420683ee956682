// Package service wires the probability model, bootstrap estimator and
// calibration pipeline together behind cacheable, observable entry points.
package service

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/yourusername/fight-odds/internal/metrics"
	"github.com/yourusername/fight-odds/internal/models"
)

// CacheKey identifies one scored matchup: both stat lines plus the model
// version whose weights produced the score.
type CacheKey struct {
	fingerprint  string
	ModelVersion string
}

// NewCacheKey derives a key from the matchup's stat lines. Stats are
// immutable after construction, so their JSON encoding is a stable
// fingerprint.
func NewCacheKey(a, b models.FighterStats, modelVersion string) CacheKey {
	encoded, _ := json.Marshal([2]models.FighterStats{a, b})
	sum := sha256.Sum256(encoded)
	return CacheKey{
		fingerprint:  hex.EncodeToString(sum[:16]),
		ModelVersion: modelVersion,
	}
}

// String returns string representation of cache key
func (k CacheKey) String() string {
	return fmt.Sprintf("%s:%s", k.fingerprint, k.ModelVersion)
}

// PredictionCache provides in-memory caching for scored matchups
type PredictionCache struct {
	cache     *cache.Cache
	ttl       time.Duration
	maxSize   int
	mu        sync.RWMutex
	hitCount  uint64
	missCount uint64
}

// NewPredictionCache creates a new prediction cache
func NewPredictionCache(ttl time.Duration, maxSize int) *PredictionCache {
	return &PredictionCache{
		cache:   cache.New(ttl, ttl*2),
		ttl:     ttl,
		maxSize: maxSize,
	}
}

// Get retrieves a cached analysis result
func (pc *PredictionCache) Get(key CacheKey) *AnalysisResult {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if result, found := pc.cache.Get(key.String()); found {
		if analysis, ok := result.(*AnalysisResult); ok {
			pc.hitCount++
			metrics.CacheHitsTotal.Inc()
			return analysis
		}
	}

	pc.missCount++
	metrics.CacheMissesTotal.Inc()
	return nil
}

// Set stores an analysis result in cache
func (pc *PredictionCache) Set(key CacheKey, result *AnalysisResult) {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if pc.cache.ItemCount() >= pc.maxSize {
		pc.cache.DeleteExpired()
	}

	pc.cache.Set(key.String(), result, pc.ttl)
}

// InvalidateModelVersion removes all cache entries scored by the given
// model version. Called after a calibration run lands new weights.
func (pc *PredictionCache) InvalidateModelVersion(modelVersion string) {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	suffix := ":" + modelVersion
	for k := range pc.cache.Items() {
		if len(k) >= len(suffix) && k[len(k)-len(suffix):] == suffix {
			pc.cache.Delete(k)
		}
	}
}

// Clear flushes the entire cache
func (pc *PredictionCache) Clear() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	pc.cache.Flush()
	pc.hitCount = 0
	pc.missCount = 0
}

// Stats returns cache statistics
func (pc *PredictionCache) Stats() (hits, misses uint64, ratio float64) {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	hits = pc.hitCount
	misses = pc.missCount
	total := hits + misses
	if total > 0 {
		ratio = float64(hits) / float64(total)
	}
	return
}

// ItemCount returns the number of items in cache
func (pc *PredictionCache) ItemCount() int {
	return pc.cache.ItemCount()
}
