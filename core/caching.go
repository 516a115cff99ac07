package core

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lukaszwojcik89/worklog/core/agg"
	"github.com/lukaszwojcik89/worklog/internal/contract"
	"github.com/lukaszwojcik89/worklog/internal/ingest"
	"github.com/lukaszwojcik89/worklog/schema"
)

// currentCacheVersion defines the version of the cache schema
const currentCacheVersion = 1

// pipelineOutput bundles the aggregate rows with the reject report they were
// produced alongside. Categories are assigned after retrieval, so keyword
// extensions never invalidate the cache.
type pipelineOutput struct {
	Rows   []schema.AggregateRow
	Report *schema.RejectReport
}

// cachedAggregate normalizes and aggregates the source rows, going through
// the report cache when one is available.
func cachedAggregate(src *ingest.Source, cfg *contract.Config, mgr contract.CacheManager) (*pipelineOutput, error) {
	var store contract.CacheStore
	if mgr != nil {
		store = mgr.GetReportStore()
	}
	if store == nil {
		// Fallback to direct computation
		return computeAggregate(src)
	}

	key := generateCacheKey(src, cfg)

	// Check for cache hit
	if result := checkCacheHit(store, key); result != nil {
		return result, nil
	}

	// Cache miss: compute and store
	return computeAndStore(src, store, key)
}

// checkCacheHit attempts to retrieve and validate a cached result
func checkCacheHit(store contract.CacheStore, key string) *pipelineOutput {
	data, version, ts, err := store.Get(key)
	if err != nil {
		return nil // Cache miss
	}

	// Validate version and staleness
	if version == currentCacheVersion {
		entryTimestamp := time.Unix(ts, 0)
		if time.Since(entryTimestamp) <= 7*24*time.Hour {
			var result pipelineOutput
			if err := json.Unmarshal(data, &result); err == nil {
				return &result // Cache hit
			}
		}
	}

	return nil // Cache miss (stale or version mismatch)
}

// computeAggregate runs normalization and aggregation without the cache.
func computeAggregate(src *ingest.Source) (*pipelineOutput, error) {
	entries, report, err := Normalize(src.Rows, src.Legacy)
	if err != nil {
		return &pipelineOutput{Report: report}, err
	}
	return &pipelineOutput{Rows: agg.Aggregate(entries), Report: report}, nil
}

// computeAndStore computes the result and stores it in cache
func computeAndStore(src *ingest.Source, store contract.CacheStore, key string) (*pipelineOutput, error) {
	result, err := computeAggregate(src)
	if err != nil {
		return result, err
	}

	// Store in cache
	if data, err := json.Marshal(result); err == nil {
		_ = store.Set(key, data, currentCacheVersion, time.Now().Unix())
	}

	return result, nil
}

// generateCacheKey creates a unique key from the input fingerprint and the
// parameters that change the aggregation result.
func generateCacheKey(src *ingest.Source, cfg *contract.Config) string {
	key := fmt.Sprintf("%s:%t:%d", src.Fingerprint, cfg.LegacyFormat, currentCacheVersion)
	return fmt.Sprintf("%x", sha256.Sum256([]byte(key)))
}
