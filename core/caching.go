package core

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/rotnitxe/kpknfit/internal/contract"
	"github.com/rotnitxe/kpknfit/schema"
)

// currentCacheVersion defines the version of the memo schema
const currentCacheVersion = 1

// memoTTL is how long a memoized result stays valid.
const memoTTL = 7 * 24 * time.Hour

// cachedAggregateSession returns the memoized summary of a session, computing
// and storing it on a miss. The session ID is not part of the key.
func cachedAggregateSession(store contract.CacheStore, exercises []schema.SessionExercise, tanks schema.BatteryTanks, ctx schema.SessionContext) schema.SessionSummary {
	keyCtx := ctx
	keyCtx.SessionID = ""
	key := generateCacheKey("session", exercises, tanks, keyCtx)
	return memoize(store, key, func() schema.SessionSummary {
		return AggregateSession(exercises, tanks, ctx)
	})
}

// cachedRecommendMany memoizes a batch of recommendations. Phase, intensity and
// frequency are part of the key, so a change of block never reuses a result.
func cachedRecommendMany(store contract.CacheStore, muscles []string, profile *schema.AthleteProfile, phase schema.TrainingPhase, intensity schema.IntensityTier, frequency int) []schema.VolumeRecommendation {
	key := generateCacheKey("recommend", muscles, profile, phase, intensity, frequency)
	return memoize(store, key, func() []schema.VolumeRecommendation {
		return RecommendMany(muscles, profile, phase, intensity, frequency)
	})
}

// memoize wraps a pure computation with the memo store. A nil store computes directly.
func memoize[T any](store contract.CacheStore, key string, compute func() T) T {
	if store == nil {
		return compute()
	}
	if result, ok := checkCacheHit[T](store, key); ok {
		contract.Logger().Debug("memo hit", zap.String("key", key))
		return result
	}
	contract.Logger().Debug("memo miss", zap.String("key", key))
	return computeAndStore(store, key, compute)
}

// checkCacheHit attempts to retrieve and validate a cached result
func checkCacheHit[T any](store contract.CacheStore, key string) (T, bool) {
	var result T
	data, version, ts, err := store.Get(key)
	if err != nil {
		return result, false // Cache miss
	}

	// Validate version and staleness
	if version != currentCacheVersion || time.Since(time.Unix(ts, 0)) > memoTTL {
		return result, false
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return result, false
	}
	return result, true
}

// computeAndStore computes the result and stores it in the memo
func computeAndStore[T any](store contract.CacheStore, key string, compute func() T) T {
	result := compute()
	if data, err := json.Marshal(result); err == nil {
		if err := store.Set(key, data, currentCacheVersion, time.Now().Unix()); err != nil {
			contract.LogWarn("Failed to store memo entry", err)
		}
	}
	return result
}

// generateCacheKey creates a content hash of the inputs of a computation
func generateCacheKey(kind string, parts ...any) string {
	data, err := json.Marshal(parts)
	if err != nil {
		data = fmt.Appendf(nil, "%v", parts)
	}
	sum := sha256.Sum256(append([]byte(kind+":"), data...))
	return fmt.Sprintf("%x", sum)
}
