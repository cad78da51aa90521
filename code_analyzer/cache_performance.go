package code_analyzer

import (
	"time"
)

// recordCacheHit increments cache hit counter
func (cm *CacheManager) recordCacheHit() {
	if cm.stats == nil {
		return
	}
	cm.stats.mutex.Lock()
	defer cm.stats.mutex.Unlock()
	cm.stats.TotalRequests++
	cm.stats.CacheHits++
}

// recordCacheMiss increments cache miss counter
func (cm *CacheManager) recordCacheMiss() {
	if cm.stats == nil {
		return
	}
	cm.stats.mutex.Lock()
	defer cm.stats.mutex.Unlock()
	cm.stats.TotalRequests++
	cm.stats.CacheMisses++
}

// GetPerformanceStats returns the extraction cache counters and hit rate.
func (cm *CacheManager) GetPerformanceStats() map[string]interface{} {
	if cm == nil || cm.stats == nil {
		return map[string]interface{}{
			"total_requests":   int64(0),
			"cache_hits":       int64(0),
			"cache_misses":     int64(0),
			"hit_rate_percent": 0.0,
			"entries":          0,
			"uptime_seconds":   0.0,
		}
	}

	cm.stats.mutex.RLock()
	defer cm.stats.mutex.RUnlock()

	hitRate := 0.0
	if cm.stats.TotalRequests > 0 {
		hitRate = float64(cm.stats.CacheHits) / float64(cm.stats.TotalRequests) * 100
	}

	return map[string]interface{}{
		"total_requests":   cm.stats.TotalRequests,
		"cache_hits":       cm.stats.CacheHits,
		"cache_misses":     cm.stats.CacheMisses,
		"hit_rate_percent": hitRate,
		"entries":          cm.entries.Len(),
		"uptime_seconds":   time.Since(cm.stats.LastResetTime).Seconds(),
	}
}

// ResetPerformanceStats resets all performance counters
func (cm *CacheManager) ResetPerformanceStats() {
	if cm == nil || cm.stats == nil {
		return
	}
	cm.stats.mutex.Lock()
	defer cm.stats.mutex.Unlock()

	cm.stats.TotalRequests = 0
	cm.stats.CacheHits = 0
	cm.stats.CacheMisses = 0
	cm.stats.LastResetTime = time.Now()
}
