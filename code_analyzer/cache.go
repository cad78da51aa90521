package code_analyzer

import (
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/zeebo/xxh3"
)

// DefaultCacheSize is the number of extraction results kept in memory.
const DefaultCacheSize = 4096

// CacheStats tracks cache performance metrics
type CacheStats struct {
	TotalRequests int64
	CacheHits     int64
	CacheMisses   int64
	LastResetTime time.Time
	mutex         sync.RWMutex
}

// CacheManager memoizes specifier extraction per language and content hash.
// Entries live only as long as the process.
type CacheManager struct {
	entries *lru.Cache[string, []string]
	stats   *CacheStats
}

// NewCacheManager creates a cache holding up to size results. A size <= 0
// uses DefaultCacheSize.
func NewCacheManager(size int) (*CacheManager, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	entries, err := lru.New[string, []string](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create extraction cache: %w", err)
	}
	return &CacheManager{
		entries: entries,
		stats: &CacheStats{
			LastResetTime: time.Now(),
		},
	}, nil
}

// generateCacheKey derives the key for content written in language.
func generateCacheKey(language string, content string) string {
	return fmt.Sprintf("%s:%016x:%d", language, xxh3.HashString(content), len(content))
}

// GetSpecifiers returns a copy of the cached specifiers for content.
func (cm *CacheManager) GetSpecifiers(language string, content string) ([]string, bool) {
	if cm == nil {
		return nil, false
	}
	specifiers, ok := cm.entries.Get(generateCacheKey(language, content))
	if !ok {
		cm.recordCacheMiss()
		return nil, false
	}
	cm.recordCacheHit()
	return append([]string(nil), specifiers...), true
}

// SetSpecifiers stores a copy of specifiers for content.
func (cm *CacheManager) SetSpecifiers(language string, content string, specifiers []string) {
	if cm == nil {
		return
	}
	cm.entries.Add(generateCacheKey(language, content), append([]string(nil), specifiers...))
}

// Len returns the number of cached results.
func (cm *CacheManager) Len() int {
	if cm == nil {
		return 0
	}
	return cm.entries.Len()
}

// ClearCache drops every cached result.
func (cm *CacheManager) ClearCache() {
	if cm == nil {
		return
	}
	cm.entries.Purge()
}
