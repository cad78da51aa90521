package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar"
)

// IgnoreFileName is the per-project ignore file read from the corpus root.
const IgnoreFileName = ".codectxignore"

// ignoreCacheEntry holds cached ignore patterns with metadata
type ignoreCacheEntry struct {
	patterns []string
	modTime  time.Time
}

// Global cache for ignore patterns
var (
	ignoreCache = make(map[string]*ignoreCacheEntry)
	cacheMutex  sync.RWMutex
)

// GetIgnorePatterns reads and returns the patterns from the project ignore file.
// If the file does not exist, it returns an empty pattern list.
func GetIgnorePatterns(root string) ([]string, error) {
	ignorePath := filepath.Join(root, IgnoreFileName)

	fileInfo, err := os.Stat(ignorePath)
	if os.IsNotExist(err) {
		return []string{}, nil
	} else if err != nil {
		return nil, fmt.Errorf("error checking %s: %w", IgnoreFileName, err)
	}

	// Check cache first
	cacheMutex.RLock()
	if cached, exists := ignoreCache[ignorePath]; exists {
		if fileInfo.ModTime().Equal(cached.modTime) {
			cacheMutex.RUnlock()
			return cached.patterns, nil
		}
	}
	cacheMutex.RUnlock()

	patterns, err := readIgnoreFile(ignorePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", IgnoreFileName, err)
	}

	var validPatterns []string
	for _, pattern := range patterns {
		if _, err := doublestar.Match(strings.TrimSuffix(pattern, "/"), ""); err != nil {
			// Malformed glob, skip it rather than failing the whole load
			continue
		}
		validPatterns = append(validPatterns, pattern)
	}

	cacheMutex.Lock()
	ignoreCache[ignorePath] = &ignoreCacheEntry{
		patterns: validPatterns,
		modTime:  fileInfo.ModTime(),
	}
	cacheMutex.Unlock()

	return validPatterns, nil
}

// readIgnoreFile returns the non-empty, non-comment lines of the ignore file.
func readIgnoreFile(ignorePath string) ([]string, error) {
	content, err := os.ReadFile(ignorePath)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(string(content), "\n")
	var patterns []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "#") {
			patterns = append(patterns, line)
		}
	}
	return patterns, nil
}

// IsIgnored checks a "/"-separated relative path against the ignore patterns.
// A pattern without a slash matches any single path segment; a pattern ending in
// "/" ignores the directory and everything below it.
func IsIgnored(relativePath string, patterns []string) bool {
	segments := strings.Split(relativePath, "/")
	for _, pattern := range patterns {
		dirOnly := strings.HasSuffix(pattern, "/")
		pattern = strings.TrimSuffix(pattern, "/")

		if dirOnly && (relativePath == pattern || strings.HasPrefix(relativePath, pattern+"/")) {
			return true
		}
		if match, _ := doublestar.Match(pattern, relativePath); match {
			return true
		}
		if !strings.Contains(pattern, "/") {
			for _, segment := range segments {
				if match, _ := doublestar.Match(pattern, segment); match {
					return true
				}
			}
		}
	}
	return false
}

// ClearIgnoreCache clears all cached ignore patterns
func ClearIgnoreCache() {
	cacheMutex.Lock()
	defer cacheMutex.Unlock()
	ignoreCache = make(map[string]*ignoreCacheEntry)
}
