// Package safe compiles user supplied regular expressions without panicking
// and keeps the compiled form in a bounded cache.
package safe

import (
	"errors"
	"fmt"
	"regexp"
	"sync"
)

// ErrInvalidRegex is returned when a pattern cannot be compiled.
var ErrInvalidRegex = errors.New("invalid regular expression")

// maxCacheSize bounds the cache; when reached the whole cache is dropped.
const maxCacheSize = 1024

var (
	regexMu    sync.RWMutex
	regexCache = make(map[string]*regexp.Regexp)
)

func cacheLoad(pattern string) (*regexp.Regexp, bool) {
	regexMu.RLock()
	defer regexMu.RUnlock()

	re, ok := regexCache[pattern]

	return re, ok
}

func cacheStore(pattern string, re *regexp.Regexp) {
	regexMu.Lock()
	defer regexMu.Unlock()

	if len(regexCache) >= maxCacheSize {
		regexCache = make(map[string]*regexp.Regexp)
	}

	regexCache[pattern] = re
}

// Compile compiles pattern, reusing a cached result when present.
func Compile(pattern string) (*regexp.Regexp, error) {
	if cached, ok := cacheLoad(pattern); ok {
		return cached, nil
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRegex, err)
	}

	cacheStore(pattern, re)

	return re, nil
}

// MatchString reports whether input contains a match of pattern.
func MatchString(pattern, input string) (bool, error) {
	re, err := Compile(pattern)
	if err != nil {
		return false, err
	}

	return re.MatchString(input), nil
}

// ClearCache empties the cache.
func ClearCache() {
	regexMu.Lock()
	defer regexMu.Unlock()

	regexCache = make(map[string]*regexp.Regexp)
}
