package service

import (
	"fmt"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/agbru/polycalc/internal/poly"
)

// DefaultParseCacheSize is the number of operands kept by the server's
// parse cache.
const DefaultParseCacheSize = 1024

var parseCacheLookups = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "polycalc_parse_cache_lookups_total",
		Help: "Operand parse cache lookups by outcome",
	},
	[]string{"outcome"},
)

// ParseCache memoizes poly.Parse for operand text with a fixed-size LRU.
// Polynomials are immutable, so cached values are shared between callers.
// Inputs that fail to parse are not cached. It is safe for concurrent use.
type ParseCache struct {
	cache  *lru.Cache[string, poly.Polynomial]
	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewParseCache creates a cache holding at most size operands.
//
// Parameters:
//   - size: The capacity of the cache; it must be positive.
//
// Returns:
//   - *ParseCache: The new cache.
//   - error: An error if size is not positive.
func NewParseCache(size int) (*ParseCache, error) {
	cache, err := lru.New[string, poly.Polynomial](size)
	if err != nil {
		return nil, fmt.Errorf("parse cache: %w", err)
	}
	return &ParseCache{cache: cache}, nil
}

// Parse returns the polynomial denoted by text, from the cache if present.
func (c *ParseCache) Parse(text string) (poly.Polynomial, error) {
	if p, ok := c.cache.Get(text); ok {
		c.hits.Add(1)
		parseCacheLookups.WithLabelValues("hit").Inc()
		return p, nil
	}
	c.misses.Add(1)
	parseCacheLookups.WithLabelValues("miss").Inc()

	p, err := poly.Parse(text)
	if err != nil {
		return poly.Polynomial{}, err
	}
	c.cache.Add(text, p)
	return p, nil
}

// Stats returns the number of cache hits and misses so far.
func (c *ParseCache) Stats() (hits, misses uint64) {
	return c.hits.Load(), c.misses.Load()
}

// Len returns the number of cached operands.
func (c *ParseCache) Len() int {
	return c.cache.Len()
}
