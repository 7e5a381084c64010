package discrepancy

import (
	"slices"

	lru "github.com/hashicorp/golang-lru"
)

// DefaultCacheSize bounds the number of cached series.
const DefaultCacheSize = 64

type seriesKey struct {
	obliquity float64
	numDays   int
}

// Cache memoizes Series results. It is safe for concurrent use. A nil *Cache
// computes every call.
type Cache struct {
	entries *lru.Cache
}

// NewCache returns a cache holding at most size series.
func NewCache(size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	entries, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &Cache{entries: entries}, nil
}

// Series returns the series for (obliquityDeg, numDays). The returned slice is
// owned by the caller.
func (c *Cache) Series(obliquityDeg float64, numDays int) []Sample {
	if c == nil {
		return Series(obliquityDeg, numDays)
	}
	key := seriesKey{obliquityDeg, numDays}
	if v, ok := c.entries.Get(key); ok {
		return slices.Clone(v.([]Sample))
	}
	s := Series(obliquityDeg, numDays)
	c.entries.Add(key, s)
	return slices.Clone(s)
}

// Len reports the number of cached series.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	return c.entries.Len()
}
