package stockfolio

import (
	"sync"

	"github.com/shopspring/decimal"
)

// PriceCache memoizes resolved prices per (stockID, date).
//
// Prices are keyed by stock and exact day, so transaction mutations cannot
// actually stale them; the portfolio still invalidates wholesale on mutation
// as the cheapest correctness argument. The cache is unbounded: it lives as
// long as the portfolio and grows with the set of queried days.
type PriceCache struct {
	mu      sync.Mutex
	entries map[priceKey]decimal.Decimal

	hits   int
	misses int
}

type priceKey struct {
	stockID string
	day     Date
}

// NewPriceCache returns an empty price cache.
func NewPriceCache() *PriceCache {
	return &PriceCache{entries: make(map[priceKey]decimal.Decimal)}
}

// Get returns the memoized price for a stock on a day.
func (c *PriceCache) Get(stockID string, day Date) (decimal.Decimal, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	price, ok := c.entries[priceKey{stockID, day}]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return price, ok
}

// Put memoizes the price for a stock on a day.
func (c *PriceCache) Put(stockID string, day Date, price decimal.Decimal) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[priceKey{stockID, day}] = price
}

// InvalidateAll drops every entry. Counters survive invalidation.
func (c *PriceCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[priceKey]decimal.Decimal)
}

// Len returns the number of memoized prices.
func (c *PriceCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns the cumulative hit and miss counts.
func (c *PriceCache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
