package analysis

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"Sehat-Backend/domain"
	"Sehat-Backend/pkg/metrics"
)

// ResultCache remembers successful analyses per file URL so that a user who
// re-triggers analysis after a client-side timeout is not billed twice.
type ResultCache struct {
	cache   *expirable.LRU[string, domain.SummaryPair]
	metrics *metrics.Collector
}

func NewResultCache(maxSize int, ttl time.Duration, collector *metrics.Collector) *ResultCache {
	return &ResultCache{
		cache:   expirable.NewLRU[string, domain.SummaryPair](maxSize, nil, ttl),
		metrics: collector,
	}
}

func (c *ResultCache) Get(fileURL string) (domain.SummaryPair, bool) {
	pair, ok := c.cache.Get(fileURL)
	if ok {
		c.metrics.AnalysisCacheHits.Inc()
		return pair, true
	}
	c.metrics.AnalysisCacheMisses.Inc()
	return domain.SummaryPair{}, false
}

func (c *ResultCache) Set(fileURL string, pair domain.SummaryPair) {
	c.cache.Add(fileURL, pair)
}

func (c *ResultCache) Remove(fileURL string) {
	c.cache.Remove(fileURL)
}

func (c *ResultCache) Len() int {
	return c.cache.Len()
}
