package providers

import (
	"qrscan/internal/structures"
	"strings"
)

// MetricsCacheProvider counts hits and misses per key namespace, the part
// of the key before the first ':' ("geo" for "geo:203.0.113.9").
type MetricsCacheProvider struct {
	inner   CacheProviderInterface
	metrics MetricsProviderInterface
}

func (c *MetricsCacheProvider) Get(key string) ([]byte, bool) {
	val, ok := c.inner.Get(key)
	if ok {
		c.metrics.IncCacheHits(cacheNamespace(key))
	} else {
		c.metrics.IncCacheMisses(cacheNamespace(key))
	}
	return val, ok
}

func (c *MetricsCacheProvider) Set(key string, value []byte) {
	c.inner.Set(key, value)
}

func cacheNamespace(key string) string {
	if ns, _, found := strings.Cut(key, ":"); found && ns != "" {
		return ns
	}
	return "default"
}

// NewInstrumentedCacheProvider wraps the cache with hit/miss counters.
// A disabled cache is returned bare so it does not report a miss per lookup.
func NewInstrumentedCacheProvider(conf *structures.Config, logger Logger, metrics MetricsProviderInterface) CacheProviderInterface {
	inner := NewCacheProvider(conf, logger)
	if !conf.Cache.Enabled {
		return inner
	}
	return &MetricsCacheProvider{
		inner:   inner,
		metrics: metrics,
	}
}
