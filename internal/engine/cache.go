package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/golang/groupcache/lru"
	"github.com/specialistvlad/colengine/internal/colid"
	"github.com/specialistvlad/colengine/internal/column"
	"github.com/specialistvlad/colengine/internal/dataframe"
	"github.com/specialistvlad/colengine/internal/registry"
	"golang.org/x/sync/singleflight"
)

// denseCache holds dense arrays of vectorized columns. An entry is only
// served for the exact spec, version, component count and store generation
// it was built from.
type denseCache struct {
	mu     sync.Mutex
	lru    *lru.Cache
	flight singleflight.Group
}

type cacheEntry struct {
	spec    *column.Spec
	version uint64
	count   int
	gen     uint64
	values  column.Array
}

func newDenseCache(size int) *denseCache {
	return &denseCache{lru: lru.New(size)}
}

func (c *denseCache) get(id colid.ID, spec *column.Spec, version uint64, count int, gen uint64) (column.Array, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.lru.Get(id)
	if !ok {
		return column.Array{}, false
	}
	entry := v.(*cacheEntry)
	if entry.spec != spec || entry.version != version || entry.count != count || entry.gen != gen {
		c.lru.Remove(id)
		return column.Array{}, false
	}
	return entry.values, true
}

func (c *denseCache) add(id colid.ID, entry *cacheEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Add(id, entry)
}

// storeGeneration is zero for stores that do not count their writes.
func (e *Engine) storeGeneration() uint64 {
	if g, ok := e.store.(dataframe.Generational); ok {
		return g.Generation()
	}
	return 0
}

func (c *denseCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// cachedDense returns the dense array of a registered column, served from
// the cache when one is configured. Callers must not modify the result.
func (e *Engine) cachedDense(ctx context.Context, v registry.View, id colid.ID, spec *column.Spec, count int) (column.Array, error) {
	if e.cache == nil {
		return e.dense(ctx, v, id)
	}

	version := spec.Version()
	// Read before building: a write racing the build makes the entry miss.
	gen := e.storeGeneration()
	if values, ok := e.cache.get(id, spec, version, count, gen); ok {
		e.metrics.CacheHit()
		return values, nil
	}
	e.metrics.CacheMiss()

	key := fmt.Sprintf("%s@%p/%d/%d/%d", id.Key(), spec, version, count, gen)
	res, err, _ := e.cache.flight.Do(key, func() (any, error) {
		values, err := e.dense(ctx, v, id)
		if err != nil {
			return nil, err
		}
		e.cache.add(id, &cacheEntry{spec: spec, version: version, count: count, gen: gen, values: values})
		return values, nil
	})
	if err != nil {
		return column.Array{}, err
	}
	return res.(column.Array), nil
}
