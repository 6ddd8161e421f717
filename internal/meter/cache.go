package meter

import (
	"context"
	"sync"
)

// SerialSource lists every serial currently in stock.
type SerialSource interface {
	ListStockSerials(ctx context.Context) ([]string, error)
}

// SerialCache memoizes the full stock serial listing for fast existence
// checks. It is owned by a Service instance and invalidated after every
// successful stock mutation; it never observes writes from other processes
// until the next invalidation.
type SerialCache struct {
	src  SerialSource
	mode MatchMode

	mu      sync.Mutex
	serials map[string]struct{}
	loaded  bool
}

func NewSerialCache(src SerialSource, mode MatchMode) *SerialCache {
	return &SerialCache{src: src, mode: mode}
}

func (c *SerialCache) Exists(ctx context.Context, serial string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loaded {
		listed, err := c.src.ListStockSerials(ctx)
		if err != nil {
			return false, err
		}

		c.serials = make(map[string]struct{}, len(listed))
		for _, s := range listed {
			c.serials[Canonical(c.mode, s)] = struct{}{}
		}

		c.loaded = true
	}

	_, ok := c.serials[Canonical(c.mode, serial)]

	return ok, nil
}

// Invalidate drops the memoized listing. Calling it repeatedly between
// lookups costs nothing; the next Exists triggers exactly one re-fetch.
func (c *SerialCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.serials = nil
	c.loaded = false
}
