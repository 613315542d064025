package store

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru"

	"contactpsi/internal/domain"
)

// CachingStore fronts another SessionStore with an ARC cache. Writes go
// through to the backing store before the cache is updated.
type CachingStore struct {
	backing domain.SessionStore
	cache   *lru.ARCCache
}

// NewCachingStore wraps backing with a cache holding up to size records.
func NewCachingStore(backing domain.SessionStore, size int) (*CachingStore, error) {
	cache, err := lru.NewARC(size)
	if err != nil {
		return nil, fmt.Errorf("session cache: %w", err)
	}
	return &CachingStore{backing: backing, cache: cache}, nil
}

// Get serves from cache when possible.
func (c *CachingStore) Get(ctx context.Context, id domain.SessionID) (domain.SessionRecord, error) {
	if v, ok := c.cache.Get(id); ok {
		if err := ctx.Err(); err != nil {
			return domain.SessionRecord{}, err
		}
		return cloneRecord(v.(domain.SessionRecord)), nil
	}
	rec, err := c.backing.Get(ctx, id)
	if err != nil {
		return domain.SessionRecord{}, err
	}
	c.cache.Add(id, cloneRecord(rec))
	return rec, nil
}

// Put writes through and refreshes the cached copy.
func (c *CachingStore) Put(ctx context.Context, rec domain.SessionRecord) error {
	if err := c.backing.Put(ctx, rec); err != nil {
		c.cache.Remove(rec.Meta.ID)
		return err
	}
	c.cache.Add(rec.Meta.ID, cloneRecord(rec))
	return nil
}

// Cache exposes the underlying cache.
func (c *CachingStore) Cache() *lru.ARCCache { return c.cache }

// Close closes the backing store.
func (c *CachingStore) Close() error {
	c.cache.Purge()
	return c.backing.Close()
}

var _ domain.SessionStore = (*CachingStore)(nil)
