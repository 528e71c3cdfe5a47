package collections

import lru "github.com/hashicorp/golang-lru/v2"

// LruCache wraps the underlying LRU dependency behind our own type so that
// swapping the implementation later only touches this file.

type LruCache[K comparable, V any] struct {
	underlyingCache *lru.Cache[K, V]
}

func NewLruCache[K comparable, V any](maxSize int) (*LruCache[K, V], error) {
	underlyingCache, err := lru.New[K, V](maxSize)
	if err != nil {
		return nil, err
	}
	return &LruCache[K, V]{underlyingCache}, nil
}

func (lruCache *LruCache[K, V]) Put(key K, value V) {
	lruCache.underlyingCache.Add(key, value)
}

func (lruCache *LruCache[K, V]) Get(key K) (V, bool) {
	return lruCache.underlyingCache.Get(key)
}

func (lruCache *LruCache[K, V]) Exists(key K) bool {
	return lruCache.underlyingCache.Contains(key)
}

func (lruCache *LruCache[K, V]) Delete(key K) {
	lruCache.underlyingCache.Remove(key)
}

func (lruCache *LruCache[K, V]) Purge() {
	lruCache.underlyingCache.Purge()
}

func (lruCache *LruCache[K, V]) Keys() []K {
	return lruCache.underlyingCache.Keys()
}
