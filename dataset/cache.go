package dataset

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
	"hermannm.dev/devlog/log"
)

// Process-wide dataset cache, keyed by the URL the dataset was fetched from. Entries are never
// invalidated: the first load of a URL, successful or not, is the result for every later Get of
// that URL.
type Cache struct {
	loader Loader

	lock    sync.RWMutex
	entries map[string]cacheEntry
	loads   singleflight.Group
}

type cacheEntry struct {
	dataset *Dataset
	err     error
}

func NewCache(loader Loader) *Cache {
	return &Cache{loader: loader, entries: make(map[string]cacheEntry)}
}

// Loads the dataset at the given URL if it has not been loaded before. Concurrent callers share
// a single load.
//
// Cancelling ctx stops the caller from waiting, but not the load itself, so that one abandoned
// request does not fail the dataset for everyone.
func (cache *Cache) Get(ctx context.Context, url string) (*Dataset, error) {
	if entry, ok := cache.lookup(url); ok {
		return entry.dataset, entry.err
	}

	resultChannel := cache.loads.DoChan(url, func() (any, error) {
		if entry, ok := cache.lookup(url); ok {
			return entry.dataset, entry.err
		}

		log.Infof("Fetching dataset from '%s'...", url)
		dataset, err := cache.loader.Load(context.WithoutCancel(ctx), url)
		if err != nil {
			fetchCount.WithLabelValues(fetchResultFailure).Inc()
		} else {
			fetchCount.WithLabelValues(fetchResultSuccess).Inc()
			loadedRows.Set(float64(dataset.Len()))
		}

		cache.lock.Lock()
		cache.entries[url] = cacheEntry{dataset: dataset, err: err}
		cache.lock.Unlock()

		return dataset, err
	})

	select {
	case result := <-resultChannel:
		if result.Err != nil {
			return nil, result.Err
		}
		return result.Val.(*Dataset), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Returns the cached result for the URL without loading. ok is false if the URL has not been
// loaded yet.
func (cache *Cache) Peek(url string) (dataset *Dataset, ok bool, err error) {
	entry, ok := cache.lookup(url)
	return entry.dataset, ok, entry.err
}

func (cache *Cache) lookup(url string) (entry cacheEntry, ok bool) {
	cache.lock.RLock()
	defer cache.lock.RUnlock()

	entry, ok = cache.entries[url]
	return entry, ok
}
