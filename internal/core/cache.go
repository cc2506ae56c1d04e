package core

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"ner-explorer/internal/core/utils"

	"github.com/google/uuid"
)

const maxConcurrentLoads = 64

type cacheKey struct {
	path    string
	maxDocs int
}

func (k cacheKey) lockKey() string {
	return fmt.Sprintf("%s#%d", k.path, k.maxDocs)
}

type CacheEntry struct {
	Corpus     *Corpus
	Generation uuid.UUID
	LoadedAt   time.Time
}

// CacheObserver is notified about cache lookups and completed loads.
type CacheObserver interface {
	CacheLookup(hit bool)
	CorpusLoaded(path string, stats Stats, duration time.Duration)
}

// CorpusCache loads each (path, maxDocs) pair once and serves the loaded
// corpus until it is invalidated. Concurrent requests for the same key wait
// for a single load.
type CorpusCache struct {
	loader   *Loader
	observer CacheObserver

	mu      sync.RWMutex
	entries map[cacheKey]*CacheEntry
	loading *utils.MutexMap
}

func NewCorpusCache(loader *Loader, observer CacheObserver) *CorpusCache {
	return &CorpusCache{
		loader:   loader,
		observer: observer,
		entries:  make(map[cacheKey]*CacheEntry),
		loading:  utils.NewMutexMap(maxConcurrentLoads),
	}
}

func (c *CorpusCache) lookup(key cacheKey) (*CacheEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[key]
	return entry, ok
}

func (c *CorpusCache) Get(ctx context.Context, path string, maxDocs int) (*CacheEntry, error) {
	key := cacheKey{path: path, maxDocs: max(0, maxDocs)}

	if entry, ok := c.lookup(key); ok {
		c.reportLookup(true)
		return entry, nil
	}

	lockKey := key.lockKey()
	if err := c.loading.Lock(lockKey); err != nil {
		return nil, fmt.Errorf("error waiting to load %s: %w", path, err)
	}
	defer c.loading.Unlock(lockKey) //nolint:errcheck

	// another caller may have finished loading while we waited
	if entry, ok := c.lookup(key); ok {
		c.reportLookup(true)
		return entry, nil
	}
	c.reportLookup(false)

	return c.load(ctx, key)
}

// Reload drops every cached corpus loaded from path and loads the
// (path, maxDocs) entry again. It holds the same per-key lock as Get, so a
// concurrent Get either returns the entry Reload stores or waits for it.
func (c *CorpusCache) Reload(ctx context.Context, path string, maxDocs int) (*CacheEntry, error) {
	key := cacheKey{path: path, maxDocs: max(0, maxDocs)}

	lockKey := key.lockKey()
	if err := c.loading.Lock(lockKey); err != nil {
		return nil, fmt.Errorf("error waiting to load %s: %w", path, err)
	}
	defer c.loading.Unlock(lockKey) //nolint:errcheck

	c.Invalidate(path)
	return c.load(ctx, key)
}

// load must be called with the loading lock for key held.
func (c *CorpusCache) load(ctx context.Context, key cacheKey) (*CacheEntry, error) {
	start := time.Now()
	corpus, err := c.loader.Load(ctx, key.path, key.maxDocs)
	if err != nil {
		return nil, err
	}

	entry := &CacheEntry{Corpus: corpus, Generation: uuid.New(), LoadedAt: time.Now()}
	if c.observer != nil {
		c.observer.CorpusLoaded(key.path, corpus.Stats, time.Since(start))
	}

	c.mu.Lock()
	c.entries[key] = entry
	c.mu.Unlock()

	slog.Info("cached corpus", "path", key.path, "max_docs", key.maxDocs, "generation", entry.Generation)
	return entry, nil
}

// Invalidate drops every cached corpus loaded from path.
func (c *CorpusCache) Invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if key.path == path {
			delete(c.entries, key)
		}
	}
	slog.Info("invalidated cached corpus", "path", path)
}

func (c *CorpusCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[cacheKey]*CacheEntry)
}

func (c *CorpusCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *CorpusCache) reportLookup(hit bool) {
	if c.observer != nil {
		c.observer.CacheLookup(hit)
	}
}
