package core

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingObserver struct {
	mu     sync.Mutex
	hits   int
	misses int
	loads  int
}

func (o *countingObserver) CacheLookup(hit bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if hit {
		o.hits++
	} else {
		o.misses++
	}
}

func (o *countingObserver) CorpusLoaded(path string, stats Stats, duration time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.loads++
}

func TestCorpusCache_LoadsOnce(t *testing.T) {
	path := corpusFile(t, []string{"John B-PER"})
	observer := &countingObserver{}
	cache := NewCorpusCache(NewLoader(LoaderOptions{}), observer)

	first, err := cache.Get(context.Background(), path, 0)
	require.NoError(t, err)
	second, err := cache.Get(context.Background(), path, 0)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, observer.loads)
	assert.Equal(t, 1, observer.hits)
	assert.Equal(t, 1, observer.misses)
}

func TestCorpusCache_KeyedByMaxDocs(t *testing.T) {
	path := corpusFile(t, []string{"a B-X"}, []string{"b B-X"})
	cache := NewCorpusCache(NewLoader(LoaderOptions{}), nil)

	all, err := cache.Get(context.Background(), path, 0)
	require.NoError(t, err)
	one, err := cache.Get(context.Background(), path, 1)
	require.NoError(t, err)

	assert.Equal(t, 2, all.Corpus.Stats.DocCount)
	assert.Equal(t, 1, one.Corpus.Stats.DocCount)
	assert.Equal(t, 2, cache.Len())
}

func TestCorpusCache_Invalidate(t *testing.T) {
	path := corpusFile(t, []string{"a B-X"})
	cache := NewCorpusCache(NewLoader(LoaderOptions{}), nil)

	first, err := cache.Get(context.Background(), path, 0)
	require.NoError(t, err)
	_, err = cache.Get(context.Background(), path, 5)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("a\t_\t_\tB-X\n\nb\t_\t_\tB-Y\n"), 0644))

	cached, err := cache.Get(context.Background(), path, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, cached.Corpus.Stats.DocCount, "served from cache until invalidated")

	cache.Invalidate(path)
	assert.Equal(t, 0, cache.Len())

	reloaded, err := cache.Get(context.Background(), path, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.Corpus.Stats.DocCount)
	assert.NotEqual(t, first.Generation, reloaded.Generation)

	cache.InvalidateAll()
	assert.Equal(t, 0, cache.Len())
}

func TestCorpusCache_ConcurrentGet(t *testing.T) {
	path := corpusFile(t, []string{"a B-X"})
	observer := &countingObserver{}
	cache := NewCorpusCache(NewLoader(LoaderOptions{}), observer)

	var wg sync.WaitGroup
	entries := make([]*CacheEntry, 8)
	for i := range entries {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			entry, err := cache.Get(context.Background(), path, 0)
			assert.NoError(t, err)
			entries[i] = entry
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, observer.loads)
	for _, entry := range entries {
		assert.Same(t, entries[0], entry)
	}
}

func TestCorpusCache_ErrorNotCached(t *testing.T) {
	path := corpusFile(t, []string{"a B-X"})
	require.NoError(t, os.Remove(path))

	cache := NewCorpusCache(NewLoader(LoaderOptions{}), nil)
	_, err := cache.Get(context.Background(), path, 0)
	assert.Error(t, err)
	assert.Equal(t, 0, cache.Len())
}

func TestCorpusCache_Reload(t *testing.T) {
	path := corpusFile(t, []string{"a B-X"})
	observer := &countingObserver{}
	cache := NewCorpusCache(NewLoader(LoaderOptions{}), observer)

	first, err := cache.Get(context.Background(), path, 0)
	require.NoError(t, err)
	_, err = cache.Get(context.Background(), path, 1)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("a\t_\t_\tB-X\n\nb\t_\t_\tB-Y\n"), 0644))

	reloaded, err := cache.Reload(context.Background(), path, 0)
	require.NoError(t, err)
	assert.NotEqual(t, first.Generation, reloaded.Generation)
	assert.Equal(t, 2, reloaded.Corpus.Stats.DocCount)
	assert.Equal(t, 1, cache.Len(), "entries for other limits are dropped")

	after, err := cache.Get(context.Background(), path, 0)
	require.NoError(t, err)
	assert.Same(t, reloaded, after)
	assert.Equal(t, 3, observer.loads)
}

func TestCorpusCache_ReloadDuringGets(t *testing.T) {
	path := corpusFile(t, []string{"a B-X"})
	cache := NewCorpusCache(NewLoader(LoaderOptions{}), nil)

	first, err := cache.Get(context.Background(), path, 0)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				_, err := cache.Get(context.Background(), path, 0)
				assert.NoError(t, err)
			}
		}()
	}

	reloaded, err := cache.Reload(context.Background(), path, 0)
	require.NoError(t, err)
	wg.Wait()

	after, err := cache.Get(context.Background(), path, 0)
	require.NoError(t, err)
	assert.NotEqual(t, first.Generation, reloaded.Generation)
	assert.Same(t, reloaded, after, "gets racing a reload never replace its entry")
	assert.Equal(t, 1, cache.Len())
}
