package fuzzy

import (
	"container/list"
	"strings"
	"sync"
)

// Cache memoizes Rank results per query over a fixed candidate set. It is
// safe for concurrent use. Queries differing only in case or surrounding
// whitespace share an entry.
type Cache struct {
	mu         sync.Mutex
	candidates []string
	limit      int
	maxSize    int
	items      map[string]*list.Element
	lru        *list.List
}

// cacheEntry holds one cached query result.
type cacheEntry struct {
	query   string
	matches []Match
}

// NewCache creates a Cache over candidates. limit bounds each result as in
// Rank; maxSize <= 0 selects a default capacity.
func NewCache(candidates []string, limit, maxSize int) *Cache {
	if maxSize <= 0 {
		maxSize = 64
	}
	return &Cache{
		candidates: candidates,
		limit:      limit,
		maxSize:    maxSize,
		items:      make(map[string]*list.Element),
		lru:        list.New(),
	}
}

// Rank returns the scored matches for query, computing and caching them on
// first use.
func (c *Cache) Rank(query string) []Match {
	key := strings.TrimSpace(strings.ToLower(query))

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.lru.MoveToFront(elem)
		entry := elem.Value.(*cacheEntry)
		return copyMatches(entry.matches)
	}

	matches := Rank(query, c.candidates, c.limit)

	c.items[key] = c.lru.PushFront(&cacheEntry{query: key, matches: matches})
	for c.lru.Len() > c.maxSize {
		oldest := c.lru.Back()
		c.lru.Remove(oldest)
		delete(c.items, oldest.Value.(*cacheEntry).query)
	}

	return copyMatches(matches)
}

func copyMatches(matches []Match) []Match {
	out := make([]Match, len(matches))
	copy(out, matches)
	return out
}
