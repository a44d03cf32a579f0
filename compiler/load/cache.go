package load

import (
	"fmt"
	"os"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/syssam/structgen/schema"
)

// DefaultCacheSize is the number of graphs a Cache keeps by default.
const DefaultCacheSize = 32

type cacheKey struct {
	path    string
	size    int64
	modTime time.Time
}

// Cache memoizes decoded graph files. An entry is reused while the file
// keeps its size and modification time. The returned node slices are
// shared between callers and must not be modified.
type Cache struct {
	entries *lru.Cache[cacheKey, []schema.Node]
}

// NewCache returns a cache holding at most size graphs.
func NewCache(size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	entries, err := lru.New[cacheKey, []schema.Node](size)
	if err != nil {
		return nil, fmt.Errorf("create cache: %w", err)
	}
	return &Cache{entries: entries}, nil
}

// File returns the decoded graph at path, reading it only when the file
// changed since the last call.
func (c *Cache) File(path string) ([]schema.Node, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat schema: %w", err)
	}
	key := cacheKey{path: path, size: info.Size(), modTime: info.ModTime()}
	if nodes, ok := c.entries.Get(key); ok {
		return nodes, nil
	}
	nodes, err := File(path)
	if err != nil {
		return nil, err
	}
	c.entries.Add(key, nodes)
	return nodes, nil
}

// Len returns the number of cached graphs.
func (c *Cache) Len() int { return c.entries.Len() }

// Purge drops every cached graph.
func (c *Cache) Purge() { c.entries.Purge() }
