package letters

import (
	"fmt"
	"sync"
	"time"
)

// Cache is a thread-safe LRU cache of converted letter text.
// Entries are keyed by path, size and modification time so a rewritten
// file never serves stale text.
type Cache struct {
	mutex    sync.RWMutex
	capacity int
	items    map[string]*cacheNode
	head     *cacheNode // Most recently used
	tail     *cacheNode // Least recently used
	hits     int64
	misses   int64
}

// cachedLetter holds the converted text for one letter file
type cachedLetter struct {
	content   string
	strategy  string
	charCount int
	truncated bool
}

// cacheNode represents a node in the doubly-linked list
type cacheNode struct {
	key   string
	value cachedLetter
	prev  *cacheNode
	next  *cacheNode
}

// NewCache creates a new letter cache with the specified capacity
func NewCache(capacity int) *Cache {
	if capacity <= 0 {
		capacity = 128 // Default capacity
	}

	cache := &Cache{
		capacity: capacity,
		items:    make(map[string]*cacheNode),
	}

	// Initialize dummy head and tail nodes
	cache.head = &cacheNode{}
	cache.tail = &cacheNode{}
	cache.head.next = cache.tail
	cache.tail.prev = cache.head

	return cache
}

// cacheKey builds a cache key from a file's identity and version
func cacheKey(path string, size int64, modTime time.Time) string {
	return fmt.Sprintf("%s|%d|%d", path, size, modTime.UnixNano())
}

// Get retrieves an entry from the cache and marks it as recently used
func (c *Cache) Get(key string) (cachedLetter, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if node, exists := c.items[key]; exists {
		// Move to front (most recently used)
		c.moveToFront(node)
		c.hits++
		return node.value, true
	}

	c.misses++
	return cachedLetter{}, false
}

// Put adds or updates an entry in the cache
func (c *Cache) Put(key string, value cachedLetter) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if node, exists := c.items[key]; exists {
		// Update existing node
		node.value = value
		c.moveToFront(node)
		return
	}

	// Create new node
	newNode := &cacheNode{
		key:   key,
		value: value,
	}

	// Add to front
	c.addToFront(newNode)
	c.items[key] = newNode

	// Check capacity and evict if necessary
	if len(c.items) > c.capacity {
		c.evictLRU()
	}
}

// Clear removes all items from the cache
func (c *Cache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.items = make(map[string]*cacheNode)
	c.head.next = c.tail
	c.tail.prev = c.head
	c.hits = 0
	c.misses = 0
}

// Len returns the current number of items in the cache
func (c *Cache) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.items)
}

// Capacity returns the maximum capacity of the cache
func (c *Cache) Capacity() int {
	return c.capacity
}

// Stats returns cache statistics
func (c *Cache) Stats() CacheStats {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	total := c.hits + c.misses
	hitRate := float64(0)
	if total > 0 {
		hitRate = float64(c.hits) / float64(total) * 100
	}

	return CacheStats{
		Hits:     c.hits,
		Misses:   c.misses,
		HitRate:  hitRate,
		Size:     len(c.items),
		Capacity: c.capacity,
	}
}

// Internal helper methods

// moveToFront moves a node to the front of the list (most recently used)
func (c *Cache) moveToFront(node *cacheNode) {
	c.removeNode(node)
	c.addToFront(node)
}

// addToFront adds a node right after the head (most recently used position)
func (c *Cache) addToFront(node *cacheNode) {
	node.prev = c.head
	node.next = c.head.next
	c.head.next.prev = node
	c.head.next = node
}

// removeNode removes a node from the doubly-linked list
func (c *Cache) removeNode(node *cacheNode) {
	node.prev.next = node.next
	node.next.prev = node.prev
}

// evictLRU removes the least recently used item
func (c *Cache) evictLRU() {
	lru := c.tail.prev
	if lru != c.head {
		c.removeNode(lru)
		delete(c.items, lru.key)
	}
}

// CacheStats provides statistics about cache performance
type CacheStats struct {
	Hits     int64   `json:"hits"`
	Misses   int64   `json:"misses"`
	HitRate  float64 `json:"hit_rate_percent"`
	Size     int     `json:"current_size"`
	Capacity int     `json:"max_capacity"`
}
