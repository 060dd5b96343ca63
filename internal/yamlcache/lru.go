package yamlcache

import "container/list"

type lruEntry struct {
	key   string
	value any
}

// lru is a small least-recently-used cache keyed by path string.
//
// The build pipeline is single-threaded (see the concurrency model in the
// top-level docs), so no locking is needed here; the Loader's read counter
// is atomic only so tests can poke it from helper goroutines safely.
type lru struct {
	maxSize int
	items   map[string]*list.Element
	order   *list.List // most recently used at the front
}

func newLRU(maxSize int) *lru {
	if maxSize <= 0 {
		maxSize = 1
	}
	return &lru{
		maxSize: maxSize,
		items:   make(map[string]*list.Element),
		order:   list.New(),
	}
}

func (c *lru) get(key string) (any, bool) {
	element, exists := c.items[key]
	if !exists {
		return nil, false
	}
	c.order.MoveToFront(element)
	return element.Value.(*lruEntry).value, true
}

func (c *lru) put(key string, value any) {
	if element, exists := c.items[key]; exists {
		element.Value.(*lruEntry).value = value
		c.order.MoveToFront(element)
		return
	}

	element := c.order.PushFront(&lruEntry{key: key, value: value})
	c.items[key] = element

	if len(c.items) > c.maxSize {
		c.evictOldest()
	}
}

func (c *lru) evictOldest() {
	element := c.order.Back()
	if element == nil {
		return
	}
	entry := element.Value.(*lruEntry)
	delete(c.items, entry.key)
	c.order.Remove(element)
}

func (c *lru) size() int {
	return len(c.items)
}
