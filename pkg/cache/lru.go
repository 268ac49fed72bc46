package cache

import (
	"container/list"
	"sync"
)

type entry[K comparable, V any] struct {
	key   K
	value V
}

// LRU is a fixed-capacity map that drops the least recently used entry when full.
// It is safe for concurrent use.
type LRU[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	items    map[K]*list.Element
	order    *list.List // front = most recent
	onEvict  func(K, V)
}

// Option configures an LRU.
type Option[K comparable, V any] func(*LRU[K, V])

// WithOnEvict registers fn to run for every entry dropped by capacity
// pressure, Remove or Purge. fn runs after the cache lock is released.
func WithOnEvict[K comparable, V any](fn func(K, V)) Option[K, V] {
	return func(c *LRU[K, V]) {
		c.onEvict = fn
	}
}

// NewLRU creates a cache holding at most capacity entries. It panics if
// capacity is not positive.
func NewLRU[K comparable, V any](capacity int, opts ...Option[K, V]) *LRU[K, V] {
	if capacity <= 0 {
		panic("cache: LRU capacity must be positive")
	}
	c := &LRU[K, V]{
		capacity: capacity,
		items:    make(map[K]*list.Element, capacity),
		order:    list.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the value for key and marks it as recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		c.order.MoveToFront(el)
		return el.Value.(*entry[K, V]).value, true
	}
	var zero V
	return zero, false
}

// Put stores value under key, replacing any previous value without calling
// the evict callback for it.
func (c *LRU[K, V]) Put(key K, value V) {
	c.mu.Lock()
	if el, ok := c.items[key]; ok {
		c.order.MoveToFront(el)
		el.Value.(*entry[K, V]).value = value
		c.mu.Unlock()
		return
	}
	c.items[key] = c.order.PushFront(&entry[K, V]{key: key, value: value})
	evicted := c.trim()
	c.mu.Unlock()

	c.notify(evicted)
}

// GetOrCreate returns the value for key, creating it with create when absent.
// The second result reports whether the value was created. create runs under
// the cache lock and must not call back into the cache.
func (c *LRU[K, V]) GetOrCreate(key K, create func() V) (V, bool) {
	c.mu.Lock()
	if el, ok := c.items[key]; ok {
		c.order.MoveToFront(el)
		v := el.Value.(*entry[K, V]).value
		c.mu.Unlock()
		return v, false
	}
	v := create()
	c.items[key] = c.order.PushFront(&entry[K, V]{key: key, value: v})
	evicted := c.trim()
	c.mu.Unlock()

	c.notify(evicted)
	return v, true
}

// Remove deletes key and reports whether it was present.
func (c *LRU[K, V]) Remove(key K) bool {
	c.mu.Lock()
	el, ok := c.items[key]
	if !ok {
		c.mu.Unlock()
		return false
	}
	e := c.unlink(el)
	c.mu.Unlock()

	c.notify([]*entry[K, V]{e})
	return true
}

// Len returns the number of cached entries.
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Purge removes every entry.
func (c *LRU[K, V]) Purge() {
	c.mu.Lock()
	evicted := make([]*entry[K, V], 0, c.order.Len())
	for el := c.order.Back(); el != nil; el = c.order.Back() {
		evicted = append(evicted, c.unlink(el))
	}
	c.mu.Unlock()

	c.notify(evicted)
}

// trim drops entries past capacity. Caller holds the lock.
func (c *LRU[K, V]) trim() []*entry[K, V] {
	var evicted []*entry[K, V]
	for c.order.Len() > c.capacity {
		evicted = append(evicted, c.unlink(c.order.Back()))
	}
	return evicted
}

// unlink removes el from both indexes. Caller holds the lock.
func (c *LRU[K, V]) unlink(el *list.Element) *entry[K, V] {
	e := c.order.Remove(el).(*entry[K, V])
	delete(c.items, e.key)
	return e
}

func (c *LRU[K, V]) notify(evicted []*entry[K, V]) {
	if c.onEvict == nil {
		return
	}
	for _, e := range evicted {
		c.onEvict(e.key, e.value)
	}
}
