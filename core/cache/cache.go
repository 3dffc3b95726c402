package cache

import (
	"sync"
	"time"
)

// Cache is a thread-safe in-process key-value store with per-entry TTL and tag
// based invalidation.
type Cache struct {
	m sync.Map
	// tagIndex maps tag -> *sync.Map of keys
	tagIndex sync.Map
}

var (
	once     sync.Once
	instance *Cache
)

func GetInstance() *Cache {
	once.Do(func() {
		instance = NewCache()
	})
	return instance
}

// NewCache creates a new Cache instance.
func NewCache() *Cache {
	return &Cache{}
}

// cacheItem holds a value and its expiration time.
type cacheItem struct {
	Value     interface{}
	ExpiresAt int64 // Unix nanoseconds; 0 means no expiration
}

// Set stores a value for key. A zero ttl never expires.
func (c *Cache) Set(key string, value interface{}, ttl time.Duration, tags []string) {
	var expiresAt int64
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl).UnixNano()
	}
	c.m.Store(key, cacheItem{Value: value, ExpiresAt: expiresAt})
	if len(tags) > 0 {
		c.TagKey(key, tags)
	}
}

// Get returns (value, true) if key is present and not expired.
func (c *Cache) Get(key string) (interface{}, bool) {
	v, ok := c.m.Load(key)
	if !ok {
		return nil, false
	}
	item := v.(cacheItem)
	if item.ExpiresAt > 0 && time.Now().UnixNano() > item.ExpiresAt {
		c.Delete(key)
		return nil, false
	}
	return item.Value, true
}

// GetOrDefault returns the cached value for key, or defaultValue.
func (c *Cache) GetOrDefault(key string, defaultValue interface{}) interface{} {
	if v, ok := c.Get(key); ok {
		return v
	}
	return defaultValue
}

// Delete removes key and its tag memberships.
func (c *Cache) Delete(key string) {
	c.m.Delete(key)
	c.tagIndex.Range(func(_, val interface{}) bool {
		val.(*sync.Map).Delete(key)
		return true
	})
}

// DeleteMany removes multiple keys from the cache.
func (c *Cache) DeleteMany(keys ...string) {
	for _, key := range keys {
		c.Delete(key)
	}
}

// TagKey assigns one or more tags to a cache key.
func (c *Cache) TagKey(key string, tags []string) {
	for _, tag := range tags {
		val, _ := c.tagIndex.LoadOrStore(tag, &sync.Map{})
		val.(*sync.Map).Store(key, struct{}{})
	}
}

// GetKeysByTag returns all keys assigned to a tag.
func (c *Cache) GetKeysByTag(tag string) []string {
	var keys []string
	if val, ok := c.tagIndex.Load(tag); ok {
		val.(*sync.Map).Range(func(key, _ interface{}) bool {
			keys = append(keys, key.(string))
			return true
		})
	}
	return keys
}

// DeleteByTag deletes every entry assigned to tag and returns how many keys it dropped.
func (c *Cache) DeleteByTag(tag string) int {
	val, ok := c.tagIndex.LoadAndDelete(tag)
	if !ok {
		return 0
	}
	n := 0
	val.(*sync.Map).Range(func(key, _ interface{}) bool {
		c.m.Delete(key)
		n++
		return true
	})
	return n
}

// Purge drops expired entries.
func (c *Cache) Purge() {
	now := time.Now().UnixNano()
	c.m.Range(func(key, v interface{}) bool {
		if item := v.(cacheItem); item.ExpiresAt > 0 && now > item.ExpiresAt {
			c.Delete(key.(string))
		}
		return true
	})
}

// Flush drops every entry.
func (c *Cache) Flush() {
	c.m.Range(func(key, _ interface{}) bool {
		c.Delete(key.(string))
		return true
	})
}
