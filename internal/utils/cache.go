package utils

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// cacheItem 包装实际的数据，增加过期时间
type cacheItem[T any] struct {
	Value     T
	ExpiredAt time.Time
}

// SearchCache 搜索结果缓存，容量受限 + 按时间过期
type SearchCache[T any] struct {
	storage *lru.Cache[string, cacheItem[T]]
	ttl     time.Duration
}

// NewSearchCache 初始化，size 是最大缓存条数，ttl 是数据有效期
func NewSearchCache[T any](size int, ttl time.Duration) *SearchCache[T] {
	// lru.New 是线程安全的
	c, _ := lru.New[string, cacheItem[T]](size)
	return &SearchCache[T]{
		storage: c,
		ttl:     ttl,
	}
}

// Set 写入缓存（LRU 中 Add 会自动处理更新）
func (c *SearchCache[T]) Set(key string, value T) {
	c.storage.Add(key, cacheItem[T]{
		Value:     value,
		ExpiredAt: time.Now().Add(c.ttl),
	})
}

// Get 读取缓存，过期条目顺手删除
func (c *SearchCache[T]) Get(key string) (T, bool) {
	var zero T
	item, ok := c.storage.Get(key)
	if !ok {
		return zero, false
	}
	if time.Now().After(item.ExpiredAt) {
		c.storage.Remove(key)
		return zero, false
	}
	return item.Value, true
}

// Clear 清空所有缓存
func (c *SearchCache[T]) Clear() {
	c.storage.Purge()
}

// Len 获取当前缓存条数
func (c *SearchCache[T]) Len() int {
	return c.storage.Len()
}
