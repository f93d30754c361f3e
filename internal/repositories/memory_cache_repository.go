package repositories

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"
)

type memoryItem struct {
	value     string
	expiresAt time.Time
}

// MemoryCacheRepository - кеш в памяти процесса, когда Redis выключен.
type MemoryCacheRepository struct {
	mu    sync.RWMutex
	items map[string]memoryItem
	now   func() time.Time
}

func NewMemoryCacheRepository() CacheRepositoryInterface {
	return &MemoryCacheRepository{items: make(map[string]memoryItem), now: time.Now}
}

func (r *MemoryCacheRepository) Get(_ context.Context, key string) (string, error) {
	r.mu.RLock()
	item, ok := r.items[key]
	r.mu.RUnlock()
	if !ok || r.expired(item) {
		return "", ErrCacheMiss
	}
	return item.value, nil
}

// Set хранит значение как строку, так же как Redis. expiration 0 - без срока.
func (r *MemoryCacheRepository) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		s = fmt.Sprint(v)
	}

	item := memoryItem{value: s}
	if expiration > 0 {
		item.expiresAt = r.now().Add(expiration)
	}

	r.mu.Lock()
	r.items[key] = item
	r.mu.Unlock()
	return nil
}

func (r *MemoryCacheRepository) Del(_ context.Context, keys ...string) error {
	r.mu.Lock()
	for _, k := range keys {
		delete(r.items, k)
	}
	r.mu.Unlock()
	return nil
}

func (r *MemoryCacheRepository) Incr(_ context.Context, key string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	if item, ok := r.items[key]; ok && !r.expired(item) {
		parsed, err := strconv.ParseInt(item.value, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("значение ключа %s не является числом", key)
		}
		n = parsed
	}
	n++
	r.items[key] = memoryItem{value: strconv.FormatInt(n, 10)}
	return n, nil
}

func (r *MemoryCacheRepository) expired(item memoryItem) bool {
	return !item.expiresAt.IsZero() && r.now().After(item.expiresAt)
}
