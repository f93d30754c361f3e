package services

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"production-board/internal/repositories"
)

// BaseService - общие помощники для сервисов, работающих с кешем.
type BaseService struct {
	cache  repositories.CacheRepositoryInterface
	logger *zap.Logger
}

func NewBaseService(cache repositories.CacheRepositoryInterface, logger *zap.Logger) *BaseService {
	return &BaseService{cache: cache, logger: logger}
}

// CacheGet получает данные из кеша и раскладывает JSON в dest.
func (s *BaseService) CacheGet(ctx context.Context, key string, dest interface{}) bool {
	cached, err := s.cache.Get(ctx, key)
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(cached), dest); err != nil {
		s.logger.Warn("Поврежденное значение в кеше", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// CacheSet сохраняет данные в кеш в виде JSON.
func (s *BaseService) CacheSet(ctx context.Context, key string, data interface{}, ttl time.Duration) error {
	serialized, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, key, serialized, ttl)
}

// CacheIncr - счетчик в кеше; ошибка только логируется.
func (s *BaseService) CacheIncr(ctx context.Context, key string) int64 {
	n, err := s.cache.Incr(ctx, key)
	if err != nil {
		s.logger.Warn("Не удалось увеличить счетчик в кеше", zap.String("key", key), zap.Error(err))
	}
	return n
}
