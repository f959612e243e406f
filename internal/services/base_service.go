package services

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"backoffice/internal/repositories"
	"backoffice/pkg/utils"
)

type BaseService struct {
	cache  repositories.CacheRepositoryInterface
	logger *zap.Logger
}

func NewBaseService(cache repositories.CacheRepositoryInterface, logger *zap.Logger) *BaseService {
	return &BaseService{cache: cache, logger: logger}
}

// CacheGet достаёт JSON из кеша. false - промах или битые данные.
func (s *BaseService) CacheGet(ctx context.Context, key string, dest interface{}) bool {
	if s.cache == nil {
		return false
	}
	cached, err := s.cache.Get(ctx, key)
	if err != nil {
		return false
	}
	if err := json.Unmarshal(cached, dest); err != nil {
		s.logger.Warn("Битые данные в кеше", zap.String("key", key), zap.Error(err))
		return false
	}
	s.logger.Debug("Данные получены из кеша", zap.String("key", key))
	return true
}

func (s *BaseService) CacheSet(ctx context.Context, key string, data interface{}, ttl time.Duration) {
	if s.cache == nil {
		return
	}
	serialized, err := json.Marshal(data)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, serialized, ttl); err != nil {
		s.logger.Warn("Не удалось записать в кеш", zap.String("key", key), zap.Error(err))
	}
}

func (s *BaseService) CacheDel(ctx context.Context, keys ...string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, keys...); err != nil {
		s.logger.Warn("Не удалось очистить кеш", zap.Strings("keys", keys), zap.Error(err))
	}
}

// CacheDelPrefix - сброс группы ключей, например последних страниц списка у всех пользователей.
func (s *BaseService) CacheDelPrefix(ctx context.Context, prefix string) {
	if s.cache == nil {
		return
	}
	n, err := s.cache.DelPrefix(ctx, prefix)
	if err != nil {
		s.logger.Warn("Не удалось очистить кеш по префиксу", zap.String("prefix", prefix), zap.Error(err))
		return
	}
	s.logger.Debug("Кеш очищен по префиксу", zap.String("prefix", prefix), zap.Int("keys", n))
}

// Actor - ключ пользователя и id запроса для журнала.
func (s *BaseService) Actor(ctx context.Context) (user, requestID string) {
	user, _ = utils.GetUserFromCtx(ctx)
	requestID = utils.GetRequestIDFromCtx(ctx)
	return user, requestID
}
