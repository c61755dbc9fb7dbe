package user

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const cacheKeyPrefix = "users:"

// CachingService is a read-through cache in front of another user Service.
// User records are small and looked up on nearly every request (item, booking
// and request handlers all resolve the acting user), so cache hits skip the
// most frequent query in the system. Redis failures are logged, never returned.
type cachingService struct {
	Service

	rdb *redis.Client
	ttl time.Duration
	log *zap.Logger
}

// NewCachingService wraps inner with a redis read-through cache for GetByID.
func NewCachingService(inner Service, rdb *redis.Client, ttl time.Duration, log *zap.Logger) Service {
	return &cachingService{
		Service: inner,
		rdb:     rdb,
		ttl:     ttl,
		log:     log,
	}
}

func (s *cachingService) GetByID(ctx context.Context, id int64) (*User, error) {
	key := cacheKey(id)

	val, err := s.rdb.Get(ctx, key).Bytes()
	switch {
	case err == redis.Nil:
		// cache miss, fall through to the inner service
	case err != nil:
		s.log.Warn("user cache get failed", zap.Int64("user_id", id), zap.Error(err))
	default:
		var u User
		if err := json.Unmarshal(val, &u); err == nil {
			return &u, nil
		}
		s.log.Warn("user cache entry corrupt", zap.Int64("user_id", id), zap.Error(err))
	}

	u, err := s.Service.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(u); err == nil {
		if err := s.rdb.Set(ctx, key, data, s.ttl).Err(); err != nil {
			s.log.Warn("user cache set failed", zap.Int64("user_id", id), zap.Error(err))
		}
	}

	return u, nil
}

func (s *cachingService) Update(ctx context.Context, id int64, req UpdateRequest) (*User, error) {
	u, err := s.Service.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	return u, nil
}

func (s *cachingService) Delete(ctx context.Context, id int64) error {
	if err := s.Service.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *cachingService) invalidate(ctx context.Context, id int64) {
	if err := s.rdb.Del(ctx, cacheKey(id)).Err(); err != nil {
		s.log.Warn("user cache invalidation failed", zap.Int64("user_id", id), zap.Error(err))
	}
}

func cacheKey(id int64) string {
	return cacheKeyPrefix + strconv.FormatInt(id, 10)
}
