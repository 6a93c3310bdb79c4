package country

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	platformredis "regwise/internal/platform/redis"
	"regwise/internal/workflow"
)

const listCacheKey = "regwise:countries"

// CachedStore is a read-through Redis cache over a Store. Only the full list
// is cached; lookups and writes go straight to the backing store, and writes
// invalidate the cached list. Cache failures degrade to direct reads.
type CachedStore struct {
	Store
	redis  *platformredis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewCachedStore(store Store, redis *platformredis.Client, ttl time.Duration, logger *slog.Logger) *CachedStore {
	return &CachedStore{Store: store, redis: redis, ttl: ttl, logger: logger}
}

func (s *CachedStore) List(ctx context.Context) ([]Country, error) {
	if cached, err := s.redis.Get(ctx, listCacheKey).Bytes(); err == nil {
		var countries []Country
		if err := json.Unmarshal(cached, &countries); err == nil {
			return countries, nil
		}
	}

	countries, err := s.Store.List(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(countries); err == nil {
		if err := s.redis.Set(ctx, listCacheKey, payload, s.ttl).Err(); err != nil {
			s.logger.WarnContext(ctx, "country list cache write failed", "error", err)
		}
	}
	return countries, nil
}

func (s *CachedStore) ReplaceOnboarding(ctx context.Context, key string, steps []workflow.Step) (*Country, error) {
	c, err := s.Store.ReplaceOnboarding(ctx, key, steps)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return c, nil
}

func (s *CachedStore) Upsert(ctx context.Context, c Country) error {
	if err := s.Store.Upsert(ctx, c); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *CachedStore) invalidate(ctx context.Context) {
	if err := s.redis.Del(ctx, listCacheKey).Err(); err != nil {
		s.logger.WarnContext(ctx, "country list cache invalidation failed", "error", err)
	}
}
