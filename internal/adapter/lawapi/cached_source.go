package lawapi

import (
	"context"
	"errors"
	"time"

	"law-quiz/internal/adapter"
	"law-quiz/internal/cache"
	"law-quiz/internal/domain"
	"law-quiz/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// CachedSource wraps a StatuteSource with a read-through cache. Statute
// text changes rarely, so articles are kept for the configured TTL.
type CachedSource struct {
	next    domain.StatuteSource
	cache   domain.Cache
	ttl     time.Duration
	sfGroup singleflight.Group
}

func NewCachedSource(next domain.StatuteSource, c domain.Cache, ttl time.Duration) *CachedSource {
	return &CachedSource{next: next, cache: c, ttl: ttl}
}

func articlesCacheKey(statuteID string) string {
	return cache.GenerateCacheKey("lawapi", "articles", statuteID)
}

// FetchArticles implements domain.StatuteSource.
func (s *CachedSource) FetchArticles(ctx context.Context, statuteID string) []domain.Article {
	l := logger.Get().With(zap.String("statuteID", statuteID))
	key := articlesCacheKey(statuteID)

	cached, err := adapter.GetJSON[[]domain.Article](ctx, s.cache, key)
	if err == nil && len(cached) > 0 {
		l.Debug("Statute articles cache hit", zap.Int("count", len(cached)))
		return cached
	}
	if err != nil && !errors.Is(err, domain.ErrCacheMiss) {
		l.Warn("Statute articles cache read failed", zap.Error(err))
	}

	res, _, _ := s.sfGroup.Do(key, func() (interface{}, error) {
		articles := s.next.FetchArticles(ctx, statuteID)
		if len(articles) == 0 {
			return articles, nil
		}
		if err := adapter.SetJSON(ctx, s.cache, key, articles, s.ttl); err != nil {
			l.Warn("Statute articles cache write failed", zap.Error(err))
		}
		return articles, nil
	})

	articles, _ := res.([]domain.Article)
	return articles
}

var _ domain.StatuteSource = (*CachedSource)(nil)
